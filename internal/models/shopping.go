package models

// CartLine — одна строка ингредиента из рецепта, лежащего в корзине.
type CartLine struct {
	Name            string
	MeasurementUnit string
	Amount          int
}

// ShoppingItem строка сводного списка покупок.
type ShoppingItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}
