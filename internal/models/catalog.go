package models

// Tag — тег рецепта. Все поля уникальны в пределах каталога.
type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name" validate:"required,max=200"`
	Color string `json:"color" validate:"required,hexcolor,len=7"`
	Slug  string `json:"slug" validate:"required,max=200,slug"`
}

// Ingredient — запись каталога ингредиентов. Имя не уникально:
// один и тот же продукт может встречаться с разными единицами измерения.
type Ingredient struct {
	ID              int64  `json:"id"`
	Name            string `json:"name" validate:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" validate:"required,max=200"`
}
