package models

import "time"

// Recipe — строка таблицы recipes.
type Recipe struct {
	ID          int64
	AuthorID    int64
	Name        string
	Image       string
	Text        string
	CookingTime int
	PubDate     time.Time
}

// IngredientAmount — пара (ингредиент, количество) из входящего запроса.
type IngredientAmount struct {
	ID     int64 `json:"id" validate:"required,gt=0"`
	Amount int   `json:"amount" validate:"min=1,max=32000"`
}

// RecipeInput используется для приёма данных рецепта из JSON-запроса
// при создании и обновлении.
type RecipeInput struct {
	Name        string             `json:"name" validate:"required,max=200"`
	Text        string             `json:"text" validate:"required"`
	Image       string             `json:"image" validate:"required"`
	CookingTime int                `json:"cooking_time" validate:"min=1,max=1440"`
	Tags        []int64            `json:"tags" validate:"required,min=1"`
	Ingredients []IngredientAmount `json:"ingredients" validate:"required,min=1,dive"`
}

// RecipeIngredientLine — строка recipe_ingredients вместе с данными ингредиента.
type RecipeIngredientLine struct {
	RecipeID        int64
	IngredientID    int64
	Name            string
	MeasurementUnit string
	Amount          int
}

// IngredientInRecipe — проекция ингредиента внутри рецепта: количество
// переносится из строки связи, а не хранится в самом ингредиенте.
type IngredientInRecipe struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeFull — полная проекция рецепта для чтения.
type RecipeFull struct {
	ID               int64                `json:"id"`
	Tags             []Tag                `json:"tags"`
	Author           UserProfile          `json:"author"`
	Ingredients      []IngredientInRecipe `json:"ingredients"`
	IsFavorited      bool                 `json:"is_favorited"`
	IsInShoppingCart bool                 `json:"is_in_shopping_cart"`
	Name             string               `json:"name"`
	Image            string               `json:"image"`
	Text             string               `json:"text"`
	CookingTime      int                  `json:"cooking_time"`
}

// RecipeShort — облегчённая проекция рецепта для избранного, корзины и подписок.
type RecipeShort struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// Shape выбирает проекцию рецепта.
type Shape uint8

const (
	// ShapeFull полная проекция (RecipeFull).
	ShapeFull Shape = iota
	// ShapeShort краткая проекция (RecipeShort).
	ShapeShort
)

// String реализует fmt.Stringer.
func (s Shape) String() string {
	switch s {
	case ShapeFull:
		return "full"
	case ShapeShort:
		return "short"
	default:
		return "unknown"
	}
}

// RecipeBundle — рецепт вместе с автором, ингредиентами и тегами,
// прочитанные из одного снимка данных.
type RecipeBundle struct {
	Recipe      Recipe
	Author      User
	Ingredients []IngredientInRecipe
	Tags        []Tag
}
