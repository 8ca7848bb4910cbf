package models

// UnlimitedRecipes снимает ограничение на число рецептов автора в подписках.
const UnlimitedRecipes = -1

// RecipeFilter описывает фильтры списка рецептов, которые передаются в слой доступа к данным.
type RecipeFilter struct {
	AuthorID         *int64   // Автор, nil без фильтра
	TagSlugs         []string // Совпадение хотя бы с одним тегом
	FavoritedBy      *int64   // Только рецепты из избранного этого пользователя
	InShoppingCartOf *int64   // Только рецепты из корзины этого пользователя
	Limit            int
	Offset           int
}

// RecipeQuery — параметры запроса списка рецептов до учёта текущего пользователя.
type RecipeQuery struct {
	AuthorID         *int64
	TagSlugs         []string
	IsFavorited      bool
	IsInShoppingCart bool
	Page             Page
}

// Page — параметры постраничной выдачи.
type Page struct {
	Number int // Номер страницы, начиная с 1
	Size   int // Размер страницы
}

// Offset возвращает смещение для SQL-запроса.
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// PageOf — страница результатов и общее количество записей.
type PageOf[T any] struct {
	Count   int
	Results []T
}
