package models

// Pair — строка таблицы-связи с ограничением уникальности на (Subject, Target).
// Избранное и корзина хранятся как Pair[UserID, RecipeID], подписка как Pair[UserID, UserID].
type Pair[S, T ~int64] struct {
	Subject S
	Target  T
}

type UserID int64

type RecipeID int64

// Favorite — рецепт в избранном пользователя.
type Favorite = Pair[UserID, RecipeID]

// CartEntry — рецепт в корзине покупок пользователя.
type CartEntry = Pair[UserID, RecipeID]

// Subscription — подписка пользователя (Subject) на автора (Target).
type Subscription = Pair[UserID, UserID]
