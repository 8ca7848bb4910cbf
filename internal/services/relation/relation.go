package relation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Тексты ошибок связей.
const (
	MsgFavoriteExists   = "recipe is already in favorites"
	MsgFavoriteMissing  = "recipe is not in favorites"
	MsgCartExists       = "recipe is already in shopping cart"
	MsgCartMissing      = "recipe is not in shopping cart"
	MsgSubscribed       = "already subscribed to this author"
	MsgNotSubscribed    = "not subscribed to this author"
	MsgSelfSubscription = "cannot subscribe to yourself"
)

// RecipeProjector возвращает рецепт в выбранной проекции.
type RecipeProjector interface {
	Read(ctx context.Context, id int64, viewer *int64, shape models.Shape) (any, error)
}

// AuthorProjector возвращает автора так, как его видит подписчик.
type AuthorProjector interface {
	Subscription(ctx context.Context, viewerID, authorID int64, recipesLimit int) (*models.AuthorSubscription, error)
}

// Deps собирает зависимости сервиса.
type Deps struct {
	Favorites     Store[models.UserID, models.RecipeID]
	ShoppingCart  Store[models.UserID, models.RecipeID]
	Subscriptions Store[models.UserID, models.UserID]
	Recipes       RecipeProjector
	Authors       AuthorProjector
}

// Service управляет избранным, корзиной и подписками.
type Service struct {
	favorites     *Toggle[models.UserID, models.RecipeID]
	cart          *Toggle[models.UserID, models.RecipeID]
	subscriptions *Toggle[models.UserID, models.UserID]
	recipes       RecipeProjector
	authors       AuthorProjector
	log           *slog.Logger
}

// New создаёт сервис связей.
func New(deps Deps, log *slog.Logger) *Service {
	return &Service{
		favorites: NewToggle(deps.Favorites, Messages{Duplicate: MsgFavoriteExists, Missing: MsgFavoriteMissing}),
		cart:      NewToggle(deps.ShoppingCart, Messages{Duplicate: MsgCartExists, Missing: MsgCartMissing}),
		subscriptions: NewToggle(deps.Subscriptions,
			Messages{Duplicate: MsgSubscribed, Missing: MsgNotSubscribed},
			NotSelf(MsgSelfSubscription)),
		recipes: deps.Recipes,
		authors: deps.Authors,
		log:     log,
	}
}

// AddFavorite добавляет рецепт в избранное и возвращает его краткую проекцию.
func (s *Service) AddFavorite(ctx context.Context, userID, recipeID int64) (*models.RecipeShort, error) {
	if err := s.favorites.Add(ctx, models.Favorite{Subject: models.UserID(userID), Target: models.RecipeID(recipeID)}); err != nil {
		return nil, err
	}
	s.log.Debug("recipe added to favorites", slog.Int64("user_id", userID), slog.Int64("recipe_id", recipeID))
	return s.shortRecipe(ctx, recipeID)
}

// RemoveFavorite убирает рецепт из избранного.
func (s *Service) RemoveFavorite(ctx context.Context, userID, recipeID int64) error {
	return s.favorites.Remove(ctx, models.Favorite{Subject: models.UserID(userID), Target: models.RecipeID(recipeID)})
}

// AddToCart добавляет рецепт в корзину покупок.
func (s *Service) AddToCart(ctx context.Context, userID, recipeID int64) (*models.RecipeShort, error) {
	if err := s.cart.Add(ctx, models.CartEntry{Subject: models.UserID(userID), Target: models.RecipeID(recipeID)}); err != nil {
		return nil, err
	}
	s.log.Debug("recipe added to shopping cart", slog.Int64("user_id", userID), slog.Int64("recipe_id", recipeID))
	return s.shortRecipe(ctx, recipeID)
}

// RemoveFromCart убирает рецепт из корзины покупок.
func (s *Service) RemoveFromCart(ctx context.Context, userID, recipeID int64) error {
	return s.cart.Remove(ctx, models.CartEntry{Subject: models.UserID(userID), Target: models.RecipeID(recipeID)})
}

// Subscribe подписывает пользователя на автора. recipesLimit ограничивает
// число рецептов автора в ответе, models.UnlimitedRecipes снимает ограничение.
func (s *Service) Subscribe(ctx context.Context, userID, authorID int64, recipesLimit int) (*models.AuthorSubscription, error) {
	if err := s.subscriptions.Add(ctx, models.Subscription{Subject: models.UserID(userID), Target: models.UserID(authorID)}); err != nil {
		return nil, err
	}
	s.log.Info("subscribed", slog.Int64("user_id", userID), slog.Int64("author_id", authorID))
	return s.authors.Subscription(ctx, userID, authorID, recipesLimit)
}

// Unsubscribe отменяет подписку на автора.
func (s *Service) Unsubscribe(ctx context.Context, userID, authorID int64) error {
	if err := s.subscriptions.Remove(ctx, models.Subscription{Subject: models.UserID(userID), Target: models.UserID(authorID)}); err != nil {
		return err
	}
	s.log.Info("unsubscribed", slog.Int64("user_id", userID), slog.Int64("author_id", authorID))
	return nil
}

// shortRecipe читает краткую проекцию рецепта для ответа на добавление в избранное или корзину.
func (s *Service) shortRecipe(ctx context.Context, recipeID int64) (*models.RecipeShort, error) {
	res, err := s.recipes.Read(ctx, recipeID, nil, models.ShapeShort)
	if err != nil {
		return nil, err
	}
	short, ok := res.(*models.RecipeShort)
	if !ok {
		return nil, fmt.Errorf("relation: unexpected recipe projection %T", res)
	}
	return short, nil
}
