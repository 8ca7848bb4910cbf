package recipe

import (
	"context"

	"github.com/magabrotheeeer/foodgram/internal/models"
)

// marks — отметки текущего пользователя для набора рецептов.
// Для анонимного пользователя все карты пустые.
type marks struct {
	favorited  map[models.RecipeID]bool
	inCart     map[models.RecipeID]bool
	subscribed map[models.UserID]bool
}

// marks загружает отметки пакетно. Для анонимного пользователя запросы не выполняются.
func (s *Service) marks(ctx context.Context, viewer *int64, bundles []models.RecipeBundle) (marks, error) {
	if viewer == nil || len(bundles) == 0 {
		return marks{}, nil
	}
	me := models.UserID(*viewer)

	recipeIDs := make([]models.RecipeID, 0, len(bundles))
	authorIDs := make([]models.UserID, 0, len(bundles))
	for _, b := range bundles {
		recipeIDs = append(recipeIDs, models.RecipeID(b.Recipe.ID))
		authorIDs = append(authorIDs, models.UserID(b.Author.ID))
	}

	var (
		m   marks
		err error
	)
	if m.favorited, err = s.favorites.Targets(ctx, me, recipeIDs); err != nil {
		return marks{}, err
	}
	if m.inCart, err = s.cart.Targets(ctx, me, recipeIDs); err != nil {
		return marks{}, err
	}
	if m.subscribed, err = s.subscriptions.Targets(ctx, me, authorIDs); err != nil {
		return marks{}, err
	}
	return m, nil
}

func projectFull(b models.RecipeBundle, m marks) models.RecipeFull {
	id := models.RecipeID(b.Recipe.ID)
	return models.RecipeFull{
		ID:               b.Recipe.ID,
		Tags:             b.Tags,
		Author:           b.Author.Profile(m.subscribed[models.UserID(b.Author.ID)]),
		Ingredients:      b.Ingredients,
		IsFavorited:      m.favorited[id],
		IsInShoppingCart: m.inCart[id],
		Name:             b.Recipe.Name,
		Image:            b.Recipe.Image,
		Text:             b.Recipe.Text,
		CookingTime:      b.Recipe.CookingTime,
	}
}

func projectShort(r models.Recipe) models.RecipeShort {
	return models.RecipeShort{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}
