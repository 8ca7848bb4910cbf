package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

func TestStorage_CreateRecipe(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)

	author := factory.CreateUser(t)
	breakfast := factory.CreateTag(t, "breakfast")
	lunch := factory.CreateTag(t, "lunch")
	eggs := factory.CreateIngredient(t, "яйца", "шт")
	salt := factory.CreateIngredient(t, "соль", "г")

	t.Run("persists recipe lines and tags", func(t *testing.T) {
		in := factory.RecipeInput([]int64{breakfast, lunch},
			models.IngredientAmount{ID: eggs, Amount: 2},
			models.IngredientAmount{ID: salt, Amount: 5})

		id, err := storage.CreateRecipe(ctx, author, in)
		require.NoError(t, err)

		bundle, err := storage.ReadRecipe(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, in.Name, bundle.Recipe.Name)
		assert.Equal(t, author, bundle.Author.ID)
		assert.Equal(t, []models.IngredientInRecipe{
			{ID: eggs, Name: "яйца", MeasurementUnit: "шт", Amount: 2},
			{ID: salt, Name: "соль", MeasurementUnit: "г", Amount: 5},
		}, bundle.Ingredients)
		require.Len(t, bundle.Tags, 2)
		assert.Equal(t, "breakfast", bundle.Tags[0].Slug)
	})

	tests := []struct {
		name      string
		in        func() models.RecipeInput
		wantField string
	}{
		{
			name: "unknown ingredient rolls back",
			in: func() models.RecipeInput {
				return factory.RecipeInput([]int64{breakfast},
					models.IngredientAmount{ID: eggs, Amount: 1},
					models.IngredientAmount{ID: 999999, Amount: 1})
			},
			wantField: "ingredients",
		},
		{
			name: "unknown tag rolls back",
			in: func() models.RecipeInput {
				return factory.RecipeInput([]int64{breakfast, 999999},
					models.IngredientAmount{ID: eggs, Amount: 1})
			},
			wantField: "tags",
		},
		{
			name: "duplicate ingredient rolls back",
			in: func() models.RecipeInput {
				return factory.RecipeInput([]int64{breakfast},
					models.IngredientAmount{ID: eggs, Amount: 1},
					models.IngredientAmount{ID: eggs, Amount: 3})
			},
			wantField: "ingredients",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipesBefore := verify.Count(t, "recipes", "")
			linesBefore := verify.Count(t, "recipe_ingredients", "")
			tagsBefore := verify.Count(t, "recipe_tags", "")

			_, err := storage.CreateRecipe(ctx, author, tt.in())
			require.ErrorIs(t, err, apperr.ErrValidation)
			appErr, ok := apperr.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantField, appErr.Field)

			assert.Equal(t, recipesBefore, verify.Count(t, "recipes", ""))
			assert.Equal(t, linesBefore, verify.Count(t, "recipe_ingredients", ""))
			assert.Equal(t, tagsBefore, verify.Count(t, "recipe_tags", ""))
		})
	}

	t.Run("duplicate name", func(t *testing.T) {
		in := factory.RecipeInput([]int64{breakfast}, models.IngredientAmount{ID: eggs, Amount: 1})
		factory.CreateRecipe(t, author, in)

		_, err := storage.CreateRecipe(ctx, author, in)
		require.ErrorIs(t, err, apperr.ErrValidation)
		appErr, _ := apperr.As(err)
		assert.Equal(t, "name", appErr.Field)
	})
}

func TestStorage_UpdateRecipe(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)

	author := factory.CreateUser(t)
	stranger := factory.CreateUser(t)
	breakfast := factory.CreateTag(t, "breakfast")
	dinner := factory.CreateTag(t, "dinner")
	a := factory.CreateIngredient(t, "мука", "г")
	b := factory.CreateIngredient(t, "молоко", "мл")
	c := factory.CreateIngredient(t, "сахар", "г")

	id := factory.CreateRecipe(t, author, factory.RecipeInput([]int64{breakfast},
		models.IngredientAmount{ID: a, Amount: 200},
		models.IngredientAmount{ID: b, Amount: 300}))

	t.Run("replaces lines exactly", func(t *testing.T) {
		in := factory.RecipeInput([]int64{dinner},
			models.IngredientAmount{ID: b, Amount: 100},
			models.IngredientAmount{ID: c, Amount: 10})
		in.CookingTime = 40
		require.NoError(t, storage.UpdateRecipe(ctx, id, author, in))

		bundle, err := storage.ReadRecipe(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 40, bundle.Recipe.CookingTime)
		assert.Equal(t, []models.IngredientInRecipe{
			{ID: b, Name: "молоко", MeasurementUnit: "мл", Amount: 100},
			{ID: c, Name: "сахар", MeasurementUnit: "г", Amount: 10},
		}, bundle.Ingredients)
		require.Len(t, bundle.Tags, 1)
		assert.Equal(t, dinner, bundle.Tags[0].ID)
		assert.Equal(t, 2, verify.Count(t, "recipe_ingredients", "recipe_id = $1", id))
	})

	t.Run("failed update keeps previous state", func(t *testing.T) {
		before, err := storage.ReadRecipe(ctx, id)
		require.NoError(t, err)

		in := factory.RecipeInput([]int64{breakfast}, models.IngredientAmount{ID: 424242, Amount: 1})
		err = storage.UpdateRecipe(ctx, id, author, in)
		require.ErrorIs(t, err, apperr.ErrValidation)

		after, err := storage.ReadRecipe(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("non owner is rejected", func(t *testing.T) {
		in := factory.RecipeInput([]int64{breakfast}, models.IngredientAmount{ID: a, Amount: 1})
		err := storage.UpdateRecipe(ctx, id, stranger, in)
		assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
	})

	t.Run("missing recipe", func(t *testing.T) {
		in := factory.RecipeInput([]int64{breakfast}, models.IngredientAmount{ID: a, Amount: 1})
		err := storage.UpdateRecipe(ctx, 987654, author, in)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("concurrent updates serialize", func(t *testing.T) {
		var wg sync.WaitGroup
		errs := make([]error, 4)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				in := factory.RecipeInput([]int64{breakfast, dinner},
					models.IngredientAmount{ID: a, Amount: i + 1},
					models.IngredientAmount{ID: c, Amount: i + 1})
				in.Name = "Concurrent"
				errs[i] = storage.UpdateRecipe(ctx, id, author, in)
			}(i)
		}
		wg.Wait()
		for _, err := range errs {
			require.NoError(t, err)
		}
		assert.Equal(t, 2, verify.Count(t, "recipe_ingredients", "recipe_id = $1", id))
		assert.Equal(t, 2, verify.Count(t, "recipe_tags", "recipe_id = $1", id))
	})
}

func TestStorage_DeleteRecipe(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)

	author := factory.CreateUser(t)
	reader := factory.CreateUser(t)
	tag := factory.CreateTag(t, "soup")
	ing := factory.CreateIngredient(t, "свёкла", "г")
	id := factory.CreateRecipe(t, author, factory.RecipeInput([]int64{tag}, models.IngredientAmount{ID: ing, Amount: 300}))

	favorites := NewPairStore[models.UserID, models.RecipeID](storage, FavoritesTable)
	mustAdd(t, favorites, models.Favorite{Subject: models.UserID(reader), Target: models.RecipeID(id)})

	assert.ErrorIs(t, storage.DeleteRecipe(ctx, id, reader), apperr.ErrPermissionDenied)
	require.NoError(t, storage.DeleteRecipe(ctx, id, author))

	assert.Equal(t, 0, verify.Count(t, "recipes", "id = $1", id))
	assert.Equal(t, 0, verify.Count(t, "recipe_ingredients", "recipe_id = $1", id))
	assert.Equal(t, 0, verify.Count(t, "favorites", "recipe_id = $1", id))

	_, err := storage.ReadRecipe(ctx, id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestStorage_ListRecipes(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	alice := factory.CreateUser(t)
	bob := factory.CreateUser(t)
	breakfast := factory.CreateTag(t, "breakfast")
	lunch := factory.CreateTag(t, "lunch")
	dinner := factory.CreateTag(t, "dinner")
	ing := factory.CreateIngredient(t, "рис", "г")
	line := models.IngredientAmount{ID: ing, Amount: 100}

	r1 := factory.CreateRecipe(t, alice, factory.RecipeInput([]int64{breakfast}, line))
	r2 := factory.CreateRecipe(t, alice, factory.RecipeInput([]int64{breakfast, lunch}, line))
	r3 := factory.CreateRecipe(t, bob, factory.RecipeInput([]int64{lunch}, line))
	r4 := factory.CreateRecipe(t, bob, factory.RecipeInput([]int64{dinner}, line))

	favorites := NewPairStore[models.UserID, models.RecipeID](storage, FavoritesTable)
	cart := NewPairStore[models.UserID, models.RecipeID](storage, ShoppingCartTable)
	mustAdd(t, favorites, models.Favorite{Subject: models.UserID(alice), Target: models.RecipeID(r3)})
	mustAdd(t, cart, models.CartEntry{Subject: models.UserID(alice), Target: models.RecipeID(r4)})

	ids := func(bundles []models.RecipeBundle) []int64 {
		var out []int64
		for _, b := range bundles {
			out = append(out, b.Recipe.ID)
		}
		return out
	}

	tests := []struct {
		name      string
		filter    models.RecipeFilter
		wantIDs   []int64
		wantTotal int
	}{
		{
			name:      "newest first",
			filter:    models.RecipeFilter{Limit: 10},
			wantIDs:   []int64{r4, r3, r2, r1},
			wantTotal: 4,
		},
		{
			name:      "tags are a union without duplicates",
			filter:    models.RecipeFilter{TagSlugs: []string{"breakfast", "lunch"}, Limit: 10},
			wantIDs:   []int64{r3, r2, r1},
			wantTotal: 3,
		},
		{
			name:      "author",
			filter:    models.RecipeFilter{AuthorID: &bob, Limit: 10},
			wantIDs:   []int64{r4, r3},
			wantTotal: 2,
		},
		{
			name:      "favorited by",
			filter:    models.RecipeFilter{FavoritedBy: &alice, Limit: 10},
			wantIDs:   []int64{r3},
			wantTotal: 1,
		},
		{
			name:      "in shopping cart of",
			filter:    models.RecipeFilter{InShoppingCartOf: &alice, Limit: 10},
			wantIDs:   []int64{r4},
			wantTotal: 1,
		},
		{
			name:      "pagination keeps total",
			filter:    models.RecipeFilter{Limit: 2, Offset: 2},
			wantIDs:   []int64{r2, r1},
			wantTotal: 4,
		},
		{
			name:      "unknown tag",
			filter:    models.RecipeFilter{TagSlugs: []string{"nope"}, Limit: 10},
			wantIDs:   nil,
			wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := storage.ListRecipes(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, tt.wantIDs, ids(got))
		})
	}
}
