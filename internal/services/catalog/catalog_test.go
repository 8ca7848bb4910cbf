package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/foodgram/internal/cache"
	"github.com/magabrotheeeer/foodgram/internal/config"
	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListTags(ctx context.Context) ([]models.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *RepoMock) GetTag(ctx context.Context, id int64) (*models.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *RepoMock) InsertTags(ctx context.Context, tags []models.Tag) (int, error) {
	args := m.Called(ctx, tags)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) SearchIngredients(ctx context.Context, prefix string) ([]models.Ingredient, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ingredient), args.Error(1)
}

func (m *RepoMock) GetIngredient(ctx context.Context, id int64) (*models.Ingredient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ingredient), args.Error(1)
}

func (m *RepoMock) InsertIngredients(ctx context.Context, ingredients []models.Ingredient) (int, error) {
	args := m.Called(ctx, ingredients)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(t *testing.T) (*Service, *RepoMock, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := cache.InitServer(context.Background(), config.RedisConnection{AddressRedis: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	repo := &RepoMock{}
	return New(repo, c, time.Minute, newNoopLogger()), repo, mr
}

func TestTags_ServedFromCacheOnSecondCall(t *testing.T) {
	svc, repo, mr := newService(t)
	ctx := context.Background()
	tags := []models.Tag{{ID: 1, Name: "Завтрак", Color: "#e26c2d", Slug: "breakfast"}}
	repo.On("ListTags", ctx).Return(tags, nil).Once()

	first, err := svc.Tags(ctx)
	require.NoError(t, err)
	second, err := svc.Tags(ctx)
	require.NoError(t, err)

	assert.Equal(t, tags, first)
	assert.Equal(t, tags, second)
	assert.True(t, mr.Exists(tagsKey))
	repo.AssertNumberOfCalls(t, "ListTags", 1)
}

func TestTags_ExpiredCacheReloads(t *testing.T) {
	svc, repo, mr := newService(t)
	ctx := context.Background()
	repo.On("ListTags", ctx).Return([]models.Tag{}, nil)

	_, err := svc.Tags(ctx)
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, err = svc.Tags(ctx)
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "ListTags", 2)
}

func TestTags_CacheDownFallsBackToRepository(t *testing.T) {
	svc, repo, mr := newService(t)
	ctx := context.Background()
	tags := []models.Tag{{ID: 2, Name: "Обед", Color: "#49b64e", Slug: "lunch"}}
	repo.On("ListTags", ctx).Return(tags, nil)
	mr.Close()

	got, err := svc.Tags(ctx)

	require.NoError(t, err)
	assert.Equal(t, tags, got)
}

func TestIngredients_NormalizesPrefix(t *testing.T) {
	svc, repo, mr := newService(t)
	ctx := context.Background()
	found := []models.Ingredient{{ID: 3, Name: "Соль", MeasurementUnit: "г"}}
	repo.On("SearchIngredients", ctx, "со").Return(found, nil).Once()

	got, err := svc.Ingredients(ctx, " Со")
	require.NoError(t, err)
	_, err = svc.Ingredients(ctx, "со")
	require.NoError(t, err)

	assert.Equal(t, found, got)
	assert.True(t, mr.Exists(ingredientPrefix+"со"))
	repo.AssertExpectations(t)
}

func TestIngredients_RepositoryError(t *testing.T) {
	svc, repo, mr := newService(t)
	ctx := context.Background()
	repo.On("SearchIngredients", ctx, "x").Return(nil, errors.New("db down"))

	_, err := svc.Ingredients(ctx, "x")

	require.Error(t, err)
	assert.False(t, mr.Exists(ingredientPrefix+"x"))
}

func TestImportTags(t *testing.T) {
	svc, repo, mr := newService(t)
	ctx := context.Background()
	require.NoError(t, mr.Set(tagsKey, "[]"))

	in := []models.Tag{
		{Name: "Завтрак", Color: "#E26C2D", Slug: "breakfast"},
		{Name: "Ужин", Color: "#49b64e", Slug: "dinner"},
	}
	want := []models.Tag{
		{Name: "Завтрак", Color: "#e26c2d", Slug: "breakfast"},
		{Name: "Ужин", Color: "#49b64e", Slug: "dinner"},
	}
	repo.On("InsertTags", ctx, want).Return(1, nil)

	n, err := svc.ImportTags(ctx, in)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, mr.Exists(tagsKey))
}

func TestImportTags_InvalidTagWritesNothing(t *testing.T) {
	tests := []struct {
		name string
		tag  models.Tag
	}{
		{name: "bad color", tag: models.Tag{Name: "Ужин", Color: "green", Slug: "dinner"}},
		{name: "bad slug", tag: models.Tag{Name: "Ужин", Color: "#49b64e", Slug: "у жин"}},
		{name: "empty name", tag: models.Tag{Color: "#49b64e", Slug: "dinner"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			ctx := context.Background()

			_, err := svc.ImportTags(ctx, []models.Tag{
				{Name: "Завтрак", Color: "#e26c2d", Slug: "breakfast"},
				tt.tag,
			})

			require.ErrorIs(t, err, apperr.ErrValidation)
			assert.Contains(t, err.Error(), "tag #2")
			repo.AssertNotCalled(t, "InsertTags", mock.Anything, mock.Anything)
		})
	}
}

func TestImportIngredients_InvalidatesSearches(t *testing.T) {
	svc, repo, mr := newService(t)
	ctx := context.Background()
	require.NoError(t, mr.Set(ingredientPrefix+"со", "[]"))
	require.NoError(t, mr.Set(ingredientPrefix+"мо", "[]"))
	require.NoError(t, mr.Set(tagsKey, "[]"))

	items := []models.Ingredient{{Name: "соль", MeasurementUnit: "г"}}
	repo.On("InsertIngredients", ctx, items).Return(1, nil)

	n, err := svc.ImportIngredients(ctx, []models.Ingredient{{Name: " соль ", MeasurementUnit: "г"}})

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, mr.Exists(ingredientPrefix+"со"))
	assert.False(t, mr.Exists(ingredientPrefix+"мо"))
	assert.True(t, mr.Exists(tagsKey))
}

func TestImportIngredients_MissingUnit(t *testing.T) {
	svc, repo, _ := newService(t)

	_, err := svc.ImportIngredients(context.Background(), []models.Ingredient{{Name: "соль"}})

	require.ErrorIs(t, err, apperr.ErrValidation)
	repo.AssertNotCalled(t, "InsertIngredients", mock.Anything, mock.Anything)
}
