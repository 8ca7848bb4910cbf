package list

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/foodgram/internal/config"
	"github.com/magabrotheeeer/foodgram/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, q models.RecipeQuery, viewer *int64) (models.PageOf[models.RecipeFull], error) {
	args := m.Called(ctx, q, viewer)
	return args.Get(0).(models.PageOf[models.RecipeFull]), args.Error(1)
}

func TestParseQuery(t *testing.T) {
	author := int64(5)

	tests := []struct {
		name    string
		query   string
		want    models.RecipeQuery
		wantErr string
	}{
		{name: "empty", query: "", want: models.RecipeQuery{}},
		{
			name:  "repeated tags",
			query: "tags=breakfast&tags=lunch",
			want:  models.RecipeQuery{TagSlugs: []string{"breakfast", "lunch"}},
		},
		{
			name:  "comma separated tags",
			query: "tags=breakfast,lunch",
			want:  models.RecipeQuery{TagSlugs: []string{"breakfast", "lunch"}},
		},
		{
			name:  "author and flags",
			query: "author=5&is_favorited=1&is_in_shopping_cart=true",
			want:  models.RecipeQuery{AuthorID: &author, IsFavorited: true, IsInShoppingCart: true},
		},
		{name: "zero flag", query: "is_favorited=0", want: models.RecipeQuery{}},
		{name: "bad author", query: "author=me", wantErr: "author"},
		{name: "bad flag", query: "is_in_shopping_cart=yes", wantErr: "is_in_shopping_cart"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := ParseQuery(values)

			if tt.wantErr != "" {
				e, ok := apperr.As(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantErr, e.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := new(MockService)
	viewer := int64(2)
	q := models.RecipeQuery{
		TagSlugs:    []string{"lunch"},
		IsFavorited: true,
		Page:        models.Page{Number: 1, Size: 1},
	}
	svc.On("List", mock.Anything, q, &viewer).Return(models.PageOf[models.RecipeFull]{
		Count:   3,
		Results: []models.RecipeFull{{ID: 30, Name: "Плов"}},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "http://localhost/api/recipes/?tags=lunch&is_favorited=1&limit=1", nil)
	req = req.WithContext(middlewarectx.WithUser(req.Context(), &models.User{ID: viewer}))
	rec := httptest.NewRecorder()

	New(logger, svc, config.Pagination{PageSize: 6, MaxPageSize: 100}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Count    int               `json:"count"`
		Next     *string           `json:"next"`
		Previous *string           `json:"previous"`
		Results  []json.RawMessage `json:"results"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 3, body.Count)
	assert.Len(t, body.Results, 1)
	require.NotNil(t, body.Next)
	assert.Contains(t, *body.Next, "page=2")
	assert.Nil(t, body.Previous)
	svc.AssertExpectations(t)
}

func TestListHandler_BadFilter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := new(MockService)

	rec := httptest.NewRecorder()
	New(logger, svc, config.Pagination{PageSize: 6}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recipes/?author=abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}
