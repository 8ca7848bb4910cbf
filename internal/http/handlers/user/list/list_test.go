package list

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/foodgram/internal/config"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, page models.Page, viewer *int64) (models.PageOf[models.UserProfile], error) {
	args := m.Called(ctx, page, viewer)
	return args.Get(0).(models.PageOf[models.UserProfile]), args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pagination := config.Pagination{PageSize: 2, MaxPageSize: 10}

	t.Run("первая страница", func(t *testing.T) {
		svc := new(MockService)
		svc.On("List", mock.Anything, models.Page{Number: 1, Size: 2}, (*int64)(nil)).
			Return(models.PageOf[models.UserProfile]{
				Count:   3,
				Results: []models.UserProfile{{ID: 1, Username: "a"}, {ID: 2, Username: "b"}},
			}, nil)
		rec := httptest.NewRecorder()

		New(logger, svc, pagination).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://example.org/api/users/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"count":3`)
		assert.Contains(t, rec.Body.String(), `"next":"http://example.org/api/users/?page=2"`)
		assert.Contains(t, rec.Body.String(), `"previous":null`)
	})

	t.Run("ошибка хранилища", func(t *testing.T) {
		svc := new(MockService)
		svc.On("List", mock.Anything, mock.Anything, mock.Anything).
			Return(models.PageOf[models.UserProfile]{}, errors.New("db down"))
		rec := httptest.NewRecorder()

		New(logger, svc, pagination).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
