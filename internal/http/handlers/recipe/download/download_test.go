package download

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

	"github.com/magabrotheeeer/foodgram/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foodgram/internal/lib/xlsx"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Export(ctx context.Context, userID int64) ([]byte, error) {
	args := m.Called(ctx, userID)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func TestDownloadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("выгрузка файла", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Export", mock.Anything, int64(6)).Return([]byte("xlsx-bytes"), nil)

		req := httptest.NewRequest(http.MethodGet, "/api/recipes/download_shopping_cart/", nil)
		req = req.WithContext(middlewarectx.WithUser(req.Context(), &models.User{ID: 6, Username: "olga"}))
		rec := httptest.NewRecorder()

		New(logger, svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, xlsx.ContentType, rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="olga_ingredients.xlsx"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "xlsx-bytes", rec.Body.String())
	})

	t.Run("аноним", func(t *testing.T) {
		svc := new(MockService)
		rec := httptest.NewRecorder()

		New(logger, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recipes/download_shopping_cart/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		svc.AssertNotCalled(t, "Export", mock.Anything, mock.Anything)
	})

	t.Run("ошибка сервиса", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Export", mock.Anything, int64(6)).Return(nil, errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/api/recipes/download_shopping_cart/", nil)
		req = req.WithContext(middlewarectx.WithUser(req.Context(), &models.User{ID: 6, Username: "olga"}))
		rec := httptest.NewRecorder()

		New(logger, svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
