package ingredients

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/foodgram/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Ingredients(ctx context.Context, name string) ([]models.Ingredient, error) {
	args := m.Called(ctx, name)
	res, _ := args.Get(0).([]models.Ingredient)
	return res, args.Error(1)
}

func (m *MockService) Ingredient(ctx context.Context, id int64) (*models.Ingredient, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*models.Ingredient)
	return res, args.Error(1)
}

func TestHandler_List(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := new(MockService)
	svc.On("Ingredients", mock.Anything, "Сол").
		Return([]models.Ingredient{{ID: 3, Name: "соль", MeasurementUnit: "г"}}, nil)

	rec := httptest.NewRecorder()
	New(logger, svc).List(rec, httptest.NewRequest(http.MethodGet, "/api/ingredients/?name=%D0%A1%D0%BE%D0%BB", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":3,"name":"соль","measurement_unit":"г"}]`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandler_Read(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := new(MockService)
	svc.On("Ingredient", mock.Anything, int64(3)).
		Return(&models.Ingredient{ID: 3, Name: "соль", MeasurementUnit: "г"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/ingredients/3/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "3")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()

	New(logger, svc).Read(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"measurement_unit":"г"`)
}
