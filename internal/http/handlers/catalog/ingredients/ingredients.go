// Package ingredients реализует поиск по справочнику ингредиентов.
package ingredients

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Handler обслуживает /ingredients/ и /ingredients/{id}/.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение ингредиентов.
type Service interface {
	Ingredients(ctx context.Context, name string) ([]models.Ingredient, error)
	Ingredient(ctx context.Context, id int64) (*models.Ingredient, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// List godoc
// @Summary Поиск ингредиентов
// @Description Поиск по началу названия без учёта регистра. Без параметра name возвращается весь справочник.
// @Tags Ingredients
// @Produce  json
// @Param name query string false "Начало названия"
// @Success 200 {array} models.Ingredient
// @Router /ingredients/ [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.ingredients.List"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.Ingredients(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	if res == nil {
		res = []models.Ingredient{}
	}
	render.JSON(w, r, res)
}

// Read godoc
// @Summary Получить ингредиент
// @Tags Ingredients
// @Produce  json
// @Param id path int true "ID ингредиента"
// @Success 200 {object} models.Ingredient
// @Failure 404 {object} response.ErrorResponse "Ингредиент не найден"
// @Router /ingredients/{id}/ [get]
func (h *Handler) Read(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.ingredients.Read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := response.ParseID(w, r, chi.URLParam(r, "id"), "ingredient")
	if !ok {
		return
	}
	res, err := h.service.Ingredient(r.Context(), id)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	render.JSON(w, r, res)
}
