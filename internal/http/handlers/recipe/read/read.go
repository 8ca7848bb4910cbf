// Package read реализует HTTP-обработчик получения рецепта по ID.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/foodgram/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Handler обрабатывает запросы на получение рецепта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения рецепта.
type Service interface {
	Read(ctx context.Context, id int64, viewer *int64, shape models.Shape) (any, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить рецепт
// @Tags Recipes
// @Produce  json
// @Param id path int true "ID рецепта"
// @Success 200 {object} models.RecipeFull
// @Failure 404 {object} response.ErrorResponse "Рецепт не найден"
// @Router /recipes/{id}/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := response.ParseID(w, r, chi.URLParam(r, "id"), "recipe")
	if !ok {
		return
	}

	res, err := h.service.Read(r.Context(), id, middlewarectx.ViewerID(r.Context()), models.ShapeFull)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	render.JSON(w, r, res)
}
