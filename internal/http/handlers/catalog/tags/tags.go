// Package tags реализует чтение справочника тегов. Справочник не пагинируется.
package tags

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

// Handler обслуживает /tags/ и /tags/{id}/.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение тегов.
type Service interface {
	Tags(ctx context.Context) ([]models.Tag, error)
	Tag(ctx context.Context, id int64) (*models.Tag, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// List godoc
// @Summary Список тегов
// @Tags Tags
// @Produce  json
// @Success 200 {array} models.Tag
// @Router /tags/ [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.tags.List"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.Tags(r.Context())
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	if res == nil {
		res = []models.Tag{}
	}
	render.JSON(w, r, res)
}

// Read godoc
// @Summary Получить тег
// @Tags Tags
// @Produce  json
// @Param id path int true "ID тега"
// @Success 200 {object} models.Tag
// @Failure 404 {object} response.ErrorResponse "Тег не найден"
// @Router /tags/{id}/ [get]
func (h *Handler) Read(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.tags.Read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := response.ParseID(w, r, chi.URLParam(r, "id"), "tag")
	if !ok {
		return
	}
	res, err := h.service.Tag(r.Context(), id)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	render.JSON(w, r, res)
}
