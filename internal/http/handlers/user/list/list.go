// Package list реализует постраничный список пользователей.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/foodgram/internal/config"
	"github.com/magabrotheeeer/foodgram/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Handler обрабатывает GET /users/.
type Handler struct {
	log        *slog.Logger
	service    Service
	pagination config.Pagination
}

// Service описывает список пользователей.
type Service interface {
	List(ctx context.Context, page models.Page, viewer *int64) (models.PageOf[models.UserProfile], error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, pagination config.Pagination) *Handler {
	return &Handler{
		log:        log,
		service:    service,
		pagination: pagination,
	}
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Tags Users
// @Produce  json
// @Param page query int false "Номер страницы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} map[string]any "count, next, previous, results"
// @Router /users/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page := response.ParsePage(r, h.pagination.PageSize, h.pagination.MaxPageSize)
	res, err := h.service.List(r.Context(), page, middlewarectx.ViewerID(r.Context()))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	render.JSON(w, r, response.Paginate(r, page, res))
}
