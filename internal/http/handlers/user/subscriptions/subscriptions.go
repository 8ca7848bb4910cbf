// Package subscriptions реализует список авторов, на которых подписан текущий пользователь.
package subscriptions

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/foodgram/internal/config"
	"github.com/magabrotheeeer/foodgram/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Handler обрабатывает GET /users/subscriptions/.
type Handler struct {
	log        *slog.Logger
	service    Service
	pagination config.Pagination
}

// Service описывает выдачу подписок.
type Service interface {
	Subscriptions(ctx context.Context, userID int64, page models.Page, recipesLimit int) (models.PageOf[models.AuthorSubscription], error)
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
// @Summary Мои подписки
// @Tags Users
// @Produce  json
// @Param page query int false "Номер страницы"
// @Param limit query int false "Размер страницы"
// @Param recipes_limit query int false "Сколько рецептов каждого автора вернуть"
// @Success 200 {object} map[string]any "count, next, previous, results"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Security BearerAuth
// @Router /users/subscriptions/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.subscriptions"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFrom(r.Context())
	if !ok {
		response.Fail(w, r, log, apperr.Unauthenticated("authentication credentials were not provided"))
		return
	}

	page := response.ParsePage(r, h.pagination.PageSize, h.pagination.MaxPageSize)
	res, err := h.service.Subscriptions(r.Context(), user.ID, page, response.RecipesLimit(r))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	render.JSON(w, r, response.Paginate(r, page, res))
}
