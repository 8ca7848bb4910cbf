// Package subscribe реализует подписку текущего пользователя на автора и отписку.
package subscribe

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/foodgram/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Handler обрабатывает POST и DELETE /users/{id}/subscribe/.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает операции подписки.
type Service interface {
	Subscribe(ctx context.Context, userID, authorID int64, recipesLimit int) (*models.AuthorSubscription, error)
	Unsubscribe(ctx context.Context, userID, authorID int64) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// Subscribe godoc
// @Summary Подписаться на автора
// @Tags Users
// @Produce  json
// @Param id path int true "ID автора"
// @Param recipes_limit query int false "Сколько рецептов автора вернуть"
// @Success 201 {object} models.AuthorSubscription
// @Failure 400 {object} response.ErrorResponse "Подписка уже есть или автор совпадает с пользователем"
// @Failure 404 {object} response.ErrorResponse "Автор не найден"
// @Security BearerAuth
// @Router /users/{id}/subscribe/ [post]
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.relation.subscribe.Subscribe"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, authorID, ok := h.target(w, r, log)
	if !ok {
		return
	}

	res, err := h.service.Subscribe(r.Context(), user.ID, authorID, response.RecipesLimit(r))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, res)
}

// Unsubscribe godoc
// @Summary Отписаться от автора
// @Tags Users
// @Param id path int true "ID автора"
// @Success 204
// @Failure 400 {object} response.ErrorResponse "Подписки не было"
// @Failure 404 {object} response.ErrorResponse "Автор не найден"
// @Security BearerAuth
// @Router /users/{id}/subscribe/ [delete]
func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.relation.subscribe.Unsubscribe"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, authorID, ok := h.target(w, r, log)
	if !ok {
		return
	}

	if err := h.service.Unsubscribe(r.Context(), user.ID, authorID); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) target(w http.ResponseWriter, r *http.Request, log *slog.Logger) (*models.User, int64, bool) {
	user, ok := middlewarectx.UserFrom(r.Context())
	if !ok {
		response.Fail(w, r, log, apperr.Unauthenticated("authentication credentials were not provided"))
		return nil, 0, false
	}
	authorID, ok := response.ParseID(w, r, chi.URLParam(r, "id"), "user")
	if !ok {
		return nil, 0, false
	}
	return user, authorID, true
}
