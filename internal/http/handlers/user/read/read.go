// Package read реализует получение профиля пользователя по ID и профиля текущего пользователя.
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
	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Handler обрабатывает запросы профиля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение профиля.
type Service interface {
	Profile(ctx context.Context, id int64, viewer *int64) (*models.UserProfile, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Профиль пользователя
// @Tags Users
// @Produce  json
// @Param id path int true "ID пользователя"
// @Success 200 {object} models.UserProfile
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /users/{id}/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := response.ParseID(w, r, chi.URLParam(r, "id"), "user")
	if !ok {
		return
	}
	h.respond(w, r, log, id, middlewarectx.ViewerID(r.Context()))
}

// Me godoc
// @Summary Профиль текущего пользователя
// @Tags Users
// @Produce  json
// @Success 200 {object} models.UserProfile
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Security BearerAuth
// @Router /users/me/ [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.me"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFrom(r.Context())
	if !ok {
		response.Fail(w, r, log, apperr.Unauthenticated("authentication credentials were not provided"))
		return
	}
	h.respond(w, r, log, user.ID, &user.ID)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, log *slog.Logger, id int64, viewer *int64) {
	profile, err := h.service.Profile(r.Context(), id, viewer)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	render.JSON(w, r, profile)
}
