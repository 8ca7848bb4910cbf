// Package logout реализует отзыв текущего токена.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/foodgram/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
)

// Handler обрабатывает POST /auth/token/logout/.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает отзыв токена.
type Service interface {
	Logout(ctx context.Context, token string) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отозвать токен
// @Tags Auth
// @Success 204
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Security BearerAuth
// @Router /auth/token/logout/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token, ok := middlewarectx.BearerToken(r.Header.Get("Authorization"))
	if !ok {
		response.Fail(w, r, log, apperr.Unauthenticated("authentication credentials were not provided"))
		return
	}
	if err := h.service.Logout(r.Context(), token); err != nil {
		response.Fail(w, r, log, err)
		return
	}

	log.Info("token revoked")
	w.WriteHeader(http.StatusNoContent)
}
