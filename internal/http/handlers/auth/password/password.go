// Package password реализует смену пароля текущим пользователем.
package password

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/foodgram/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
	"github.com/magabrotheeeer/foodgram/internal/lib/sl"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Handler обрабатывает POST /users/set_password/.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает смену пароля.
type Service interface {
	SetPassword(ctx context.Context, userID int64, in models.PasswordChange) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сменить пароль
// @Tags Users
// @Accept  json
// @Param request body models.PasswordChange true "Текущий и новый пароль"
// @Success 204
// @Failure 400 {object} response.ValidationResponse "Неверный текущий пароль"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Security BearerAuth
// @Router /users/set_password/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.password"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFrom(r.Context())
	if !ok {
		response.Fail(w, r, log, apperr.Unauthenticated("authentication credentials were not provided"))
		return
	}

	var req models.PasswordChange
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.BadRequest(w, r, "invalid request body")
		return
	}

	if err := h.service.SetPassword(r.Context(), user.ID, req); err != nil {
		response.Fail(w, r, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
