// Package register реализует HTTP-обработчик регистрации пользователя.
package register

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/lib/sl"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Handler обрабатывает запросы на регистрацию.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает регистрацию пользователя.
type Service interface {
	Register(ctx context.Context, in models.Registration) (*models.RegisteredUser, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body models.Registration true "Данные пользователя"
// @Success 201 {object} models.RegisteredUser
// @Failure 400 {object} response.ValidationResponse "Ошибка валидации или занятые имя и почта"
// @Router /users/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.Registration
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.BadRequest(w, r, "invalid request body")
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}

	log.Info("user registered", slog.Int64("id", user.ID), slog.String("username", user.Username))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, user)
}
