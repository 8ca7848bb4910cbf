// Package remove реализует HTTP-обработчик удаления рецепта автором.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/foodgram/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
)

// Handler обрабатывает запросы на удаление рецепта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления рецепта.
type Service interface {
	Delete(ctx context.Context, id, editorID int64) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить рецепт
// @Tags Recipes
// @Param id path int true "ID рецепта"
// @Success 204
// @Failure 403 {object} response.ErrorResponse "Рецепт принадлежит другому пользователю"
// @Failure 404 {object} response.ErrorResponse "Рецепт не найден"
// @Security BearerAuth
// @Router /recipes/{id}/ [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFrom(r.Context())
	if !ok {
		response.Fail(w, r, log, apperr.Unauthenticated("authentication credentials were not provided"))
		return
	}
	id, ok := response.ParseID(w, r, chi.URLParam(r, "id"), "recipe")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id, user.ID); err != nil {
		response.Fail(w, r, log, err)
		return
	}

	log.Info("recipe deleted", slog.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}
