// Package update реализует HTTP-обработчик изменения рецепта.
//
// Рецепт заменяется целиком: ингредиенты и теги из запроса заменяют прежние.
// Изменять рецепт может только автор.
package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/foodgram/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
	"github.com/magabrotheeeer/foodgram/internal/lib/sl"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Handler обрабатывает запросы на изменение рецепта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики изменения рецепта.
type Service interface {
	Update(ctx context.Context, id, editorID int64, in models.RecipeInput) (*models.RecipeFull, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Изменить рецепт
// @Tags Recipes
// @Accept  json
// @Produce  json
// @Param id path int true "ID рецепта"
// @Param request body models.RecipeInput true "Рецепт"
// @Success 200 {object} models.RecipeFull
// @Failure 400 {object} response.ValidationResponse "Ошибка валидации"
// @Failure 403 {object} response.ErrorResponse "Рецепт принадлежит другому пользователю"
// @Failure 404 {object} response.ErrorResponse "Рецепт не найден"
// @Security BearerAuth
// @Router /recipes/{id}/ [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.update"

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

	var req models.RecipeInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.BadRequest(w, r, "invalid request body")
		return
	}

	res, err := h.service.Update(r.Context(), id, user.ID, req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}

	log.Info("recipe updated", slog.Int64("id", id))
	render.JSON(w, r, res)
}
