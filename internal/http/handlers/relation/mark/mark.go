// Package mark реализует HTTP-обработчики отметок пользователя на рецептах:
// избранное и корзина покупок устроены одинаково и отличаются только сервисными методами.
package mark

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

// AddFunc ставит отметку и возвращает краткую проекцию рецепта.
type AddFunc func(ctx context.Context, userID, recipeID int64) (*models.RecipeShort, error)

// RemoveFunc снимает отметку.
type RemoveFunc func(ctx context.Context, userID, recipeID int64) error

// Handler обслуживает POST и DELETE для одной разновидности отметки.
type Handler struct {
	log    *slog.Logger
	name   string
	add    AddFunc
	remove RemoveFunc
}

// New создает Handler. name попадает в логи и op, например "favorite".
func New(log *slog.Logger, name string, add AddFunc, remove RemoveFunc) *Handler {
	return &Handler{
		log:    log,
		name:   name,
		add:    add,
		remove: remove,
	}
}

// Add godoc
// @Summary Добавить рецепт в избранное или корзину
// @Tags Recipes
// @Produce  json
// @Param id path int true "ID рецепта"
// @Success 201 {object} models.RecipeShort
// @Failure 400 {object} response.ErrorResponse "Рецепт уже отмечен"
// @Failure 404 {object} response.ErrorResponse "Рецепт не найден"
// @Security BearerAuth
// @Router /recipes/{id}/favorite/ [post]
// @Router /recipes/{id}/shopping_cart/ [post]
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	log, userID, recipeID, ok := h.prepare(w, r, "add")
	if !ok {
		return
	}

	res, err := h.add(r.Context(), userID, recipeID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}

	log.Info("mark added", slog.Int64("recipe_id", recipeID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, res)
}

// Remove godoc
// @Summary Убрать рецепт из избранного или корзины
// @Tags Recipes
// @Param id path int true "ID рецепта"
// @Success 204
// @Failure 400 {object} response.ErrorResponse "Рецепт не был отмечен"
// @Failure 404 {object} response.ErrorResponse "Рецепт не найден"
// @Security BearerAuth
// @Router /recipes/{id}/favorite/ [delete]
// @Router /recipes/{id}/shopping_cart/ [delete]
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	log, userID, recipeID, ok := h.prepare(w, r, "remove")
	if !ok {
		return
	}

	if err := h.remove(r.Context(), userID, recipeID); err != nil {
		response.Fail(w, r, log, err)
		return
	}

	log.Info("mark removed", slog.Int64("recipe_id", recipeID))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) prepare(w http.ResponseWriter, r *http.Request, action string) (*slog.Logger, int64, int64, bool) {
	op := "handlers.relation.mark." + h.name + "." + action

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFrom(r.Context())
	if !ok {
		response.Fail(w, r, log, apperr.Unauthenticated("authentication credentials were not provided"))
		return nil, 0, 0, false
	}
	recipeID, ok := response.ParseID(w, r, chi.URLParam(r, "id"), "recipe")
	if !ok {
		return nil, 0, 0, false
	}
	return log.With(slog.Int64("user_id", user.ID)), user.ID, recipeID, true
}
