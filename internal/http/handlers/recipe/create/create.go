// Package create реализует HTTP-обработчик создания рецепта.
//
// Handler принимает JSON с рецептом, передаёт его сервису вместе с автором из контекста
// и возвращает полную проекцию созданного рецепта со статусом 201.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/foodgram/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
	"github.com/magabrotheeeer/foodgram/internal/lib/sl"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Handler управляет HTTP-запросами на создание рецептов.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики рецептов
}

// Service описывает интерфейс бизнес-логики создания рецепта.
type Service interface {
	Create(ctx context.Context, authorID int64, in models.RecipeInput) (*models.RecipeFull, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Создать рецепт
// @Description Создает рецепт текущего пользователя вместе с ингредиентами и тегами.
// @Tags Recipes
// @Accept  json
// @Produce  json
// @Param request body models.RecipeInput true "Рецепт"
// @Success 201 {object} models.RecipeFull
// @Failure 400 {object} response.ValidationResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Security BearerAuth
// @Router /recipes/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFrom(r.Context())
	if !ok {
		response.Fail(w, r, log, apperr.Unauthenticated("authentication credentials were not provided"))
		return
	}

	var req models.RecipeInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.BadRequest(w, r, "invalid request body")
		return
	}

	res, err := h.service.Create(r.Context(), user.ID, req)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}

	log.Info("recipe created", slog.Int64("id", res.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, res)
}
