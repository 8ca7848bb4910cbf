// Package download реализует выгрузку сводного списка покупок в xlsx.
package download

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/foodgram/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
	"github.com/magabrotheeeer/foodgram/internal/lib/sl"
	"github.com/magabrotheeeer/foodgram/internal/lib/xlsx"
	"github.com/magabrotheeeer/foodgram/internal/services/shopping"
)

// Handler отдаёт список покупок текущего пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает выгрузку списка покупок.
type Service interface {
	Export(ctx context.Context, userID int64) ([]byte, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Скачать список покупок
// @Description Ингредиенты всех рецептов из корзины, сгруппированные по названию и единице измерения.
// @Tags Recipes
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Security BearerAuth
// @Router /recipes/download_shopping_cart/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.download"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFrom(r.Context())
	if !ok {
		response.Fail(w, r, log, apperr.Unauthenticated("authentication credentials were not provided"))
		return
	}

	data, err := h.service.Export(r.Context(), user.ID)
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}

	w.Header().Set("Content-Type", xlsx.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+shopping.FileName(user.Username)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Error("failed to write shopping list", sl.Err(err))
	}
}
