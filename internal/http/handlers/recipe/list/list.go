// Package list реализует HTTP-обработчик списка рецептов с фильтрами и пагинацией.
//
// Поддерживаемые параметры запроса: author, tags (повторяющийся или через запятую),
// is_favorited, is_in_shopping_cart, page, limit.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/foodgram/internal/config"
	"github.com/magabrotheeeer/foodgram/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Handler обрабатывает запросы списка рецептов.
type Handler struct {
	log        *slog.Logger
	service    Service
	pagination config.Pagination
}

// Service описывает интерфейс бизнес-логики списка рецептов.
type Service interface {
	List(ctx context.Context, q models.RecipeQuery, viewer *int64) (models.PageOf[models.RecipeFull], error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, pagination config.Pagination) *Handler {
	return &Handler{
		log:        log,
		service:    service,
		pagination: pagination,
	}
}

// ServeHTTP godoc
// @Summary Список рецептов
// @Description Рецепты от новых к старым. Фильтры is_favorited и is_in_shopping_cart действуют только для авторизованного пользователя.
// @Tags Recipes
// @Produce  json
// @Param author query int false "ID автора"
// @Param tags query []string false "Slug тегов" collectionFormat(multi)
// @Param is_favorited query bool false "Только избранное"
// @Param is_in_shopping_cart query bool false "Только рецепты из корзины"
// @Param page query int false "Номер страницы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} map[string]any "count, next, previous, results"
// @Failure 400 {object} response.ValidationResponse "Некорректный фильтр"
// @Router /recipes/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q, err := ParseQuery(r.URL.Query())
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}
	q.Page = response.ParsePage(r, h.pagination.PageSize, h.pagination.MaxPageSize)

	res, err := h.service.List(r.Context(), q, middlewarectx.ViewerID(r.Context()))
	if err != nil {
		response.Fail(w, r, log, err)
		return
	}

	log.Debug("recipes listed", slog.Int("count", res.Count))
	render.JSON(w, r, response.Paginate(r, q.Page, res))
}

// ParseQuery разбирает фильтры списка рецептов.
func ParseQuery(values url.Values) (models.RecipeQuery, error) {
	var q models.RecipeQuery

	if raw := values.Get("author"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return q, apperr.Validation("author", "author: must be an integer id")
		}
		q.AuthorID = &id
	}

	for _, raw := range values["tags"] {
		for _, slug := range strings.Split(raw, ",") {
			if slug = strings.TrimSpace(slug); slug != "" {
				q.TagSlugs = append(q.TagSlugs, slug)
			}
		}
	}

	var err error
	if q.IsFavorited, err = parseFlag(values, "is_favorited"); err != nil {
		return q, err
	}
	if q.IsInShoppingCart, err = parseFlag(values, "is_in_shopping_cart"); err != nil {
		return q, err
	}
	return q, nil
}

func parseFlag(values url.Values, name string) (bool, error) {
	raw := values.Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperr.Validation(name, name+": must be a boolean (1/0, true/false)")
	}
	return v, nil
}
