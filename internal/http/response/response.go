// Package response формирует JSON-ответы HTTP-обработчиков: ошибки в формате
// {"errors": ...} и постраничную выдачу {"count", "next", "previous", "results"}.
package response

import (
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
	"github.com/magabrotheeeer/foodgram/internal/lib/sl"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// ErrorResponse описывает ответ с одной ошибкой.
type ErrorResponse struct {
	Errors string `json:"errors" example:"recipe is already in favorites"`
}

// ValidationResponse описывает ответ с ошибками валидации.
type ValidationResponse struct {
	Errors []string `json:"errors" example:"cooking_time: must be greater than or equal to 1"`
}

// Error возвращает тело ответа с сообщением msg.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Errors: msg}
}

// Fail пишет ответ с ошибкой, выбирая статус по категории доменной ошибки.
// Неизвестные ошибки логируются и отдаются клиенту как 500 без подробностей.
func Fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	e, ok := apperr.As(err)
	if !ok {
		log.Error("internal error", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, Error("internal server error"))
		return
	}

	log.Info("request rejected", slog.String("kind", e.Kind.String()), sl.Err(err))
	render.Status(r, e.Kind.Status())
	if e.Kind == apperr.KindValidation {
		render.JSON(w, r, ValidationResponse{Errors: e.Messages})
		return
	}
	msg := ""
	if len(e.Messages) > 0 {
		msg = e.Messages[0]
	}
	render.JSON(w, r, Error(msg))
}

// BadRequest пишет ответ 400 с сообщением msg.
func BadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, Error(msg))
}

// Page описывает постраничный ответ.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// Paginate строит тело ответа и ссылки на соседние страницы.
// Ссылки сохраняют остальные параметры запроса.
func Paginate[T any](r *http.Request, page models.Page, data models.PageOf[T]) Page[T] {
	results := data.Results
	if results == nil {
		results = []T{}
	}
	out := Page[T]{Count: data.Count, Results: results}
	number := max(page.Number, 1)
	if page.Size > 0 && number <= (data.Count-1)/page.Size {
		out.Next = pageURL(r, number+1)
	}
	if number > 1 {
		out.Previous = pageURL(r, number-1)
	}
	return out
}

func pageURL(r *http.Request, number int) *string {
	u := url.URL{Scheme: "http", Host: r.Host, Path: r.URL.Path}
	if r.TLS != nil {
		u.Scheme = "https"
	}
	q := r.URL.Query()
	if number == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}

// ParsePage читает параметры page и limit. Некорректные значения заменяются
// значениями по умолчанию, limit ограничен сверху maxSize. Номер страницы
// ограничен так, чтобы смещение помещалось в int32.
func ParsePage(r *http.Request, defaultSize, maxSize int) models.Page {
	q := r.URL.Query()
	size, err := strconv.Atoi(q.Get("limit"))
	if err != nil || size < 1 {
		size = defaultSize
	}
	if maxSize > 0 && size > maxSize {
		size = maxSize
	}
	size = max(size, 1)
	number, err := strconv.Atoi(q.Get("page"))
	if err != nil || number < 1 {
		number = 1
	}
	number = min(number, math.MaxInt32/size+1)
	return models.Page{Number: number, Size: size}
}

// ParseID читает целочисленный параметр пути. Ошибка разбора означает 404,
// так как маршрут с таким идентификатором не существует.
func ParseID(w http.ResponseWriter, r *http.Request, raw, resource string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, Error(resource+" not found"))
		return 0, false
	}
	return id, true
}

// RecipesLimit читает параметр recipes_limit. Отсутствующее или некорректное
// значение снимает ограничение, 0 оставляет авторов без рецептов.
func RecipesLimit(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("recipes_limit"))
	if err != nil || n < 0 {
		return models.UnlimitedRecipes
	}
	return min(n, math.MaxInt32)
}
