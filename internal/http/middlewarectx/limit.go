package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/foodgram/internal/http/response"
)

// RateLimit ограничивает частоту изменяющих запросов общим для процесса лимитером.
// Запросы на чтение не ограничиваются.
func RateLimit(limiter *rate.Limiter, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if SafeMethodsOpen(r) == Allow || limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}
			log.Warn("too many requests",
				slog.String("op", "middlewarectx.RateLimit"),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("path", r.URL.Path),
			)
			w.Header().Set("Retry-After", "1")
			render.Status(r, http.StatusTooManyRequests)
			render.JSON(w, r, response.Error("request was throttled"))
		})
	}
}
