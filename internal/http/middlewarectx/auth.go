// Package middlewarectx содержит HTTP middleware сервиса: аутентификацию по токену,
// правила доступа к маршрутам, ограничение частоты запросов и метрики.
//
// Authenticate не требует токена: запрос без заголовка Authorization считается
// анонимным. Требование аутентификации задаётся правилами в Permit.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User — ключ для аутентифицированного пользователя в контексте.
const User Key = "user"

// Service описывает интерфейс сервиса для проверки токена.
type Service interface {
	ValidateToken(ctx context.Context, token string) (*models.User, error)
}

// Authenticate проверяет токен из заголовка Authorization ("Bearer <jwt>" или
// "Token <jwt>") и кладёт пользователя в контекст. Неверный токен даёт 401.
func Authenticate(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Authenticate"

			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token, ok := BearerToken(header)
			if !ok {
				response.Fail(w, r, log, apperr.Unauthenticated("invalid authorization header"))
				return
			}

			user, err := authService.ValidateToken(r.Context(), token)
			if err != nil {
				response.Fail(w, r, log, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// BearerToken извлекает токен из значения заголовка Authorization.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || (scheme != "Bearer" && scheme != "Token") || token == "" {
		return "", false
	}
	return token, true
}

// WithUser возвращает контекст с пользователем.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, User, user)
}

// UserFrom возвращает пользователя из контекста.
func UserFrom(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(User).(*models.User)
	return user, ok && user != nil
}

// ViewerID возвращает ID пользователя из контекста или nil для анонимного запроса.
func ViewerID(ctx context.Context) *int64 {
	user, ok := UserFrom(ctx)
	if !ok {
		return nil
	}
	id := user.ID
	return &id
}
