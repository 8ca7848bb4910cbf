package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
)

// Decision — результат проверки правила доступа.
type Decision uint8

const (
	// Abstain передаёт решение следующему правилу.
	Abstain Decision = iota
	// Allow разрешает запрос.
	Allow
	// Deny запрещает запрос.
	Deny
)

// Rule — правило доступа к маршруту.
type Rule func(r *http.Request) Decision

// SafeMethodsOpen разрешает чтение всем.
func SafeMethodsOpen(r *http.Request) Decision {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return Allow
	default:
		return Abstain
	}
}

// RequireAuthenticated запрещает анонимные запросы.
func RequireAuthenticated(r *http.Request) Decision {
	if _, ok := UserFrom(r.Context()); !ok {
		return Deny
	}
	return Allow
}

// AllowAnonymous разрешает любой запрос.
func AllowAnonymous(*http.Request) Decision {
	return Allow
}

// Permit проверяет правила по порядку. Первое правило, вернувшее не Abstain,
// решает судьбу запроса; если все воздержались, запрос запрещён.
// Анонимному пользователю отказ с 401, аутентифицированному с 403.
func Permit(log *slog.Logger, rules ...Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if decide(r, rules) == Allow {
				next.ServeHTTP(w, r)
				return
			}

			log := log.With(
				slog.String("op", "middlewarectx.Permit"),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
			if _, ok := UserFrom(r.Context()); !ok {
				response.Fail(w, r, log, apperr.Unauthenticated("authentication credentials were not provided"))
				return
			}
			response.Fail(w, r, log, apperr.PermissionDenied("you do not have permission to perform this action"))
		})
	}
}

func decide(r *http.Request, rules []Rule) Decision {
	for _, rule := range rules {
		if d := rule(r); d != Abstain {
			return d
		}
	}
	return Deny
}
