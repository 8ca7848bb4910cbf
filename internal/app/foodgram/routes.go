package foodgram

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	// Регистрация swagger-документации для /docs.
	_ "github.com/magabrotheeeer/foodgram/docs"
	"github.com/magabrotheeeer/foodgram/internal/config"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/auth/password"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/catalog/ingredients"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/catalog/tags"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/health"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/recipe/create"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/recipe/download"
	recipelist "github.com/magabrotheeeer/foodgram/internal/http/handlers/recipe/list"
	reciperead "github.com/magabrotheeeer/foodgram/internal/http/handlers/recipe/read"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/recipe/remove"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/recipe/update"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/relation/mark"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/relation/subscribe"
	userlist "github.com/magabrotheeeer/foodgram/internal/http/handlers/user/list"
	userread "github.com/magabrotheeeer/foodgram/internal/http/handlers/user/read"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/user/subscriptions"
	"github.com/magabrotheeeer/foodgram/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/foodgram/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/foodgram/internal/services/catalog"
	recipeservice "github.com/magabrotheeeer/foodgram/internal/services/recipe"
	relationservice "github.com/magabrotheeeer/foodgram/internal/services/relation"
	shoppingservice "github.com/magabrotheeeer/foodgram/internal/services/shopping"
	userservice "github.com/magabrotheeeer/foodgram/internal/services/user"
)

// Services — сервисы, которые обслуживают маршруты API.
type Services struct {
	Auth      *authservice.Service
	Users     *userservice.Service
	Recipes   *recipeservice.Service
	Relations *relationservice.Service
	Shopping  *shoppingservice.Service
	Catalog   *catalogservice.Service
	Health    map[string]health.Pinger
}

// RegisterRoutes регистрирует все маршруты приложения. Метрики HTTP пишутся в reg
// и отдаются на /metrics.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, svc Services, reg *prometheus.Registry) {
	metrics := middlewarectx.NewMetrics(reg)

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.StripSlashes,
		metrics.Handler,
	)

	open := middlewarectx.Permit(logger, middlewarectx.AllowAnonymous)
	authenticated := middlewarectx.Permit(logger, middlewarectx.RequireAuthenticated)
	readOnly := middlewarectx.Permit(logger, middlewarectx.SafeMethodsOpen, middlewarectx.RequireAuthenticated)

	r.Route("/api", func(r chi.Router) {
		r.Use(middlewarectx.Authenticate(svc.Auth, logger))
		r.Use(middlewarectx.RateLimit(rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst), logger))

		r.Route("/auth/token", func(r chi.Router) {
			r.With(open).Post("/login", login.New(logger, svc.Auth).ServeHTTP)
			r.With(authenticated).Post("/logout", logout.New(logger, svc.Auth).ServeHTTP)
		})

		r.Route("/users", func(r chi.Router) {
			profiles := userread.New(logger, svc.Users)
			follow := subscribe.New(logger, svc.Relations)

			r.Group(func(r chi.Router) {
				r.Use(open)
				r.Get("/", userlist.New(logger, svc.Users, cfg.Pagination).ServeHTTP)
				r.Post("/", register.New(logger, svc.Auth).ServeHTTP)
				r.Get("/{id}", profiles.ServeHTTP)
			})

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.Get("/me", profiles.Me)
				r.Post("/set_password", password.New(logger, svc.Auth).ServeHTTP)
				r.Get("/subscriptions", subscriptions.New(logger, svc.Users, cfg.Pagination).ServeHTTP)
				r.Post("/{id}/subscribe", follow.Subscribe)
				r.Delete("/{id}/subscribe", follow.Unsubscribe)
			})
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Use(readOnly)
			favorites := mark.New(logger, "favorite", svc.Relations.AddFavorite, svc.Relations.RemoveFavorite)
			cart := mark.New(logger, "shopping_cart", svc.Relations.AddToCart, svc.Relations.RemoveFromCart)

			r.Get("/", recipelist.New(logger, svc.Recipes, cfg.Pagination).ServeHTTP)
			r.Post("/", create.New(logger, svc.Recipes).ServeHTTP)
			r.With(authenticated).Get("/download_shopping_cart", download.New(logger, svc.Shopping).ServeHTTP)
			r.Get("/{id}", reciperead.New(logger, svc.Recipes).ServeHTTP)
			r.Patch("/{id}", update.New(logger, svc.Recipes).ServeHTTP)
			r.Delete("/{id}", remove.New(logger, svc.Recipes).ServeHTTP)
			r.Post("/{id}/favorite", favorites.Add)
			r.Delete("/{id}/favorite", favorites.Remove)
			r.Post("/{id}/shopping_cart", cart.Add)
			r.Delete("/{id}/shopping_cart", cart.Remove)
		})

		r.Group(func(r chi.Router) {
			r.Use(open)
			catalogTags := tags.New(logger, svc.Catalog)
			r.Get("/tags", catalogTags.List)
			r.Get("/tags/{id}", catalogTags.Read)

			catalogIngredients := ingredients.New(logger, svc.Catalog)
			r.Get("/ingredients", catalogIngredients.List)
			r.Get("/ingredients/{id}", catalogIngredients.Read)
		})
	})

	r.Get("/health", health.New(logger, 2*time.Second, svc.Health).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
