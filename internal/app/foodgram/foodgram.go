// Package foodgram собирает HTTP-приложение сервиса рецептов: хранилище,
// кэш, публикацию событий, сервисы и маршруты.
package foodgram

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/foodgram/internal/cache"
	"github.com/magabrotheeeer/foodgram/internal/config"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/health"
	"github.com/magabrotheeeer/foodgram/internal/lib/jwt"
	"github.com/magabrotheeeer/foodgram/internal/lib/sl"
	"github.com/magabrotheeeer/foodgram/internal/migrations"
	"github.com/magabrotheeeer/foodgram/internal/models"
	"github.com/magabrotheeeer/foodgram/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/foodgram/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/foodgram/internal/services/catalog"
	recipeservice "github.com/magabrotheeeer/foodgram/internal/services/recipe"
	relationservice "github.com/magabrotheeeer/foodgram/internal/services/relation"
	shoppingservice "github.com/magabrotheeeer/foodgram/internal/services/shopping"
	userservice "github.com/magabrotheeeer/foodgram/internal/services/user"
	"github.com/magabrotheeeer/foodgram/internal/storage/repository"
)

// App — HTTP-сервер со всеми зависимостями.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	amqp   *amqp.Connection
	events recipeservice.Publisher
}

// New подключается к PostgreSQL, Redis и, если задан URL, к RabbitMQ,
// применяет миграции и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app := &App{
		logger: logger,
		db:     db,
		cache:  cacheRedis,
		events: rabbitmq.NoopPublisher{},
	}
	if cfg.RabbitMQ.URL != "" {
		if err := app.connectEvents(cfg.RabbitMQ); err != nil {
			app.close()
			return nil, err
		}
	} else {
		logger.Warn("rabbitmq url is empty, recipe events are disabled")
	}

	favorites := repository.NewPairStore[models.UserID, models.RecipeID](db, repository.FavoritesTable)
	cart := repository.NewPairStore[models.UserID, models.RecipeID](db, repository.ShoppingCartTable)
	follows := repository.NewPairStore[models.UserID, models.UserID](db, repository.SubscriptionsTable)

	recipes := recipeservice.New(recipeservice.Deps{
		Repo:          db,
		Favorites:     favorites,
		ShoppingCart:  cart,
		Subscriptions: follows,
		Cache:         cacheRedis,
		Events:        app.events,
		CacheTTL:      cfg.CatalogTTL,
	}, logger)
	users := userservice.New(db, follows)

	svc := Services{
		Auth:    authservice.New(db, jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL), cacheRedis, logger),
		Users:   users,
		Recipes: recipes,
		Relations: relationservice.New(relationservice.Deps{
			Favorites:     favorites,
			ShoppingCart:  cart,
			Subscriptions: follows,
			Recipes:       recipes,
			Authors:       users,
		}, logger),
		Shopping: shoppingservice.New(db, logger),
		Catalog:  catalogservice.New(db, cacheRedis, cfg.CatalogTTL, logger),
		Health:   map[string]health.Pinger{"postgres": db, "redis": cacheRedis},
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, svc, reg)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

func (a *App) connectEvents(cfg config.RabbitMQ) error {
	conn, err := rabbitmq.Connect(cfg.URL, 5, 2*time.Second)
	if err != nil {
		return err
	}
	a.amqp = conn
	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, rabbitmq.RecipeQueues())
	if err != nil {
		return err
	}
	a.events = rabbitmq.NewPublisher(ch, cfg.Exchange)
	a.logger.Info("recipe events enabled", slog.String("exchange", cfg.Exchange))
	return nil
}

// Run запускает сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if p, ok := a.events.(*rabbitmq.Publisher); ok {
		if err := p.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq channel", sl.Err(err))
		}
	}
	if a.amqp != nil {
		if err := a.amqp.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Warn("failed to close redis", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", sl.Err(err))
	}
}
