package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/magabrotheeeer/foodgram/internal/cache"
	"github.com/magabrotheeeer/foodgram/internal/config"
	"github.com/magabrotheeeer/foodgram/internal/migrations"
	"github.com/magabrotheeeer/foodgram/internal/models"
	"github.com/magabrotheeeer/foodgram/internal/rabbitmq"
	"github.com/magabrotheeeer/foodgram/internal/services/catalog"
	"github.com/magabrotheeeer/foodgram/internal/storage/repository"
)

// MigrateUp применяет все миграции.
func (r *Runner) MigrateUp(ctx context.Context, cmd *cli.Command) error {
	return r.withStorage(ctx, cmd, func(cfg *config.Config, db *repository.Storage) error {
		if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
			return err
		}
		r.logger.Info("migrations applied", "path", cfg.MigrationsPath)
		return nil
	})
}

// MigrateDown откатывает --steps миграций.
func (r *Runner) MigrateDown(ctx context.Context, cmd *cli.Command) error {
	steps := int(cmd.Int("steps"))
	return r.withStorage(ctx, cmd, func(cfg *config.Config, db *repository.Storage) error {
		if err := migrations.Down(db.DB, cfg.MigrationsPath, steps); err != nil {
			return err
		}
		r.logger.Info("migrations rolled back", "steps", steps)
		return nil
	})
}

// MigrateVersion печатает текущую версию схемы.
func (r *Runner) MigrateVersion(ctx context.Context, cmd *cli.Command) error {
	return r.withStorage(ctx, cmd, func(cfg *config.Config, db *repository.Storage) error {
		v, dirty, err := migrations.Version(db.DB, cfg.MigrationsPath)
		if err != nil {
			return err
		}
		r.printf("version: %d dirty: %t", v, dirty)
		return nil
	})
}

// LoadTags импортирует теги из файла --file.
func (r *Runner) LoadTags(ctx context.Context, cmd *cli.Command) error {
	tags, err := readJSON[models.Tag](cmd.String("file"))
	if err != nil {
		return err
	}
	return r.withCatalog(ctx, cmd, func(svc *catalog.Service) error {
		n, err := svc.ImportTags(ctx, tags)
		if err != nil {
			return err
		}
		r.printf("tags: %d read, %d added", len(tags), n)
		return nil
	})
}

// LoadIngredients импортирует ингредиенты из файла --file.
func (r *Runner) LoadIngredients(ctx context.Context, cmd *cli.Command) error {
	ingredients, err := readJSON[models.Ingredient](cmd.String("file"))
	if err != nil {
		return err
	}
	return r.withCatalog(ctx, cmd, func(svc *catalog.Service) error {
		n, err := svc.ImportIngredients(ctx, ingredients)
		if err != nil {
			return err
		}
		r.printf("ingredients: %d read, %d added", len(ingredients), n)
		return nil
	})
}

// EventsTail печатает события из очереди --queue до отмены ctx.
func (r *Runner) EventsTail(ctx context.Context, cmd *cli.Command) error {
	cfg, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.RabbitMQ.URL == "" {
		return fmt.Errorf("rabbitmq url is not configured")
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, 3, time.Second)
	if err != nil {
		return err
	}
	defer conn.Close()
	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, rabbitmq.RecipeQueues())
	if err != nil {
		return err
	}
	defer ch.Close()

	queue := cmd.String("queue")
	err = rabbitmq.ConsumeRecipeEvents(ctx, r.slogger(), ch, queue, func(e rabbitmq.RecipeEvent) error {
		r.printf("%s %s recipe=%d author=%d %q", e.OccurredAt.Format(time.RFC3339), e.Type, e.RecipeID, e.AuthorID, e.Name)
		return nil
	})
	if err != nil {
		return err
	}
	r.logger.Info("waiting for events", "queue", queue)
	<-ctx.Done()
	return nil
}

func (r *Runner) withStorage(ctx context.Context, cmd *cli.Command, fn func(*config.Config, *repository.Storage) error) error {
	cfg, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(cfg, db)
}

func (r *Runner) withCatalog(ctx context.Context, cmd *cli.Command, fn func(*catalog.Service) error) error {
	return r.withStorage(ctx, cmd, func(cfg *config.Config, db *repository.Storage) error {
		redis, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return err
		}
		defer redis.Close()
		return fn(catalog.New(db, redis, cfg.CatalogTTL, r.slogger()))
	})
}
