// Package catalog отдаёт справочники тегов и ингредиентов и загружает их из файлов.
// Список тегов и результаты поиска ингредиентов кэшируются в Redis.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/foodgram/internal/lib/sl"
	"github.com/magabrotheeeer/foodgram/internal/lib/validate"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

const (
	tagsKey          = "tags:all"
	ingredientPrefix = "ingredients:search:"
)

// Repository описывает операции хранилища над справочниками.
type Repository interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
	GetTag(ctx context.Context, id int64) (*models.Tag, error)
	InsertTags(ctx context.Context, tags []models.Tag) (int, error)
	SearchIngredients(ctx context.Context, prefix string) ([]models.Ingredient, error)
	GetIngredient(ctx context.Context, id int64) (*models.Ingredient, error)
	InsertIngredients(ctx context.Context, ingredients []models.Ingredient) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// Service реализует чтение и загрузку справочников.
type Service struct {
	repo     Repository
	cache    Cache
	ttl      time.Duration
	validate *validator.Validate
	log      *slog.Logger
}

// New создаёт сервис справочников.
func New(repo Repository, cache Cache, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		ttl:      ttl,
		validate: validate.New(),
		log:      log,
	}
}

// Tags возвращает все теги.
func (s *Service) Tags(ctx context.Context) ([]models.Tag, error) {
	return readThrough(ctx, s, tagsKey, s.repo.ListTags)
}

// Tag возвращает тег по ID.
func (s *Service) Tag(ctx context.Context, id int64) (*models.Tag, error) {
	return s.repo.GetTag(ctx, id)
}

// Ingredients ищет ингредиенты по началу названия без учёта регистра.
func (s *Service) Ingredients(ctx context.Context, name string) ([]models.Ingredient, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	return readThrough(ctx, s, ingredientPrefix+name, func(ctx context.Context) ([]models.Ingredient, error) {
		return s.repo.SearchIngredients(ctx, name)
	})
}

// Ingredient возвращает ингредиент по ID.
func (s *Service) Ingredient(ctx context.Context, id int64) (*models.Ingredient, error) {
	return s.repo.GetIngredient(ctx, id)
}

// ImportTags проверяет все теги и добавляет новые. Если хотя бы один тег
// некорректен, ничего не записывается. Возвращает число добавленных тегов.
func (s *Service) ImportTags(ctx context.Context, tags []models.Tag) (int, error) {
	for i := range tags {
		tags[i].Color = strings.ToLower(tags[i].Color)
		if err := validate.Struct(s.validate, tags[i]); err != nil {
			return 0, fmt.Errorf("tag #%d (%q): %w", i+1, tags[i].Slug, err)
		}
	}
	n, err := s.repo.InsertTags(ctx, tags)
	if err != nil {
		return 0, err
	}
	if err := s.cache.Invalidate(ctx, tagsKey); err != nil {
		s.log.Warn("failed to invalidate tags cache", sl.Err(err))
	}
	s.log.Info("tags imported", slog.Int("total", len(tags)), slog.Int("inserted", n))
	return n, nil
}

// ImportIngredients проверяет все ингредиенты и добавляет новые.
func (s *Service) ImportIngredients(ctx context.Context, ingredients []models.Ingredient) (int, error) {
	for i := range ingredients {
		ingredients[i].Name = strings.TrimSpace(ingredients[i].Name)
		ingredients[i].MeasurementUnit = strings.TrimSpace(ingredients[i].MeasurementUnit)
		if err := validate.Struct(s.validate, ingredients[i]); err != nil {
			return 0, fmt.Errorf("ingredient #%d (%q): %w", i+1, ingredients[i].Name, err)
		}
	}
	n, err := s.repo.InsertIngredients(ctx, ingredients)
	if err != nil {
		return 0, err
	}
	if err := s.cache.InvalidatePrefix(ctx, ingredientPrefix); err != nil {
		s.log.Warn("failed to invalidate ingredients cache", sl.Err(err))
	}
	s.log.Info("ingredients imported", slog.Int("total", len(ingredients)), slog.Int("inserted", n))
	return n, nil
}

// readThrough читает значение из кэша, а при промахе загружает и кэширует его.
// Ошибки кэша только логируются.
func readThrough[T any](ctx context.Context, s *Service, key string, load func(context.Context) (T, error)) (T, error) {
	var cached T
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.log.Warn("failed to write to cache", slog.String("key", key), sl.Err(err))
	}
	return value, nil
}

