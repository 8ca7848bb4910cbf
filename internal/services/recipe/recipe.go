// Package recipe содержит бизнес-логику рецептов: проверку входных данных,
// транзакционную запись, чтение в полной и краткой проекции и списки с фильтрами.
package recipe

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
	"github.com/magabrotheeeer/foodgram/internal/lib/sl"
	"github.com/magabrotheeeer/foodgram/internal/lib/validate"
	"github.com/magabrotheeeer/foodgram/internal/models"
	"github.com/magabrotheeeer/foodgram/internal/rabbitmq"
)

// Repository описывает операции хранилища над рецептами.
type Repository interface {
	CreateRecipe(ctx context.Context, authorID int64, in models.RecipeInput) (int64, error)
	UpdateRecipe(ctx context.Context, id, editorID int64, in models.RecipeInput) error
	DeleteRecipe(ctx context.Context, id, editorID int64) error
	RecipeAuthor(ctx context.Context, id int64) (int64, error)
	ReadRecipe(ctx context.Context, id int64) (*models.RecipeBundle, error)
	ListRecipes(ctx context.Context, f models.RecipeFilter) ([]models.RecipeBundle, int, error)
}

// RecipeMarks отвечает, какие из рецептов отмечены пользователем (избранное, корзина).
type RecipeMarks interface {
	Targets(ctx context.Context, subject models.UserID, targets []models.RecipeID) (map[models.RecipeID]bool, error)
}

// AuthorMarks отвечает, на каких авторов подписан пользователь.
type AuthorMarks interface {
	Targets(ctx context.Context, subject models.UserID, targets []models.UserID) (map[models.UserID]bool, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// Publisher публикует события об изменении рецептов.
type Publisher interface {
	PublishRecipeEvent(ctx context.Context, event rabbitmq.RecipeEvent) error
}

// Deps собирает зависимости сервиса.
type Deps struct {
	Repo          Repository
	Favorites     RecipeMarks
	ShoppingCart  RecipeMarks
	Subscriptions AuthorMarks
	Cache         Cache
	Events        Publisher
	CacheTTL      time.Duration
}

// Service реализует бизнес-логику рецептов.
type Service struct {
	repo          Repository
	favorites     RecipeMarks
	cart          RecipeMarks
	subscriptions AuthorMarks
	cache         Cache
	events        Publisher
	ttl           time.Duration
	validate      *validator.Validate
	log           *slog.Logger
}

// New создаёт сервис рецептов. Если Events не задан, события не публикуются.
func New(deps Deps, log *slog.Logger) *Service {
	events := deps.Events
	if events == nil {
		events = rabbitmq.NoopPublisher{}
	}
	return &Service{
		repo:          deps.Repo,
		favorites:     deps.Favorites,
		cart:          deps.ShoppingCart,
		subscriptions: deps.Subscriptions,
		cache:         deps.Cache,
		events:        events,
		ttl:           deps.CacheTTL,
		validate:      validate.New(),
		log:           log,
	}
}

// Create проверяет данные и сохраняет рецепт автора. Возвращает полную проекцию для автора.
func (s *Service) Create(ctx context.Context, authorID int64, in models.RecipeInput) (*models.RecipeFull, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}

	id, err := s.repo.CreateRecipe(ctx, authorID, in)
	if err != nil {
		return nil, err
	}
	s.log.Info("recipe created", slog.Int64("id", id), slog.Int64("author_id", authorID))
	s.publish(ctx, rabbitmq.RoutingRecipePublished, id, authorID, in.Name)

	return s.Get(ctx, id, &authorID)
}

// Update полностью заменяет рецепт, включая ингредиенты и теги. Доступно только автору.
func (s *Service) Update(ctx context.Context, id, editorID int64, in models.RecipeInput) (*models.RecipeFull, error) {
	if err := s.checkOwner(ctx, id, editorID); err != nil {
		return nil, err
	}
	if err := s.check(in); err != nil {
		return nil, err
	}

	// Кэш сбрасывается и до, и после записи.
	s.forget(ctx, id)
	if err := s.repo.UpdateRecipe(ctx, id, editorID, in); err != nil {
		return nil, err
	}
	s.forget(ctx, id)
	s.log.Info("recipe updated", slog.Int64("id", id))
	s.publish(ctx, rabbitmq.RoutingRecipeUpdated, id, editorID, in.Name)

	return s.Get(ctx, id, &editorID)
}

// Delete удаляет рецепт. Доступно только автору.
func (s *Service) Delete(ctx context.Context, id, editorID int64) error {
	if err := s.checkOwner(ctx, id, editorID); err != nil {
		return err
	}
	s.forget(ctx, id)
	if err := s.repo.DeleteRecipe(ctx, id, editorID); err != nil {
		return err
	}
	s.forget(ctx, id)
	s.log.Info("recipe deleted", slog.Int64("id", id))
	s.publish(ctx, rabbitmq.RoutingRecipeDeleted, id, editorID, "")
	return nil
}

// Get возвращает полную проекцию рецепта. viewer == nil означает анонимный запрос.
func (s *Service) Get(ctx context.Context, id int64, viewer *int64) (*models.RecipeFull, error) {
	bundle, err := s.bundle(ctx, id)
	if err != nil {
		return nil, err
	}
	m, err := s.marks(ctx, viewer, []models.RecipeBundle{*bundle})
	if err != nil {
		return nil, err
	}
	full := projectFull(*bundle, m)
	return &full, nil
}

// Short возвращает краткую проекцию рецепта.
func (s *Service) Short(ctx context.Context, id int64) (*models.RecipeShort, error) {
	bundle, err := s.bundle(ctx, id)
	if err != nil {
		return nil, err
	}
	short := projectShort(bundle.Recipe)
	return &short, nil
}

// Read возвращает рецепт в выбранной проекции.
func (s *Service) Read(ctx context.Context, id int64, viewer *int64, shape models.Shape) (any, error) {
	switch shape {
	case models.ShapeShort:
		return s.Short(ctx, id)
	case models.ShapeFull:
		return s.Get(ctx, id, viewer)
	default:
		return nil, fmt.Errorf("recipe.Read: unknown shape %s", shape)
	}
}

// List возвращает страницу рецептов по фильтрам запроса. Фильтры is_favorited
// и is_in_shopping_cart действуют только для аутентифицированного пользователя.
func (s *Service) List(ctx context.Context, q models.RecipeQuery, viewer *int64) (models.PageOf[models.RecipeFull], error) {
	filter := models.RecipeFilter{
		AuthorID: q.AuthorID,
		TagSlugs: q.TagSlugs,
		Limit:    q.Page.Size,
		Offset:   q.Page.Offset(),
	}
	if viewer != nil {
		if q.IsFavorited {
			filter.FavoritedBy = viewer
		}
		if q.IsInShoppingCart {
			filter.InShoppingCartOf = viewer
		}
	}

	bundles, total, err := s.repo.ListRecipes(ctx, filter)
	if err != nil {
		return models.PageOf[models.RecipeFull]{}, err
	}
	m, err := s.marks(ctx, viewer, bundles)
	if err != nil {
		return models.PageOf[models.RecipeFull]{}, err
	}

	results := make([]models.RecipeFull, 0, len(bundles))
	for _, b := range bundles {
		results = append(results, projectFull(b, m))
	}
	return models.PageOf[models.RecipeFull]{Count: total, Results: results}, nil
}

func (s *Service) checkOwner(ctx context.Context, id, editorID int64) error {
	authorID, err := s.repo.RecipeAuthor(ctx, id)
	if err != nil {
		return err
	}
	if authorID != editorID {
		return apperr.PermissionDenied("only the author can change this recipe")
	}
	return nil
}

// check выполняет все проверки входных данных до любой записи.
func (s *Service) check(in models.RecipeInput) error {
	if err := validate.Struct(s.validate, in); err != nil {
		return err
	}
	if dup, ok := firstDuplicate(in.Tags); ok {
		return apperr.Validation("tags", "duplicate tag: "+strconv.FormatInt(dup, 10))
	}
	ids := make([]int64, 0, len(in.Ingredients))
	for _, i := range in.Ingredients {
		ids = append(ids, i.ID)
	}
	if dup, ok := firstDuplicate(ids); ok {
		return apperr.Validation("ingredients", "duplicate ingredient: "+strconv.FormatInt(dup, 10))
	}
	return checkImage(in.Image)
}

func firstDuplicate(ids []int64) (int64, bool) {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return id, true
		}
		seen[id] = struct{}{}
	}
	return 0, false
}

var dataURIRe = regexp.MustCompile(`^data:image/([a-zA-Z0-9.+-]+);base64,(.+)$`)

// checkImage принимает изображение в виде data URI с base64-содержимым.
func checkImage(image string) error {
	m := dataURIRe.FindStringSubmatch(image)
	if m == nil {
		return apperr.Validation("image", "image must be a base64 data URI like data:image/png;base64,...")
	}
	if _, err := base64.StdEncoding.DecodeString(m[2]); err != nil {
		return apperr.Validation("image", "image payload is not valid base64")
	}
	return nil
}

func cacheKey(id int64) string {
	return "recipe:" + strconv.FormatInt(id, 10)
}

// bundle читает рецепт через кэш. Ошибки кэша только логируются.
func (s *Service) bundle(ctx context.Context, id int64) (*models.RecipeBundle, error) {
	key := cacheKey(id)
	var cached models.RecipeBundle
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("failed to read recipe from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	bundle, err := s.repo.ReadRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, bundle, s.ttl); err != nil {
		s.log.Warn("failed to cache recipe", slog.String("key", key), sl.Err(err))
	}
	return bundle, nil
}

func (s *Service) forget(ctx context.Context, id int64) {
	if err := s.cache.Invalidate(ctx, cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate recipe cache", slog.Int64("id", id), sl.Err(err))
	}
}

func (s *Service) publish(ctx context.Context, eventType string, id, authorID int64, name string) {
	event := rabbitmq.NewRecipeEvent(eventType, id, authorID, name)
	if err := s.events.PublishRecipeEvent(ctx, event); err != nil {
		s.log.Warn("failed to publish recipe event",
			slog.String("type", eventType), slog.Int64("id", id), sl.Err(err))
	}
}
