package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/foodgram/internal/migrations"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции проекта.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("foodgram"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(ctx, connStr)
	require.NoError(t, err, "failed to create storage")

	root, err := filepath.Abs("../../..")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, filepath.Join(root, "migrations")))

	cleanup := func() {
		_ = storage.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return storage, cleanup
}

// TestDataFactory создаёт тестовые данные напрямую через SQL.
type TestDataFactory struct {
	storage *Storage
	seq     int
}

// NewTestDataFactory создаёт новую фабрику тестовых данных.
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

func (f *TestDataFactory) next() int {
	f.seq++
	return f.seq
}

// CreateUser создаёт пользователя с уникальными почтой и именем.
func (f *TestDataFactory) CreateUser(t *testing.T) int64 {
	n := f.next()
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO users (email, username, first_name, last_name, password_hash)
		VALUES ($1, $2, 'Test', 'User', 'hash') RETURNING id`,
		fmt.Sprintf("user%d@example.com", n), fmt.Sprintf("user%d", n)).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateTag создаёт тег с указанным slug.
func (f *TestDataFactory) CreateTag(t *testing.T, slug string) int64 {
	n := f.next()
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO tags (name, color, slug) VALUES ($1, $2, $3) RETURNING id`,
		"Tag "+slug, fmt.Sprintf("#%06x", n), slug).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateIngredient создаёт ингредиент.
func (f *TestDataFactory) CreateIngredient(t *testing.T, name, unit string) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO ingredients (name, measurement_unit) VALUES ($1, $2) RETURNING id`,
		name, unit).Scan(&id)
	require.NoError(t, err)
	return id
}

// RecipeInput возвращает корректные входные данные рецепта.
func (f *TestDataFactory) RecipeInput(tags []int64, lines ...models.IngredientAmount) models.RecipeInput {
	return models.RecipeInput{
		Name:        fmt.Sprintf("Recipe %d", f.next()),
		Text:        "Mix and cook",
		Image:       "recipes/images/test.png",
		CookingTime: 15,
		Tags:        tags,
		Ingredients: lines,
	}
}

// CreateRecipe создаёт рецепт через CreateRecipe.
func (f *TestDataFactory) CreateRecipe(t *testing.T, authorID int64, in models.RecipeInput) int64 {
	id, err := f.storage.CreateRecipe(context.Background(), authorID, in)
	require.NoError(t, err)
	return id
}

// TestVerification содержит проверки состояния базы.
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создаёт новый объект для проверки результатов.
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// Count возвращает число строк таблицы, подходящих под условие.
func (v *TestVerification) Count(t *testing.T, table, where string, args ...any) int {
	var n int
	query := "SELECT count(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	require.NoError(t, v.storage.DB.QueryRow(query, args...).Scan(&n))
	return n
}

// mustAdd вставляет пару и проверяет, что она была вставлена.
func mustAdd[S, T ~int64](t *testing.T, store *PairStore[S, T], pair models.Pair[S, T]) {
	t.Helper()
	added, err := store.Add(context.Background(), pair)
	require.NoError(t, err)
	require.True(t, added)
}
