// Package shopping собирает сводный список покупок по рецептам из корзины.
package shopping

import (
	"bytes"
	"cmp"
	"context"
	"log/slog"
	"slices"

	"github.com/magabrotheeeer/foodgram/internal/lib/xlsx"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Repository возвращает строки ингредиентов всех рецептов в корзине пользователя.
type Repository interface {
	CartLines(ctx context.Context, userID int64) ([]models.CartLine, error)
}

// Service формирует список покупок.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создаёт сервис списка покупок.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Consolidate группирует строки по паре (название, единица измерения) и суммирует
// количество. Результат отсортирован по названию, затем по единице измерения.
// Одно название с разными единицами даёт разные строки.
func Consolidate(lines []models.CartLine) []models.ShoppingItem {
	type key struct{ name, unit string }
	totals := make(map[key]int, len(lines))
	for _, l := range lines {
		totals[key{l.Name, l.MeasurementUnit}] += l.Amount
	}

	items := make([]models.ShoppingItem, 0, len(totals))
	for k, amount := range totals {
		items = append(items, models.ShoppingItem{Name: k.name, MeasurementUnit: k.unit, Amount: amount})
	}
	slices.SortFunc(items, func(a, b models.ShoppingItem) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.MeasurementUnit, b.MeasurementUnit)
	})
	return items
}

// List возвращает сводный список покупок пользователя.
func (s *Service) List(ctx context.Context, userID int64) ([]models.ShoppingItem, error) {
	lines, err := s.repo.CartLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Consolidate(lines), nil
}

// Export возвращает список покупок в виде книги xlsx.
func (s *Service) Export(ctx context.Context, userID int64) ([]byte, error) {
	items, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := xlsx.WriteShoppingList(&buf, items); err != nil {
		return nil, err
	}
	s.log.Debug("shopping list exported", slog.Int64("user_id", userID), slog.Int("items", len(items)))
	return buf.Bytes(), nil
}

// FileName возвращает имя файла выгрузки для пользователя.
func FileName(username string) string {
	return username + "_ingredients.xlsx"
}
