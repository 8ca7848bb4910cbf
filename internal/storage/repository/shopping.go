package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/foodgram/internal/models"
)

// CartLines возвращает все строки ингредиентов всех рецептов из корзины пользователя.
// Строки не сгруппированы: один ингредиент может встречаться несколько раз.
func (s *Storage) CartLines(ctx context.Context, userID int64) ([]models.CartLine, error) {
	const op = "storage.CartLines"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT i.name, i.measurement_unit, ri.amount
			  FROM shopping_cart sc
			  JOIN recipe_ingredients ri ON ri.recipe_id = sc.recipe_id
			  JOIN ingredients i ON i.id = ri.ingredient_id
			  WHERE sc.user_id = $1`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.CartLine
	for rows.Next() {
		var l models.CartLine
		if err := rows.Scan(&l.Name, &l.MeasurementUnit, &l.Amount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
