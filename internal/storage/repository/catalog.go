package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/foodgram/internal/models"
)

// ListTags возвращает все теги по алфавиту.
func (s *Storage) ListTags(ctx context.Context) ([]models.Tag, error) {
	const op = "storage.ListTags"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT id, name, color, slug FROM tags ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.Tag{}
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetTag возвращает тег по ID.
func (s *Storage) GetTag(ctx context.Context, id int64) (*models.Tag, error) {
	const op = "storage.GetTag"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	t := &models.Tag{}
	err := s.DB.QueryRowContext(ctx, `SELECT id, name, color, slug FROM tags WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Color, &t.Slug)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err, "tag", id))
	}
	return t, nil
}

// InsertTags добавляет теги в одной транзакции и возвращает число вставленных.
// Теги, совпадающие с существующими по имени, цвету или slug, пропускаются.
func (s *Storage) InsertTags(ctx context.Context, tags []models.Tag) (int, error) {
	const op = "storage.InsertTags"
	inserted := 0
	err := s.withTx(ctx, nil, func(tx *sql.Tx) error {
		for _, t := range tags {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO tags (name, color, slug) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
				t.Name, strings.ToLower(t.Color), t.Slug)
			if err != nil {
				return translate(err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return inserted, nil
}

// SearchIngredients возвращает ингредиенты, имя которых начинается с prefix
// без учёта регистра. Пустой prefix возвращает весь каталог.
func (s *Storage) SearchIngredients(ctx context.Context, prefix string) ([]models.Ingredient, error) {
	const op = "storage.SearchIngredients"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id, name, measurement_unit
			  FROM ingredients
			  WHERE lower(name) LIKE lower($1) || '%' ESCAPE '\'
			  ORDER BY name, id`
	rows, err := s.DB.QueryContext(ctx, query, escapeLike(prefix))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.Ingredient{}
	for rows.Next() {
		var i models.Ingredient
		if err := rows.Scan(&i.ID, &i.Name, &i.MeasurementUnit); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetIngredient возвращает ингредиент по ID.
func (s *Storage) GetIngredient(ctx context.Context, id int64) (*models.Ingredient, error) {
	const op = "storage.GetIngredient"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	i := &models.Ingredient{}
	err := s.DB.QueryRowContext(ctx, `SELECT id, name, measurement_unit FROM ingredients WHERE id = $1`, id).
		Scan(&i.ID, &i.Name, &i.MeasurementUnit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err, "ingredient", id))
	}
	return i, nil
}

// InsertIngredients добавляет ингредиенты в одной транзакции и возвращает число вставленных.
// Точные повторы пары (имя, единица измерения) пропускаются.
func (s *Storage) InsertIngredients(ctx context.Context, ingredients []models.Ingredient) (int, error) {
	const op = "storage.InsertIngredients"
	inserted := 0
	err := s.withTx(ctx, nil, func(tx *sql.Tx) error {
		for _, i := range ingredients {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO ingredients (name, measurement_unit)
				 SELECT $1::varchar, $2::varchar
				 WHERE NOT EXISTS (
				     SELECT 1 FROM ingredients WHERE name = $1 AND measurement_unit = $2
				 )`,
				i.Name, i.MeasurementUnit)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return inserted, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
