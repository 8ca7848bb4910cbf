package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
)

// constraintErrors сопоставляет имена ограничений схемы с доменными ошибками.
var constraintErrors = map[string]func() error{
	"users_email_key": func() error {
		return apperr.Validation("email", "user with this email already exists")
	},
	"users_username_key": func() error {
		return apperr.Validation("username", "user with this username already exists")
	},
	"tags_name_key":    func() error { return apperr.Validation("name", "tag with this name already exists") },
	"tags_color_key":   func() error { return apperr.Validation("color", "tag with this color already exists") },
	"tags_slug_key":    func() error { return apperr.Validation("slug", "tag with this slug already exists") },
	"tags_color_check": func() error { return apperr.Validation("color", "color must be a HEX string like #49b64e") },
	"tags_slug_check":  func() error { return apperr.Validation("slug", "slug contains invalid characters") },
	"recipes_name_key": func() error {
		return apperr.Validation("name", "recipe with this name already exists")
	},
	"recipes_cooking_time_check": func() error {
		return apperr.Validation("cooking_time", "cooking time must be between 1 and 1440 minutes")
	},
	"recipe_ingredients_recipe_ingredient_key": func() error {
		return apperr.Validation("ingredients", "duplicate ingredients are not allowed")
	},
	"recipe_ingredients_amount_check": func() error {
		return apperr.Validation("ingredients", "amount must be between 1 and 32000")
	},
	"recipe_ingredients_ingredient_id_fkey": func() error {
		return apperr.Validation("ingredients", "ingredient does not exist")
	},
	"recipe_tags_pkey":        func() error { return apperr.Validation("tags", "duplicate tags are not allowed") },
	"recipe_tags_tag_id_fkey": func() error { return apperr.Validation("tags", "tag does not exist") },
	"subscriptions_no_self_check": func() error {
		return apperr.SelfSubscription("cannot subscribe to yourself")
	},
}

// translate переводит нарушения ограничений PostgreSQL в доменные ошибки.
// Ошибки, не связанные с известными ограничениями, возвращаются без изменений.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation, pgerrcode.ForeignKeyViolation, pgerrcode.CheckViolation:
		if mk, ok := constraintErrors[pgErr.ConstraintName]; ok {
			return mk()
		}
	}
	return err
}

// isUniqueViolation сообщает, нарушено ли ограничение уникальности с указанным именем.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		pgErr.ConstraintName == constraint
}

func notFound(err error, resource string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(resource, id)
	}
	return err
}
