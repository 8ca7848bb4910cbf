package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// JoinTable описывает таблицу-связь с уникальной парой (Subject, Target).
type JoinTable struct {
	Name       string // Имя таблицы
	Subject    string // Колонка субъекта (кто добавляет)
	Target     string // Колонка цели (что добавляют)
	Constraint string // Ограничение уникальности пары
	Targets    string // Таблица, на которую ссылается Target
	Resource   string // Имя ресурса цели для сообщений об ошибках
}

var (
	FavoritesTable = JoinTable{
		Name: "favorites", Subject: "user_id", Target: "recipe_id",
		Constraint: "favorites_user_recipe_key", Targets: "recipes", Resource: "recipe",
	}
	ShoppingCartTable = JoinTable{
		Name: "shopping_cart", Subject: "user_id", Target: "recipe_id",
		Constraint: "shopping_cart_user_recipe_key", Targets: "recipes", Resource: "recipe",
	}
	SubscriptionsTable = JoinTable{
		Name: "subscriptions", Subject: "user_id", Target: "author_id",
		Constraint: "subscriptions_user_author_key", Targets: "users", Resource: "user",
	}
)

// PairStore — операции над одной таблицей-связью.
type PairStore[S, T ~int64] struct {
	s     *Storage
	table JoinTable
}

// NewPairStore создаёт хранилище пар для таблицы table.
func NewPairStore[S, T ~int64](s *Storage, table JoinTable) *PairStore[S, T] {
	return &PairStore[S, T]{s: s, table: table}
}

// TargetExists сообщает, существует ли цель связи.
func (p *PairStore[S, T]) TargetExists(ctx context.Context, target T) error {
	op := "storage." + p.table.Name + ".TargetExists"
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM ` + p.table.Targets + ` WHERE id = $1)`
	if err := p.s.DB.QueryRowContext(ctx, query, int64(target)).Scan(&exists); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return apperr.NotFound(p.table.Resource, int64(target))
	}
	return nil
}

// Exists сообщает, есть ли пара в таблице.
func (p *PairStore[S, T]) Exists(ctx context.Context, pair models.Pair[S, T]) (bool, error) {
	op := "storage." + p.table.Name + ".Exists"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM ` + p.table.Name +
		` WHERE ` + p.table.Subject + ` = $1 AND ` + p.table.Target + ` = $2)`
	if err := p.s.DB.QueryRowContext(ctx, query, int64(pair.Subject), int64(pair.Target)).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// Add вставляет пару и сообщает, была ли она вставлена. false без ошибки
// означает, что пару уже вставил другой запрос: это решает ограничение уникальности.
func (p *PairStore[S, T]) Add(ctx context.Context, pair models.Pair[S, T]) (bool, error) {
	op := "storage." + p.table.Name + ".Add"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}

	query := `INSERT INTO ` + p.table.Name + ` (` + p.table.Subject + `, ` + p.table.Target + `) VALUES ($1, $2)`
	if _, err := p.s.DB.ExecContext(ctx, query, int64(pair.Subject), int64(pair.Target)); err != nil {
		if isUniqueViolation(err, p.table.Constraint) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, translate(err))
	}
	return true, nil
}

// Remove удаляет пару и сообщает, была ли она удалена.
func (p *PairStore[S, T]) Remove(ctx context.Context, pair models.Pair[S, T]) (bool, error) {
	op := "storage." + p.table.Name + ".Remove"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}

	query := `DELETE FROM ` + p.table.Name + ` WHERE ` + p.table.Subject + ` = $1 AND ` + p.table.Target + ` = $2`
	res, err := p.s.DB.ExecContext(ctx, query, int64(pair.Subject), int64(pair.Target))
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n > 0, nil
}

// Targets возвращает подмножество targets, связанное с subject.
func (p *PairStore[S, T]) Targets(ctx context.Context, subject S, targets []T) (map[T]bool, error) {
	op := "storage." + p.table.Name + ".Targets"
	result := make(map[T]bool, len(targets))
	if len(targets) == 0 {
		return result, nil
	}

	ids := make([]int64, len(targets))
	for i, t := range targets {
		ids[i] = int64(t)
	}
	query := `SELECT ` + p.table.Target + ` FROM ` + p.table.Name +
		` WHERE ` + p.table.Subject + ` = $1 AND ` + p.table.Target + ` = ANY($2)`
	rows, err := p.s.DB.QueryContext(ctx, query, int64(subject), ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result[T(id)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
