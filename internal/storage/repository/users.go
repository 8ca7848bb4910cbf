package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

const userColumns = `id, email, username, first_name, last_name, password_hash, created_at`

func scanUser(row interface{ Scan(...any) error }, u *models.User) error {
	return row.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.PasswordHash, &u.CreatedAt)
}

// CreateUser сохраняет нового пользователя и возвращает его ID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (int64, error) {
	const op = "storage.CreateUser"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	query := `INSERT INTO users (email, username, first_name, last_name, password_hash)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var id int64
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Username, user.FirstName, user.LastName, user.PasswordHash).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, translate(err))
	}
	return id, nil
}

// GetUser возвращает пользователя по ID.
func (s *Storage) GetUser(ctx context.Context, id int64) (*models.User, error) {
	const op = "storage.GetUser"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err := scanUser(row, u); err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err, "user", id))
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по адресу почты.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	if err := scanUser(row, u); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ListUsers возвращает пользователей с пагинацией и общее их количество.
func (s *Storage) ListUsers(ctx context.Context, limit, offset int) ([]models.User, int, error) {
	const op = "storage.ListUsers"
	if err := checkCtx(ctx, op); err != nil {
		return nil, 0, err
	}

	var total int
	if err := s.DB.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	users, err := s.queryUsers(ctx, s.DB,
		`SELECT `+userColumns+` FROM users ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return users, total, nil
}

// ListSubscriptions возвращает авторов, на которых подписан пользователь,
// в порядке оформления подписки.
func (s *Storage) ListSubscriptions(ctx context.Context, userID int64, limit, offset int) ([]models.User, int, error) {
	const op = "storage.ListSubscriptions"
	if err := checkCtx(ctx, op); err != nil {
		return nil, 0, err
	}

	var total int
	if err := s.DB.QueryRowContext(ctx,
		`SELECT count(*) FROM subscriptions WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT u.id, u.email, u.username, u.first_name, u.last_name, u.password_hash, u.created_at
			  FROM subscriptions s
			  JOIN users u ON u.id = s.author_id
			  WHERE s.user_id = $1
			  ORDER BY s.id
			  LIMIT $2 OFFSET $3`
	users, err := s.queryUsers(ctx, s.DB, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return users, total, nil
}

// UsersByIDs возвращает пользователей с указанными ID.
func (s *Storage) UsersByIDs(ctx context.Context, ids []int64) (map[int64]models.User, error) {
	const op = "storage.UsersByIDs"
	users, err := s.usersByIDs(ctx, s.DB, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

func (s *Storage) usersByIDs(ctx context.Context, q querier, ids []int64) (map[int64]models.User, error) {
	result := make(map[int64]models.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	users, err := s.queryUsers(ctx, q, `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}

func (s *Storage) queryUsers(ctx context.Context, q querier, query string, args ...any) ([]models.User, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.User
	for rows.Next() {
		var u models.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

// RecipesCountByAuthors возвращает число рецептов каждого автора.
func (s *Storage) RecipesCountByAuthors(ctx context.Context, authorIDs []int64) (map[int64]int, error) {
	const op = "storage.RecipesCountByAuthors"
	result := make(map[int64]int, len(authorIDs))
	if len(authorIDs) == 0 {
		return result, nil
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT author_id, count(*) FROM recipes WHERE author_id = ANY($1) GROUP BY author_id`, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	for rows.Next() {
		var id int64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RecipesByAuthors возвращает краткие проекции рецептов авторов, новые первыми.
// Отрицательный perAuthor снимает ограничение на число рецептов у одного автора.
func (s *Storage) RecipesByAuthors(ctx context.Context, authorIDs []int64, perAuthor int) (map[int64][]models.RecipeShort, error) {
	const op = "storage.RecipesByAuthors"
	result := make(map[int64][]models.RecipeShort, len(authorIDs))
	if len(authorIDs) == 0 {
		return result, nil
	}

	query := `SELECT id, author_id, name, image, cooking_time
			  FROM (
			      SELECT r.id, r.author_id, r.name, r.image, r.cooking_time,
			             row_number() OVER (PARTITION BY r.author_id ORDER BY r.pub_date DESC, r.id DESC) AS rn
			      FROM recipes r
			      WHERE r.author_id = ANY($1)
			  ) ranked
			  WHERE $2::int < 0 OR rn <= $2::int
			  ORDER BY author_id, rn`
	rows, err := s.DB.QueryContext(ctx, query, authorIDs, perAuthor)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	for rows.Next() {
		var authorID int64
		var r models.RecipeShort
		if err := rows.Scan(&r.ID, &authorID, &r.Name, &r.Image, &r.CookingTime); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result[authorID] = append(result[authorID], r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SetPasswordHash заменяет хэш пароля пользователя.
func (s *Storage) SetPasswordHash(ctx context.Context, id int64, hash string) error {
	const op = "storage.SetPasswordHash"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, apperr.NotFound("user", id))
	}
	return nil
}
