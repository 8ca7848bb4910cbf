package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/magabrotheeeer/foodgram/internal/lib/apperr"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

const recipeColumns = `r.id, r.author_id, r.name, r.image, r.text, r.cooking_time, r.pub_date`

func scanRecipe(row interface{ Scan(...any) error }, r *models.Recipe) error {
	return row.Scan(&r.ID, &r.AuthorID, &r.Name, &r.Image, &r.Text, &r.CookingTime, &r.PubDate)
}

// CreateRecipe в одной транзакции сохраняет рецепт, строки ингредиентов и теги.
// Возвращает ID нового рецепта.
func (s *Storage) CreateRecipe(ctx context.Context, authorID int64, in models.RecipeInput) (int64, error) {
	const op = "storage.CreateRecipe"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	var id int64
	err := s.withTx(ctx, nil, func(tx *sql.Tx) error {
		if err := checkReferences(ctx, tx, in); err != nil {
			return err
		}
		query := `INSERT INTO recipes (author_id, name, image, text, cooking_time)
				  VALUES ($1, $2, $3, $4, $5)
				  RETURNING id`
		if err := tx.QueryRowContext(ctx, query,
			authorID, in.Name, in.Image, in.Text, in.CookingTime).Scan(&id); err != nil {
			return translate(err)
		}
		return insertRecipeSets(ctx, tx, id, in)
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// UpdateRecipe в одной транзакции обновляет поля рецепта и целиком заменяет
// его строки ингредиентов и набор тегов. Строка рецепта блокируется до коммита,
// поэтому параллельные правки одного рецепта выполняются по очереди.
func (s *Storage) UpdateRecipe(ctx context.Context, id, editorID int64, in models.RecipeInput) error {
	const op = "storage.UpdateRecipe"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	err := s.withTx(ctx, nil, func(tx *sql.Tx) error {
		if err := lockOwnRecipe(ctx, tx, id, editorID); err != nil {
			return err
		}
		if err := checkReferences(ctx, tx, in); err != nil {
			return err
		}
		query := `UPDATE recipes
				  SET name = $1, image = $2, text = $3, cooking_time = $4
				  WHERE id = $5`
		if _, err := tx.ExecContext(ctx, query, in.Name, in.Image, in.Text, in.CookingTime, id); err != nil {
			return translate(err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, id); err != nil {
			return err
		}
		return insertRecipeSets(ctx, tx, id, in)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteRecipe удаляет рецепт владельца. Строки ингредиентов, теги,
// избранное и корзина удаляются каскадно.
func (s *Storage) DeleteRecipe(ctx context.Context, id, editorID int64) error {
	const op = "storage.DeleteRecipe"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	err := s.withTx(ctx, nil, func(tx *sql.Tx) error {
		if err := lockOwnRecipe(ctx, tx, id, editorID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1`, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RecipeAuthor возвращает ID автора рецепта.
func (s *Storage) RecipeAuthor(ctx context.Context, id int64) (int64, error) {
	const op = "storage.RecipeAuthor"
	var authorID int64
	err := s.DB.QueryRowContext(ctx, `SELECT author_id FROM recipes WHERE id = $1`, id).Scan(&authorID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, notFound(err, "recipe", id))
	}
	return authorID, nil
}

// ReadRecipe возвращает рецепт с автором, ингредиентами и тегами из одного снимка.
func (s *Storage) ReadRecipe(ctx context.Context, id int64) (*models.RecipeBundle, error) {
	const op = "storage.ReadRecipe"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var bundle *models.RecipeBundle
	err := s.withTx(ctx, readSnapshot, func(tx *sql.Tx) error {
		var r models.Recipe
		row := tx.QueryRowContext(ctx, `SELECT `+recipeColumns+` FROM recipes r WHERE r.id = $1`, id)
		if err := scanRecipe(row, &r); err != nil {
			return notFound(err, "recipe", id)
		}
		bundles, err := s.bundle(ctx, tx, []models.Recipe{r})
		if err != nil {
			return err
		}
		bundle = &bundles[0]
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return bundle, nil
}

// ListRecipes возвращает страницу рецептов, подходящих под фильтр, новые первыми,
// и общее количество подходящих рецептов.
func (s *Storage) ListRecipes(ctx context.Context, f models.RecipeFilter) ([]models.RecipeBundle, int, error) {
	const op = "storage.ListRecipes"
	if err := checkCtx(ctx, op); err != nil {
		return nil, 0, err
	}

	where, args := recipeWhere(f)
	var (
		result []models.RecipeBundle
		total  int
	)
	err := s.withTx(ctx, readSnapshot, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM recipes r`+where, args...).Scan(&total); err != nil {
			return err
		}

		n := len(args)
		query := `SELECT ` + recipeColumns + ` FROM recipes r` + where +
			` ORDER BY r.pub_date DESC, r.id DESC LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
		rows, err := tx.QueryContext(ctx, query, append(args, f.Limit, f.Offset)...)
		if err != nil {
			return err
		}
		var recipes []models.Recipe
		for rows.Next() {
			var r models.Recipe
			if err := scanRecipe(rows, &r); err != nil {
				_ = rows.Close()
				return err
			}
			recipes = append(recipes, r)
		}
		if err := rows.Close(); err != nil {
			return err
		}
		if err := rows.Err(); err != nil {
			return err
		}

		result, err = s.bundle(ctx, tx, recipes)
		return err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// recipeWhere собирает условие WHERE для фильтра. Теги сравниваются по принципу
// «хотя бы один», поэтому используется EXISTS, а не соединение: рецепт попадает
// в выдачу один раз, сколько бы запрошенных тегов у него ни было.
func recipeWhere(f models.RecipeFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.AuthorID != nil {
		conds = append(conds, "r.author_id = "+arg(*f.AuthorID))
	}
	if len(f.TagSlugs) > 0 {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id
			WHERE rt.recipe_id = r.id AND t.slug = ANY(`+arg(f.TagSlugs)+`))`)
	}
	if f.FavoritedBy != nil {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM favorites fv WHERE fv.recipe_id = r.id AND fv.user_id = `+arg(*f.FavoritedBy)+`)`)
	}
	if f.InShoppingCartOf != nil {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM shopping_cart sc WHERE sc.recipe_id = r.id AND sc.user_id = `+arg(*f.InShoppingCartOf)+`)`)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// bundle дочитывает авторов, ингредиенты и теги для рецептов, сохраняя их порядок.
func (s *Storage) bundle(ctx context.Context, q querier, recipes []models.Recipe) ([]models.RecipeBundle, error) {
	if len(recipes) == 0 {
		return []models.RecipeBundle{}, nil
	}

	ids := make([]int64, 0, len(recipes))
	authorIDs := make([]int64, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
		authorIDs = append(authorIDs, r.AuthorID)
	}

	authors, err := s.usersByIDs(ctx, q, authorIDs)
	if err != nil {
		return nil, err
	}
	lines, err := ingredientsByRecipes(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	tags, err := tagsByRecipes(ctx, q, ids)
	if err != nil {
		return nil, err
	}

	result := make([]models.RecipeBundle, 0, len(recipes))
	for _, r := range recipes {
		b := models.RecipeBundle{
			Recipe:      r,
			Author:      authors[r.AuthorID],
			Ingredients: lines[r.ID],
			Tags:        tags[r.ID],
		}
		if b.Ingredients == nil {
			b.Ingredients = []models.IngredientInRecipe{}
		}
		if b.Tags == nil {
			b.Tags = []models.Tag{}
		}
		result = append(result, b)
	}
	return result, nil
}

// ingredientsByRecipes соединяет строки рецептов с каталогом ингредиентов:
// количество берётся из строки связи.
func ingredientsByRecipes(ctx context.Context, q querier, recipeIDs []int64) (map[int64][]models.IngredientInRecipe, error) {
	query := `SELECT ri.recipe_id, i.id, i.name, i.measurement_unit, ri.amount
			  FROM recipe_ingredients ri
			  JOIN ingredients i ON i.id = ri.ingredient_id
			  WHERE ri.recipe_id = ANY($1)
			  ORDER BY ri.recipe_id, ri.id`
	rows, err := q.QueryContext(ctx, query, recipeIDs)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make(map[int64][]models.IngredientInRecipe, len(recipeIDs))
	for rows.Next() {
		var recipeID int64
		var i models.IngredientInRecipe
		if err := rows.Scan(&recipeID, &i.ID, &i.Name, &i.MeasurementUnit, &i.Amount); err != nil {
			return nil, err
		}
		result[recipeID] = append(result[recipeID], i)
	}
	return result, rows.Err()
}

func tagsByRecipes(ctx context.Context, q querier, recipeIDs []int64) (map[int64][]models.Tag, error) {
	query := `SELECT rt.recipe_id, t.id, t.name, t.color, t.slug
			  FROM recipe_tags rt
			  JOIN tags t ON t.id = rt.tag_id
			  WHERE rt.recipe_id = ANY($1)
			  ORDER BY rt.recipe_id, t.id`
	rows, err := q.QueryContext(ctx, query, recipeIDs)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make(map[int64][]models.Tag, len(recipeIDs))
	for rows.Next() {
		var recipeID int64
		var t models.Tag
		if err := rows.Scan(&recipeID, &t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return nil, err
		}
		result[recipeID] = append(result[recipeID], t)
	}
	return result, rows.Err()
}

// lockOwnRecipe блокирует строку рецепта и проверяет, что правит её автор.
func lockOwnRecipe(ctx context.Context, tx *sql.Tx, id, editorID int64) error {
	var authorID int64
	err := tx.QueryRowContext(ctx, `SELECT author_id FROM recipes WHERE id = $1 FOR UPDATE`, id).Scan(&authorID)
	if err != nil {
		return notFound(err, "recipe", id)
	}
	if authorID != editorID {
		return apperr.PermissionDenied("only the author can change this recipe")
	}
	return nil
}

// checkReferences проверяет, что все теги и ингредиенты существуют,
// и называет отсутствующие ID в сообщении.
func checkReferences(ctx context.Context, tx *sql.Tx, in models.RecipeInput) error {
	ingredientIDs := make([]int64, 0, len(in.Ingredients))
	for _, i := range in.Ingredients {
		ingredientIDs = append(ingredientIDs, i.ID)
	}
	missing, err := missingIDs(ctx, tx, `SELECT id FROM ingredients WHERE id = ANY($1)`, ingredientIDs)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return apperr.Validation("ingredients", "ingredients do not exist: "+joinIDs(missing))
	}

	missing, err = missingIDs(ctx, tx, `SELECT id FROM tags WHERE id = ANY($1)`, in.Tags)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return apperr.Validation("tags", "tags do not exist: "+joinIDs(missing))
	}
	return nil
}

func missingIDs(ctx context.Context, tx *sql.Tx, query string, ids []int64) ([]int64, error) {
	rows, err := tx.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	found := make(map[int64]struct{}, len(ids))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var missing []int64
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing, nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}

// insertRecipeSets вставляет строки ингредиентов и связи с тегами одним запросом на каждую таблицу.
func insertRecipeSets(ctx context.Context, tx *sql.Tx, recipeID int64, in models.RecipeInput) error {
	ids := make([]int64, 0, len(in.Ingredients))
	amounts := make([]int32, 0, len(in.Ingredients))
	for _, i := range in.Ingredients {
		ids = append(ids, i.ID)
		amounts = append(amounts, int32(i.Amount))
	}

	query := `INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount)
			  SELECT $1, t.ingredient_id, t.amount
			  FROM unnest($2::bigint[], $3::integer[]) WITH ORDINALITY AS t(ingredient_id, amount, pos)
			  ORDER BY t.pos`
	if _, err := tx.ExecContext(ctx, query, recipeID, ids, amounts); err != nil {
		return translate(err)
	}

	query = `INSERT INTO recipe_tags (recipe_id, tag_id)
			 SELECT $1, unnest($2::bigint[])`
	if _, err := tx.ExecContext(ctx, query, recipeID, in.Tags); err != nil {
		return translate(err)
	}
	return nil
}
