package categories

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sk-equipments/storefront/internal/masterdata/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Category, int, error)
	Get(ctx context.Context, id int64) (Category, error)
	Create(ctx context.Context, category Category) (Category, error)
	Update(ctx context.Context, id int64, category Category) error
	Delete(ctx context.Context, id int64) error
	ProductCount(ctx context.Context, title string) (int, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const categoryColumns = `id, title, COALESCE(image, ''), slug, COALESCE(description, ''), created_at, updated_at`

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Category, int, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM categories WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		cond := ` AND (title ILIKE $` + strconv.Itoa(argCount) + ` OR slug ILIKE $` + strconv.Itoa(argCount) + `)`
		query += cond
		countQuery += cond
		args = append(args, "%"+filters.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY id`
	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)
		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		args = append(args, filters.Offset())
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, 0, err
		}
		categories = append(categories, c)
	}
	return categories, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Category, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Category{}, shared.ErrNotFound
	}
	return c, err
}

func (r *repository) Create(ctx context.Context, category Category) (Category, error) {
	now := time.Now()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (title, image, slug, description, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$5)
		RETURNING `+categoryColumns,
		category.Title, category.Image, category.Slug, category.Description, now)
	created, err := scanCategory(row)
	if err != nil {
		return Category{}, mapConstraint(err)
	}
	return created, nil
}

// Update renames the category and rewrites the title join key on every
// product and subcategory that referenced the old title, atomically.
func (r *repository) Update(ctx context.Context, id int64, category Category) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var oldTitle string
	if err := tx.QueryRow(ctx, `SELECT title FROM categories WHERE id = $1 FOR UPDATE`, id).Scan(&oldTitle); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shared.ErrNotFound
		}
		return err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE categories SET title=$1, image=$2, slug=$3, description=$4, updated_at=$5
		WHERE id=$6`,
		category.Title, category.Image, category.Slug, category.Description,
		time.Now(), id); err != nil {
		return mapConstraint(err)
	}

	if oldTitle != category.Title {
		if _, err := tx.Exec(ctx, `UPDATE products SET category=$1 WHERE category=$2`,
			category.Title, oldTitle); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE subcategories SET category=$1 WHERE category=$2`,
			category.Title, oldTitle); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ProductCount reports how many products still reference the category title.
func (r *repository) ProductCount(ctx context.Context, title string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category = $1`, title).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (Category, error) {
	var c Category
	err := row.Scan(&c.ID, &c.Title, &c.Image, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func mapConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return shared.ErrDuplicate
	}
	return err
}
