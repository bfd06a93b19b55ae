package subcategories

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
	List(ctx context.Context, filters shared.ListFilters) ([]SubCategory, int, error)
	Get(ctx context.Context, id int64) (SubCategory, error)
	Create(ctx context.Context, sub SubCategory) (SubCategory, error)
	Update(ctx context.Context, id int64, sub SubCategory) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const subcategoryColumns = `id, title, category, slug, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]SubCategory, int, error) {
	query := `SELECT ` + subcategoryColumns + ` FROM subcategories WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM subcategories WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		cond := ` AND (title ILIKE $` + strconv.Itoa(argCount) + ` OR slug ILIKE $` + strconv.Itoa(argCount) + `)`
		query += cond
		countQuery += cond
		args = append(args, "%"+filters.Search+"%")
	}
	if filters.Category != "" {
		argCount++
		cond := ` AND category = $` + strconv.Itoa(argCount)
		query += cond
		countQuery += cond
		args = append(args, filters.Category)
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

	var subs []SubCategory
	for rows.Next() {
		s, err := scanSubCategory(rows)
		if err != nil {
			return nil, 0, err
		}
		subs = append(subs, s)
	}
	return subs, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (SubCategory, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+subcategoryColumns+` FROM subcategories WHERE id = $1`, id)
	s, err := scanSubCategory(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return SubCategory{}, shared.ErrNotFound
	}
	return s, err
}

func (r *repository) Create(ctx context.Context, sub SubCategory) (SubCategory, error) {
	now := time.Now()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO subcategories (title, category, slug, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$4)
		RETURNING `+subcategoryColumns,
		sub.Title, sub.Category, sub.Slug, now)
	created, err := scanSubCategory(row)
	if err != nil {
		return SubCategory{}, mapConstraint(err)
	}
	return created, nil
}

// Update renames the subcategory and rewrites the sub_category value on
// products that referenced the old title, atomically. Products join to
// subcategories by title the same way they join to categories.
func (r *repository) Update(ctx context.Context, id int64, sub SubCategory) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var oldTitle string
	if err := tx.QueryRow(ctx, `SELECT title FROM subcategories WHERE id = $1 FOR UPDATE`, id).Scan(&oldTitle); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shared.ErrNotFound
		}
		return err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE subcategories SET title=$1, category=$2, slug=$3, updated_at=$4
		WHERE id=$5`,
		sub.Title, sub.Category, sub.Slug, time.Now(), id); err != nil {
		return mapConstraint(err)
	}

	if oldTitle != sub.Title {
		if _, err := tx.Exec(ctx, `UPDATE products SET sub_category=$1 WHERE sub_category=$2`,
			sub.Title, oldTitle); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM subcategories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubCategory(row rowScanner) (SubCategory, error) {
	var s SubCategory
	err := row.Scan(&s.ID, &s.Title, &s.Category, &s.Slug, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func mapConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return shared.ErrDuplicate
	}
	return err
}
