package products

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/sk-equipments/storefront/internal/masterdata/shared"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Product, int, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, id int64, product Product) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const productColumns = `id, title, image, additional_images, COALESCE(price::text, ''), original_price,
	rating, reviews, category, COALESCE(sub_category, ''), slug, description,
	specifications, is_best_selling, is_featured, created_at, updated_at`

// List uses a dynamic query due to filter combinations.
func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Product, int, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM products WHERE 1=1`
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

	query += ` ORDER BY created_at DESC, id`
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

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, shared.ErrNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, product Product) (Product, error) {
	now := time.Now()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (title, image, additional_images, price, original_price,
			rating, reviews, category, sub_category, slug, description,
			specifications, is_best_selling, is_featured, created_at, updated_at)
		VALUES ($1,$2,$3,$4::numeric,$5,$6,$7,$8,NULLIF($9,''),$10,$11,$12,$13,$14,$15,$15)
		RETURNING `+productColumns,
		product.Title, product.Image, product.AdditionalImages, priceParam(product.Price),
		product.OriginalPrice, product.Rating, product.Reviews, product.Category,
		product.SubCategory, product.Slug, product.Description,
		product.Specifications, product.IsBestSelling, product.IsFeatured, now)
	created, err := scanProduct(row)
	if err != nil {
		return Product{}, mapConstraint(err)
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, id int64, product Product) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE products SET title=$1, image=$2, additional_images=$3, price=$4::numeric,
			original_price=$5, rating=$6, reviews=$7, category=$8,
			sub_category=NULLIF($9,''), slug=$10, description=$11,
			specifications=$12, is_best_selling=$13, is_featured=$14, updated_at=$15
		WHERE id=$16`,
		product.Title, product.Image, product.AdditionalImages, priceParam(product.Price),
		product.OriginalPrice, product.Rating, product.Reviews, product.Category,
		product.SubCategory, product.Slug, product.Description,
		product.Specifications, product.IsBestSelling, product.IsFeatured,
		time.Now(), id)
	if err != nil {
		return mapConstraint(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
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

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var price string
	err := row.Scan(&p.ID, &p.Title, &p.Image, &p.AdditionalImages, &price,
		&p.OriginalPrice, &p.Rating, &p.Reviews, &p.Category, &p.SubCategory,
		&p.Slug, &p.Description, &p.Specifications, &p.IsBestSelling,
		&p.IsFeatured, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	if price != "" {
		if d, derr := decimal.NewFromString(price); derr == nil {
			p.Price = &d
		}
	}
	return p, nil
}

// priceParam renders the optional price as a nullable text parameter cast to
// numeric server-side.
func priceParam(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

// mapConstraint translates unique violations into the duplicate sentinel so
// handlers can surface "slug already exists" instead of a 500.
func mapConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return shared.ErrDuplicate
	}
	return err
}
