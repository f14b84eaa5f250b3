package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Almas2004/led/internal/models"
	"github.com/Almas2004/led/internal/utils"
)

// uniqueViolation is the PostgreSQL error code for a unique index conflict.
const uniqueViolation = "23505"

var productColumns = []string{
	"slug", "name", "type", "purpose", "pixel_pitch", "brightness", "refresh_rate", "ip_rating",
	"viewing_distance_min", "viewing_distance_max", "price_from", "short_description",
	"full_description", "images", "is_featured", "sort_order", "warranty", "lead_time",
}

var solutionColumns = []string{
	"slug", "name", "type", "width", "height", "area", "pixel_pitch", "brightness", "included",
	"price_from", "short_description", "full_description", "warranty", "lead_time", "images",
	"is_featured", "featured_order",
}

var caseColumns = []string{
	"slug", "title", "city", "industry", "task", "solution", "specs", "duration", "result",
	"images", "video_url", "testimonial", "is_featured", "featured_order",
}

// ContentRepository handles data access for one content table. Products,
// solutions and cases share the same shape of queries.
type ContentRepository[T any] struct {
	db      *sqlx.DB
	table   string
	columns []string
}

// NewProductRepository creates a ContentRepository over products.
func NewProductRepository(db *sqlx.DB) *ContentRepository[models.Product] {
	return &ContentRepository[models.Product]{db: db, table: "products", columns: productColumns}
}

// NewSolutionRepository creates a ContentRepository over solutions.
func NewSolutionRepository(db *sqlx.DB) *ContentRepository[models.Solution] {
	return &ContentRepository[models.Solution]{db: db, table: "solutions", columns: solutionColumns}
}

// NewCaseRepository creates a ContentRepository over cases.
func NewCaseRepository(db *sqlx.DB) *ContentRepository[models.Case] {
	return &ContentRepository[models.Case]{db: db, table: "cases", columns: caseColumns}
}

// List returns every row in insertion order.
func (r *ContentRepository[T]) List(ctx context.Context) ([]T, error) {
	q := fmt.Sprintf(`SELECT * FROM %s ORDER BY id`, r.table)
	items := []T{}
	if err := r.db.SelectContext(ctx, &items, q); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.table, err)
	}
	return items, nil
}

// GetBySlug returns a single row by slug, or utils.ErrNotFound.
func (r *ContentRepository[T]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	q := fmt.Sprintf(`SELECT * FROM %s WHERE slug = $1 LIMIT 1`, r.table)
	var item T
	if err := r.db.GetContext(ctx, &item, q, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts item and returns the generated id.
func (r *ContentRepository[T]) Create(ctx context.Context, item *T) (int64, error) {
	q := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (:%s) RETURNING id`,
		r.table, strings.Join(r.columns, ", "), strings.Join(r.columns, ", :"))

	query, args, err := sqlx.Named(q, item)
	if err != nil {
		return 0, err
	}
	var id int64
	if err := r.db.QueryRowxContext(ctx, r.db.Rebind(query), args...).Scan(&id); err != nil {
		return 0, mapWriteError(err)
	}
	return id, nil
}

// Update overwrites every column of the row with the given id.
func (r *ContentRepository[T]) Update(ctx context.Context, id int64, item *T) error {
	sets := make([]string, len(r.columns))
	for i, c := range r.columns {
		sets[i] = c + " = :" + c
	}
	q := fmt.Sprintf(`UPDATE %s SET %s WHERE id = :id`, r.table, strings.Join(sets, ", "))

	query, args, err := sqlx.Named(q, item)
	if err != nil {
		return err
	}
	// The id bound from item is ignored in favour of the path id.
	args[len(args)-1] = id
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return mapWriteError(err)
	}
	return requireAffected(res)
}

// Delete removes the row with the given id.
func (r *ContentRepository[T]) Delete(ctx context.Context, id int64) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func mapWriteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return utils.ErrSlugTaken
	}
	return err
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return utils.ErrNotFound
	}
	return nil
}
