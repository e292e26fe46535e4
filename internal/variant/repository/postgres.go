package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/mecommerce/catalog-service/internal/catalog"
	"github.com/mecommerce/catalog-service/internal/model"
)

const foreignKeyViolation = "23503"

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CreateBatch(ctx context.Context, variants []model.Variant) error {
	if len(variants) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin variant batch")
	}
	defer tx.Rollback()

	query := `
        INSERT INTO variants (
            id, name, sku, description, url_key, meta_title, meta_description,
            is_active, in_stock, is_visible, parent_product_id, created_at, updated_at
        )
        VALUES (
            :id, :name, :sku, :description, :url_key, :meta_title, :meta_description,
            :is_active, :in_stock, :is_visible, :parent_product_id, :created_at, :updated_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, query, variants); err != nil {
		return translateWrite(errors.Wrap(err, "insert variants"))
	}

	return errors.Wrap(tx.Commit(), "commit variant batch")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Variant, error) {
	var variant model.Variant
	query := `SELECT * FROM variants WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &variant, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find variant by id")
	}
	return &variant, nil
}

func (r *PGRepository) FindByIDs(ctx context.Context, ids []string, limit, offset int) ([]model.Variant, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM variants WHERE id IN (?) LIMIT ? OFFSET ?`, ids, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "build variants by ids query")
	}

	var variants []model.Variant
	if err := r.DB.SelectContext(ctx, &variants, r.DB.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "find variants by ids")
	}
	return variants, nil
}

func (r *PGRepository) FindBySKUs(ctx context.Context, skus []string, limit, offset int) ([]model.Variant, error) {
	if len(skus) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM variants WHERE sku IN (?) LIMIT ? OFFSET ?`, skus, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "build variants by skus query")
	}

	var variants []model.Variant
	if err := r.DB.SelectContext(ctx, &variants, r.DB.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "find variants by skus")
	}
	return variants, nil
}

func (r *PGRepository) Search(ctx context.Context, q catalog.SearchQuery) ([]model.Variant, int, error) {
	var count int

	countQuery := "SELECT count(*) FROM variants WHERE " + q.Where
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, q.Args)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count variants")
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, errors.Wrap(err, "scan variant count")
		}
	}

	query := "SELECT * FROM variants WHERE " + q.Where
	if q.OrderBy != "" {
		query += " ORDER BY " + q.OrderBy
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", q.Limit, q.Offset)

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "prepare variant search")
	}
	defer nstmt.Close()

	var variants []model.Variant
	if err := nstmt.SelectContext(ctx, &variants, q.Args); err != nil {
		return nil, 0, errors.Wrap(err, "search variants")
	}

	return variants, count, nil
}

func (r *PGRepository) Update(ctx context.Context, v *model.Variant) error {
	query := `
        UPDATE variants
        SET name = :name,
            sku = :sku,
            description = :description,
            url_key = :url_key,
            meta_title = :meta_title,
            meta_description = :meta_description,
            is_active = :is_active,
            in_stock = :in_stock,
            is_visible = :is_visible,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	if err != nil {
		return catalog.TranslateUnique("variant", errors.Wrap(err, "update variant"))
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(`DELETE FROM variants WHERE id IN (?)`, ids)
	if err != nil {
		return 0, errors.Wrap(err, "build variant delete query")
	}

	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(query), args...)
	if err != nil {
		return 0, errors.Wrap(err, "delete variants")
	}
	return res.RowsAffected()
}

func (r *PGRepository) FindConflicts(ctx context.Context, names, skus, urlKeys []string, excludeID string) ([]catalog.ConflictRow, error) {
	base := `SELECT name, sku, url_key FROM variants WHERE (name IN (?) OR sku IN (?) OR url_key IN (?))`
	in := []interface{}{names, skus, urlKeys}
	if excludeID != "" {
		base += ` AND id != ?`
		in = append(in, excludeID)
	}

	query, args, err := sqlx.In(base, in...)
	if err != nil {
		return nil, errors.Wrap(err, "build variant conflict query")
	}

	var found []catalog.ConflictRow
	if err := r.DB.SelectContext(ctx, &found, r.DB.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "check variant conflicts")
	}
	return found, nil
}

func (r *PGRepository) FindParentIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT id FROM products WHERE id IN (?)`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "build parent products query")
	}

	var found []string
	if err := r.DB.SelectContext(ctx, &found, r.DB.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "find parent products")
	}
	return found, nil
}

func (r *PGRepository) UpdateInStockBySKU(ctx context.Context, sku string, inStock bool) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE variants SET in_stock = $2, updated_at = now() WHERE sku = $1`,
		sku, inStock,
	)
	if err != nil {
		return 0, errors.Wrap(err, "update variant stock flag")
	}
	return res.RowsAffected()
}

// translateWrite maps constraint violations raised by the batch insert:
// a unique violation becomes a Conflict, a broken parent reference a
// NotFound. Both can only happen when a concurrent writer slips between
// the pre-checks and the commit.
func translateWrite(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		return &catalog.NotFoundError{Message: "parent product not found"}
	}
	return catalog.TranslateUnique("variant", err)
}
