package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/mecommerce/catalog-service/internal/catalog"
	"github.com/mecommerce/catalog-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, name, sku, description, url_key, meta_title, meta_description,
            is_active, in_stock, is_visible, type, created_by_user_id,
            new_from_date, new_to_date, created_at, updated_at
        )
        VALUES (
            :id, :name, :sku, :description, :url_key, :meta_title, :meta_description,
            :is_active, :in_stock, :is_visible, :type, :created_by_user_id,
            :new_from_date, :new_to_date, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	if err != nil {
		return catalog.TranslateUnique("product", errors.Wrap(err, "insert product"))
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find product by id")
	}
	return &product, nil
}

func (r *PGRepository) FindByIDs(ctx context.Context, ids []string, limit, offset int) ([]model.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM products WHERE id IN (?) LIMIT ? OFFSET ?`, ids, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "build products by ids query")
	}

	var products []model.Product
	if err := r.DB.SelectContext(ctx, &products, r.DB.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "find products by ids")
	}
	return products, nil
}

func (r *PGRepository) FindBySKUs(ctx context.Context, skus []string, limit, offset int) ([]model.Product, error) {
	if len(skus) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM products WHERE sku IN (?) LIMIT ? OFFSET ?`, skus, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "build products by skus query")
	}

	var products []model.Product
	if err := r.DB.SelectContext(ctx, &products, r.DB.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "find products by skus")
	}
	return products, nil
}

func (r *PGRepository) Search(ctx context.Context, q catalog.SearchQuery) ([]model.Product, int, error) {
	var count int

	countQuery := "SELECT count(*) FROM products WHERE " + q.Where
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, q.Args)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count products")
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, errors.Wrap(err, "scan product count")
		}
	}

	query := "SELECT * FROM products WHERE " + q.Where
	if q.OrderBy != "" {
		query += " ORDER BY " + q.OrderBy
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", q.Limit, q.Offset)

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "prepare product search")
	}
	defer nstmt.Close()

	var products []model.Product
	if err := nstmt.SelectContext(ctx, &products, q.Args); err != nil {
		return nil, 0, errors.Wrap(err, "search products")
	}

	return products, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET name = :name,
            sku = :sku,
            description = :description,
            url_key = :url_key,
            meta_title = :meta_title,
            meta_description = :meta_description,
            is_active = :is_active,
            in_stock = :in_stock,
            is_visible = :is_visible,
            type = :type,
            created_by_user_id = :created_by_user_id,
            new_from_date = :new_from_date,
            new_to_date = :new_to_date,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	if err != nil {
		return catalog.TranslateUnique("product", errors.Wrap(err, "update product"))
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(`DELETE FROM products WHERE id IN (?)`, ids)
	if err != nil {
		return 0, errors.Wrap(err, "build product delete query")
	}

	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(query), args...)
	if err != nil {
		return 0, errors.Wrap(err, "delete products")
	}
	return res.RowsAffected()
}

func (r *PGRepository) FindConflicts(ctx context.Context, names, skus, urlKeys []string, excludeID string) ([]catalog.ConflictRow, error) {
	base := `SELECT name, sku, url_key FROM products WHERE (name IN (?) OR sku IN (?) OR url_key IN (?))`
	in := []interface{}{names, skus, urlKeys}
	if excludeID != "" {
		base += ` AND id != ?`
		in = append(in, excludeID)
	}

	query, args, err := sqlx.In(base, in...)
	if err != nil {
		return nil, errors.Wrap(err, "build product conflict query")
	}

	var found []catalog.ConflictRow
	if err := r.DB.SelectContext(ctx, &found, r.DB.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "check product conflicts")
	}
	return found, nil
}

func (r *PGRepository) UpdateInStockBySKU(ctx context.Context, sku string, inStock bool) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE products SET in_stock = $2, updated_at = now() WHERE sku = $1`,
		sku, inStock,
	)
	if err != nil {
		return 0, errors.Wrap(err, "update product stock flag")
	}
	return res.RowsAffected()
}
