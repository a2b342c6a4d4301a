package product

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository on a pgx connection pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a product repository backed by Postgres.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new product and fills in the generated fields.
func (r *PostgresRepository) Create(ctx context.Context, p *Product) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO products (product_name, price, category, best_seller, description, image_url, image_key, firm_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		p.ProductName, p.Price, p.Category, p.BestSeller, p.Description, p.Image, p.ImageKey, p.FirmID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// ListByFirm returns all products whose firm_id matches, in storage order.
func (r *PostgresRepository) ListByFirm(ctx context.Context, firmID string) ([]*Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, product_name, price, category, best_seller, description,
		        image_url, image_key, firm_id, created_at, updated_at
		 FROM products WHERE firm_id = $1`,
		firmID,
	)
	if err != nil {
		return nil, fmt.Errorf("list products by firm: %w", err)
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		p := &Product{}
		if err := rows.Scan(&p.ID, &p.ProductName, &p.Price, &p.Category, &p.BestSeller,
			&p.Description, &p.Image, &p.ImageKey, &p.FirmID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products by firm: %w", err)
	}
	return products, nil
}

// Delete removes a product row. The owning firm's products list and any
// stored image are not touched.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
