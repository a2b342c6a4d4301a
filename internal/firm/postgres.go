package firm

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository on a pgx connection pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a firm repository backed by Postgres.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new firm. The unique index on vendor_id turns a concurrent
// double-create for the same vendor into ErrVendorHasFirm.
func (r *PostgresRepository) Create(ctx context.Context, f *Firm) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO firms (firm_name, area, category, region, offer, image_url, image_key, vendor_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, products, created_at, updated_at`,
		f.FirmName, f.Area, f.Category, f.Region, f.Offer, f.Image, f.ImageKey, f.VendorID,
	).Scan(&f.ID, &f.Products, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrVendorHasFirm
		}
		return fmt.Errorf("create firm: %w", err)
	}
	return nil
}

// GetByID fetches a firm by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Firm, error) {
	f := &Firm{}
	err := r.db.QueryRow(ctx,
		`SELECT id, firm_name, area, category, region, offer, image_url, image_key,
		        vendor_id, products, created_at, updated_at
		 FROM firms WHERE id = $1`,
		id,
	).Scan(&f.ID, &f.FirmName, &f.Area, &f.Category, &f.Region, &f.Offer,
		&f.Image, &f.ImageKey, &f.VendorID, &f.Products, &f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get firm by id: %w", err)
	}
	return f, nil
}

// Delete removes a firm row. The owning vendor's firm list is not touched.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM firms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete firm: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendProduct appends a product id to the firm's products list.
func (r *PostgresRepository) AppendProduct(ctx context.Context, firmID, productID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE firms
		 SET products = array_append(products, $2::uuid), updated_at = now()
		 WHERE id = $1`,
		firmID, productID,
	)
	if err != nil {
		return fmt.Errorf("append product to firm: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// isUniqueViolation checks whether an error is a PostgreSQL unique_violation (code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
