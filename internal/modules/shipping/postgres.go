package shipping

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL shipping rate repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, rate *Rate) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shipping_rates (id, supplier_id, zone, price, delay)
		VALUES ($1,$2,$3,$4,$5)`,
		rate.ID, rate.SupplierID, rate.Zone, rate.Price, rate.Delay)
	return err
}

func (r *postgresRepo) ListBySupplier(ctx context.Context, supplierID string) ([]*Rate, error) {
	uid, err := uuid.Parse(supplierID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, supplier_id, zone, price, delay, created_at, updated_at
		FROM shipping_rates WHERE supplier_id=$1 ORDER BY zone ASC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []*Rate
	for rows.Next() {
		rate := &Rate{}
		if err := rows.Scan(&rate.ID, &rate.SupplierID, &rate.Zone, &rate.Price,
			&rate.Delay, &rate.CreatedAt, &rate.UpdatedAt); err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}
	return rates, rows.Err()
}
