package catalog

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL product repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, supplier_id, name, description, price, stock, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.SupplierID, p.Name, p.Description, p.Price, p.Stock, p.IsActive)
	return err
}

func (r *postgresRepo) GetProduct(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	p := &Product{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, supplier_id, name, description, price, stock, is_active, created_at, updated_at
		FROM products WHERE id=$1`, uid).Scan(
		&p.ID, &p.SupplierID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) ListBySupplier(ctx context.Context, supplierID string) ([]*Product, error) {
	uid, err := uuid.Parse(supplierID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, supplier_id, name, description, price, stock, is_active, created_at, updated_at
		FROM products WHERE supplier_id=$1 ORDER BY created_at DESC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p := &Product{}
		if err := rows.Scan(&p.ID, &p.SupplierID, &p.Name, &p.Description, &p.Price,
			&p.Stock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) CountBySupplier(ctx context.Context, supplierID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE supplier_id=$1`, supplierID).Scan(&count)
	return count, err
}
