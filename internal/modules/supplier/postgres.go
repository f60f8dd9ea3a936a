package supplier

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL supplier repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const supplierColumns = `id, user_id, shop_name, description, status, payment_method, payment_phone_number, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, s *Supplier) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO suppliers (id, user_id, shop_name, description, status, payment_method, payment_phone_number)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		s.ID, s.UserID, s.ShopName, s.Description, s.Status, string(s.PaymentMethod), s.PaymentPhoneNumber)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Supplier, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return r.scan(r.db.QueryRowContext(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE id=$1`, uid))
}

func (r *postgresRepo) GetByUserID(ctx context.Context, userID string) (*Supplier, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	return r.scan(r.db.QueryRowContext(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE user_id=$1`, uid))
}

func (r *postgresRepo) Update(ctx context.Context, s *Supplier) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE suppliers
		SET shop_name=$1, description=$2, payment_method=$3, payment_phone_number=$4, updated_at=$5
		WHERE id=$6`,
		s.ShopName, s.Description, string(s.PaymentMethod), s.PaymentPhoneNumber, time.Now(), s.ID)
	return err
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE suppliers SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now(), id)
	return err
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]*Supplier, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+supplierColumns+` FROM suppliers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []*Supplier
	for rows.Next() {
		s := &Supplier{}
		var method, phone sql.NullString
		if err := rows.Scan(&s.ID, &s.UserID, &s.ShopName, &s.Description, &s.Status,
			&method, &phone, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.PaymentMethod = PaymentMethod(method.String)
		s.PaymentPhoneNumber = phone.String
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

func (r *postgresRepo) scan(row *sql.Row) (*Supplier, error) {
	s := &Supplier{}
	var method, phone sql.NullString
	err := row.Scan(&s.ID, &s.UserID, &s.ShopName, &s.Description, &s.Status,
		&method, &phone, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.PaymentMethod = PaymentMethod(method.String)
	s.PaymentPhoneNumber = phone.String
	return s, nil
}
