package payment

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL payment repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, p *Payment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payments (id, order_id, amount, method, status, transaction_id, paydunya_token)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.OrderID, p.Amount, p.Method, p.Status, p.TransactionID, p.PaydunyaToken)
	return err
}

func (r *postgresRepo) ListByOrder(ctx context.Context, orderID string) ([]*Payment, error) {
	uid, err := uuid.Parse(orderID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, amount, method, status, transaction_id, paydunya_token, created_at
		FROM payments WHERE order_id=$1 ORDER BY created_at DESC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		p := &Payment{}
		var txID, token sql.NullString
		if err := rows.Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.Status,
			&txID, &token, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.TransactionID = txID.String
		p.PaydunyaToken = token.String
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
