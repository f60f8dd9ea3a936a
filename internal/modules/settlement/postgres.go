package settlement

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL payout repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const payoutColumns = `id, order_id, supplier_id, subtotal, commission_rate, commission,
	shipping_price, net_amount, payment_method, phone_number, status,
	transaction_id, error_message, processed_at, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, p *Payout) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO supplier_payouts
		  (id, order_id, supplier_id, subtotal, commission_rate, commission,
		   shipping_price, net_amount, payment_method, phone_number, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		p.ID, p.OrderID, p.SupplierID, p.Subtotal, p.CommissionRate, p.Commission,
		p.ShippingPrice, p.NetAmount, p.PaymentMethod, p.PhoneNumber, p.Status)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Payout, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanPayout(r.db.QueryRowContext(ctx,
		`SELECT `+payoutColumns+` FROM supplier_payouts WHERE id=$1`, uid))
}

func (r *postgresRepo) ListByOrder(ctx context.Context, orderID string) ([]*Payout, error) {
	uid, err := uuid.Parse(orderID)
	if err != nil {
		return nil, err
	}
	return r.queryPayouts(ctx,
		`SELECT `+payoutColumns+` FROM supplier_payouts WHERE order_id=$1 ORDER BY created_at ASC`, uid)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]*Payout, error) {
	return r.queryPayouts(ctx,
		`SELECT `+payoutColumns+` FROM supplier_payouts ORDER BY created_at DESC`)
}

func (r *postgresRepo) MarkCompleted(ctx context.Context, id string, transactionID string) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx, `
		UPDATE supplier_payouts
		SET status=$1, transaction_id=$2, error_message='', processed_at=$3, updated_at=$3
		WHERE id=$4`,
		PayoutCompleted, transactionID, now, id)
	return err
}

func (r *postgresRepo) MarkFailed(ctx context.Context, id string, errorMessage string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE supplier_payouts SET status=$1, error_message=$2, updated_at=$3 WHERE id=$4`,
		PayoutFailed, errorMessage, time.Now(), id)
	return err
}

func (r *postgresRepo) UpdateDestination(ctx context.Context, id, method, phoneNumber string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE supplier_payouts SET payment_method=$1, phone_number=$2, updated_at=$3 WHERE id=$4`,
		method, phoneNumber, time.Now(), id)
	return err
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (r *postgresRepo) queryPayouts(ctx context.Context, query string, args ...interface{}) ([]*Payout, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payouts []*Payout
	for rows.Next() {
		p := &Payout{}
		var method, phone, txID, errMsg sql.NullString
		var processedAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.OrderID, &p.SupplierID, &p.Subtotal, &p.CommissionRate,
			&p.Commission, &p.ShippingPrice, &p.NetAmount, &method, &phone, &p.Status,
			&txID, &errMsg, &processedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		fillPayout(p, method, phone, txID, errMsg, processedAt)
		payouts = append(payouts, p)
	}
	return payouts, rows.Err()
}

func scanPayout(row *sql.Row) (*Payout, error) {
	p := &Payout{}
	var method, phone, txID, errMsg sql.NullString
	var processedAt sql.NullTime
	err := row.Scan(&p.ID, &p.OrderID, &p.SupplierID, &p.Subtotal, &p.CommissionRate,
		&p.Commission, &p.ShippingPrice, &p.NetAmount, &method, &phone, &p.Status,
		&txID, &errMsg, &processedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	fillPayout(p, method, phone, txID, errMsg, processedAt)
	return p, nil
}

func fillPayout(p *Payout, method, phone, txID, errMsg sql.NullString, processedAt sql.NullTime) {
	p.PaymentMethod = method.String
	p.PhoneNumber = phone.String
	p.TransactionID = txID.String
	p.ErrorMessage = errMsg.String
	if processedAt.Valid {
		t := processedAt.Time
		p.ProcessedAt = &t
	}
}
