package plan

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL plan repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) ListPlans(ctx context.Context) ([]*Plan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, price, commission_rate, product_limit, created_at, updated_at
		FROM plans ORDER BY price ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*Plan
	for rows.Next() {
		p := &Plan{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.CommissionRate,
			&p.ProductLimit, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (r *postgresRepo) GetPlanByName(ctx context.Context, name string) (*Plan, error) {
	p := &Plan{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, price, commission_rate, product_limit, created_at, updated_at
		FROM plans WHERE name=$1`, name).Scan(
		&p.ID, &p.Name, &p.Price, &p.CommissionRate, &p.ProductLimit, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) GetActivePlan(ctx context.Context, supplierID string) (*Plan, error) {
	uid, err := uuid.Parse(supplierID)
	if err != nil {
		return nil, err
	}
	p := &Plan{}
	err = r.db.QueryRowContext(ctx, `
		SELECT p.id, p.name, p.price, p.commission_rate, p.product_limit, p.created_at, p.updated_at
		FROM subscriptions s
		JOIN plans p ON p.id = s.plan_id
		WHERE s.supplier_id=$1 AND s.status='ACTIVE'
		ORDER BY s.start_date DESC
		LIMIT 1`, uid).Scan(
		&p.ID, &p.Name, &p.Price, &p.CommissionRate, &p.ProductLimit, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) CancelActiveSubscriptions(ctx context.Context, supplierID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE subscriptions SET status='CANCELED' WHERE supplier_id=$1 AND status='ACTIVE'`,
		supplierID)
	return err
}

func (r *postgresRepo) CreateSubscription(ctx context.Context, sub *Subscription) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subscriptions (id, supplier_id, plan_id, status, start_date, end_date)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		sub.ID, sub.SupplierID, sub.PlanID, sub.Status, sub.StartDate, sub.EndDate)
	return err
}

func (r *postgresRepo) CreatePayment(ctx context.Context, payment *SubscriptionPayment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subscription_payments (id, subscription_id, amount, payment_method, status)
		VALUES ($1,$2,$3,$4,$5)`,
		payment.ID, payment.SubscriptionID, payment.Amount, payment.PaymentMethod, payment.Status)
	return err
}
