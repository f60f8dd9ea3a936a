package order

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL order repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// CreateOrder writes the whole checkout in one transaction: order header,
// one supplier order per group, every item, and the stock decrements.
func (r *postgresRepo) CreateOrder(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders
		  (id, user_id, total, status, customer_first_name, customer_last_name,
		   customer_phone_number, customer_address)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		o.ID, o.UserID, o.Total, o.Status,
		o.CustomerFirstName, o.CustomerLastName, o.CustomerPhoneNumber, o.CustomerAddress)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, so := range o.SupplierOrders {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO supplier_orders (id, order_id, supplier_id, shipping_price, status)
			VALUES ($1,$2,$3,$4,$5)`,
			so.ID, o.ID, so.SupplierID, so.ShippingPrice, so.Status)
		if err != nil {
			return fmt.Errorf("insert supplier_order: %w", err)
		}
	}

	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, price, color, size, shipping_zone)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			item.ID, o.ID, item.ProductID, item.Quantity, item.Price,
			item.Color, item.Size, item.ShippingZone)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}

		// Stock was validated at composition time; the decrement itself is
		// unconditional here. See the checkout race note in DESIGN.md.
		_, err = tx.ExecContext(ctx, `
			UPDATE products SET stock = stock - $1, updated_at = $2 WHERE id = $3`,
			item.Quantity, time.Now(), item.ProductID)
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
	}

	return tx.Commit()
}

const orderColumns = `id, user_id, total, status, customer_first_name, customer_last_name,
	customer_phone_number, customer_address, created_at, updated_at`

func (r *postgresRepo) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1`, uid))
	if err != nil {
		return nil, err
	}
	if o.SupplierOrders, err = r.listSupplierOrders(ctx, o.ID); err != nil {
		return nil, err
	}
	if o.Items, err = r.listItems(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) ListOrdersByUser(ctx context.Context, userID string) ([]*Order, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o := &Order{}
		var first, last, phone, addr sql.NullString
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.Status,
			&first, &last, &phone, &addr, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		o.CustomerFirstName = first.String
		o.CustomerLastName = last.String
		o.CustomerPhoneNumber = phone.String
		o.CustomerAddress = addr.String
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// ConfirmOrder flips PENDING to CONFIRMED. The WHERE clause makes the
// transition happen at most once however many notifications arrive.
func (r *postgresRepo) ConfirmOrder(ctx context.Context, id string) (bool, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return false, err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status=$1, updated_at=$2 WHERE id=$3 AND status=$4`,
		StatusConfirmed, time.Now(), uid, StatusPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *postgresRepo) GetSupplierOrder(ctx context.Context, id string) (*SupplierOrder, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	so := &SupplierOrder{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, order_id, supplier_id, shipping_price, status, created_at, updated_at
		FROM supplier_orders WHERE id=$1`, uid).Scan(
		&so.ID, &so.OrderID, &so.SupplierID, &so.ShippingPrice, &so.Status,
		&so.CreatedAt, &so.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return so, nil
}

func (r *postgresRepo) UpdateSupplierOrderStatus(ctx context.Context, id string, status SupplierOrderStatus) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE supplier_orders SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now(), id)
	return err
}

// ── helpers ──────────────────────────────────────────────────────────────────

func scanOrder(row *sql.Row) (*Order, error) {
	o := &Order{}
	var first, last, phone, addr sql.NullString
	err := row.Scan(&o.ID, &o.UserID, &o.Total, &o.Status,
		&first, &last, &phone, &addr, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.CustomerFirstName = first.String
	o.CustomerLastName = last.String
	o.CustomerPhoneNumber = phone.String
	o.CustomerAddress = addr.String
	return o, nil
}

func (r *postgresRepo) listSupplierOrders(ctx context.Context, orderID uuid.UUID) ([]*SupplierOrder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, supplier_id, shipping_price, status, created_at, updated_at
		FROM supplier_orders WHERE order_id=$1 ORDER BY created_at ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var supplierOrders []*SupplierOrder
	for rows.Next() {
		so := &SupplierOrder{}
		if err := rows.Scan(&so.ID, &so.OrderID, &so.SupplierID, &so.ShippingPrice,
			&so.Status, &so.CreatedAt, &so.UpdatedAt); err != nil {
			return nil, err
		}
		supplierOrders = append(supplierOrders, so)
	}
	return supplierOrders, rows.Err()
}

// listItems joins each item to its product so settlement can regroup the
// persisted lines by owning supplier.
func (r *postgresRepo) listItems(ctx context.Context, orderID uuid.UUID) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, p.supplier_id, oi.quantity, oi.price,
		       oi.color, oi.size, oi.shipping_zone, oi.created_at
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id=$1 ORDER BY oi.created_at ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item := &Item{}
		var color, size, zone sql.NullString
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.SupplierID,
			&item.Quantity, &item.Price, &color, &size, &zone, &item.CreatedAt); err != nil {
			return nil, err
		}
		item.Color = color.String
		item.Size = size.String
		item.ShippingZone = zone.String
		items = append(items, item)
	}
	return items, rows.Err()
}
