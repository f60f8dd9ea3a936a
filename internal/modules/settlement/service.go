package settlement

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/order"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/payment"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/plan"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/shipping"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/supplier"
)

// OrderStore is the slice of the order repository settlement needs.
type OrderStore interface {
	GetOrderByID(ctx context.Context, id string) (*order.Order, error)
	ConfirmOrder(ctx context.Context, id string) (bool, error)
}

// SupplierStore resolves payout destinations.
type SupplierStore interface {
	GetByID(ctx context.Context, id string) (*supplier.Supplier, error)
}

// PlanStore resolves the commission rate in force for a supplier.
// GetActivePlan returns sql.ErrNoRows when the supplier has no active plan.
type PlanStore interface {
	GetActivePlan(ctx context.Context, supplierID string) (*plan.Plan, error)
}

// RateStore reads a supplier's published shipping rates.
type RateStore interface {
	ListBySupplier(ctx context.Context, supplierID string) ([]*shipping.Rate, error)
}

// PaymentStore records the buyer-side payment at confirmation.
type PaymentStore interface {
	Create(ctx context.Context, p *payment.Payment) error
}

// Notifier is the fire-and-forget notification egress.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message string)
}

// Config carries the platform's own settlement account for the commission
// transfer. Empty values disable it.
type Config struct {
	AdminPhoneNumber   string
	AdminPaymentMethod string
}

// Service turns a confirmed payment into per-supplier payouts.
type Service interface {
	// Settle confirms the order once and distributes the money: one Payout
	// per supplier, each dispatched independently of the others, plus the
	// platform commission transfer. A duplicate notification for an
	// already-confirmed order is a no-op.
	Settle(ctx context.Context, orderID, method, token, transactionID string) error

	// Retry re-dispatches a payout that did not complete, reusing the
	// NetAmount computed at settlement time.
	Retry(ctx context.Context, payoutID string) (*Payout, error)

	// ListPayouts returns all payouts, newest first (admin remittance history).
	ListPayouts(ctx context.Context) ([]*Payout, error)

	// ListOrderPayouts returns the payouts of one order.
	ListOrderPayouts(ctx context.Context, orderID string) ([]*Payout, error)
}

type service struct {
	payouts   Repository
	orders    OrderStore
	suppliers SupplierStore
	plans     PlanStore
	rates     RateStore
	payments  PaymentStore
	gateway   payment.Gateway
	notifier  Notifier
	cfg       Config
}

// NewService creates a new settlement service.
func NewService(payouts Repository, orders OrderStore, suppliers SupplierStore,
	plans PlanStore, rates RateStore, payments PaymentStore,
	gateway payment.Gateway, notifier Notifier, cfg Config) Service {
	return &service{
		payouts:   payouts,
		orders:    orders,
		suppliers: suppliers,
		plans:     plans,
		rates:     rates,
		payments:  payments,
		gateway:   gateway,
		notifier:  notifier,
		cfg:       cfg,
	}
}

func (s *service) Settle(ctx context.Context, orderID, method, token, transactionID string) error {
	if method == "" {
		method = "WAVE"
	}

	transitioned, err := s.orders.ConfirmOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to confirm order %s: %w", orderID, err)
	}
	if !transitioned {
		o, err := s.orders.GetOrderByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("order %s not found: %w", orderID, err)
		}
		if o.Status == order.StatusConfirmed {
			// Duplicate gateway notification; everything already happened.
			log.Printf("order %s already confirmed, ignoring duplicate notification", orderID)
			return nil
		}
		return fmt.Errorf("order %s cannot be settled from status %s", orderID, o.Status)
	}

	o, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to reload order %s: %w", orderID, err)
	}

	if err := s.payments.Create(ctx, &payment.Payment{
		ID:            uuid.New(),
		OrderID:       o.ID,
		Amount:        o.Total,
		Method:        method,
		Status:        "COMPLETED",
		TransactionID: transactionID,
		PaydunyaToken: token,
	}); err != nil {
		return fmt.Errorf("failed to record payment for order %s: %w", orderID, err)
	}

	supplierIDs, groups := groupItemsBySupplier(o.Items)

	var totalCommission float64
	for _, supplierID := range supplierIDs {
		commission, err := s.settleSupplier(ctx, o, supplierID, groups[supplierID])
		if err != nil {
			// One supplier's failure must not block the others.
			log.Printf("settlement for supplier %s on order %s failed: %v", supplierID, orderID, err)
			continue
		}
		totalCommission += commission
	}

	s.transferCommission(ctx, o.ID, totalCommission)

	if s.notifier != nil {
		s.notifier.Notify(ctx, o.UserID, "Paiement confirmé",
			fmt.Sprintf("Votre paiement de %.0f FCFA a été confirmé.", o.Total))
	}

	return nil
}

// settleSupplier freezes one supplier's distribution into a Payout row, then
// attempts to dispatch it. It returns the commission retained so the caller
// can accumulate the platform transfer.
func (s *service) settleSupplier(ctx context.Context, o *order.Order, supplierID uuid.UUID, items []*order.Item) (float64, error) {
	commissionRate := plan.DefaultCommissionRate
	if p, err := s.plans.GetActivePlan(ctx, supplierID.String()); err == nil {
		commissionRate = p.CommissionRate
	} else if err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to load active plan: %w", err)
	}

	rates, err := s.rates.ListBySupplier(ctx, supplierID.String())
	if err != nil {
		return 0, fmt.Errorf("failed to load shipping rates: %w", err)
	}

	subtotal, commission, shippingPrice, netAmount := computeDistribution(items, rates, commissionRate)

	payout := &Payout{
		ID:             uuid.New(),
		OrderID:        o.ID,
		SupplierID:     supplierID,
		Subtotal:       subtotal,
		CommissionRate: commissionRate,
		Commission:     commission,
		ShippingPrice:  shippingPrice,
		NetAmount:      netAmount,
		Status:         PayoutPending,
	}

	sup, err := s.suppliers.GetByID(ctx, supplierID.String())
	if err == nil {
		payout.PaymentMethod = string(sup.PaymentMethod)
		payout.PhoneNumber = sup.PaymentPhoneNumber
	} else {
		log.Printf("supplier %s lookup failed, payout stays pending: %v", supplierID, err)
	}

	// The obligation is durable before any network call: a crash from here
	// on leaves an auditable PENDING payout, never a lost one.
	if err := s.payouts.Create(ctx, payout); err != nil {
		return 0, fmt.Errorf("failed to create payout: %w", err)
	}

	if payout.PaymentMethod == "" || payout.PhoneNumber == "" {
		log.Printf("payout %s skipped: supplier %s has no payout destination configured", payout.ID, supplierID)
		return commission, nil
	}

	s.dispatch(ctx, payout)

	if sup != nil && s.notifier != nil {
		s.notifier.Notify(ctx, sup.UserID, "Nouvelle commande payée",
			fmt.Sprintf("Une commande de %.0f FCFA vous attend.", subtotal))
	}

	return commission, nil
}

// dispatch sends one payout to the gateway and records the outcome. It never
// returns an error: success and failure are both terminal writes on the row.
func (s *service) dispatch(ctx context.Context, p *Payout) {
	reference := fmt.Sprintf("Payout-Order-%s-Supplier-%s", p.OrderID, p.SupplierID)

	result, err := s.gateway.SendPayout(ctx, &payment.PayoutRequest{
		PhoneNumber: p.PhoneNumber,
		Method:      p.PaymentMethod,
		Amount:      p.NetAmount,
		Reference:   reference,
	})
	if err != nil {
		log.Printf("payout %s dispatch error: %v", p.ID, err)
		if uerr := s.payouts.MarkFailed(ctx, p.ID.String(), err.Error()); uerr != nil {
			log.Printf("payout %s could not be marked failed: %v", p.ID, uerr)
		}
		return
	}

	if !result.Success {
		log.Printf("payout %s refused by gateway: %s", p.ID, result.Error)
		if uerr := s.payouts.MarkFailed(ctx, p.ID.String(), result.Error); uerr != nil {
			log.Printf("payout %s could not be marked failed: %v", p.ID, uerr)
		}
		return
	}

	if uerr := s.payouts.MarkCompleted(ctx, p.ID.String(), result.TransactionID); uerr != nil {
		log.Printf("payout %s could not be marked completed: %v", p.ID, uerr)
	}
}

// transferCommission sends the platform's aggregate commission to the admin
// settlement account. Its outcome never affects supplier payouts or the order.
func (s *service) transferCommission(ctx context.Context, orderID uuid.UUID, totalCommission float64) {
	if totalCommission <= 0 || s.cfg.AdminPhoneNumber == "" {
		log.Printf("commission transfer skipped for order %s: nothing to transfer or no admin account", orderID)
		return
	}

	method := s.cfg.AdminPaymentMethod
	if method == "" {
		method = "WAVE"
	}

	result, err := s.gateway.SendPayout(ctx, &payment.PayoutRequest{
		PhoneNumber: s.cfg.AdminPhoneNumber,
		Method:      method,
		Amount:      totalCommission,
		Reference:   fmt.Sprintf("Admin-Commission-Order-%s", orderID),
	})
	if err != nil {
		log.Printf("commission transfer for order %s failed: %v", orderID, err)
		return
	}
	if !result.Success {
		log.Printf("commission transfer for order %s refused: %s", orderID, result.Error)
		return
	}
	log.Printf("commission of %.0f FCFA transferred for order %s (tx %s)", totalCommission, orderID, result.TransactionID)
}

func (s *service) Retry(ctx context.Context, payoutID string) (*Payout, error) {
	p, err := s.payouts.GetByID(ctx, payoutID)
	if err != nil {
		return nil, fmt.Errorf("payout not found: %w", err)
	}

	if p.Status == PayoutCompleted {
		return nil, ErrAlreadyCompleted
	}

	// A payout created while the supplier had no destination can be retried
	// once the profile is fixed.
	if p.PaymentMethod == "" || p.PhoneNumber == "" {
		sup, err := s.suppliers.GetByID(ctx, p.SupplierID.String())
		if err != nil {
			return nil, fmt.Errorf("supplier not found: %w", err)
		}
		if !sup.HasPayoutDestination() {
			return nil, fmt.Errorf("supplier %s has no payout destination configured", p.SupplierID)
		}
		p.PaymentMethod = string(sup.PaymentMethod)
		p.PhoneNumber = sup.PaymentPhoneNumber
		if err := s.payouts.UpdateDestination(ctx, payoutID, p.PaymentMethod, p.PhoneNumber); err != nil {
			return nil, err
		}
	}

	s.dispatch(ctx, p)

	return s.payouts.GetByID(ctx, payoutID)
}

func (s *service) ListPayouts(ctx context.Context) ([]*Payout, error) {
	return s.payouts.ListAll(ctx)
}

func (s *service) ListOrderPayouts(ctx context.Context, orderID string) ([]*Payout, error) {
	return s.payouts.ListByOrder(ctx, orderID)
}
