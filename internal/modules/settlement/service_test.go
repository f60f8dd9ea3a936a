package settlement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/order"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/payment"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/plan"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/shipping"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/supplier"
)

// ── in-memory collaborators ──────────────────────────────────────────────────

type fakePayoutRepo struct {
	payouts []*Payout
}

func (r *fakePayoutRepo) Create(ctx context.Context, p *Payout) error {
	r.payouts = append(r.payouts, p)
	return nil
}

func (r *fakePayoutRepo) GetByID(ctx context.Context, id string) (*Payout, error) {
	for _, p := range r.payouts {
		if p.ID.String() == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("payout not found")
}

func (r *fakePayoutRepo) ListByOrder(ctx context.Context, orderID string) ([]*Payout, error) {
	var out []*Payout
	for _, p := range r.payouts {
		if p.OrderID.String() == orderID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePayoutRepo) ListAll(ctx context.Context) ([]*Payout, error) {
	return r.payouts, nil
}

func (r *fakePayoutRepo) MarkCompleted(ctx context.Context, id string, transactionID string) error {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.Status = PayoutCompleted
	p.TransactionID = transactionID
	p.ErrorMessage = ""
	return nil
}

func (r *fakePayoutRepo) MarkFailed(ctx context.Context, id string, errorMessage string) error {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.Status = PayoutFailed
	p.ErrorMessage = errorMessage
	return nil
}

func (r *fakePayoutRepo) UpdateDestination(ctx context.Context, id, method, phoneNumber string) error {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.PaymentMethod = method
	p.PhoneNumber = phoneNumber
	return nil
}

type fakeOrderStore struct{ order *order.Order }

func (s *fakeOrderStore) GetOrderByID(ctx context.Context, id string) (*order.Order, error) {
	if s.order == nil || s.order.ID.String() != id {
		return nil, fmt.Errorf("order not found")
	}
	return s.order, nil
}

func (s *fakeOrderStore) ConfirmOrder(ctx context.Context, id string) (bool, error) {
	if s.order == nil || s.order.ID.String() != id {
		return false, fmt.Errorf("order not found")
	}
	if s.order.Status != order.StatusPending {
		return false, nil
	}
	s.order.Status = order.StatusConfirmed
	return true, nil
}

type fakeSupplierStore map[string]*supplier.Supplier

func (s fakeSupplierStore) GetByID(ctx context.Context, id string) (*supplier.Supplier, error) {
	sup, ok := s[id]
	if !ok {
		return nil, fmt.Errorf("supplier not found")
	}
	return sup, nil
}

type fakePlanStore map[string]*plan.Plan

func (s fakePlanStore) GetActivePlan(ctx context.Context, supplierID string) (*plan.Plan, error) {
	p, ok := s[supplierID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

type fakeRateStore map[string][]*shipping.Rate

func (s fakeRateStore) ListBySupplier(ctx context.Context, supplierID string) ([]*shipping.Rate, error) {
	return s[supplierID], nil
}

type fakePaymentStore struct{ payments []*payment.Payment }

func (s *fakePaymentStore) Create(ctx context.Context, p *payment.Payment) error {
	s.payments = append(s.payments, p)
	return nil
}

// fakeGateway scripts payout outcomes per destination phone number.
type fakeGateway struct {
	refuse map[string]string // phone -> provider refusal reason
	broken map[string]bool   // phone -> transport error
	calls  []*payment.PayoutRequest
}

func (g *fakeGateway) InitiateCheckout(ctx context.Context, req *payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	return nil, fmt.Errorf("not used in settlement")
}

func (g *fakeGateway) VerifyCheckout(ctx context.Context, token string) (*payment.VerifyResult, error) {
	return nil, fmt.Errorf("not used in settlement")
}

func (g *fakeGateway) SendPayout(ctx context.Context, req *payment.PayoutRequest) (*payment.PayoutResult, error) {
	g.calls = append(g.calls, req)
	if g.broken[req.PhoneNumber] {
		return nil, fmt.Errorf("connection reset")
	}
	if reason, ok := g.refuse[req.PhoneNumber]; ok {
		return &payment.PayoutResult{Success: false, Error: reason}, nil
	}
	return &payment.PayoutResult{Success: true, TransactionID: "txn_" + req.PhoneNumber}, nil
}

// ── fixture ──────────────────────────────────────────────────────────────────

// settleFixture models a paid 15000 FCFA order spanning two suppliers:
// supplier one sold two 3500 FCFA bonnets shipped to Dakar (1500), supplier
// two one 4500 FCFA sac shipped to Thiès (2000).
type settleFixture struct {
	payouts   *fakePayoutRepo
	orders    *fakeOrderStore
	suppliers fakeSupplierStore
	plans     fakePlanStore
	rates     fakeRateStore
	payments  *fakePaymentStore
	gateway   *fakeGateway
	cfg       Config

	orderID   uuid.UUID
	supplier1 uuid.UUID
	supplier2 uuid.UUID
}

func newSettleFixture() *settleFixture {
	f := &settleFixture{
		payouts:   &fakePayoutRepo{},
		plans:     fakePlanStore{},
		payments:  &fakePaymentStore{},
		gateway:   &fakeGateway{refuse: map[string]string{}, broken: map[string]bool{}},
		orderID:   uuid.New(),
		supplier1: uuid.New(),
		supplier2: uuid.New(),
	}

	f.orders = &fakeOrderStore{order: &order.Order{
		ID:     f.orderID,
		UserID: uuid.New(),
		Total:  15000,
		Status: order.StatusPending,
		Items: []*order.Item{
			{ID: uuid.New(), OrderID: f.orderID, ProductID: uuid.New(), SupplierID: f.supplier1,
				Quantity: 2, Price: 3500, ShippingZone: "Dakar"},
			{ID: uuid.New(), OrderID: f.orderID, ProductID: uuid.New(), SupplierID: f.supplier2,
				Quantity: 1, Price: 4500, ShippingZone: "Thiès"},
		},
	}}

	f.suppliers = fakeSupplierStore{
		f.supplier1.String(): {ID: f.supplier1, UserID: uuid.New(), ShopName: "Atelier Awa",
			Status: supplier.StatusActive, PaymentMethod: supplier.MethodWave, PaymentPhoneNumber: "770000001"},
		f.supplier2.String(): {ID: f.supplier2, UserID: uuid.New(), ShopName: "Ndeye Crochet",
			Status: supplier.StatusActive, PaymentMethod: supplier.MethodOrangeMoney, PaymentPhoneNumber: "780000002"},
	}

	f.rates = fakeRateStore{
		f.supplier1.String(): {{SupplierID: f.supplier1, Zone: "Dakar", Price: 1500}},
		f.supplier2.String(): {{SupplierID: f.supplier2, Zone: "Thiès", Price: 2000}},
	}

	return f
}

func (f *settleFixture) newService() Service {
	return NewService(f.payouts, f.orders, f.suppliers, f.plans, f.rates, f.payments,
		f.gateway, nil, f.cfg)
}

func (f *settleFixture) payoutFor(t *testing.T, supplierID uuid.UUID) *Payout {
	t.Helper()
	for _, p := range f.payouts.payouts {
		if p.SupplierID == supplierID {
			return p
		}
	}
	t.Fatalf("no payout for supplier %s", supplierID)
	return nil
}

// ── tests ────────────────────────────────────────────────────────────────────

func TestSettleCreatesOnePayoutPerSupplier(t *testing.T) {
	f := newSettleFixture()
	svc := f.newService()

	if err := svc.Settle(context.Background(), f.orderID.String(), "WAVE", "tok_1", "txn_1"); err != nil {
		t.Fatalf("settle failed: %v", err)
	}

	if f.orders.order.Status != order.StatusConfirmed {
		t.Fatalf("expected order CONFIRMED, got %s", f.orders.order.Status)
	}
	if len(f.payments.payments) != 1 || f.payments.payments[0].Amount != 15000 {
		t.Fatalf("expected one payment of 15000, got %+v", f.payments.payments)
	}
	if len(f.payouts.payouts) != 2 {
		t.Fatalf("expected 2 payouts, got %d", len(f.payouts.payouts))
	}

	// Default 15% commission: 7000 - 1050 + 1500 and 4500 - 675 + 2000.
	p1 := f.payoutFor(t, f.supplier1)
	if p1.Subtotal != 7000 || p1.Commission != 1050 || p1.ShippingPrice != 1500 || p1.NetAmount != 7450 {
		t.Fatalf("supplier1 distribution wrong: %+v", p1)
	}
	if p1.Status != PayoutCompleted {
		t.Fatalf("expected supplier1 payout COMPLETED, got %s", p1.Status)
	}

	p2 := f.payoutFor(t, f.supplier2)
	if p2.Subtotal != 4500 || p2.Commission != 675 || p2.ShippingPrice != 2000 || p2.NetAmount != 5825 {
		t.Fatalf("supplier2 distribution wrong: %+v", p2)
	}
	if p2.Status != PayoutCompleted {
		t.Fatalf("expected supplier2 payout COMPLETED, got %s", p2.Status)
	}
}

func TestSettleIsIdempotent(t *testing.T) {
	f := newSettleFixture()
	svc := f.newService()

	if err := svc.Settle(context.Background(), f.orderID.String(), "WAVE", "tok_1", "txn_1"); err != nil {
		t.Fatalf("first settle failed: %v", err)
	}
	payoutsAfterFirst := len(f.payouts.payouts)
	paymentsAfterFirst := len(f.payments.payments)
	callsAfterFirst := len(f.gateway.calls)

	// The gateway redelivers the same notification.
	if err := svc.Settle(context.Background(), f.orderID.String(), "WAVE", "tok_1", "txn_1"); err != nil {
		t.Fatalf("duplicate settle should be a no-op, got %v", err)
	}

	if len(f.payouts.payouts) != payoutsAfterFirst {
		t.Fatalf("duplicate settle created payouts: %d -> %d", payoutsAfterFirst, len(f.payouts.payouts))
	}
	if len(f.payments.payments) != paymentsAfterFirst {
		t.Fatalf("duplicate settle recorded payments: %d -> %d", paymentsAfterFirst, len(f.payments.payments))
	}
	if len(f.gateway.calls) != callsAfterFirst {
		t.Fatalf("duplicate settle hit the gateway: %d -> %d", callsAfterFirst, len(f.gateway.calls))
	}
}

func TestSettleUsesActivePlanCommissionRate(t *testing.T) {
	f := newSettleFixture()
	f.plans[f.supplier1.String()] = &plan.Plan{Name: "PREMIUM", CommissionRate: 10}
	svc := f.newService()

	if err := svc.Settle(context.Background(), f.orderID.String(), "WAVE", "tok_1", "txn_1"); err != nil {
		t.Fatalf("settle failed: %v", err)
	}

	p1 := f.payoutFor(t, f.supplier1)
	if p1.CommissionRate != 10 || p1.Commission != 700 || p1.NetAmount != 7800 {
		t.Fatalf("expected 10%% plan rate applied, got %+v", p1)
	}

	// Supplier two has no plan and stays on the default rate.
	p2 := f.payoutFor(t, f.supplier2)
	if p2.CommissionRate != plan.DefaultCommissionRate || p2.Commission != 675 {
		t.Fatalf("expected default rate for supplier2, got %+v", p2)
	}
}

func TestSettleSupplierFailuresAreIsolated(t *testing.T) {
	f := newSettleFixture()
	f.gateway.refuse["770000001"] = "account blocked"
	svc := f.newService()

	if err := svc.Settle(context.Background(), f.orderID.String(), "WAVE", "tok_1", "txn_1"); err != nil {
		t.Fatalf("settle failed: %v", err)
	}

	p1 := f.payoutFor(t, f.supplier1)
	if p1.Status != PayoutFailed || p1.ErrorMessage != "account blocked" {
		t.Fatalf("expected supplier1 payout FAILED with reason, got %+v", p1)
	}

	p2 := f.payoutFor(t, f.supplier2)
	if p2.Status != PayoutCompleted {
		t.Fatalf("supplier1 failure must not block supplier2, got %s", p2.Status)
	}
}

func TestSettleTransportErrorMarksPayoutFailed(t *testing.T) {
	f := newSettleFixture()
	f.gateway.broken["780000002"] = true
	svc := f.newService()

	if err := svc.Settle(context.Background(), f.orderID.String(), "WAVE", "tok_1", "txn_1"); err != nil {
		t.Fatalf("settle failed: %v", err)
	}

	p2 := f.payoutFor(t, f.supplier2)
	if p2.Status != PayoutFailed || p2.ErrorMessage == "" {
		t.Fatalf("expected supplier2 payout FAILED with transport reason, got %+v", p2)
	}
}

func TestSettleWithoutDestinationStaysPending(t *testing.T) {
	f := newSettleFixture()
	f.suppliers[f.supplier1.String()].PaymentMethod = ""
	f.suppliers[f.supplier1.String()].PaymentPhoneNumber = ""
	svc := f.newService()

	if err := svc.Settle(context.Background(), f.orderID.String(), "WAVE", "tok_1", "txn_1"); err != nil {
		t.Fatalf("settle failed: %v", err)
	}

	p1 := f.payoutFor(t, f.supplier1)
	if p1.Status != PayoutPending {
		t.Fatalf("expected payout without destination to stay PENDING, got %s", p1.Status)
	}
	// The amounts are frozen even though nothing was dispatched.
	if p1.NetAmount != 7450 {
		t.Fatalf("expected frozen net amount 7450, got %v", p1.NetAmount)
	}
	for _, call := range f.gateway.calls {
		if call.PhoneNumber == "" {
			t.Fatal("gateway called with empty destination")
		}
	}
}

func TestSettleTransfersAggregateCommission(t *testing.T) {
	f := newSettleFixture()
	f.cfg = Config{AdminPhoneNumber: "760000000", AdminPaymentMethod: "WAVE"}
	svc := f.newService()

	if err := svc.Settle(context.Background(), f.orderID.String(), "WAVE", "tok_1", "txn_1"); err != nil {
		t.Fatalf("settle failed: %v", err)
	}

	var adminCall *payment.PayoutRequest
	for _, call := range f.gateway.calls {
		if call.PhoneNumber == "760000000" {
			adminCall = call
		}
	}
	if adminCall == nil {
		t.Fatal("expected a commission transfer to the admin account")
	}
	// 1050 + 675 across both suppliers.
	if adminCall.Amount != 1725 {
		t.Fatalf("expected commission transfer of 1725, got %v", adminCall.Amount)
	}
}

func TestSettleUnknownOrder(t *testing.T) {
	f := newSettleFixture()
	svc := f.newService()

	if err := svc.Settle(context.Background(), uuid.NewString(), "WAVE", "tok", "txn"); err == nil {
		t.Fatal("expected error for unknown order")
	}
}

func TestRetryRejectsCompletedPayout(t *testing.T) {
	f := newSettleFixture()
	svc := f.newService()

	if err := svc.Settle(context.Background(), f.orderID.String(), "WAVE", "tok_1", "txn_1"); err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	p1 := f.payoutFor(t, f.supplier1)

	_, err := svc.Retry(context.Background(), p1.ID.String())
	if !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}
}

func TestRetryResendsFrozenNetAmount(t *testing.T) {
	f := newSettleFixture()
	f.gateway.refuse["770000001"] = "temporarily unavailable"
	svc := f.newService()

	if err := svc.Settle(context.Background(), f.orderID.String(), "WAVE", "tok_1", "txn_1"); err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	p1 := f.payoutFor(t, f.supplier1)
	if p1.Status != PayoutFailed {
		t.Fatalf("expected FAILED before retry, got %s", p1.Status)
	}

	// The supplier's plan changes between settlement and retry; the retry
	// still pays the amount recorded at settlement time.
	f.plans[f.supplier1.String()] = &plan.Plan{Name: "ULTIMATE", CommissionRate: 5}
	delete(f.gateway.refuse, "770000001")

	retried, err := svc.Retry(context.Background(), p1.ID.String())
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if retried.Status != PayoutCompleted {
		t.Fatalf("expected COMPLETED after retry, got %s", retried.Status)
	}
	if retried.NetAmount != 7450 {
		t.Fatalf("retry must not recompute amounts, got %v", retried.NetAmount)
	}

	last := f.gateway.calls[len(f.gateway.calls)-1]
	if last.Amount != 7450 {
		t.Fatalf("expected gateway to receive frozen 7450, got %v", last.Amount)
	}
}

func TestRetryFillsDestinationOnceConfigured(t *testing.T) {
	f := newSettleFixture()
	f.suppliers[f.supplier1.String()].PaymentMethod = ""
	f.suppliers[f.supplier1.String()].PaymentPhoneNumber = ""
	svc := f.newService()

	if err := svc.Settle(context.Background(), f.orderID.String(), "WAVE", "tok_1", "txn_1"); err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	p1 := f.payoutFor(t, f.supplier1)
	if p1.Status != PayoutPending {
		t.Fatalf("expected PENDING before profile fix, got %s", p1.Status)
	}

	// The supplier fixes their profile, then an operator retries.
	f.suppliers[f.supplier1.String()].PaymentMethod = supplier.MethodWave
	f.suppliers[f.supplier1.String()].PaymentPhoneNumber = "770000001"

	retried, err := svc.Retry(context.Background(), p1.ID.String())
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if retried.Status != PayoutCompleted {
		t.Fatalf("expected COMPLETED after retry, got %s", retried.Status)
	}
	if retried.PhoneNumber != "770000001" {
		t.Fatalf("expected destination filled from supplier profile, got %q", retried.PhoneNumber)
	}
}

func TestRetryWithDestinationStillMissing(t *testing.T) {
	f := newSettleFixture()
	f.suppliers[f.supplier1.String()].PaymentMethod = ""
	f.suppliers[f.supplier1.String()].PaymentPhoneNumber = ""
	svc := f.newService()

	if err := svc.Settle(context.Background(), f.orderID.String(), "WAVE", "tok_1", "txn_1"); err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	p1 := f.payoutFor(t, f.supplier1)

	if _, err := svc.Retry(context.Background(), p1.ID.String()); err == nil {
		t.Fatal("expected retry to fail while the supplier has no destination")
	}
	if p1.Status != PayoutPending {
		t.Fatalf("expected payout to stay PENDING, got %s", p1.Status)
	}
}
