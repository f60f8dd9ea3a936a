package order

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/catalog"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/shipping"
)

type fakeRepo struct {
	orders         map[uuid.UUID]*Order
	supplierOrders map[uuid.UUID]*SupplierOrder
	createCalls    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		orders:         make(map[uuid.UUID]*Order),
		supplierOrders: make(map[uuid.UUID]*SupplierOrder),
	}
}

func (r *fakeRepo) CreateOrder(ctx context.Context, o *Order) error {
	r.createCalls++
	r.orders[o.ID] = o
	for _, so := range o.SupplierOrders {
		r.supplierOrders[so.ID] = so
	}
	return nil
}

func (r *fakeRepo) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	o, ok := r.orders[uid]
	if !ok {
		return nil, fmt.Errorf("order not found")
	}
	return o, nil
}

func (r *fakeRepo) ListOrdersByUser(ctx context.Context, userID string) ([]*Order, error) {
	var out []*Order
	for _, o := range r.orders {
		if o.UserID.String() == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeRepo) ConfirmOrder(ctx context.Context, id string) (bool, error) {
	o, err := r.GetOrderByID(ctx, id)
	if err != nil {
		return false, err
	}
	if o.Status != StatusPending {
		return false, nil
	}
	o.Status = StatusConfirmed
	return true, nil
}

func (r *fakeRepo) GetSupplierOrder(ctx context.Context, id string) (*SupplierOrder, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	so, ok := r.supplierOrders[uid]
	if !ok {
		return nil, fmt.Errorf("supplier order not found")
	}
	return so, nil
}

func (r *fakeRepo) UpdateSupplierOrderStatus(ctx context.Context, id string, status SupplierOrderStatus) error {
	so, err := r.GetSupplierOrder(ctx, id)
	if err != nil {
		return err
	}
	so.Status = status
	return nil
}

type fakeProducts map[string]*catalog.Product

func (f fakeProducts) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	p, ok := f[id]
	if !ok {
		return nil, fmt.Errorf("no such product")
	}
	return p, nil
}

type fakeRates map[string][]*shipping.Rate

func (f fakeRates) ListBySupplier(ctx context.Context, supplierID string) ([]*shipping.Rate, error) {
	return f[supplierID], nil
}

// twoSupplierFixture models a cart spanning two suppliers: supplier one sells
// a 3500 FCFA bonnet shipped to Dakar for 1500, supplier two a 4500 FCFA sac
// shipped to Thiès for 2000.
type twoSupplierFixture struct {
	repo      *fakeRepo
	service   Service
	supplier1 uuid.UUID
	supplier2 uuid.UUID
	bonnetID  uuid.UUID
	sacID     uuid.UUID
	buyerID   uuid.UUID
	products  fakeProducts
}

func newTwoSupplierFixture() *twoSupplierFixture {
	f := &twoSupplierFixture{
		repo:      newFakeRepo(),
		supplier1: uuid.New(),
		supplier2: uuid.New(),
		bonnetID:  uuid.New(),
		sacID:     uuid.New(),
		buyerID:   uuid.New(),
	}
	f.products = fakeProducts{
		f.bonnetID.String(): {ID: f.bonnetID, SupplierID: f.supplier1, Name: "Bonnet crocheté", Price: 3500, Stock: 10, IsActive: true},
		f.sacID.String():    {ID: f.sacID, SupplierID: f.supplier2, Name: "Sac bandoulière", Price: 4500, Stock: 3, IsActive: true},
	}
	rates := fakeRates{
		f.supplier1.String(): {{SupplierID: f.supplier1, Zone: "Dakar", Price: 1500}},
		f.supplier2.String(): {{SupplierID: f.supplier2, Zone: "Thiès", Price: 2000}},
	}
	f.service = NewService(f.repo, f.products, rates, nil)
	return f
}

func (f *twoSupplierFixture) checkoutRequest() CheckoutRequest {
	return CheckoutRequest{
		UserID: f.buyerID.String(),
		Items: []CartItem{
			{ProductID: f.bonnetID.String(), Quantity: 2, ShippingZone: "Dakar"},
			{ProductID: f.sacID.String(), Quantity: 1, ShippingZone: "Thiès"},
		},
	}
}

func TestCheckoutSplitsCartPerSupplier(t *testing.T) {
	f := newTwoSupplierFixture()

	o, err := f.service.Checkout(context.Background(), f.checkoutRequest())
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	// 2x3500 + 1500 shipping + 4500 + 2000 shipping
	if o.Total != 15000 {
		t.Fatalf("expected total 15000, got %v", o.Total)
	}
	if len(o.SupplierOrders) != 2 {
		t.Fatalf("expected 2 supplier orders, got %d", len(o.SupplierOrders))
	}
	if len(o.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(o.Items))
	}
	if o.Status != StatusPending {
		t.Fatalf("expected new order PENDING, got %s", o.Status)
	}

	bySupplier := make(map[uuid.UUID]*SupplierOrder)
	for _, so := range o.SupplierOrders {
		bySupplier[so.SupplierID] = so
	}
	if so := bySupplier[f.supplier1]; so == nil || so.ShippingPrice != 1500 {
		t.Fatalf("supplier1 shipping price wrong: %+v", so)
	}
	if so := bySupplier[f.supplier2]; so == nil || so.ShippingPrice != 2000 {
		t.Fatalf("supplier2 shipping price wrong: %+v", so)
	}
}

func TestCheckoutSnapshotsProductPrice(t *testing.T) {
	f := newTwoSupplierFixture()

	o, err := f.service.Checkout(context.Background(), f.checkoutRequest())
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	// A later catalog price change must not touch the persisted line.
	f.products[f.bonnetID.String()].Price = 9999

	for _, item := range o.Items {
		if item.ProductID == f.bonnetID {
			if item.Price != 3500 {
				t.Fatalf("expected snapshotted price 3500, got %v", item.Price)
			}
			return
		}
	}
	t.Fatal("bonnet line missing from order")
}

func TestCheckoutUnknownProductAbortsEverything(t *testing.T) {
	f := newTwoSupplierFixture()

	req := f.checkoutRequest()
	req.Items = append(req.Items, CartItem{ProductID: uuid.NewString(), Quantity: 1})

	_, err := f.service.Checkout(context.Background(), req)
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if f.repo.createCalls != 0 {
		t.Fatalf("expected nothing persisted, got %d create calls", f.repo.createCalls)
	}
}

func TestCheckoutInsufficientStockAbortsEverything(t *testing.T) {
	f := newTwoSupplierFixture()

	req := f.checkoutRequest()
	req.Items[1].Quantity = 4 // only 3 in stock

	_, err := f.service.Checkout(context.Background(), req)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if f.repo.createCalls != 0 {
		t.Fatalf("expected nothing persisted, got %d create calls", f.repo.createCalls)
	}
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	f := newTwoSupplierFixture()
	_, err := f.service.Checkout(context.Background(), CheckoutRequest{UserID: f.buyerID.String()})
	if err == nil {
		t.Fatal("expected error for empty cart")
	}
}

func TestCheckoutRejectsNonPositiveQuantity(t *testing.T) {
	f := newTwoSupplierFixture()
	req := f.checkoutRequest()
	req.Items[0].Quantity = 0
	if _, err := f.service.Checkout(context.Background(), req); err == nil {
		t.Fatal("expected error for zero quantity")
	}
}

func TestSupplierOrderStatusTransitions(t *testing.T) {
	f := newTwoSupplierFixture()
	o, err := f.service.Checkout(context.Background(), f.checkoutRequest())
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	soID := o.SupplierOrders[0].ID.String()

	if _, err := f.service.UpdateSupplierOrderStatus(context.Background(), soID,
		UpdateSupplierOrderStatusRequest{Status: "DELIVERED"}); err == nil {
		t.Fatal("expected PENDING -> DELIVERED to be rejected")
	}

	for _, step := range []string{"PREPARING", "SHIPPED", "DELIVERED"} {
		so, err := f.service.UpdateSupplierOrderStatus(context.Background(), soID,
			UpdateSupplierOrderStatusRequest{Status: step})
		if err != nil {
			t.Fatalf("transition to %s failed: %v", step, err)
		}
		if string(so.Status) != step {
			t.Fatalf("expected status %s, got %s", step, so.Status)
		}
	}

	if _, err := f.service.UpdateSupplierOrderStatus(context.Background(), soID,
		UpdateSupplierOrderStatusRequest{Status: "PREPARING"}); err == nil {
		t.Fatal("expected DELIVERED to be terminal")
	}
}
