package settlement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/order"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/shipping"
)

func TestComputeDistributionRoundsCommission(t *testing.T) {
	supplierID := uuid.New()
	items := []*order.Item{
		{SupplierID: supplierID, Quantity: 1, Price: 333, ShippingZone: "Dakar"},
	}
	rates := []*shipping.Rate{{SupplierID: supplierID, Zone: "Dakar", Price: 1000}}

	subtotal, commission, shippingPrice, netAmount := computeDistribution(items, rates, 15)

	if subtotal != 333 {
		t.Fatalf("expected subtotal 333, got %v", subtotal)
	}
	// 49.95 rounds to the nearest whole franc.
	if commission != 50 {
		t.Fatalf("expected commission 50, got %v", commission)
	}
	if shippingPrice != 1000 {
		t.Fatalf("expected shipping 1000, got %v", shippingPrice)
	}
	if netAmount != 1283 {
		t.Fatalf("expected net 333-50+1000=1283, got %v", netAmount)
	}
}

func TestComputeDistributionChargesDistinctZonesOnce(t *testing.T) {
	supplierID := uuid.New()
	items := []*order.Item{
		{SupplierID: supplierID, Quantity: 1, Price: 2000, ShippingZone: "Dakar"},
		{SupplierID: supplierID, Quantity: 1, Price: 2000, ShippingZone: "dakar"},
		{SupplierID: supplierID, Quantity: 1, Price: 2000, ShippingZone: "Thiès"},
	}
	rates := []*shipping.Rate{
		{SupplierID: supplierID, Zone: "Dakar", Price: 1500},
		{SupplierID: supplierID, Zone: "Thiès", Price: 2000},
	}

	_, _, shippingPrice, _ := computeDistribution(items, rates, 15)
	if shippingPrice != 3500 {
		t.Fatalf("expected one charge per distinct zone (3500), got %v", shippingPrice)
	}
}

func TestGroupItemsBySupplierKeepsFirstSeenOrder(t *testing.T) {
	s1, s2 := uuid.New(), uuid.New()
	items := []*order.Item{
		{SupplierID: s1, Quantity: 1, Price: 100},
		{SupplierID: s2, Quantity: 1, Price: 200},
		{SupplierID: s1, Quantity: 1, Price: 300},
	}

	ids, groups := groupItemsBySupplier(items)

	if len(ids) != 2 || ids[0] != s1 || ids[1] != s2 {
		t.Fatalf("expected first-seen order [s1 s2], got %v", ids)
	}
	if len(groups[s1]) != 2 || len(groups[s2]) != 1 {
		t.Fatalf("unexpected grouping: s1=%d s2=%d", len(groups[s1]), len(groups[s2]))
	}
}
