package settlement

import (
	"math"

	"github.com/google/uuid"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/order"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/shipping"
)

// groupItemsBySupplier regroups the persisted order lines by owning supplier.
// Settlement works from the durable rows, not from whatever grouping the
// checkout held in memory: time has passed and only persisted state is
// authoritative here. First-seen supplier order is preserved.
func groupItemsBySupplier(items []*order.Item) ([]uuid.UUID, map[uuid.UUID][]*order.Item) {
	groups := make(map[uuid.UUID][]*order.Item)
	var seen []uuid.UUID
	for _, item := range items {
		if _, ok := groups[item.SupplierID]; !ok {
			seen = append(seen, item.SupplierID)
		}
		groups[item.SupplierID] = append(groups[item.SupplierID], item)
	}
	return seen, groups
}

// computeDistribution prices one supplier's share of a confirmed order. The
// result is frozen onto the Payout row; nothing here is ever recomputed for
// a retry.
func computeDistribution(items []*order.Item, rates []*shipping.Rate, commissionRate float64) (subtotal, commission, shippingPrice, netAmount float64) {
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}

	commission = math.Round(subtotal * commissionRate / 100)

	zones := make([]string, 0, len(items))
	for _, item := range items {
		zones = append(zones, item.ShippingZone)
	}
	shippingPrice = shipping.CostForZones(rates, zones)

	netAmount = subtotal - commission + shippingPrice
	return subtotal, commission, shippingPrice, netAmount
}
