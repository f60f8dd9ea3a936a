package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/catalog"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/shipping"
)

var (
	// ErrProductNotFound means a cart line referenced an unknown product.
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientStock means a cart line asked for more units than are in stock.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductSource reads current product rows at composition time.
type ProductSource interface {
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
}

// RateSource reads a supplier's published shipping rates.
type RateSource interface {
	ListBySupplier(ctx context.Context, supplierID string) ([]*shipping.Rate, error)
}

// supplierGroup is one supplier's slice of a checkout: its resolved items,
// their subtotal and the shipping cost over the distinct zones requested.
// It lives only for the duration of one checkout; only its effects persist.
type supplierGroup struct {
	SupplierID    uuid.UUID
	Items         []*Item
	Subtotal      float64
	ShippingPrice float64
}

// settlementPlan is the validated, fully-priced result of composing a cart.
type settlementPlan struct {
	Groups []*supplierGroup
	Total  float64
}

// compose resolves each cart line against the catalog, groups lines by owning
// supplier and prices every group. It performs reads only; any failure aborts
// the whole checkout before anything is written.
func compose(ctx context.Context, products ProductSource, rates RateSource, cart []CartItem) (*settlementPlan, error) {
	groups := make(map[uuid.UUID]*supplierGroup)
	var ordered []*supplierGroup

	for _, line := range cart {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be > 0 for product %s", line.ProductID)
		}

		p, err := products.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
		}
		if p.Stock < line.Quantity {
			return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, p.Name)
		}

		g, ok := groups[p.SupplierID]
		if !ok {
			g = &supplierGroup{SupplierID: p.SupplierID}
			groups[p.SupplierID] = g
			ordered = append(ordered, g)
		}

		g.Items = append(g.Items, &Item{
			ID:           uuid.New(),
			ProductID:    p.ID,
			SupplierID:   p.SupplierID,
			Quantity:     line.Quantity,
			Price:        p.Price,
			Color:        line.Color,
			Size:         line.Size,
			ShippingZone: line.ShippingZone,
		})
		g.Subtotal += p.Price * float64(line.Quantity)
	}

	var total float64
	for _, g := range ordered {
		supplierRates, err := rates.ListBySupplier(ctx, g.SupplierID.String())
		if err != nil {
			return nil, fmt.Errorf("failed to load shipping rates for supplier %s: %w", g.SupplierID, err)
		}
		g.ShippingPrice = shipping.CostForZones(supplierRates, zonesOf(g.Items))
		total += g.Subtotal + g.ShippingPrice
	}

	return &settlementPlan{Groups: ordered, Total: total}, nil
}

// zonesOf collects the shipping zones requested by a set of items, duplicates included.
func zonesOf(items []*Item) []string {
	zones := make([]string, 0, len(items))
	for _, item := range items {
		zones = append(zones, item.ShippingZone)
	}
	return zones
}
