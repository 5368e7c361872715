package generator

import (
	"github.com/MoraFFox/syncolow-org-sub003/internal/entity"
)

// InventoryGenerator derives stock-ledger movements from the order book.
// Every product opens with a seed restock; each non-cancelled order's
// line items become fulfillment decrements in timestamp order, with
// automatic restocks whenever stock would go negative. A small share of
// days get manual adjustments (shrinkage, recounts).
type InventoryGenerator struct {
	s *Sampler
}

func NewInventoryGenerator(seed int64) *InventoryGenerator {
	return &InventoryGenerator{s: NewSampler(seed, entity.KindInventory)}
}

// Generate emits the movement ledger. Orders must be in ascending
// timestamp order (the order generator guarantees this); the running
// per-product stock level never goes negative.
func (g *InventoryGenerator) Generate(products []entity.Product, orders []entity.Order) []entity.InventoryMovement {
	stock := make(map[string]int, len(products))
	var out []entity.InventoryMovement

	// Opening stock per product.
	for _, p := range products {
		qty := g.s.R.IntBetween(200, 800)
		stock[p.ID] = qty
		out = append(out, entity.InventoryMovement{
			ID:         g.s.ID("inv"),
			ProductID:  p.ID,
			Type:       entity.MovementRestock,
			Quantity:   qty,
			StockAfter: qty,
			OccurredAt: p.CreatedAt,
		})
	}

	for _, o := range orders {
		if o.Status == entity.OrderCancelled {
			continue
		}
		for _, item := range o.Items {
			if stock[item.ProductID] < item.Quantity {
				refill := item.Quantity + g.s.R.IntBetween(100, 500)
				stock[item.ProductID] += refill
				out = append(out, entity.InventoryMovement{
					ID:         g.s.ID("inv"),
					ProductID:  item.ProductID,
					Type:       entity.MovementRestock,
					Quantity:   refill,
					StockAfter: stock[item.ProductID],
					OccurredAt: o.OrderedAt,
				})
			}
			stock[item.ProductID] -= item.Quantity
			out = append(out, entity.InventoryMovement{
				ID:         g.s.ID("inv"),
				ProductID:  item.ProductID,
				OrderID:    o.ID,
				Type:       entity.MovementFulfillment,
				Quantity:   -item.Quantity,
				StockAfter: stock[item.ProductID],
				OccurredAt: o.OrderedAt,
			})
		}

		// Occasional manual correction against a random line's product.
		if g.s.R.Chance(0.02) && len(o.Items) > 0 {
			productID := o.Items[g.s.R.Intn(len(o.Items))].ProductID
			delta := g.s.R.IntBetween(1, 20)
			stock[productID] += delta
			out = append(out, entity.InventoryMovement{
				ID:         g.s.ID("inv"),
				ProductID:  productID,
				Type:       entity.MovementAdjustment,
				Quantity:   delta,
				StockAfter: stock[productID],
				OccurredAt: o.OrderedAt,
			})
		}
	}
	return out
}
