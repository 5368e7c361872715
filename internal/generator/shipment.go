package generator

import (
	"github.com/MoraFFox/syncolow-org-sub003/internal/dist"
	"github.com/MoraFFox/syncolow-org-sub003/internal/entity"
)

// ShipmentGenerator produces shipments for orders that have physically
// left the warehouse: pending and cancelled orders never ship.
type ShipmentGenerator struct {
	s *Sampler
}

func NewShipmentGenerator(seed int64) *ShipmentGenerator {
	return &ShipmentGenerator{s: NewSampler(seed, entity.KindShipments)}
}

func (g *ShipmentGenerator) Generate(orders []entity.Order) []entity.Shipment {
	var out []entity.Shipment
	for _, o := range orders {
		if o.Status == entity.OrderPending || o.Status == entity.OrderCancelled {
			continue
		}
		shp := entity.Shipment{
			ID:        g.s.ID("shp"),
			OrderID:   o.ID,
			Carrier:   dist.Pick(g.s.R, carriers),
			ShippedAt: o.OrderedAt.AddDate(0, 0, g.s.R.IntBetween(1, 3)),
			Status:    g.shipmentStatus(o.Status),
		}
		shp.Attempts = g.attempts(&shp)
		out = append(out, shp)
	}
	return out
}

func (g *ShipmentGenerator) shipmentStatus(orderStatus string) string {
	switch orderStatus {
	case entity.OrderDelivered:
		return entity.ShipmentDelivered
	case entity.OrderShipped:
		if g.s.R.Chance(0.1) {
			return entity.ShipmentFailed
		}
		return entity.ShipmentInTransit
	default: // confirmed: picking and packing
		return entity.ShipmentPreparing
	}
}

// attempts synthesizes the delivery attempt history: delivered shipments
// end on a success, possibly after failed tries; failed shipments carry
// only failures.
func (g *ShipmentGenerator) attempts(shp *entity.Shipment) []entity.DeliveryAttempt {
	var out []entity.DeliveryAttempt
	failed := 0
	if g.s.R.Chance(0.15) {
		failed = g.s.R.IntBetween(1, 2)
	}
	if shp.Status == entity.ShipmentFailed && failed == 0 {
		failed = 1
	}
	for i := 0; i < failed; i++ {
		out = append(out, entity.DeliveryAttempt{
			ID:          g.s.ID("dat"),
			ShipmentID:  shp.ID,
			AttemptedAt: shp.ShippedAt.AddDate(0, 0, i+1),
			Success:     false,
			FailReason:  dist.Pick(g.s.R, deliveryFailReasons),
		})
	}
	if shp.Status == entity.ShipmentDelivered {
		out = append(out, entity.DeliveryAttempt{
			ID:          g.s.ID("dat"),
			ShipmentID:  shp.ID,
			AttemptedAt: shp.ShippedAt.AddDate(0, 0, failed+1),
			Success:     true,
		})
	}
	return out
}
