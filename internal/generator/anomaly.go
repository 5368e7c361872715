package generator

import (
	"github.com/MoraFFox/syncolow-org-sub003/internal/dist"
	"github.com/MoraFFox/syncolow-org-sub003/internal/entity"
	"github.com/MoraFFox/syncolow-org-sub003/internal/scenario"
	"github.com/MoraFFox/syncolow-org-sub003/internal/timeseries"
)

// InjectOrderAnomalies mutates a fraction of generated orders per the
// scenario's anomaly configuration. Spread mode runs an independent
// Bernoulli trial per order; burst mode concentrates anomalies in
// contiguous temporal windows (orders are in timestamp order, so a
// window reads as an outage). Returns the number of orders carrying an
// anomaly afterwards.
//
// Handlers are idempotent: an order records which anomaly type hit it,
// and overlapping burst windows or repeated trials leave it unchanged.
func InjectOrderAnomalies(rng *dist.Rand, orders []entity.Order, profile *scenario.Profile) int {
	rate := profile.EffectiveAnomalyRate()
	if rate <= 0 || len(orders) == 0 {
		return 0
	}
	types := profile.AnomalyTypes()
	mutate := func(o *entity.Order) {
		applyAnomaly(rng, o, dist.Pick(rng, types))
	}

	switch profile.Clustering() {
	case scenario.ClusterBurst:
		timeseries.InjectBurst(rng, orders, rate, mutate)
	default:
		timeseries.InjectSpread(rng, orders, rate, mutate)
	}

	hit := 0
	for i := range orders {
		if orders[i].Anomaly != "" {
			hit++
		}
	}
	return hit
}

// applyAnomaly mutates one order for the given anomaly type. No-op when
// the order already carries an anomaly (idempotency across overlapping
// burst windows) or when the order's state makes the anomaly
// meaningless.
func applyAnomaly(rng *dist.Rand, o *entity.Order, kind string) {
	if o.Anomaly != "" {
		return
	}
	switch kind {
	case scenario.AnomalyPaymentDelay:
		// A paid order regresses to overdue; its settlement evaporates.
		if o.PaymentStatus != entity.PaymentPaid {
			return
		}
		o.PaymentStatus = entity.PaymentOverdue
		o.PaidAt = nil
		o.Anomaly = kind

	case scenario.AnomalyDeliveryDelay:
		if o.Status == entity.OrderCancelled {
			return
		}
		o.DeliveryDate = o.DeliveryDate.AddDate(0, 0, rng.IntBetween(2, 9))
		if o.Status == entity.OrderDelivered {
			o.Status = entity.OrderShipped
		}
		o.Anomaly = kind

	case scenario.AnomalyOrderCancellation:
		if o.Status == entity.OrderCancelled {
			return
		}
		o.Status = entity.OrderCancelled
		o.CancelReason = dist.Pick(rng, cancelReasons)
		if o.PaymentStatus == entity.PaymentPaid {
			o.PaymentStatus = entity.PaymentPending
			o.PaidAt = nil
		}
		o.Anomaly = kind
	}
}
