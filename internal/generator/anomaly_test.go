package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MoraFFox/syncolow-org-sub003/internal/dist"
	"github.com/MoraFFox/syncolow-org-sub003/internal/entity"
	"github.com/MoraFFox/syncolow-org-sub003/internal/scenario"
)

func paidOrder() entity.Order {
	paidAt := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	return entity.Order{
		ID:            "ord_000001",
		Status:        entity.OrderDelivered,
		PaymentStatus: entity.PaymentPaid,
		PaidAt:        &paidAt,
		OrderedAt:     time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC),
		DeliveryDate:  time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
	}
}

func TestApplyAnomaly_PaymentDelay(t *testing.T) {
	rng := dist.New(1)

	o := paidOrder()
	applyAnomaly(rng, &o, scenario.AnomalyPaymentDelay)
	assert.Equal(t, entity.PaymentOverdue, o.PaymentStatus)
	assert.Nil(t, o.PaidAt)
	assert.Equal(t, scenario.AnomalyPaymentDelay, o.Anomaly)

	// Unpaid orders have no settlement to delay.
	unpaid := paidOrder()
	unpaid.PaymentStatus = entity.PaymentPending
	unpaid.PaidAt = nil
	applyAnomaly(rng, &unpaid, scenario.AnomalyPaymentDelay)
	assert.Empty(t, unpaid.Anomaly)
}

func TestApplyAnomaly_DeliveryDelay(t *testing.T) {
	rng := dist.New(1)

	o := paidOrder()
	before := o.DeliveryDate
	applyAnomaly(rng, &o, scenario.AnomalyDeliveryDelay)
	assert.Equal(t, scenario.AnomalyDeliveryDelay, o.Anomaly)
	assert.True(t, o.DeliveryDate.After(before))
	assert.Equal(t, entity.OrderShipped, o.Status, "a delayed delivery cannot have arrived")

	cancelled := paidOrder()
	cancelled.Status = entity.OrderCancelled
	applyAnomaly(rng, &cancelled, scenario.AnomalyDeliveryDelay)
	assert.Empty(t, cancelled.Anomaly)
}

func TestApplyAnomaly_OrderCancellation(t *testing.T) {
	rng := dist.New(1)

	o := paidOrder()
	applyAnomaly(rng, &o, scenario.AnomalyOrderCancellation)
	assert.Equal(t, entity.OrderCancelled, o.Status)
	assert.NotEmpty(t, o.CancelReason)
	assert.Equal(t, entity.PaymentPending, o.PaymentStatus)
	assert.Nil(t, o.PaidAt)
}

// Overlapping burst windows can hand the same order to a handler more
// than once; the marker field makes the second application a no-op.
func TestApplyAnomaly_Idempotent(t *testing.T) {
	rng := dist.New(1)

	o := paidOrder()
	applyAnomaly(rng, &o, scenario.AnomalyPaymentDelay)
	snapshot := o
	applyAnomaly(rng, &o, scenario.AnomalyOrderCancellation)
	assert.Equal(t, snapshot, o)
}

func TestInjectOrderAnomalies_RespectsRate(t *testing.T) {
	rng := dist.New(7)
	orders := make([]entity.Order, 1000)
	base := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	for i := range orders {
		orders[i] = paidOrder()
		orders[i].OrderedAt = base.Add(time.Duration(i) * time.Hour)
	}

	p := &scenario.Profile{
		Name:        "a",
		AnomalyRate: 0.10,
		Anomalies: &scenario.AnomalyConfig{
			Rate:       0.10,
			Types:      []string{scenario.AnomalyPaymentDelay},
			Clustering: scenario.ClusterSpread,
		},
	}
	hit := InjectOrderAnomalies(rng, orders, p)
	assert.InDelta(t, 100, hit, 35, "spread injection should track the rate")
}

func TestInjectOrderAnomalies_BurstStaysContiguous(t *testing.T) {
	rng := dist.New(7)
	orders := make([]entity.Order, 500)
	for i := range orders {
		orders[i] = paidOrder()
	}

	p := &scenario.Profile{
		Name:        "b",
		AnomalyRate: 0.20,
		Anomalies: &scenario.AnomalyConfig{
			Rate:       0.20,
			Types:      []string{scenario.AnomalyOrderCancellation},
			Clustering: scenario.ClusterBurst,
		},
	}
	hit := InjectOrderAnomalies(rng, orders, p)
	require.Greater(t, hit, 0)

	// Count maximal runs of anomalous orders. Burst mode allocates at
	// most total/10 windows, so runs stay far below the hit count.
	runs := 0
	inRun := false
	for i := range orders {
		anomalous := orders[i].Anomaly != ""
		if anomalous && !inRun {
			runs++
		}
		inRun = anomalous
	}
	assert.LessOrEqual(t, runs, hit/2+1, "anomalies should cluster, not scatter")
}

func TestInjectOrderAnomalies_ZeroRate(t *testing.T) {
	rng := dist.New(7)
	orders := []entity.Order{paidOrder()}
	p := &scenario.Profile{Name: "c", AnomalyRate: 0}
	assert.Zero(t, InjectOrderAnomalies(rng, orders, p))
	assert.Empty(t, orders[0].Anomaly)
}
