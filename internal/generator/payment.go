package generator

import (
	"fmt"

	"github.com/MoraFFox/syncolow-org-sub003/internal/entity"
)

// PaymentGenerator settles paid orders. Only orders whose payment status
// is paid receive a payment record; pending and overdue orders have no
// settlement yet by definition.
type PaymentGenerator struct {
	s *Sampler
}

func NewPaymentGenerator(seed int64) *PaymentGenerator {
	return &PaymentGenerator{s: NewSampler(seed, entity.KindPayments)}
}

func (g *PaymentGenerator) Generate(orders []entity.Order) []entity.Payment {
	var out []entity.Payment
	for _, o := range orders {
		if o.PaymentStatus != entity.PaymentPaid || o.PaidAt == nil {
			continue
		}
		out = append(out, entity.Payment{
			ID:        g.s.ID("pay"),
			OrderID:   o.ID,
			Amount:    o.GrandTotal,
			Method:    g.s.R.WeightedChoice(paymentMethods),
			Reference: fmt.Sprintf("PAY-%08d", g.s.R.Intn(100000000)),
			PaidAt:    *o.PaidAt,
		})
	}
	return out
}
