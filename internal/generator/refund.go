package generator

import (
	"github.com/MoraFFox/syncolow-org-sub003/internal/dist"
	"github.com/MoraFFox/syncolow-org-sub003/internal/entity"
)

// returnShare is the fraction of delivered orders that come back.
const returnShare = 0.05

var returnStatuses = map[string]float64{
	entity.ReturnRequested: 0.25,
	entity.ReturnApproved:  0.25,
	entity.ReturnReceived:  0.40,
	entity.ReturnRejected:  0.10,
}

// RefundGenerator produces returns for a small share of delivered
// orders, then one refund per return with its status mapped from the
// return's state.
type RefundGenerator struct {
	s *Sampler
}

func NewRefundGenerator(seed int64) *RefundGenerator {
	return &RefundGenerator{s: NewSampler(seed, entity.KindRefunds)}
}

func (g *RefundGenerator) Generate(orders []entity.Order) ([]entity.Return, []entity.Refund) {
	var returns []entity.Return
	var refunds []entity.Refund

	for _, o := range orders {
		if o.Status != entity.OrderDelivered || !g.s.R.Chance(returnShare) {
			continue
		}
		ret := entity.Return{
			ID:          g.s.ID("ret"),
			OrderID:     o.ID,
			Status:      g.s.R.WeightedChoice(returnStatuses),
			Reason:      dist.Pick(g.s.R, returnReasons),
			RequestedAt: o.DeliveryDate.AddDate(0, 0, g.s.R.IntBetween(1, 21)),
		}
		returns = append(returns, ret)

		// Partial refunds happen when only part of the order came back.
		amount := o.GrandTotal
		if g.s.R.Chance(0.3) {
			amount = g.s.Money(amount * g.s.R.FloatBetween(0.2, 0.8))
		}
		refunds = append(refunds, entity.Refund{
			ID:          g.s.ID("rfn"),
			ReturnID:    ret.ID,
			OrderID:     o.ID,
			Amount:      amount,
			Status:      refundStatus(ret.Status),
			ProcessedAt: ret.RequestedAt.AddDate(0, 0, g.s.R.IntBetween(1, 10)),
		})
	}
	return returns, refunds
}

// refundStatus maps a return's state onto the refund lifecycle: received
// goods are paid out, rejected returns are denied, everything still in
// flight stays pending.
func refundStatus(returnStatus string) string {
	switch returnStatus {
	case entity.ReturnReceived:
		return entity.RefundProcessed
	case entity.ReturnRejected:
		return entity.RefundDenied
	default:
		return entity.RefundPending
	}
}
