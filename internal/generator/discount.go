package generator

import (
	"github.com/MoraFFox/syncolow-org-sub003/internal/dist"
	"github.com/MoraFFox/syncolow-org-sub003/internal/entity"
)

// DiscountGenerator materializes a discount record for every order that
// carries a non-zero discount amount.
type DiscountGenerator struct {
	s *Sampler
}

func NewDiscountGenerator(seed int64) *DiscountGenerator {
	return &DiscountGenerator{s: NewSampler(seed, entity.KindDiscounts)}
}

func (g *DiscountGenerator) Generate(orders []entity.Order) []entity.Discount {
	var out []entity.Discount
	for _, o := range orders {
		if o.Discount <= 0 {
			continue
		}
		kind := "percent"
		value := g.s.Money(o.Discount / o.Subtotal * 100)
		if g.s.R.Chance(0.3) {
			kind = "fixed"
			value = o.Discount
		}
		out = append(out, entity.Discount{
			ID:        g.s.ID("dsc"),
			OrderID:   o.ID,
			Code:      dist.Pick(g.s.R, discountCodes),
			Kind:      kind,
			Value:     value,
			AppliedAt: o.OrderedAt,
		})
	}
	return out
}
