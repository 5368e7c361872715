package generator

import (
	"fmt"
	"time"

	"github.com/MoraFFox/syncolow-org-sub003/internal/dist"
	"github.com/MoraFFox/syncolow-org-sub003/internal/entity"
)

// ProductGenerator produces the sellable catalog. Emission order doubles
// as the popularity ranking for Zipf line-item selection.
type ProductGenerator struct {
	s          *Sampler
	rangeStart time.Time
}

func NewProductGenerator(seed int64, rangeStart time.Time) *ProductGenerator {
	return &ProductGenerator{
		s:          NewSampler(seed, entity.KindProducts),
		rangeStart: rangeStart,
	}
}

// Generate emits count products. Unit prices draw from Gamma(2, 12)
// shifted off zero: a long-tailed price book with a bulk of mid-priced
// items and a few premium ones.
func (g *ProductGenerator) Generate(count int) []entity.Product {
	products := make([]entity.Product, 0, count)
	for i := 0; i < count; i++ {
		category := dist.Pick(g.s.R, productCategories)
		products = append(products, entity.Product{
			ID:        g.s.ID("prd"),
			SKU:       fmt.Sprintf("SKU-%s-%05d", categoryCode(category), i+1),
			Name:      dist.Pick(g.s.R, productAdjectives) + " " + dist.Pick(g.s.R, productNouns),
			Category:  category,
			UnitPrice: g.s.Money(2 + g.s.R.Gamma(2, 12)),
			CreatedAt: g.rangeStart.AddDate(0, 0, -g.s.R.IntBetween(30, 540)),
		})
	}
	return products
}

func categoryCode(category string) string {
	code := ""
	for _, r := range category {
		if r == ' ' {
			continue
		}
		code += string(r)
		if len(code) >= 3 {
			break
		}
	}
	return code
}
