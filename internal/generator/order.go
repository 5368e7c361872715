package generator

import (
	"time"

	"github.com/MoraFFox/syncolow-org-sub003/internal/dist"
	"github.com/MoraFFox/syncolow-org-sub003/internal/entity"
	"github.com/MoraFFox/syncolow-org-sub003/internal/scenario"
	"github.com/MoraFFox/syncolow-org-sub003/internal/timeseries"
)

// taxRate is the flat tax applied to every order's subtotal.
const taxRate = 0.10

// Line item bounds per order.
const (
	minLineItems = 1
	maxLineItems = 8
)

// OrderGenerator produces orders with line items, placed across the
// date range by the time-series engine. Company selection is
// Zipf-weighted (the head of the company slice is the biggest customer),
// as is product selection within line items unless the scenario asks for
// uniform popularity.
type OrderGenerator struct {
	s         *Sampler
	profile   *scenario.Profile
	ts        *timeseries.Engine
	companies []entity.Company
	branches  map[string][]entity.Branch
	products  []entity.Product
}

func NewOrderGenerator(
	seed int64,
	profile *scenario.Profile,
	tsCfg timeseries.Config,
	companies []entity.Company,
	branches map[string][]entity.Branch,
	products []entity.Product,
) *OrderGenerator {
	s := NewSampler(seed, entity.KindOrders)
	return &OrderGenerator{
		s:        s,
		profile:  profile,
		ts:       timeseries.New(s.R, tsCfg),
		companies: companies,
		branches:  branches,
		products:  products,
	}
}

// Generate places total orders across [start, end) and fills each with
// internally consistent commercial fields. Anomaly injection runs
// afterwards so that burst windows operate on the final timestamp order.
func (g *OrderGenerator) Generate(start, end time.Time, total int) []entity.Order {
	if len(g.companies) == 0 || len(g.products) == 0 {
		return nil
	}
	orders := timeseries.Series(g.ts, start, end, total, func(_ int, ts time.Time) entity.Order {
		return g.order(ts)
	})
	InjectOrderAnomalies(g.s.R, orders, g.profile)
	return orders
}

func (g *OrderGenerator) order(orderedAt time.Time) entity.Order {
	company := dist.ZipfPick(g.s.R, g.companies, dist.DefaultZipfAlpha)

	branchID := ""
	if branches := g.branches[company.ID]; len(branches) > 0 && g.s.R.Chance(0.6) {
		branchID = dist.Pick(g.s.R, branches).ID
	}

	o := entity.Order{
		ID:        g.s.ID("ord"),
		CompanyID: company.ID,
		BranchID:  branchID,
		OrderedAt: orderedAt,
		Status:    g.s.R.WeightedChoice(g.profile.Distribution.OrderStatus),
	}

	o.Items = g.lineItems(o.ID)
	subtotal := 0.0
	for _, item := range o.Items {
		subtotal += item.LineTotal
	}
	o.Subtotal = g.s.Money(subtotal)
	o.Tax = g.s.Money(subtotal * taxRate)
	if g.s.R.Chance(0.25) {
		o.Discount = g.s.Money(subtotal * g.s.R.FloatBetween(0.05, 0.15))
	}
	o.GrandTotal = g.s.Money(o.Subtotal + o.Tax - o.Discount)

	o.PaymentStatus = g.paymentStatus(o.Status)
	if o.PaymentStatus == entity.PaymentPaid {
		paidAt := orderedAt.AddDate(0, 0, g.s.R.IntBetween(0, 14))
		o.PaidAt = &paidAt
	}
	if o.Status == entity.OrderCancelled {
		o.CancelReason = dist.Pick(g.s.R, cancelReasons)
	}

	o.DeliveryDate = g.deliveryDate(company, orderedAt)
	return o
}

// lineItems draws 1-8 items with distinct product ids. Product picks are
// Zipf-weighted by catalog position unless the scenario asks for uniform
// popularity.
func (g *OrderGenerator) lineItems(orderID string) []entity.OrderItem {
	n := g.s.R.IntBetween(minLineItems, maxLineItems)
	if n > len(g.products) {
		n = len(g.products)
	}

	used := make(map[string]bool, n)
	items := make([]entity.OrderItem, 0, n)
	for len(items) < n {
		var p entity.Product
		if g.profile.Distribution.ProductPopularity == scenario.PopularityUniform {
			p = dist.Pick(g.s.R, g.products)
		} else {
			p = dist.ZipfPick(g.s.R, g.products, dist.DefaultZipfAlpha)
		}
		if used[p.ID] {
			continue
		}
		used[p.ID] = true

		qty := 1 + g.s.R.Poisson(2.5)
		items = append(items, entity.OrderItem{
			ID:        g.s.ID("itm"),
			OrderID:   orderID,
			ProductID: p.ID,
			Quantity:  qty,
			UnitPrice: p.UnitPrice,
			LineTotal: g.s.Money(float64(qty) * p.UnitPrice),
		})
	}
	return items
}

// paymentStatus derives a payment state conditioned on the order status:
// unstarted and cancelled orders are never paid; active orders draw from
// the scenario's payment distribution.
func (g *OrderGenerator) paymentStatus(orderStatus string) string {
	switch orderStatus {
	case entity.OrderPending, entity.OrderCancelled:
		return entity.PaymentPending
	default:
		return g.s.R.WeightedChoice(g.profile.Distribution.PaymentStatus)
	}
}

// deliveryDate snaps to the company's next delivery weekday at least two
// days out from the order date.
func (g *OrderGenerator) deliveryDate(company entity.Company, orderedAt time.Time) time.Time {
	earliest := orderedAt.AddDate(0, 0, 2)
	if len(company.DeliveryDays) == 0 {
		return earliest
	}
	for d := 0; d < 7; d++ {
		candidate := earliest.AddDate(0, 0, d)
		for _, wd := range company.DeliveryDays {
			if candidate.Weekday() == wd {
				return time.Date(candidate.Year(), candidate.Month(), candidate.Day(),
					0, 0, 0, 0, candidate.Location())
			}
		}
	}
	return earliest
}
