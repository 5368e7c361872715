package generator

import (
	"time"

	"github.com/MoraFFox/syncolow-org-sub003/internal/entity"
	"github.com/MoraFFox/syncolow-org-sub003/internal/scenario"
)

// CompanyGenerator produces customer companies together with their
// branches and branch staff. Companies are emitted in popularity order:
// downstream Zipf selection treats slice position as rank, so the first
// companies generated become the largest customers.
type CompanyGenerator struct {
	s          *Sampler
	profile    *scenario.Profile
	rangeStart time.Time
}

func NewCompanyGenerator(seed int64, profile *scenario.Profile, rangeStart time.Time) *CompanyGenerator {
	return &CompanyGenerator{
		s:          NewSampler(seed, entity.KindCompanies),
		profile:    profile,
		rangeStart: rangeStart,
	}
}

// Generate emits count companies plus their branches and staff. Branch
// counts per company draw from Poisson around the scenario's
// branchesPerCompany rate, staff likewise around staffPerBranch.
func (g *CompanyGenerator) Generate(count int) ([]entity.Company, []entity.Branch, []entity.BranchStaff) {
	companies := make([]entity.Company, 0, count)
	var branches []entity.Branch
	var staff []entity.BranchStaff

	branchRate := g.profile.Rate(scenario.RateBranchesPerCompany)
	staffRate := g.profile.Rate(scenario.RateStaffPerBranch)

	for i := 0; i < count; i++ {
		company := entity.Company{
			ID:           g.s.ID("cmp"),
			Name:         g.s.CompanyName(),
			Region:       g.s.R.WeightedChoice(g.profile.Distribution.Region),
			Tier:         g.s.R.WeightedChoice(companyTiers),
			DeliveryDays: g.deliveryDays(),
			CreatedAt:    g.rangeStart.AddDate(0, 0, -g.s.R.IntBetween(60, 720)),
		}
		companies = append(companies, company)

		for b := 0; b < g.s.R.Poisson(branchRate); b++ {
			branch := entity.Branch{
				ID:              g.s.ID("brn"),
				ParentCompanyID: company.ID,
				Name:            company.Name + " - " + g.s.City(company.Region),
				Region:          company.Region,
				CreatedAt:       company.CreatedAt.AddDate(0, 0, g.s.R.IntBetween(0, 180)),
			}
			branches = append(branches, branch)

			for p := 0; p < g.s.R.Poisson(staffRate); p++ {
				staff = append(staff, entity.BranchStaff{
					ID:       g.s.ID("stf"),
					BranchID: branch.ID,
					Name:     g.s.FullName(),
					Role:     staffRoles[g.s.R.Intn(len(staffRoles))],
					Phone:    g.s.Phone(),
				})
			}
		}
	}
	return companies, branches, staff
}

// deliveryDays picks a fixed set of 1-3 weekdays on which this customer
// accepts deliveries. Weekends are never delivery days.
func (g *CompanyGenerator) deliveryDays() []time.Weekday {
	weekdays := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
	}
	g.s.R.Shuffle(len(weekdays), func(i, j int) {
		weekdays[i], weekdays[j] = weekdays[j], weekdays[i]
	})
	n := g.s.R.IntBetween(1, 3)
	days := append([]time.Weekday(nil), weekdays[:n]...)
	// Keep a stable order for deterministic delivery-date snapping.
	for i := 1; i < len(days); i++ {
		for j := i; j > 0 && days[j] < days[j-1]; j-- {
			days[j], days[j-1] = days[j-1], days[j]
		}
	}
	return days
}
