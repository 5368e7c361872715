package generator

import (
	"github.com/MoraFFox/syncolow-org-sub003/internal/entity"
	"github.com/MoraFFox/syncolow-org-sub003/internal/scenario"
)

// AddressGenerator produces delivery and billing addresses for companies
// and their branches.
type AddressGenerator struct {
	s       *Sampler
	profile *scenario.Profile
}

func NewAddressGenerator(seed int64, profile *scenario.Profile) *AddressGenerator {
	return &AddressGenerator{
		s:       NewSampler(seed, entity.KindAddresses),
		profile: profile,
	}
}

// Generate emits addresses: every company gets a delivery address, a
// share get a separate billing address (driven by the
// addressesPerCompany rate above 1), and every branch gets its own
// delivery address.
func (g *AddressGenerator) Generate(companies []entity.Company, branches []entity.Branch) []entity.Address {
	billingShare := g.profile.Rate(scenario.RateAddressesPerCompany) - 1
	if billingShare < 0 {
		billingShare = 0
	}
	if billingShare > 1 {
		billingShare = 1
	}

	var out []entity.Address
	for _, c := range companies {
		out = append(out, g.address(c.ID, "", "delivery", c.Region))
		if g.s.R.Chance(billingShare) {
			out = append(out, g.address(c.ID, "", "billing", c.Region))
		}
	}
	for _, b := range branches {
		out = append(out, g.address(b.ParentCompanyID, b.ID, "delivery", b.Region))
	}
	return out
}

func (g *AddressGenerator) address(companyID, branchID, kind, region string) entity.Address {
	return entity.Address{
		ID:        g.s.ID("adr"),
		CompanyID: companyID,
		BranchID:  branchID,
		Kind:      kind,
		Street:    g.s.Street(),
		City:      g.s.City(region),
		Region:    region,
		Postal:    g.s.Postal(),
	}
}
