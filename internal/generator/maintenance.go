package generator

import (
	"time"

	"github.com/MoraFFox/syncolow-org-sub003/internal/dist"
	"github.com/MoraFFox/syncolow-org-sub003/internal/entity"
	"github.com/MoraFFox/syncolow-org-sub003/internal/timeseries"
)

// followUpChance is the probability that an unresolved visit spawns a
// follow-up.
const followUpChance = 0.7

var visitResolutions = map[string]float64{
	entity.VisitResolved:         0.55,
	entity.VisitFollowUpRequired: 0.20,
	entity.VisitWaitingForParts:  0.15,
	entity.VisitPartiallyDone:    0.10,
}

// MaintenanceGenerator produces on-site service visits distributed over
// the date range, with follow-up chains for visits that did not resolve.
type MaintenanceGenerator struct {
	s  *Sampler
	ts *timeseries.Engine
}

func NewMaintenanceGenerator(seed int64, tsCfg timeseries.Config) *MaintenanceGenerator {
	s := NewSampler(seed, entity.KindMaintenance)
	return &MaintenanceGenerator{s: s, ts: timeseries.New(s.R, tsCfg)}
}

// Generate places total first visits across [start, end), then walks
// each unresolved visit's follow-up chain: 70% chance of a follow-up
// 3-14 days later, visit number incrementing, all linked to the root
// visit. Chains terminate when a visit resolves, the dice miss, or the
// follow-up would land beyond the range end.
func (g *MaintenanceGenerator) Generate(
	start, end time.Time,
	total int,
	companies []entity.Company,
	branches map[string][]entity.Branch,
) []entity.MaintenanceVisit {
	if len(companies) == 0 {
		return nil
	}
	visits := timeseries.Series(g.ts, start, end, total, func(_ int, ts time.Time) entity.MaintenanceVisit {
		company := dist.Pick(g.s.R, companies)
		branchID := ""
		if b := branches[company.ID]; len(b) > 0 && g.s.R.Chance(0.7) {
			branchID = dist.Pick(g.s.R, b).ID
		}
		v := entity.MaintenanceVisit{
			ID:          g.s.ID("mnt"),
			CompanyID:   company.ID,
			BranchID:    branchID,
			VisitNumber: 1,
			Technician:  dist.Pick(g.s.R, technicians),
			Issue:       dist.Pick(g.s.R, maintenanceIssues),
			Resolution:  g.s.R.WeightedChoice(visitResolutions),
			VisitedAt:   ts,
		}
		return v
	})

	// Follow-up chains. Walked with an explicit queue so follow-ups of
	// follow-ups keep spawning until they resolve.
	queue := make([]entity.MaintenanceVisit, len(visits))
	copy(queue, visits)
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if v.Resolution == entity.VisitResolved || !g.s.R.Chance(followUpChance) {
			continue
		}
		next := v.VisitedAt.AddDate(0, 0, g.s.R.IntBetween(3, 14))
		if !next.Before(end) {
			continue
		}
		rootID := v.RootVisitID
		if rootID == "" {
			rootID = v.ID
		}
		follow := entity.MaintenanceVisit{
			ID:          g.s.ID("mnt"),
			CompanyID:   v.CompanyID,
			BranchID:    v.BranchID,
			RootVisitID: rootID,
			VisitNumber: v.VisitNumber + 1,
			Technician:  dist.Pick(g.s.R, technicians),
			Issue:       v.Issue,
			Resolution:  g.s.R.WeightedChoice(visitResolutions),
			VisitedAt:   next,
		}
		visits = append(visits, follow)
		queue = append(queue, follow)
	}
	return visits
}
