package generator

import (
	"time"

	"github.com/MoraFFox/syncolow-org-sub003/internal/entity"
	"github.com/MoraFFox/syncolow-org-sub003/internal/scenario"
)

// UserGenerator produces dashboard operator accounts. Users have no
// upstream dependencies and run first in the pipeline.
type UserGenerator struct {
	s          *Sampler
	profile    *scenario.Profile
	rangeStart time.Time
}

func NewUserGenerator(seed int64, profile *scenario.Profile, rangeStart time.Time) *UserGenerator {
	return &UserGenerator{
		s:          NewSampler(seed, entity.KindUsers),
		profile:    profile,
		rangeStart: rangeStart,
	}
}

// Generate emits count users. Accounts predate the generation window by
// up to a year: operators exist before the orders they oversee.
func (g *UserGenerator) Generate(count int) []entity.User {
	users := make([]entity.User, 0, count)
	for i := 0; i < count; i++ {
		name := g.s.FullName()
		users = append(users, entity.User{
			ID:        g.s.ID("usr"),
			Email:     g.s.Email(name),
			FullName:  name,
			Role:      g.s.R.WeightedChoice(userRoles),
			Region:    g.s.R.WeightedChoice(g.profile.Distribution.Region),
			CreatedAt: g.rangeStart.AddDate(0, 0, -g.s.R.IntBetween(30, 365)),
		})
	}
	return users
}
