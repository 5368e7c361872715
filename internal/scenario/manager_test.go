package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_BuiltinsRegistered(t *testing.T) {
	m := NewManager()
	assert.Equal(t,
		[]string{"data-quality-audit", "normal-ops", "outage", "peak-season", "rapid-growth"},
		m.Names())
}

// TestBuiltins_DistributionsSumToOne verifies the core profile invariant
// for every shipped scenario.
func TestBuiltins_DistributionsSumToOne(t *testing.T) {
	m := NewManager()
	for _, name := range m.Names() {
		p, err := m.Get(name)
		require.NoError(t, err)

		res := m.Validate(p)
		assert.True(t, res.Valid, "scenario %s: %v", name, res.Errors)
		assert.Empty(t, res.Errors)
	}
}

func TestGet_UnknownListsAvailable(t *testing.T) {
	m := NewManager()
	_, err := m.Get("nonexistent")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "normal-ops")
	assert.Contains(t, err.Error(), "outage")
}

func TestGet_ReturnsClone(t *testing.T) {
	m := NewManager()
	p, err := m.Get("normal-ops")
	require.NoError(t, err)

	p.EntityRates[RateUsers] = 9999
	p.Distribution.OrderStatus["pending"] = 0.99

	fresh, err := m.Get("normal-ops")
	require.NoError(t, err)
	assert.Equal(t, 20.0, fresh.EntityRates[RateUsers])
	assert.Equal(t, 0.10, fresh.Distribution.OrderStatus["pending"])
}

func TestRegister_RejectsBadDistributionSum(t *testing.T) {
	m := NewManager()
	p, err := m.Get("normal-ops")
	require.NoError(t, err)

	p.Name = "broken"
	p.Distribution.OrderStatus["pending"] = 0.5 // sum now 1.4

	err = m.Register(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrDistributionSum)

	_, err = m.Get("broken")
	assert.ErrorIs(t, err, ErrNotFound, "invalid profile must not be registered")
}

func TestValidate_SumErrorsInFixedOrder(t *testing.T) {
	m := NewManager()
	p, err := m.Get("normal-ops")
	require.NoError(t, err)

	p.Distribution.OrderStatus["pending"] += 0.3
	p.Distribution.PaymentStatus["paid"] += 0.3
	p.Distribution.Region["north"] += 0.3

	for i := 0; i < 10; i++ {
		res := m.Validate(p)
		require.Len(t, res.Errors, 3)
		assert.Equal(t, "distributions.orderStatus", res.Errors[0].Field)
		assert.Equal(t, "distributions.paymentStatus", res.Errors[1].Field)
		assert.Equal(t, "distributions.region", res.Errors[2].Field)
	}
}

func TestRegister_RejectsSchemaViolations(t *testing.T) {
	m := NewManager()

	tests := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"anomaly rate above one", func(p *Profile) { p.AnomalyRate = 1.5 }},
		{"negative entity rate", func(p *Profile) { p.EntityRates[RateOrdersPerDay] = -4 }},
		{"unknown popularity mode", func(p *Profile) { p.Distribution.ProductPopularity = "linear" }},
		{"unknown anomaly type", func(p *Profile) {
			p.Anomalies = &AnomalyConfig{Rate: 0.1, Types: []string{"meteor_strike"}, Clustering: ClusterSpread}
		}},
		{"empty name", func(p *Profile) { p.Name = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := m.Get("normal-ops")
			require.NoError(t, err)
			p.Name = "mutant"
			tt.mutate(p)

			err = m.Register(p)
			require.Error(t, err)
		})
	}
}

func TestCreateCustom_DeepMerge(t *testing.T) {
	m := NewManager()
	rate := 0.08
	derived, err := m.CreateCustom("normal-ops", "winter-push", Overrides{
		Description: "normal-ops with heavier volume and more overdue payments",
		EntityRates: EntityVolume{RateOrdersPerDay: 80},
		Distribution: &DistributionOverrides{
			PaymentStatus: map[string]float64{"paid": 0.55, "overdue": 0.20},
		},
		AnomalyRate: &rate,
	})
	require.NoError(t, err)

	// Overridden keys win.
	assert.Equal(t, 80.0, derived.EntityRates[RateOrdersPerDay])
	assert.Equal(t, 0.55, derived.Distribution.PaymentStatus["paid"])
	assert.Equal(t, 0.08, derived.AnomalyRate)

	// Untouched keys survive the merge (per-key, not wholesale).
	assert.Equal(t, 100.0, derived.EntityRates[RateCompanies])
	assert.Equal(t, 0.25, derived.Distribution.PaymentStatus["pending"])
	assert.Equal(t, 0.10, derived.Distribution.OrderStatus["pending"])

	// Derived profile is registered and retrievable.
	got, err := m.Get("winter-push")
	require.NoError(t, err)
	assert.Equal(t, derived.EntityRates, got.EntityRates)
}

func TestCreateCustom_InvalidMergeRejected(t *testing.T) {
	m := NewManager()
	// Overriding one weight without rebalancing breaks the sum invariant.
	_, err := m.CreateCustom("normal-ops", "skewed", Overrides{
		Distribution: &DistributionOverrides{
			OrderStatus: map[string]float64{"pending": 0.9},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrDistributionSum)

	_, err = m.Get("skewed")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateCustom_UnknownBase(t *testing.T) {
	m := NewManager()
	_, err := m.CreateCustom("missing-base", "child", Overrides{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateCustom_DoesNotMutateBase(t *testing.T) {
	m := NewManager()
	_, err := m.CreateCustom("normal-ops", "variant", Overrides{
		EntityRates: EntityVolume{RateUsers: 500},
	})
	require.NoError(t, err)

	base, err := m.Get("normal-ops")
	require.NoError(t, err)
	assert.Equal(t, 20.0, base.EntityRates[RateUsers])
}

func TestLoadFile_RegistersProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regional.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: regional-pilot
description: pilot rollout in two regions
entityRates:
  users: 5
  companies: 12
  branchesPerCompany: 1
  staffPerBranch: 1
  addressesPerCompany: 1
  products: 40
  ordersPerDay: 10
  maintenancePerWeek: 2
distributions:
  orderStatus:
    pending: 0.2
    confirmed: 0.2
    shipped: 0.2
    delivered: 0.35
    cancelled: 0.05
  paymentStatus:
    paid: 0.7
    pending: 0.2
    overdue: 0.1
  region:
    north: 0.5
    south: 0.5
  productPopularity: uniform
anomalyRate: 0.01
`), 0o644))

	m := NewManager()
	p, err := m.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "regional-pilot", p.Name)
	assert.Equal(t, 10.0, p.Rate(RateOrdersPerDay))

	got, err := m.Get("regional-pilot")
	require.NoError(t, err)
	assert.Equal(t, PopularityUniform, got.Distribution.ProductPopularity)
}

func TestLoadFile_RejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "typo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: typo
description: misspelled key
entityRate:
  users: 5
`), 0o644))

	m := NewManager()
	_, err := m.LoadFile(path)
	require.Error(t, err)
}

func TestLoadDir_SortedAndCounted(t *testing.T) {
	dir := t.TempDir()
	profile := func(name string) string {
		return `
name: ` + name + `
description: dir-loaded
entityRates: {users: 1, companies: 1, ordersPerDay: 1}
distributions:
  orderStatus: {delivered: 1.0}
  paymentStatus: {paid: 1.0}
  region: {north: 1.0}
  productPopularity: zipf
anomalyRate: 0
`
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(profile("profile-b")), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yml"), []byte(profile("profile-a")), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("not yaml"), 0o644))

	m := NewManager()
	n, err := m.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Contains(t, m.Names(), "profile-a")
	assert.Contains(t, m.Names(), "profile-b")
}
