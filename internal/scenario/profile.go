// Package scenario holds the named scenario profiles that govern a
// generation run: per-entity volume targets, categorical distributions,
// and anomaly configuration.
//
// Profiles are validated against an embedded CUE schema plus Go-side
// distribution-sum checks before they become visible in a Manager.
package scenario

import "time"

// Entity rate keys understood by the pipeline. Rates are float64 so that
// per-company and per-day averages can be fractional.
const (
	RateUsers               = "users"
	RateCompanies           = "companies"
	RateBranchesPerCompany  = "branchesPerCompany"
	RateStaffPerBranch      = "staffPerBranch"
	RateAddressesPerCompany = "addressesPerCompany"
	RateProducts            = "products"
	RateOrdersPerDay        = "ordersPerDay"
	RateMaintenancePerWeek  = "maintenancePerWeek"
)

// Anomaly type names. Each maps to a handler that mutates one generated
// record in place.
const (
	AnomalyPaymentDelay      = "payment_delay"
	AnomalyDeliveryDelay     = "delivery_delay"
	AnomalyOrderCancellation = "order_cancellation"
)

// Anomaly clustering modes: spread applies independent per-record trials,
// burst concentrates anomalies in contiguous temporal windows.
const (
	ClusterSpread = "spread"
	ClusterBurst  = "burst"
)

// Product popularity modes for line-item selection.
const (
	PopularityZipf    = "zipf"
	PopularityUniform = "uniform"
)

// EntityVolume maps rate keys to target volumes.
type EntityVolume map[string]float64

// DistributionConfig holds the categorical distributions a profile
// declares. Each weight map must sum to 1 within 1e-3.
type DistributionConfig struct {
	OrderStatus       map[string]float64 `yaml:"orderStatus" json:"orderStatus"`
	PaymentStatus     map[string]float64 `yaml:"paymentStatus" json:"paymentStatus"`
	Region            map[string]float64 `yaml:"region" json:"region"`
	ProductPopularity string             `yaml:"productPopularity" json:"productPopularity"`
}

// AnomalyConfig refines how anomalies are injected. When nil, the
// profile's AnomalyRate is applied in spread mode across all types.
type AnomalyConfig struct {
	Rate       float64  `yaml:"rate" json:"rate"`
	Types      []string `yaml:"types" json:"types"`
	Clustering string   `yaml:"clustering" json:"clustering"`
}

// Profile is one named business situation (normal operations, peak
// season, outage, ...). Profiles are immutable once registered.
type Profile struct {
	Name         string             `yaml:"name" json:"name"`
	Description  string             `yaml:"description" json:"description"`
	EntityRates  EntityVolume       `yaml:"entityRates" json:"entityRates"`
	Distribution DistributionConfig `yaml:"distributions" json:"distributions"`
	AnomalyRate  float64            `yaml:"anomalyRate" json:"anomalyRate"`
	Anomalies    *AnomalyConfig     `yaml:"anomalies,omitempty" json:"anomalies,omitempty"`
}

// Rate returns the named entity rate, or 0 when absent.
func (p *Profile) Rate(key string) float64 {
	return p.EntityRates[key]
}

// AnomalyTypes returns the configured anomaly type set, defaulting to all
// known types when no AnomalyConfig is present.
func (p *Profile) AnomalyTypes() []string {
	if p.Anomalies != nil && len(p.Anomalies.Types) > 0 {
		return p.Anomalies.Types
	}
	return []string{AnomalyPaymentDelay, AnomalyDeliveryDelay, AnomalyOrderCancellation}
}

// EffectiveAnomalyRate returns the AnomalyConfig rate when present,
// otherwise the profile-level rate.
func (p *Profile) EffectiveAnomalyRate() float64 {
	if p.Anomalies != nil && p.Anomalies.Rate > 0 {
		return p.Anomalies.Rate
	}
	return p.AnomalyRate
}

// Clustering returns the configured clustering mode, defaulting to
// spread.
func (p *Profile) Clustering() string {
	if p.Anomalies != nil && p.Anomalies.Clustering != "" {
		return p.Anomalies.Clustering
	}
	return ClusterSpread
}

// Clone returns a deep copy. Managers hand out clones so callers can
// never mutate registered profiles in place.
func (p *Profile) Clone() *Profile {
	out := *p
	out.EntityRates = cloneFloatMap(p.EntityRates)
	out.Distribution.OrderStatus = cloneFloatMap(p.Distribution.OrderStatus)
	out.Distribution.PaymentStatus = cloneFloatMap(p.Distribution.PaymentStatus)
	out.Distribution.Region = cloneFloatMap(p.Distribution.Region)
	if p.Anomalies != nil {
		anomalies := *p.Anomalies
		anomalies.Types = append([]string(nil), p.Anomalies.Types...)
		out.Anomalies = &anomalies
	}
	return &out
}

func cloneFloatMap[M ~map[string]float64](m M) M {
	if m == nil {
		return nil
	}
	out := make(M, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Overrides describes a partial profile used to derive a custom scenario
// from a base. Map overrides merge key-by-key; nested structs merge
// field-by-field rather than replacing the base wholesale.
type Overrides struct {
	Description  string                 `yaml:"description,omitempty"`
	EntityRates  EntityVolume           `yaml:"entityRates,omitempty"`
	Distribution *DistributionOverrides `yaml:"distributions,omitempty"`
	AnomalyRate  *float64               `yaml:"anomalyRate,omitempty"`
	Anomalies    *AnomalyConfig         `yaml:"anomalies,omitempty"`
}

// DistributionOverrides is the partial form of DistributionConfig.
type DistributionOverrides struct {
	OrderStatus       map[string]float64 `yaml:"orderStatus,omitempty"`
	PaymentStatus     map[string]float64 `yaml:"paymentStatus,omitempty"`
	Region            map[string]float64 `yaml:"region,omitempty"`
	ProductPopularity string             `yaml:"productPopularity,omitempty"`
}

// merge applies overrides onto a cloned base and returns the result.
func merge(base *Profile, name string, o Overrides) *Profile {
	out := base.Clone()
	out.Name = name
	if o.Description != "" {
		out.Description = o.Description
	}
	for k, v := range o.EntityRates {
		if out.EntityRates == nil {
			out.EntityRates = EntityVolume{}
		}
		out.EntityRates[k] = v
	}
	if o.Distribution != nil {
		mergeFloatMap(&out.Distribution.OrderStatus, o.Distribution.OrderStatus)
		mergeFloatMap(&out.Distribution.PaymentStatus, o.Distribution.PaymentStatus)
		mergeFloatMap(&out.Distribution.Region, o.Distribution.Region)
		if o.Distribution.ProductPopularity != "" {
			out.Distribution.ProductPopularity = o.Distribution.ProductPopularity
		}
	}
	if o.AnomalyRate != nil {
		out.AnomalyRate = *o.AnomalyRate
	}
	if o.Anomalies != nil {
		if out.Anomalies == nil {
			out.Anomalies = &AnomalyConfig{}
		}
		if o.Anomalies.Rate > 0 {
			out.Anomalies.Rate = o.Anomalies.Rate
		}
		if len(o.Anomalies.Types) > 0 {
			out.Anomalies.Types = append([]string(nil), o.Anomalies.Types...)
		}
		if o.Anomalies.Clustering != "" {
			out.Anomalies.Clustering = o.Anomalies.Clustering
		}
	}
	return out
}

func mergeFloatMap(dst *map[string]float64, src map[string]float64) {
	if len(src) == 0 {
		return
	}
	if *dst == nil {
		*dst = map[string]float64{}
	}
	for k, v := range src {
		(*dst)[k] = v
	}
}

// DefaultPeakMonths are the high-season months shared by the built-in
// profiles and the time-series defaults.
var DefaultPeakMonths = []time.Month{time.November, time.December}
