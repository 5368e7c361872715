package orchestrator

import (
	"time"

	"github.com/MoraFFox/syncolow-org-sub003/internal/safety"
)

// DefaultBatchSize bounds records per write operation when the config
// does not say otherwise.
const DefaultBatchSize = 500

// DefaultTargetSchema is the isolated namespace runs write into unless
// overridden. Never "public".
const DefaultTargetSchema = "synthetic"

// GeneratorConfig is one run's input. Zero values for multiplier, batch
// size, environment and target schema are filled in by Validate.
type GeneratorConfig struct {
	Scenario         string
	Seed             int64
	StartDate        time.Time
	EndDate          time.Time
	VolumeMultiplier float64
	BatchSize        int
	DryRun           bool
	Environment      string
	TargetSchema     string
}

// Validate applies defaults and rejects impossible configurations.
// Returns a ConfigError naming the offending field.
func (c *GeneratorConfig) Validate() error {
	if c.Scenario == "" {
		return &ConfigError{Field: "scenario", Message: "scenario name is required"}
	}
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return &ConfigError{Field: "dates", Message: "start and end dates are required"}
	}
	if !c.StartDate.Before(c.EndDate) {
		return &ConfigError{Field: "dates", Message: "start date must be before end date"}
	}
	if c.VolumeMultiplier == 0 {
		c.VolumeMultiplier = 1.0
	}
	if c.VolumeMultiplier < 0 {
		return &ConfigError{Field: "volumeMultiplier", Message: "must be positive"}
	}
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.BatchSize < 1 {
		return &ConfigError{Field: "batchSize", Message: "must be at least 1"}
	}
	if c.Environment == "" {
		c.Environment = safety.ResolveEnvironment()
	}
	if c.TargetSchema == "" {
		c.TargetSchema = DefaultTargetSchema
	}
	return nil
}

// Days returns the whole days covered by [StartDate, EndDate).
func (c *GeneratorConfig) Days() int {
	return int(c.EndDate.Sub(c.StartDate).Hours() / 24)
}
