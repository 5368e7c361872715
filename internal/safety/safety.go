// Package safety implements the pre-flight gate that every generation
// run must clear before any state mutation: environment allow-listing,
// storage namespace isolation, and per-entity volume ceilings.
package safety

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/MoraFFox/syncolow-org-sub003/internal/entity"
)

// Severity levels for violations. Every violation blocks execution; the
// level only signals how alarming the attempt was.
const (
	SeverityCritical = "critical"
	SeverityError    = "error"
)

// Check names reported in violations.
const (
	CheckEnvironment = "environment"
	CheckSchema      = "schema_isolation"
	CheckVolume      = "volume_ceiling"
)

// blockedEnvironment and blockedSchema are rejected unconditionally,
// regardless of guard configuration. No allow-list entry can override
// them.
const (
	blockedEnvironment = "production"
	blockedSchema      = "public"
)

// EnvVar names the environment variable holding the current execution
// environment. A .env file is honored when present.
const EnvVar = "SYNGEN_ENV"

// DefaultMaxRecordsPerEntity bounds any single entity's requested count.
const DefaultMaxRecordsPerEntity = 1_000_000

// Violation is one failed pre-flight check.
type Violation struct {
	Check    string `json:"check"`
	Reason   string `json:"reason"`
	Severity string `json:"severity"`
}

func (v Violation) String() string {
	return fmt.Sprintf("[%s/%s] %s", v.Check, v.Severity, v.Reason)
}

// Request describes what a run is about to do, for gating purposes.
type Request struct {
	Environment  string
	TargetSchema string
	RecordCounts entity.RecordCounts // requested per-entity targets
}

// Guard holds the pre-flight policy. Construct explicitly and pass it to
// the orchestrator; there is no package-level default state.
type Guard struct {
	AllowedEnvironments []string
	ProtectedSchemas    []string
	MaxRecordsPerEntity int
}

// NewGuard returns the standard policy: development/test/staging/local
// environments, the public and prod schemas protected, and the default
// volume ceiling.
func NewGuard() *Guard {
	return &Guard{
		AllowedEnvironments: []string{"development", "test", "staging", "local"},
		ProtectedSchemas:    []string{blockedSchema, "prod"},
		MaxRecordsPerEntity: DefaultMaxRecordsPerEntity,
	}
}

// Check runs all three pre-flight checks. The checks are independent and
// order-insensitive; every failure is reported, and any single failure
// blocks execution entirely.
func (g *Guard) Check(req Request) []Violation {
	var violations []Violation
	violations = append(violations, g.checkEnvironment(req.Environment)...)
	violations = append(violations, g.checkSchema(req.TargetSchema)...)
	violations = append(violations, g.checkVolume(req.RecordCounts)...)
	return violations
}

func (g *Guard) checkEnvironment(env string) []Violation {
	env = strings.ToLower(strings.TrimSpace(env))
	if env == blockedEnvironment {
		return []Violation{{
			Check:    CheckEnvironment,
			Reason:   "environment \"production\" is never eligible for synthetic data generation",
			Severity: SeverityCritical,
		}}
	}
	for _, allowed := range g.AllowedEnvironments {
		if env == allowed {
			return nil
		}
	}
	return []Violation{{
		Check: CheckEnvironment,
		Reason: fmt.Sprintf("environment %q is not in the allow-list (%s)",
			env, strings.Join(g.AllowedEnvironments, ", ")),
		Severity: SeverityError,
	}}
}

func (g *Guard) checkSchema(schema string) []Violation {
	schema = strings.ToLower(strings.TrimSpace(schema))
	if schema == "" {
		return []Violation{{
			Check:    CheckSchema,
			Reason:   "target schema must be set explicitly",
			Severity: SeverityError,
		}}
	}
	if schema == blockedSchema {
		return []Violation{{
			Check:    CheckSchema,
			Reason:   "target schema \"public\" is the protected production namespace",
			Severity: SeverityCritical,
		}}
	}
	for _, protected := range g.ProtectedSchemas {
		if schema == protected {
			return []Violation{{
				Check:    CheckSchema,
				Reason:   fmt.Sprintf("target schema %q is protected", schema),
				Severity: SeverityCritical,
			}}
		}
	}
	return nil
}

func (g *Guard) checkVolume(counts entity.RecordCounts) []Violation {
	ceiling := g.MaxRecordsPerEntity
	if ceiling <= 0 {
		ceiling = DefaultMaxRecordsPerEntity
	}
	var violations []Violation
	for _, kind := range counts.Kinds() {
		if n := counts[kind]; n > ceiling {
			violations = append(violations, Violation{
				Check:    CheckVolume,
				Reason:   fmt.Sprintf("%s: requested %d records exceeds ceiling %d", kind, n, ceiling),
				Severity: SeverityError,
			})
		}
	}
	return violations
}

// ResolveEnvironment loads a .env file when present (missing files are
// fine) and returns the configured execution environment, defaulting to
// development.
func ResolveEnvironment() string {
	_ = godotenv.Load()
	if env := os.Getenv(EnvVar); env != "" {
		return env
	}
	return "development"
}
