package scenario

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaCUE string

// Validation error codes (S100-S199).
const (
	ErrSchemaViolation   = "S100" // profile fails CUE schema unification
	ErrDistributionSum   = "S101" // categorical weights do not sum to 1
	ErrEmptyDistribution = "S102" // categorical distribution has no weights
	ErrEncodeFailed      = "S103" // profile could not be encoded for checking
)

// sumTolerance is the allowed drift of categorical weight sums from 1.
const sumTolerance = 1e-3

// ValidationError describes one schema or invariant violation found in a
// profile.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Result aggregates the outcome of validating one profile.
// A profile is registrable only when Valid is true.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors"`
}

// schemaVal compiles the embedded CUE schema once per Manager.
func compileSchema(ctx *cue.Context) cue.Value {
	return ctx.CompileString(schemaCUE).LookupPath(cue.ParsePath("#Profile"))
}

// Validate runs a profile against the declarative schema and the
// distribution-sum invariants. All violations are collected; validation
// never fails fast.
func (m *Manager) Validate(p *Profile) Result {
	var errs []ValidationError

	errs = append(errs, m.validateSchema(p)...)
	errs = append(errs, validateSums(p)...)

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// validateSchema unifies the profile with the embedded CUE schema.
// The profile is round-tripped through JSON so omitted optional fields
// (e.g., a nil anomaly config) disappear rather than unifying as null.
func (m *Manager) validateSchema(p *Profile) []ValidationError {
	data, err := json.Marshal(p)
	if err != nil {
		return []ValidationError{{
			Field:   p.Name,
			Message: fmt.Sprintf("encode profile: %v", err),
			Code:    ErrEncodeFailed,
		}}
	}

	val := m.cuectx.CompileBytes(data)
	if err := val.Err(); err != nil {
		return []ValidationError{{
			Field:   p.Name,
			Message: fmt.Sprintf("build profile value: %v", err),
			Code:    ErrEncodeFailed,
		}}
	}

	unified := m.schema.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		var out []ValidationError
		for _, e := range cueerrors.Errors(err) {
			out = append(out, ValidationError{
				Field:   strings.Join(e.Path(), "."),
				Message: e.Error(),
				Code:    ErrSchemaViolation,
			})
		}
		return out
	}
	return nil
}

// validateSums checks that every categorical distribution's weights sum
// to 1 within tolerance. Distributions are visited in a fixed order so
// the error list is stable across runs.
func validateSums(p *Profile) []ValidationError {
	var errs []ValidationError
	for _, dist := range []struct {
		field   string
		weights map[string]float64
	}{
		{"distributions.orderStatus", p.Distribution.OrderStatus},
		{"distributions.paymentStatus", p.Distribution.PaymentStatus},
		{"distributions.region", p.Distribution.Region},
	} {
		field, weights := dist.field, dist.weights
		if len(weights) == 0 {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "distribution must declare at least one weight",
				Code:    ErrEmptyDistribution,
			})
			continue
		}
		sum := 0.0
		for _, w := range weights {
			sum += w
		}
		if math.Abs(sum-1) > sumTolerance {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("weights sum to %.4f, expected 1 within %.0e", sum, sumTolerance),
				Code:    ErrDistributionSum,
			})
		}
	}
	return errs
}

// newCueContext is split out so tests can build standalone validators.
func newCueContext() *cue.Context {
	return cuecontext.New()
}
