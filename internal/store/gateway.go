package store

import (
	"fmt"
	"strings"

	"github.com/MoraFFox/syncolow-org-sub003/internal/entity"
	"github.com/MoraFFox/syncolow-org-sub003/internal/safety"
)

// BlockedError is returned when the safety guard refuses a write target.
type BlockedError struct {
	Violations []safety.Violation
}

func (e *BlockedError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return fmt.Sprintf("write target blocked: %s", strings.Join(msgs, "; "))
}

// Gateway hands out writers only after the safety guard clears the
// target. The check runs on every Writer call, not just once at setup,
// so a target that changes under the process is re-evaluated.
type Gateway struct {
	store        *Store
	guard        *safety.Guard
	environment  string
	targetSchema string
}

func NewGateway(s *Store, guard *safety.Guard, environment, targetSchema string) *Gateway {
	return &Gateway{
		store:        s,
		guard:        guard,
		environment:  environment,
		targetSchema: targetSchema,
	}
}

// Writer re-runs the safety checks against the planned record volume
// and returns a batch writer when they pass.
func (g *Gateway) Writer(planned entity.RecordCounts, opts ...WriterOption) (*Writer, error) {
	violations := g.guard.Check(safety.Request{
		Environment:  g.environment,
		TargetSchema: g.targetSchema,
		RecordCounts: planned,
	})
	if len(violations) > 0 {
		return nil, &BlockedError{Violations: violations}
	}
	return NewWriter(g.store, opts...), nil
}

// Store exposes the underlying store for read-only operations. Reads
// are not gated.
func (g *Gateway) Store() *Store {
	return g.store
}
