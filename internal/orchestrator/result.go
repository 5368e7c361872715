package orchestrator

import (
	"time"

	"github.com/MoraFFox/syncolow-org-sub003/internal/entity"
)

// GenerationResult summarizes one run: what was produced, how long it
// took, and every error the pipeline hit. Failed runs still carry the
// partial record counts reached before the failure.
type GenerationResult struct {
	JobID        string
	Success      bool
	Scenario     string
	Config       GeneratorConfig
	RecordCounts entity.RecordCounts
	Errors       []RunError
	StartedAt    time.Time
	FinishedAt   time.Time
	Duration     time.Duration
	DryRun       bool
}
