// Package progress tracks a generation run's state machine and fans out
// typed events to registered listeners.
//
// State machine:
//
//	initializing → generating → (validating) → completed | failed
//	generating → rolling_back → failed
//	any non-terminal → cancelled
//
// Only the Tracker mutates progress state; consumers read immutable
// snapshots.
package progress

import (
	"log/slog"
	"sync"
	"time"

	"github.com/MoraFFox/syncolow-org-sub003/internal/entity"
)

// Status is the run state.
type Status string

const (
	StatusInitializing Status = "initializing"
	StatusGenerating   Status = "generating"
	StatusValidating   Status = "validating"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
	StatusRollingBack  Status = "rolling_back"
	StatusCancelled    Status = "cancelled"
)

// EventType categorizes tracker events.
type EventType string

const (
	EventStarted         EventType = "started"
	EventEntityStarted   EventType = "entity_started"
	EventBatchCompleted  EventType = "batch_completed"
	EventEntityCompleted EventType = "entity_completed"
	EventCompleted       EventType = "completed"
	EventError           EventType = "error"
	EventRolledBack      EventType = "rolled_back"
	EventCancelled       EventType = "cancelled"
)

// Event is one state transition notification.
type Event struct {
	Type    EventType
	Entity  string
	Records int
	Err     error
	At      time.Time
}

// Snapshot is a read-only copy of the tracker's state at one instant.
type Snapshot struct {
	Status        Status
	CurrentEntity string
	CurrentBatch  int
	TotalBatches  int
	Counts        entity.RecordCounts
	Percent       float64 // 0..100, monotonically non-decreasing
	ETASeconds    float64 // estimated seconds remaining, 0 when done
	Throughput    float64 // records per second since Start
	ErrorCount    int
}

// Listener receives every tracker event synchronously, paired with the
// snapshot taken immediately after the mutation.
type Listener func(Snapshot, Event)

// Tracker is the single mutator of generation progress. Safe for
// concurrent use.
type Tracker struct {
	mu sync.Mutex

	status        Status
	targets       entity.RecordCounts
	counts        entity.RecordCounts
	currentEntity string
	currentBatch  int
	totalBatches  int
	percent       float64
	etaSeconds    float64
	throughput    float64
	errorCount    int
	startedAt     time.Time

	listeners    map[int]Listener
	nextListener int

	now func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithNow substitutes the wall clock, letting tests drive throughput and
// ETA arithmetic deterministically.
func WithNow(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// NewTracker creates a Tracker in the initializing state. targets holds
// the per-entity generation goals used for percent and ETA computation.
func NewTracker(targets entity.RecordCounts, opts ...Option) *Tracker {
	t := &Tracker{
		status:    StatusInitializing,
		targets:   targets.Clone(),
		counts:    entity.RecordCounts{},
		listeners: make(map[int]Listener),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// AddListener registers a listener and returns its removal handle.
func (t *Tracker) AddListener(fn Listener) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextListener
	t.nextListener++
	t.listeners[id] = fn
	return id
}

// RemoveListener unregisters a listener by the handle AddListener
// returned.
func (t *Tracker) RemoveListener(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.listeners, id)
}

// Progress returns a snapshot of the current state.
func (t *Tracker) Progress() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// Start moves the tracker into the generating state and stamps the run
// start time.
func (t *Tracker) Start() {
	t.emit(func() Event {
		t.status = StatusGenerating
		t.startedAt = t.now()
		return Event{Type: EventStarted}
	})
}

// StartEntity marks an entity stage as active.
func (t *Tracker) StartEntity(name string, totalBatches int) {
	t.emit(func() Event {
		t.currentEntity = name
		t.currentBatch = 0
		t.totalBatches = totalBatches
		return Event{Type: EventEntityStarted, Entity: name}
	})
}

// CompleteBatch records a finished batch: running counts, throughput,
// percent and ETA are all recomputed.
func (t *Tracker) CompleteBatch(name string, records int) {
	t.emit(func() Event {
		t.counts.Add(name, records)
		t.currentBatch++
		t.recomputeLocked()
		return Event{Type: EventBatchCompleted, Entity: name, Records: records}
	})
}

// CompleteEntity marks an entity stage as finished.
func (t *Tracker) CompleteEntity(name string) {
	t.emit(func() Event {
		t.currentBatch = t.totalBatches
		return Event{Type: EventEntityCompleted, Entity: name}
	})
}

// StartValidation moves the tracker into the post-generation validation
// phase.
func (t *Tracker) StartValidation() {
	t.mu.Lock()
	t.status = StatusValidating
	t.mu.Unlock()
}

// RecordError counts an error against the run and notifies listeners.
func (t *Tracker) RecordError(name string, err error) {
	t.emit(func() Event {
		t.errorCount++
		return Event{Type: EventError, Entity: name, Err: err}
	})
}

// Complete marks the run finished: percent forced to 100, ETA to 0.
func (t *Tracker) Complete() {
	t.emit(func() Event {
		t.status = StatusCompleted
		t.percent = 100
		t.etaSeconds = 0
		t.currentEntity = ""
		return Event{Type: EventCompleted}
	})
}

// Fail marks the run failed.
func (t *Tracker) Fail(err error) {
	t.emit(func() Event {
		t.status = StatusFailed
		t.errorCount++
		return Event{Type: EventError, Err: err}
	})
}

// Cancel marks the run cancelled. Terminal; no further transitions.
func (t *Tracker) Cancel() {
	t.emit(func() Event {
		t.status = StatusCancelled
		t.etaSeconds = 0
		return Event{Type: EventCancelled}
	})
}

// StartRollback marks the run as undoing partial writes.
func (t *Tracker) StartRollback() {
	t.mu.Lock()
	t.status = StatusRollingBack
	t.mu.Unlock()
}

// CompleteRollback records the rollback outcome and moves the run to its
// terminal failed state.
func (t *Tracker) CompleteRollback() {
	t.emit(func() Event {
		t.status = StatusFailed
		return Event{Type: EventRolledBack}
	})
}

// emit applies a mutation under lock, then invokes every listener with
// the post-mutation snapshot. Listener panics are recovered and logged,
// never propagated: progress reporting must not take down a run.
func (t *Tracker) emit(mutate func() Event) {
	t.mu.Lock()
	ev := mutate()
	ev.At = t.now()
	snap := t.snapshotLocked()
	fns := make([]Listener, 0, len(t.listeners))
	for _, fn := range t.listeners {
		fns = append(fns, fn)
	}
	t.mu.Unlock()

	for _, fn := range fns {
		func() {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("progress listener panicked", "panic", r, "event", string(ev.Type))
				}
			}()
			fn(snap, ev)
		}()
	}
}

// recomputeLocked refreshes throughput, percent, and ETA from the
// running counts. Percent never decreases across a run.
func (t *Tracker) recomputeLocked() {
	generated := t.counts.Total()
	target := t.targets.Total()

	elapsed := t.now().Sub(t.startedAt).Seconds()
	if elapsed > 0 {
		t.throughput = float64(generated) / elapsed
	}

	if target > 0 {
		pct := float64(generated) / float64(target) * 100
		// 100 is reserved for Complete: generators may overshoot their
		// targets (daily-count rounding), but the run isn't done until
		// every stage has finished.
		if pct >= 100 {
			pct = 99.9
		}
		if pct > t.percent {
			t.percent = pct
		}
	}

	remaining := target - generated
	if remaining > 0 && t.throughput > 0 {
		t.etaSeconds = float64(remaining) / t.throughput
	} else {
		t.etaSeconds = 0
	}
}

func (t *Tracker) snapshotLocked() Snapshot {
	return Snapshot{
		Status:        t.status,
		CurrentEntity: t.currentEntity,
		CurrentBatch:  t.currentBatch,
		TotalBatches:  t.totalBatches,
		Counts:        t.counts.Clone(),
		Percent:       t.percent,
		ETASeconds:    t.etaSeconds,
		Throughput:    t.throughput,
		ErrorCount:    t.errorCount,
	}
}
