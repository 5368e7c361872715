package progress

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MoraFFox/syncolow-org-sub003/internal/entity"
	"github.com/MoraFFox/syncolow-org-sub003/internal/testutil"
)

// The stepped clock advances one second per call, making throughput and
// ETA arithmetic exact.
func newTestTracker(targets entity.RecordCounts) (*Tracker, *testutil.SteppedClock) {
	clock := testutil.NewSteppedClock(time.Unix(1700000000, 0), time.Second)
	return NewTracker(targets, WithNow(clock.Now)), clock
}

func TestTracker_LifecycleEvents(t *testing.T) {
	tr, _ := newTestTracker(entity.RecordCounts{entity.KindUsers: 10})

	var events []EventType
	tr.AddListener(func(_ Snapshot, ev Event) {
		events = append(events, ev.Type)
	})

	tr.Start()
	tr.StartEntity(entity.KindUsers, 2)
	tr.CompleteBatch(entity.KindUsers, 5)
	tr.CompleteBatch(entity.KindUsers, 5)
	tr.CompleteEntity(entity.KindUsers)
	tr.Complete()

	assert.Equal(t, []EventType{
		EventStarted, EventEntityStarted, EventBatchCompleted,
		EventBatchCompleted, EventEntityCompleted, EventCompleted,
	}, events)
}

// TestTracker_PercentMonotone: percent never decreases and reaches
// exactly 100 only via Complete.
func TestTracker_PercentMonotone(t *testing.T) {
	tr, _ := newTestTracker(entity.RecordCounts{
		entity.KindUsers:  10,
		entity.KindOrders: 90,
	})
	tr.Start()

	last := 0.0
	check := func() {
		snap := tr.Progress()
		require.GreaterOrEqual(t, snap.Percent, last)
		require.Less(t, snap.Percent, 100.0)
		last = snap.Percent
	}

	tr.StartEntity(entity.KindUsers, 1)
	tr.CompleteBatch(entity.KindUsers, 10)
	check()
	tr.CompleteEntity(entity.KindUsers)

	tr.StartEntity(entity.KindOrders, 3)
	for i := 0; i < 3; i++ {
		tr.CompleteBatch(entity.KindOrders, 30)
		check()
	}
	tr.CompleteEntity(entity.KindOrders)
	check()

	tr.Complete()
	snap := tr.Progress()
	assert.Equal(t, 100.0, snap.Percent)
	assert.Equal(t, 0.0, snap.ETASeconds)
	assert.Equal(t, StatusCompleted, snap.Status)
}

// TestTracker_PercentCappedOnOvershoot: daily-count rounding can push a
// generator past its target; percent must still stay below 100 until
// Complete.
func TestTracker_PercentCappedOnOvershoot(t *testing.T) {
	tr, _ := newTestTracker(entity.RecordCounts{entity.KindOrders: 10})
	tr.Start()
	tr.StartEntity(entity.KindOrders, 1)
	tr.CompleteBatch(entity.KindOrders, 25)

	snap := tr.Progress()
	assert.Less(t, snap.Percent, 100.0)
}

func TestTracker_ThroughputAndETA(t *testing.T) {
	tr, _ := newTestTracker(entity.RecordCounts{entity.KindOrders: 100})
	tr.Start()
	tr.StartEntity(entity.KindOrders, 4)
	tr.CompleteBatch(entity.KindOrders, 25)

	snap := tr.Progress()
	assert.Greater(t, snap.Throughput, 0.0)
	assert.Greater(t, snap.ETASeconds, 0.0)
	assert.Equal(t, 25, snap.Counts[entity.KindOrders])
}

func TestTracker_ListenerPanicIsContained(t *testing.T) {
	tr, _ := newTestTracker(entity.RecordCounts{entity.KindUsers: 1})
	tr.AddListener(func(Snapshot, Event) {
		panic("listener bug")
	})

	var sawEvent bool
	tr.AddListener(func(_ Snapshot, ev Event) {
		if ev.Type == EventStarted {
			sawEvent = true
		}
	})

	assert.NotPanics(t, func() { tr.Start() })
	assert.True(t, sawEvent, "other listeners still fire after a panic")
}

func TestTracker_RemoveListener(t *testing.T) {
	tr, _ := newTestTracker(entity.RecordCounts{})
	calls := 0
	id := tr.AddListener(func(Snapshot, Event) { calls++ })

	tr.Start()
	tr.RemoveListener(id)
	tr.Complete()

	assert.Equal(t, 1, calls)
}

func TestTracker_FailAndRollback(t *testing.T) {
	tr, _ := newTestTracker(entity.RecordCounts{entity.KindOrders: 10})

	var events []EventType
	tr.AddListener(func(_ Snapshot, ev Event) { events = append(events, ev.Type) })

	tr.Start()
	tr.Fail(errors.New("generator blew up"))
	assert.Equal(t, StatusFailed, tr.Progress().Status)

	tr.StartRollback()
	assert.Equal(t, StatusRollingBack, tr.Progress().Status)

	tr.CompleteRollback()
	snap := tr.Progress()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Equal(t, 1, snap.ErrorCount)
	assert.Contains(t, events, EventRolledBack)
}

func TestTracker_Cancel(t *testing.T) {
	tr, _ := newTestTracker(entity.RecordCounts{entity.KindOrders: 10})
	tr.Start()
	tr.Cancel()

	snap := tr.Progress()
	assert.Equal(t, StatusCancelled, snap.Status)
	assert.Equal(t, 0.0, snap.ETASeconds)
}

func TestTracker_RecordError(t *testing.T) {
	tr, _ := newTestTracker(entity.RecordCounts{})
	tr.Start()
	tr.RecordError(entity.KindShipments, errors.New("carrier pool empty"))
	tr.RecordError(entity.KindShipments, errors.New("again"))
	assert.Equal(t, 2, tr.Progress().ErrorCount)
}

func TestTracker_SnapshotIsolation(t *testing.T) {
	tr, _ := newTestTracker(entity.RecordCounts{entity.KindUsers: 5})
	tr.Start()
	tr.StartEntity(entity.KindUsers, 1)
	tr.CompleteBatch(entity.KindUsers, 5)

	snap := tr.Progress()
	snap.Counts.Add(entity.KindUsers, 1000)

	assert.Equal(t, 5, tr.Progress().Counts[entity.KindUsers],
		"mutating a snapshot must not touch tracker state")
}
