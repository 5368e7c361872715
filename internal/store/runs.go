package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MoraFFox/syncolow-org-sub003/internal/entity"
)

// ErrRunNotFound is returned when a run id has no row.
var ErrRunNotFound = errors.New("run not found")

// Run is one generation run's bookkeeping row.
type Run struct {
	ID           string
	Scenario     string
	Seed         int64
	Environment  string
	TargetSchema string
	Status       string
	StartedAt    time.Time
	FinishedAt   *time.Time
}

// dataTables lists every table carrying a run_id, in dependency order.
// Rollback deletes in reverse so foreign keys never dangle mid-delete.
var dataTables = []string{
	"users",
	"companies",
	"branch_staff",
	"addresses",
	"products",
	"orders",
	"order_items",
	"inventory_movements",
	"shipments",
	"delivery_attempts",
	"payments",
	"discounts",
	"returns",
	"refunds",
	"maintenance_visits",
	"audit_logs",
}

// countQueries maps record-count kinds to their per-run count query.
// Companies and branches share one table, split by is_branch; delivery
// attempts ride inside shipments and are not counted separately.
var countQueries = map[string]string{
	entity.KindUsers:       "SELECT COUNT(*) FROM users WHERE run_id = ?",
	entity.KindCompanies:   "SELECT COUNT(*) FROM companies WHERE run_id = ? AND is_branch = 0",
	entity.KindBranches:    "SELECT COUNT(*) FROM companies WHERE run_id = ? AND is_branch = 1",
	entity.KindStaff:       "SELECT COUNT(*) FROM branch_staff WHERE run_id = ?",
	entity.KindAddresses:   "SELECT COUNT(*) FROM addresses WHERE run_id = ?",
	entity.KindProducts:    "SELECT COUNT(*) FROM products WHERE run_id = ?",
	entity.KindOrders:      "SELECT COUNT(*) FROM orders WHERE run_id = ?",
	entity.KindOrderItems:  "SELECT COUNT(*) FROM order_items WHERE run_id = ?",
	entity.KindInventory:   "SELECT COUNT(*) FROM inventory_movements WHERE run_id = ?",
	entity.KindShipments:   "SELECT COUNT(*) FROM shipments WHERE run_id = ?",
	entity.KindPayments:    "SELECT COUNT(*) FROM payments WHERE run_id = ?",
	entity.KindDiscounts:   "SELECT COUNT(*) FROM discounts WHERE run_id = ?",
	entity.KindReturns:     "SELECT COUNT(*) FROM returns WHERE run_id = ?",
	entity.KindRefunds:     "SELECT COUNT(*) FROM refunds WHERE run_id = ?",
	entity.KindMaintenance: "SELECT COUNT(*) FROM maintenance_visits WHERE run_id = ?",
	entity.KindAuditLogs:   "SELECT COUNT(*) FROM audit_logs WHERE run_id = ?",
}

// CreateRun records the start of a generation run.
func (s *Store) CreateRun(ctx context.Context, r Run) error {
	query, args, err := sq.Insert("runs").
		Columns("id", "scenario", "seed", "environment", "target_schema", "status", "started_at").
		Values(r.ID, r.Scenario, r.Seed, r.Environment, r.TargetSchema, r.Status, ts(r.StartedAt)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build run insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create run %s: %w", r.ID, err)
	}
	return nil
}

// FinishRun marks a run's terminal status and finish time.
func (s *Store) FinishRun(ctx context.Context, runID, status string, finishedAt time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, finished_at = ? WHERE id = ?`,
		status, ts(finishedAt), runID)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", runID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish run %s: %w", runID, ErrRunNotFound)
	}
	return nil
}

// GetRun fetches one run's bookkeeping row.
func (s *Store) GetRun(ctx context.Context, runID string) (Run, error) {
	var (
		r                     Run
		startedAt, finishedAt sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, scenario, seed, environment, target_schema, status, started_at, finished_at
		 FROM runs WHERE id = ?`, runID).
		Scan(&r.ID, &r.Scenario, &r.Seed, &r.Environment, &r.TargetSchema, &r.Status, &startedAt, &finishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("get run %s: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	if startedAt.Valid {
		if t, perr := time.Parse(time.RFC3339Nano, startedAt.String); perr == nil {
			r.StartedAt = t
		}
	}
	if finishedAt.Valid {
		if t, perr := time.Parse(time.RFC3339Nano, finishedAt.String); perr == nil {
			r.FinishedAt = &t
		}
	}
	return r, nil
}

// DeleteRun removes every row a run produced, in reverse dependency
// order inside one transaction, then the run row itself. Used for
// rollback after a failed run; other runs' data is untouched.
func (s *Store) DeleteRun(ctx context.Context, runID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("rollback run %s: %w", runID, err)
	}
	defer tx.Rollback()

	for i := len(dataTables) - 1; i >= 0; i-- {
		table := dataTables[i]
		query, args, err := sq.Delete(table).Where(sq.Eq{"run_id": runID}).ToSql()
		if err != nil {
			return fmt.Errorf("build delete for %s: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("rollback run %s, table %s: %w", runID, table, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, runID); err != nil {
		return fmt.Errorf("rollback run %s: %w", runID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("rollback run %s: %w", runID, err)
	}
	return nil
}

// CountsByRun tallies the persisted rows per entity kind for one run.
func (s *Store) CountsByRun(ctx context.Context, runID string) (entity.RecordCounts, error) {
	counts := entity.RecordCounts{}
	for kind, query := range countQueries {
		var n int
		if err := s.db.QueryRowContext(ctx, query, runID).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", kind, err)
		}
		counts[kind] = n
	}
	return counts, nil
}
