package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MoraFFox/syncolow-org-sub003/internal/entity"
)

// DefaultBatchSize is the number of rows per multi-row INSERT. SQLite
// caps bound parameters per statement, so batches stay well under it
// even for the widest table.
const DefaultBatchSize = 200

// Writer persists generated entities in batched multi-row inserts. All
// rows are stamped with the run id they belong to.
type Writer struct {
	s         *Store
	batchSize int
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithBatchSize overrides the rows-per-statement batch size.
func WithBatchSize(n int) WriterOption {
	return func(w *Writer) {
		if n > 0 {
			w.batchSize = n
		}
	}
}

func NewWriter(s *Store, opts ...WriterOption) *Writer {
	w := &Writer{s: s, batchSize: DefaultBatchSize}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// insertRows executes batched multi-row inserts for one table.
func (w *Writer) insertRows(ctx context.Context, table string, columns []string, rows [][]any) error {
	for start := 0; start < len(rows); start += w.batchSize {
		end := start + w.batchSize
		if end > len(rows) {
			end = len(rows)
		}

		builder := sq.Insert(table).Columns(columns...)
		for _, row := range rows[start:end] {
			builder = builder.Values(row...)
		}
		query, args, err := builder.ToSql()
		if err != nil {
			return fmt.Errorf("build insert for %s: %w", table, err)
		}
		if _, err := w.s.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	return nil
}

func ts(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func tsPtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return ts(*t)
}

// encodeDeliveryDays flattens weekdays to a comma-separated number list
// for the companies.delivery_days column.
func encodeDeliveryDays(days []time.Weekday) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(int(d))
	}
	return strings.Join(parts, ",")
}

func (w *Writer) InsertUsers(ctx context.Context, runID string, users []entity.User) error {
	rows := make([][]any, len(users))
	for i, u := range users {
		rows[i] = []any{u.ID, runID, u.Email, u.FullName, u.Role, u.Region, ts(u.CreatedAt)}
	}
	return w.insertRows(ctx, "users", []string{
		"id", "run_id", "email", "full_name", "role", "region", "created_at",
	}, rows)
}

// InsertCompanies writes companies and branches into the shared table.
// Companies must be written first so branch parent references resolve.
func (w *Writer) InsertCompanies(ctx context.Context, runID string, companies []entity.Company, branches []entity.Branch) error {
	columns := []string{
		"id", "run_id", "name", "region", "tier", "delivery_days",
		"is_branch", "parent_company_id", "created_at",
	}
	rows := make([][]any, 0, len(companies))
	for _, c := range companies {
		rows = append(rows, []any{
			c.ID, runID, c.Name, c.Region, c.Tier,
			encodeDeliveryDays(c.DeliveryDays), 0, nil, ts(c.CreatedAt),
		})
	}
	if err := w.insertRows(ctx, "companies", columns, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, b := range branches {
		rows = append(rows, []any{
			b.ID, runID, b.Name, b.Region, nil, nil, 1, b.ParentCompanyID, ts(b.CreatedAt),
		})
	}
	return w.insertRows(ctx, "companies", columns, rows)
}

func (w *Writer) InsertStaff(ctx context.Context, runID string, staff []entity.BranchStaff) error {
	rows := make([][]any, len(staff))
	for i, s := range staff {
		rows[i] = []any{s.ID, runID, s.BranchID, s.Name, s.Role, s.Phone}
	}
	return w.insertRows(ctx, "branch_staff", []string{
		"id", "run_id", "branch_id", "name", "role", "phone",
	}, rows)
}

func (w *Writer) InsertAddresses(ctx context.Context, runID string, addresses []entity.Address) error {
	rows := make([][]any, len(addresses))
	for i, a := range addresses {
		var branchID any
		if a.BranchID != "" {
			branchID = a.BranchID
		}
		rows[i] = []any{a.ID, runID, a.CompanyID, branchID, a.Kind, a.Street, a.City, a.Region, a.Postal}
	}
	return w.insertRows(ctx, "addresses", []string{
		"id", "run_id", "company_id", "branch_id", "kind", "street", "city", "region", "postal",
	}, rows)
}

func (w *Writer) InsertProducts(ctx context.Context, runID string, products []entity.Product) error {
	rows := make([][]any, len(products))
	for i, p := range products {
		rows[i] = []any{p.ID, runID, p.SKU, p.Name, p.Category, p.UnitPrice, ts(p.CreatedAt)}
	}
	return w.insertRows(ctx, "products", []string{
		"id", "run_id", "sku", "name", "category", "unit_price", "created_at",
	}, rows)
}

// InsertOrders writes orders and their line items.
func (w *Writer) InsertOrders(ctx context.Context, runID string, orders []entity.Order) error {
	rows := make([][]any, len(orders))
	var itemRows [][]any
	for i, o := range orders {
		var branchID any
		if o.BranchID != "" {
			branchID = o.BranchID
		}
		rows[i] = []any{
			o.ID, runID, o.CompanyID, branchID, o.Status, o.PaymentStatus,
			o.Subtotal, o.Tax, o.Discount, o.GrandTotal,
			ts(o.OrderedAt), ts(o.DeliveryDate), tsPtr(o.PaidAt),
			o.CancelReason, o.Anomaly,
		}
		for _, item := range o.Items {
			itemRows = append(itemRows, []any{
				item.ID, runID, item.OrderID, item.ProductID,
				item.Quantity, item.UnitPrice, item.LineTotal,
			})
		}
	}
	if err := w.insertRows(ctx, "orders", []string{
		"id", "run_id", "company_id", "branch_id", "status", "payment_status",
		"subtotal", "tax", "discount", "grand_total",
		"ordered_at", "delivery_date", "paid_at", "cancel_reason", "anomaly",
	}, rows); err != nil {
		return err
	}
	return w.insertRows(ctx, "order_items", []string{
		"id", "run_id", "order_id", "product_id", "quantity", "unit_price", "line_total",
	}, itemRows)
}

func (w *Writer) InsertInventory(ctx context.Context, runID string, movements []entity.InventoryMovement) error {
	rows := make([][]any, len(movements))
	for i, m := range movements {
		var orderID any
		if m.OrderID != "" {
			orderID = m.OrderID
		}
		rows[i] = []any{m.ID, runID, m.ProductID, orderID, m.Type, m.Quantity, m.StockAfter, ts(m.OccurredAt)}
	}
	return w.insertRows(ctx, "inventory_movements", []string{
		"id", "run_id", "product_id", "order_id", "type", "quantity", "stock_after", "occurred_at",
	}, rows)
}

// InsertShipments writes shipments and their delivery attempts.
func (w *Writer) InsertShipments(ctx context.Context, runID string, shipments []entity.Shipment) error {
	rows := make([][]any, len(shipments))
	var attemptRows [][]any
	for i, s := range shipments {
		rows[i] = []any{s.ID, runID, s.OrderID, s.Carrier, s.Status, ts(s.ShippedAt)}
		for _, a := range s.Attempts {
			success := 0
			if a.Success {
				success = 1
			}
			attemptRows = append(attemptRows, []any{
				a.ID, runID, a.ShipmentID, ts(a.AttemptedAt), success, a.FailReason,
			})
		}
	}
	if err := w.insertRows(ctx, "shipments", []string{
		"id", "run_id", "order_id", "carrier", "status", "shipped_at",
	}, rows); err != nil {
		return err
	}
	return w.insertRows(ctx, "delivery_attempts", []string{
		"id", "run_id", "shipment_id", "attempted_at", "success", "fail_reason",
	}, attemptRows)
}

func (w *Writer) InsertPayments(ctx context.Context, runID string, payments []entity.Payment) error {
	rows := make([][]any, len(payments))
	for i, p := range payments {
		rows[i] = []any{p.ID, runID, p.OrderID, p.Amount, p.Method, p.Reference, ts(p.PaidAt)}
	}
	return w.insertRows(ctx, "payments", []string{
		"id", "run_id", "order_id", "amount", "method", "reference", "paid_at",
	}, rows)
}

func (w *Writer) InsertDiscounts(ctx context.Context, runID string, discounts []entity.Discount) error {
	rows := make([][]any, len(discounts))
	for i, d := range discounts {
		rows[i] = []any{d.ID, runID, d.OrderID, d.Code, d.Kind, d.Value, ts(d.AppliedAt)}
	}
	return w.insertRows(ctx, "discounts", []string{
		"id", "run_id", "order_id", "code", "kind", "value", "applied_at",
	}, rows)
}

func (w *Writer) InsertReturns(ctx context.Context, runID string, returns []entity.Return) error {
	rows := make([][]any, len(returns))
	for i, r := range returns {
		rows[i] = []any{r.ID, runID, r.OrderID, r.Status, r.Reason, ts(r.RequestedAt)}
	}
	return w.insertRows(ctx, "returns", []string{
		"id", "run_id", "order_id", "status", "reason", "requested_at",
	}, rows)
}

func (w *Writer) InsertRefunds(ctx context.Context, runID string, refunds []entity.Refund) error {
	rows := make([][]any, len(refunds))
	for i, r := range refunds {
		rows[i] = []any{r.ID, runID, r.ReturnID, r.OrderID, r.Amount, r.Status, ts(r.ProcessedAt)}
	}
	return w.insertRows(ctx, "refunds", []string{
		"id", "run_id", "return_id", "order_id", "amount", "status", "processed_at",
	}, rows)
}

func (w *Writer) InsertMaintenance(ctx context.Context, runID string, visits []entity.MaintenanceVisit) error {
	rows := make([][]any, len(visits))
	for i, v := range visits {
		var branchID, rootID any
		if v.BranchID != "" {
			branchID = v.BranchID
		}
		if v.RootVisitID != "" {
			rootID = v.RootVisitID
		}
		rows[i] = []any{v.ID, runID, v.CompanyID, branchID, rootID, v.VisitNumber, v.Technician, v.Issue, v.Resolution, ts(v.VisitedAt)}
	}
	return w.insertRows(ctx, "maintenance_visits", []string{
		"id", "run_id", "company_id", "branch_id", "root_visit_id",
		"visit_number", "technician", "issue", "resolution", "visited_at",
	}, rows)
}

func (w *Writer) InsertAuditLogs(ctx context.Context, runID string, logs []entity.AuditLog) error {
	rows := make([][]any, len(logs))
	for i, l := range logs {
		rows[i] = []any{l.ID, runID, l.Actor, l.Action, l.EntityType, l.EntityID, ts(l.OccurredAt)}
	}
	return w.insertRows(ctx, "audit_logs", []string{
		"id", "run_id", "actor", "action", "entity_type", "entity_id", "occurred_at",
	}, rows)
}
