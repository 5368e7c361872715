// Package entity defines the order-management domain records emitted by
// the generation pipeline, plus the record-count bookkeeping shared by
// the progress tracker and the generation result.
//
// Records form a DAG through id references: branches point at companies,
// orders point at companies/branches/products, shipments/payments/refunds
// point at orders, and audit logs point at everything. Every reference
// must resolve to a record produced by an earlier pipeline stage.
package entity

import "time"

// Order status values drawn from the scenario's categorical distribution.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// Payment status values, conditioned on the owning order's status.
const (
	PaymentPaid    = "paid"
	PaymentPending = "pending"
	PaymentOverdue = "overdue"
)

// Shipment status values.
const (
	ShipmentPreparing = "preparing"
	ShipmentInTransit = "in_transit"
	ShipmentDelivered = "delivered"
	ShipmentFailed    = "failed"
)

// Inventory movement types. Fulfillment decrements the per-product stock
// ledger; restock and adjustment increment it.
const (
	MovementFulfillment = "fulfillment"
	MovementRestock     = "restock"
	MovementAdjustment  = "adjustment"
)

// Maintenance visit resolution states. The first three spawn follow-up
// visits with 70% probability.
const (
	VisitResolved         = "resolved"
	VisitFollowUpRequired = "follow_up_required"
	VisitWaitingForParts  = "waiting_for_parts"
	VisitPartiallyDone    = "partially_resolved"
)

// Return / refund status values.
const (
	ReturnRequested = "requested"
	ReturnApproved  = "approved"
	ReturnReceived  = "received"
	ReturnRejected  = "rejected"

	RefundPending   = "pending"
	RefundProcessed = "processed"
	RefundDenied    = "denied"
)

// User is a dashboard operator account. Users have no upstream
// dependencies and are generated first.
type User struct {
	ID        string
	Email     string
	FullName  string
	Role      string
	Region    string
	CreatedAt time.Time
}

// Company is a customer organization. Branches reference their parent
// company; in the persisted layout both share one table distinguished by
// an is_branch flag.
type Company struct {
	ID           string
	Name         string
	Region       string
	Tier         string
	DeliveryDays []time.Weekday // fixed delivery weekdays for this customer
	CreatedAt    time.Time
}

// Branch is a company sub-location.
type Branch struct {
	ID              string
	ParentCompanyID string
	Name            string
	Region          string
	CreatedAt       time.Time
}

// BranchStaff is a contact person attached to a branch. Persisted as its
// own flattened table keyed by the owning branch.
type BranchStaff struct {
	ID       string
	BranchID string
	Name     string
	Role     string
	Phone    string
}

// Address is a delivery or billing address owned by a company or branch.
type Address struct {
	ID        string
	CompanyID string
	BranchID  string // empty for company-level addresses
	Kind      string // "delivery" | "billing"
	Street    string
	City      string
	Region    string
	Postal    string
}

// Product is a sellable item. Slice order doubles as the popularity
// ranking consumed by Zipf selection.
type Product struct {
	ID        string
	SKU       string
	Name      string
	Category  string
	UnitPrice float64
	CreatedAt time.Time
}

// OrderItem is one product line inside an order. Product ids are unique
// within a single order.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	UnitPrice float64
	LineTotal float64
}

// Order is the central transactional record.
type Order struct {
	ID            string
	CompanyID     string
	BranchID      string
	Status        string
	PaymentStatus string
	Items         []OrderItem
	Subtotal      float64
	Tax           float64
	Discount      float64
	GrandTotal    float64
	OrderedAt     time.Time
	DeliveryDate  time.Time  // snapped to the company's delivery weekdays
	PaidAt        *time.Time // nil unless PaymentStatus == paid
	CancelReason  string     // set only for cancelled orders
	Anomaly       string     // anomaly type applied to this order, if any
}

// InventoryMovement is one entry in the per-product stock ledger.
type InventoryMovement struct {
	ID         string
	ProductID  string
	OrderID    string // empty for restocks and adjustments
	Type       string
	Quantity   int // signed: fulfillment negative, restock positive
	StockAfter int
	OccurredAt time.Time
}

// DeliveryAttempt records one attempt to deliver a shipment.
type DeliveryAttempt struct {
	ID          string
	ShipmentID  string
	AttemptedAt time.Time
	Success     bool
	FailReason  string
}

// Shipment is the physical fulfillment of a non-pending, non-cancelled
// order.
type Shipment struct {
	ID        string
	OrderID   string
	Carrier   string
	Status    string
	ShippedAt time.Time
	Attempts  []DeliveryAttempt
}

// Payment settles a paid order.
type Payment struct {
	ID        string
	OrderID   string
	Amount    float64
	Method    string
	Reference string
	PaidAt    time.Time
}

// Discount is a promotional adjustment applied to an order.
type Discount struct {
	ID        string
	OrderID   string
	Code      string
	Kind      string // "percent" | "fixed"
	Value     float64
	AppliedAt time.Time
}

// Return is the precursor to a refund, raised for a small share of
// delivered orders.
type Return struct {
	ID          string
	OrderID     string
	Status      string
	Reason      string
	RequestedAt time.Time
}

// Refund is the monetary compensation for a return. Its status maps from
// the return's status.
type Refund struct {
	ID          string
	ReturnID    string
	OrderID     string
	Amount      float64
	Status      string
	ProcessedAt time.Time
}

// MaintenanceVisit is an on-site service call at a company or branch.
// Unresolved visits may spawn follow-ups linked through RootVisitID.
type MaintenanceVisit struct {
	ID          string
	CompanyID   string
	BranchID    string
	RootVisitID string // empty for first visits
	VisitNumber int    // 1 for first visits, incremented per follow-up
	Technician  string
	Issue       string // constant across a follow-up chain
	Resolution  string
	VisitedAt   time.Time
}

// AuditLog is a synthesized trail entry covering entity lifecycle events,
// user sessions, and system-level activity.
type AuditLog struct {
	ID         string
	Actor      string
	Action     string
	EntityType string
	EntityID   string
	OccurredAt time.Time
}
