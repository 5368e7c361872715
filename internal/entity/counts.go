package entity

import "sort"

// Canonical entity names used as count keys, table names, and progress
// labels. Order matches the pipeline's fixed dependency order.
const (
	KindUsers       = "users"
	KindCompanies   = "companies"
	KindBranches    = "branches"
	KindStaff       = "branch_staff"
	KindAddresses   = "addresses"
	KindProducts    = "products"
	KindOrders      = "orders"
	KindOrderItems  = "order_items"
	KindInventory   = "inventory_movements"
	KindShipments   = "shipments"
	KindPayments    = "payments"
	KindDiscounts   = "discounts"
	KindReturns     = "returns"
	KindRefunds     = "refunds"
	KindMaintenance = "maintenance_visits"
	KindAuditLogs   = "audit_logs"
)

// RecordCounts maps entity name to a non-negative record count. Used both
// as generation targets and as the running totals in progress snapshots.
type RecordCounts map[string]int

// Add increments the count for an entity. Negative deltas are clamped so
// a count can never go below zero.
func (c RecordCounts) Add(kind string, n int) {
	next := c[kind] + n
	if next < 0 {
		next = 0
	}
	c[kind] = next
}

// Total returns the sum across all entities.
func (c RecordCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Clone returns an independent copy. Progress snapshots hand out clones
// so consumers can never mutate tracker state.
func (c RecordCounts) Clone() RecordCounts {
	out := make(RecordCounts, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Kinds returns the entity names present, sorted for deterministic
// iteration in logs and tests.
func (c RecordCounts) Kinds() []string {
	kinds := make([]string, 0, len(c))
	for k := range c {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
