package generator

import "github.com/MoraFFox/syncolow-org-sub003/internal/entity"

// Dataset accumulates one run's generated entities. It is owned by a
// single run; later pipeline stages read the collections earlier stages
// filled in. Nothing here is shared across runs.
type Dataset struct {
	Users       []entity.User
	Companies   []entity.Company
	Branches    []entity.Branch
	Staff       []entity.BranchStaff
	Addresses   []entity.Address
	Products    []entity.Product
	Orders      []entity.Order
	Inventory   []entity.InventoryMovement
	Shipments   []entity.Shipment
	Payments    []entity.Payment
	Discounts   []entity.Discount
	Returns     []entity.Return
	Refunds     []entity.Refund
	Maintenance []entity.MaintenanceVisit
	AuditLogs   []entity.AuditLog
}

// Counts returns the per-entity record counts currently held, counting
// order items and delivery attempts out of their parents.
func (d *Dataset) Counts() entity.RecordCounts {
	items := 0
	for _, o := range d.Orders {
		items += len(o.Items)
	}
	return entity.RecordCounts{
		entity.KindUsers:       len(d.Users),
		entity.KindCompanies:   len(d.Companies),
		entity.KindBranches:    len(d.Branches),
		entity.KindStaff:       len(d.Staff),
		entity.KindAddresses:   len(d.Addresses),
		entity.KindProducts:    len(d.Products),
		entity.KindOrders:      len(d.Orders),
		entity.KindOrderItems:  items,
		entity.KindInventory:   len(d.Inventory),
		entity.KindShipments:   len(d.Shipments),
		entity.KindPayments:    len(d.Payments),
		entity.KindDiscounts:   len(d.Discounts),
		entity.KindReturns:     len(d.Returns),
		entity.KindRefunds:     len(d.Refunds),
		entity.KindMaintenance: len(d.Maintenance),
		entity.KindAuditLogs:   len(d.AuditLogs),
	}
}

// BranchesByCompany indexes branches by their parent company id.
func (d *Dataset) BranchesByCompany() map[string][]entity.Branch {
	out := make(map[string][]entity.Branch)
	for _, b := range d.Branches {
		out[b.ParentCompanyID] = append(out[b.ParentCompanyID], b)
	}
	return out
}
