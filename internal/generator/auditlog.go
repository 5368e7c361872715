package generator

import (
	"time"

	"github.com/MoraFFox/syncolow-org-sub003/internal/dist"
	"github.com/MoraFFox/syncolow-org-sub003/internal/entity"
)

// systemLogQuota is the fixed number of system-level entries per run
// (scheduled jobs, backups, config reloads).
const systemLogQuota = 25

var systemActions = []string{
	"scheduled_export_completed", "nightly_backup_completed",
	"config_reloaded", "session_sweep", "report_cache_rebuilt",
}

// AuditLogGenerator runs last and synthesizes the audit trail: one or
// more lifecycle entries per record of every other entity, login/logout
// session pairs per user, and a fixed quota of system-level entries.
type AuditLogGenerator struct {
	s *Sampler
}

func NewAuditLogGenerator(seed int64) *AuditLogGenerator {
	return &AuditLogGenerator{s: NewSampler(seed, entity.KindAuditLogs)}
}

func (g *AuditLogGenerator) Generate(d *Dataset) []entity.AuditLog {
	var out []entity.AuditLog

	actor := func() string {
		if len(d.Users) == 0 {
			return "system"
		}
		return dist.Pick(g.s.R, d.Users).ID
	}
	add := func(action, entityType, entityID string, at time.Time) {
		out = append(out, entity.AuditLog{
			ID:         g.s.ID("log"),
			Actor:      actor(),
			Action:     action,
			EntityType: entityType,
			EntityID:   entityID,
			OccurredAt: at,
		})
	}

	// Addresses and staff carry no timestamp of their own; their entries
	// anchor to the creation time of the owning company or branch.
	createdAt := make(map[string]time.Time, len(d.Companies)+len(d.Branches))

	for _, u := range d.Users {
		add("user_created", entity.KindUsers, u.ID, u.CreatedAt)
	}
	for _, c := range d.Companies {
		createdAt[c.ID] = c.CreatedAt
		add("company_created", entity.KindCompanies, c.ID, c.CreatedAt)
	}
	for _, b := range d.Branches {
		createdAt[b.ID] = b.CreatedAt
		add("branch_created", entity.KindBranches, b.ID, b.CreatedAt)
	}
	for _, st := range d.Staff {
		add("staff_added", entity.KindStaff, st.ID, createdAt[st.BranchID])
	}
	for _, a := range d.Addresses {
		owner := a.CompanyID
		if a.BranchID != "" {
			owner = a.BranchID
		}
		add("address_added", entity.KindAddresses, a.ID, createdAt[owner])
	}
	for _, p := range d.Products {
		add("product_created", entity.KindProducts, p.ID, p.CreatedAt)
	}
	for _, o := range d.Orders {
		add("order_created", entity.KindOrders, o.ID, o.OrderedAt)
		switch o.Status {
		case entity.OrderCancelled:
			add("order_cancelled", entity.KindOrders, o.ID, o.OrderedAt.AddDate(0, 0, g.s.R.IntBetween(0, 3)))
		case entity.OrderDelivered:
			add("order_delivered", entity.KindOrders, o.ID, o.DeliveryDate)
		}
	}
	for _, m := range d.Inventory {
		add("inventory_"+m.Type, entity.KindInventory, m.ID, m.OccurredAt)
	}
	for _, shp := range d.Shipments {
		add("shipment_dispatched", entity.KindShipments, shp.ID, shp.ShippedAt)
	}
	for _, p := range d.Payments {
		add("payment_recorded", entity.KindPayments, p.ID, p.PaidAt)
	}
	for _, dsc := range d.Discounts {
		add("discount_applied", entity.KindDiscounts, dsc.ID, dsc.AppliedAt)
	}
	for _, r := range d.Returns {
		add("return_requested", entity.KindReturns, r.ID, r.RequestedAt)
	}
	for _, r := range d.Refunds {
		add("refund_"+r.Status, entity.KindRefunds, r.ID, r.ProcessedAt)
	}
	for _, v := range d.Maintenance {
		add("maintenance_visit_logged", entity.KindMaintenance, v.ID, v.VisitedAt)
	}

	// Login/logout session pairs per user, placed near account creation.
	for _, u := range d.Users {
		sessions := g.s.R.IntBetween(1, 5)
		for sn := 0; sn < sessions; sn++ {
			login := u.CreatedAt.AddDate(0, 0, g.s.R.IntBetween(1, 90))
			out = append(out, entity.AuditLog{
				ID: g.s.ID("log"), Actor: u.ID, Action: "login",
				EntityType: entity.KindUsers, EntityID: u.ID, OccurredAt: login,
			})
			out = append(out, entity.AuditLog{
				ID: g.s.ID("log"), Actor: u.ID, Action: "logout",
				EntityType: entity.KindUsers, EntityID: u.ID,
				OccurredAt: login.Add(time.Duration(g.s.R.IntBetween(5, 240)) * time.Minute),
			})
		}
	}

	// System-level quota. Anchored to the first order so the entries are
	// deterministic; with an empty order book a fixed epoch keeps two
	// identical runs byte-identical.
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if len(d.Orders) > 0 {
		base = d.Orders[0].OrderedAt
	}
	for i := 0; i < systemLogQuota; i++ {
		out = append(out, entity.AuditLog{
			ID: g.s.ID("log"), Actor: "system",
			Action:     dist.Pick(g.s.R, systemActions),
			EntityType: "system", EntityID: "system",
			OccurredAt: base.AddDate(0, 0, i%7),
		})
	}
	return out
}
