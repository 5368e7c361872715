// Package orchestrator runs the full generation pipeline: config
// validation, safety gating, staged entity generation with progress
// tracking, referential-integrity validation, and batched persistence
// with run-keyed rollback on failure.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/MoraFFox/syncolow-org-sub003/internal/entity"
	"github.com/MoraFFox/syncolow-org-sub003/internal/generator"
	"github.com/MoraFFox/syncolow-org-sub003/internal/progress"
	"github.com/MoraFFox/syncolow-org-sub003/internal/safety"
	"github.com/MoraFFox/syncolow-org-sub003/internal/scenario"
	"github.com/MoraFFox/syncolow-org-sub003/internal/store"
	"github.com/MoraFFox/syncolow-org-sub003/internal/timeseries"
)

// Orchestrator wires the scenario registry, safety guard and store into
// an executable pipeline. Construct with New; all collaborators are
// passed in explicitly.
type Orchestrator struct {
	scenarios *scenario.Manager
	guard     *safety.Guard
	store     *store.Store
	tsCfg     timeseries.Config
	listeners []progress.Listener
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithStore attaches a backing store. Without one, only dry runs are
// possible.
func WithStore(s *store.Store) Option {
	return func(o *Orchestrator) { o.store = s }
}

// WithGuard replaces the default safety policy.
func WithGuard(g *safety.Guard) Option {
	return func(o *Orchestrator) { o.guard = g }
}

// WithTimeSeriesConfig replaces the default temporal weighting.
func WithTimeSeriesConfig(cfg timeseries.Config) Option {
	return func(o *Orchestrator) { o.tsCfg = cfg }
}

// WithProgressListener subscribes a listener to every run's tracker.
func WithProgressListener(l progress.Listener) Option {
	return func(o *Orchestrator) { o.listeners = append(o.listeners, l) }
}

func New(scenarios *scenario.Manager, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		scenarios: scenarios,
		guard:     safety.NewGuard(),
		tsCfg:     timeseries.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// plannedCounts scales the profile's entity rates by the volume
// multiplier. Derived entities (branches, line items, audit logs) are
// not planned up front; the safety gate checks the requested targets.
func plannedCounts(p *scenario.Profile, cfg GeneratorConfig) entity.RecordCounts {
	days := cfg.Days()
	weeks := float64(days) / 7
	scale := func(rate float64) int {
		return int(math.Floor(rate * cfg.VolumeMultiplier))
	}
	return entity.RecordCounts{
		entity.KindUsers:       scale(p.Rate(scenario.RateUsers)),
		entity.KindCompanies:   scale(p.Rate(scenario.RateCompanies)),
		entity.KindProducts:    scale(p.Rate(scenario.RateProducts)),
		entity.KindOrders:      scale(float64(days) * p.Rate(scenario.RateOrdersPerDay)),
		entity.KindMaintenance: scale(weeks * p.Rate(scenario.RateMaintenancePerWeek)),
	}
}

// Execute runs the whole pipeline for one configuration. The returned
// result is non-nil even on failure and carries partial counts plus
// every error hit. Cancellation via ctx is checked between stages and
// surfaces as a cancelled run.
func (o *Orchestrator) Execute(ctx context.Context, cfg GeneratorConfig) (*GenerationResult, error) {
	result := &GenerationResult{
		JobID:        newJobID(),
		Scenario:     cfg.Scenario,
		RecordCounts: entity.RecordCounts{},
		StartedAt:    time.Now(),
	}
	fail := func(stage string, err error) (*GenerationResult, error) {
		result.Errors = append(result.Errors, RunError{Stage: stage, Err: err, At: time.Now()})
		result.FinishedAt = time.Now()
		result.Duration = result.FinishedAt.Sub(result.StartedAt)
		slog.Error("generation run failed", "job", result.JobID, "stage", stage, "error", err)
		return result, err
	}

	if err := cfg.Validate(); err != nil {
		return fail("config", err)
	}
	result.Config = cfg
	result.DryRun = cfg.DryRun

	profile, err := o.scenarios.Get(cfg.Scenario)
	if err != nil {
		return fail("config", &ConfigError{Field: "scenario", Message: err.Error()})
	}

	planned := plannedCounts(profile, cfg)
	if violations := o.guard.Check(safety.Request{
		Environment:  cfg.Environment,
		TargetSchema: cfg.TargetSchema,
		RecordCounts: planned,
	}); len(violations) > 0 {
		return fail("safety", &SafetyError{Violations: violations})
	}

	slog.Info("generation run starting",
		"job", result.JobID, "scenario", cfg.Scenario, "seed", cfg.Seed,
		"days", cfg.Days(), "dryRun", cfg.DryRun)

	tracker := progress.NewTracker(planned)
	for _, l := range o.listeners {
		tracker.AddListener(l)
	}
	tracker.Start()

	d, err := o.generate(ctx, tracker, profile, cfg, planned)
	if err != nil {
		if ctx.Err() != nil {
			tracker.Cancel()
		} else {
			tracker.Fail(err)
		}
		result.RecordCounts = d.Counts()
		return fail("generate", err)
	}
	result.RecordCounts = d.Counts()

	tracker.StartValidation()
	if dangling := o.validateIntegrity(d); dangling > 0 {
		// Diagnostics only; dangling references never fail a run.
		slog.Warn("referential integrity check found dangling references",
			"job", result.JobID, "count", dangling)
	}

	if !cfg.DryRun {
		if err := o.persist(ctx, result.JobID, cfg, d); err != nil {
			tracker.Fail(err)
			tracker.StartRollback()
			if rbErr := o.store.DeleteRun(context.WithoutCancel(ctx), result.JobID); rbErr != nil {
				slog.Error("rollback failed", "job", result.JobID, "error", rbErr)
				result.Errors = append(result.Errors, RunError{Stage: "rollback", Err: rbErr, At: time.Now()})
			}
			tracker.CompleteRollback()
			return fail("write", err)
		}
	}

	tracker.Complete()
	result.Success = true
	result.FinishedAt = time.Now()
	result.Duration = result.FinishedAt.Sub(result.StartedAt)
	slog.Info("generation run completed",
		"job", result.JobID, "records", result.RecordCounts.Total(), "duration", result.Duration)
	return result, nil
}

// generate runs the entity stages in dependency order. Cancellation is
// checked before each stage; the partial dataset is always returned so
// failed runs can report the counts they reached.
func (o *Orchestrator) generate(
	ctx context.Context,
	tracker *progress.Tracker,
	profile *scenario.Profile,
	cfg GeneratorConfig,
	planned entity.RecordCounts,
) (*generator.Dataset, error) {
	d := &generator.Dataset{}
	seed := cfg.Seed
	start, end := cfg.StartDate, cfg.EndDate

	stages := []struct {
		name string
		run  func() entity.RecordCounts
	}{
		{entity.KindUsers, func() entity.RecordCounts {
			d.Users = generator.NewUserGenerator(seed, profile, start).Generate(planned[entity.KindUsers])
			return entity.RecordCounts{entity.KindUsers: len(d.Users)}
		}},
		{entity.KindCompanies, func() entity.RecordCounts {
			d.Companies, d.Branches, d.Staff = generator.NewCompanyGenerator(seed, profile, start).
				Generate(planned[entity.KindCompanies])
			return entity.RecordCounts{
				entity.KindCompanies: len(d.Companies),
				entity.KindBranches:  len(d.Branches),
				entity.KindStaff:     len(d.Staff),
			}
		}},
		{entity.KindAddresses, func() entity.RecordCounts {
			d.Addresses = generator.NewAddressGenerator(seed, profile).Generate(d.Companies, d.Branches)
			return entity.RecordCounts{entity.KindAddresses: len(d.Addresses)}
		}},
		{entity.KindProducts, func() entity.RecordCounts {
			d.Products = generator.NewProductGenerator(seed, start).Generate(planned[entity.KindProducts])
			return entity.RecordCounts{entity.KindProducts: len(d.Products)}
		}},
		{entity.KindOrders, func() entity.RecordCounts {
			d.Orders = generator.NewOrderGenerator(seed, profile, o.tsCfg,
				d.Companies, d.BranchesByCompany(), d.Products).
				Generate(start, end, planned[entity.KindOrders])
			items := 0
			for _, ord := range d.Orders {
				items += len(ord.Items)
			}
			return entity.RecordCounts{
				entity.KindOrders:     len(d.Orders),
				entity.KindOrderItems: items,
			}
		}},
		{entity.KindInventory, func() entity.RecordCounts {
			d.Inventory = generator.NewInventoryGenerator(seed).Generate(d.Products, d.Orders)
			return entity.RecordCounts{entity.KindInventory: len(d.Inventory)}
		}},
		{entity.KindShipments, func() entity.RecordCounts {
			d.Shipments = generator.NewShipmentGenerator(seed).Generate(d.Orders)
			return entity.RecordCounts{entity.KindShipments: len(d.Shipments)}
		}},
		{entity.KindPayments, func() entity.RecordCounts {
			d.Payments = generator.NewPaymentGenerator(seed).Generate(d.Orders)
			return entity.RecordCounts{entity.KindPayments: len(d.Payments)}
		}},
		{entity.KindDiscounts, func() entity.RecordCounts {
			d.Discounts = generator.NewDiscountGenerator(seed).Generate(d.Orders)
			return entity.RecordCounts{entity.KindDiscounts: len(d.Discounts)}
		}},
		{entity.KindRefunds, func() entity.RecordCounts {
			d.Returns, d.Refunds = generator.NewRefundGenerator(seed).Generate(d.Orders)
			return entity.RecordCounts{
				entity.KindReturns: len(d.Returns),
				entity.KindRefunds: len(d.Refunds),
			}
		}},
		{entity.KindMaintenance, func() entity.RecordCounts {
			d.Maintenance = generator.NewMaintenanceGenerator(seed, o.tsCfg).
				Generate(start, end, planned[entity.KindMaintenance], d.Companies, d.BranchesByCompany())
			return entity.RecordCounts{entity.KindMaintenance: len(d.Maintenance)}
		}},
		{entity.KindAuditLogs, func() entity.RecordCounts {
			d.AuditLogs = generator.NewAuditLogGenerator(seed).Generate(d)
			return entity.RecordCounts{entity.KindAuditLogs: len(d.AuditLogs)}
		}},
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return d, err
		}
		if err := runStage(tracker, stage.name, stage.run); err != nil {
			return d, err
		}
	}
	return d, nil
}

// runStage wraps one generation stage in tracker events and converts
// stage panics into GenerationErrors.
func runStage(tracker *progress.Tracker, name string, run func() entity.RecordCounts) (err error) {
	defer func() {
		if r := recover(); r != nil {
			genErr := &GenerationError{
				Entity:  name,
				Message: fmt.Sprint(r),
				At:      time.Now(),
			}
			tracker.RecordError(name, genErr)
			err = genErr
		}
	}()

	tracker.StartEntity(name, 1)
	for kind, n := range run() {
		tracker.CompleteBatch(kind, n)
	}
	tracker.CompleteEntity(name)
	return nil
}

// validateIntegrity checks that cross-entity references resolve. Issues
// are logged and counted, never fatal.
func (o *Orchestrator) validateIntegrity(d *generator.Dataset) int {
	companyIDs := make(map[string]bool, len(d.Companies))
	for _, c := range d.Companies {
		companyIDs[c.ID] = true
	}
	productIDs := make(map[string]bool, len(d.Products))
	for _, p := range d.Products {
		productIDs[p.ID] = true
	}
	orderIDs := make(map[string]bool, len(d.Orders))
	for _, ord := range d.Orders {
		orderIDs[ord.ID] = true
	}

	dangling := 0
	for _, ord := range d.Orders {
		if !companyIDs[ord.CompanyID] {
			slog.Warn("order references unknown company", "order", ord.ID, "company", ord.CompanyID)
			dangling++
		}
		for _, item := range ord.Items {
			if !productIDs[item.ProductID] {
				slog.Warn("order item references unknown product", "order", ord.ID, "product", item.ProductID)
				dangling++
			}
		}
	}
	for _, s := range d.Shipments {
		if !orderIDs[s.OrderID] {
			slog.Warn("shipment references unknown order", "shipment", s.ID, "order", s.OrderID)
			dangling++
		}
	}
	for _, p := range d.Payments {
		if !orderIDs[p.OrderID] {
			slog.Warn("payment references unknown order", "payment", p.ID, "order", p.OrderID)
			dangling++
		}
	}
	return dangling
}

// persist writes the dataset through the safety-gated store client.
// Cancellation is checked between tables.
func (o *Orchestrator) persist(ctx context.Context, runID string, cfg GeneratorConfig, d *generator.Dataset) error {
	if o.store == nil {
		return &ConfigError{Field: "store", Message: "no backing store configured; use dry-run"}
	}

	gateway := store.NewGateway(o.store, o.guard, cfg.Environment, cfg.TargetSchema)
	writer, err := gateway.Writer(d.Counts(), store.WithBatchSize(cfg.BatchSize))
	if err != nil {
		return err
	}

	if err := o.store.CreateRun(ctx, store.Run{
		ID:           runID,
		Scenario:     cfg.Scenario,
		Seed:         cfg.Seed,
		Environment:  cfg.Environment,
		TargetSchema: cfg.TargetSchema,
		Status:       string(progress.StatusGenerating),
		StartedAt:    time.Now(),
	}); err != nil {
		return &WriteError{Table: "runs", Cause: err}
	}

	steps := []struct {
		table string
		fn    func() error
	}{
		{"users", func() error { return writer.InsertUsers(ctx, runID, d.Users) }},
		{"companies", func() error { return writer.InsertCompanies(ctx, runID, d.Companies, d.Branches) }},
		{"branch_staff", func() error { return writer.InsertStaff(ctx, runID, d.Staff) }},
		{"addresses", func() error { return writer.InsertAddresses(ctx, runID, d.Addresses) }},
		{"products", func() error { return writer.InsertProducts(ctx, runID, d.Products) }},
		{"orders", func() error { return writer.InsertOrders(ctx, runID, d.Orders) }},
		{"inventory_movements", func() error { return writer.InsertInventory(ctx, runID, d.Inventory) }},
		{"shipments", func() error { return writer.InsertShipments(ctx, runID, d.Shipments) }},
		{"payments", func() error { return writer.InsertPayments(ctx, runID, d.Payments) }},
		{"discounts", func() error { return writer.InsertDiscounts(ctx, runID, d.Discounts) }},
		{"returns", func() error { return writer.InsertReturns(ctx, runID, d.Returns) }},
		{"refunds", func() error { return writer.InsertRefunds(ctx, runID, d.Refunds) }},
		{"maintenance_visits", func() error { return writer.InsertMaintenance(ctx, runID, d.Maintenance) }},
		{"audit_logs", func() error { return writer.InsertAuditLogs(ctx, runID, d.AuditLogs) }},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return &WriteError{Table: step.table, Cause: err}
		}
		if err := step.fn(); err != nil {
			return &WriteError{Table: step.table, Cause: err}
		}
	}

	if err := o.store.FinishRun(ctx, runID, string(progress.StatusCompleted), time.Now()); err != nil {
		return &WriteError{Table: "runs", Cause: err}
	}
	return nil
}

// newJobID returns a time-ordered unique run id.
func newJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
