package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MoraFFox/syncolow-org-sub003/internal/orchestrator"
	"github.com/MoraFFox/syncolow-org-sub003/internal/progress"
	"github.com/MoraFFox/syncolow-org-sub003/internal/safety"
	"github.com/MoraFFox/syncolow-org-sub003/internal/store"
)

const dateLayout = "2006-01-02"

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Scenario    string
	Seed        int64
	Start       string
	End         string
	Multiplier  float64
	BatchSize   int
	DryRun      bool
	Database    string
	Schema      string
	Environment string
	ProfileDir  string
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run a generation pipeline",
		Long: `Run the full generation pipeline for one scenario: seeded entity
generation, anomaly injection, referential validation, and batched
writes into an isolated SQLite schema. Use --dry-run to generate and
validate without touching storage.

Example:
  syngen generate --scenario normal-ops --seed 42 --start 2024-01-01 --end 2024-03-01 --db ./syngen.db
  syngen generate --scenario outage --start 2024-01-01 --end 2024-01-15 --dry-run`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Scenario, "scenario", "normal-ops", "scenario profile name")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "root RNG seed (0 derives one from the clock)")
	cmd.Flags().StringVar(&opts.Start, "start", "", "range start, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&opts.End, "end", "", "range end, YYYY-MM-DD, exclusive (required)")
	cmd.Flags().Float64Var(&opts.Multiplier, "multiplier", 1.0, "volume multiplier applied to all entity rates")
	cmd.Flags().IntVar(&opts.BatchSize, "batch-size", orchestrator.DefaultBatchSize, "records per write batch")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "generate and validate without writing")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required unless --dry-run)")
	cmd.Flags().StringVar(&opts.Schema, "schema", orchestrator.DefaultTargetSchema, "target schema namespace")
	cmd.Flags().StringVar(&opts.Environment, "env", "", "execution environment (default: SYNGEN_ENV or development)")
	cmd.Flags().StringVar(&opts.ProfileDir, "profiles", "", "directory of additional scenario YAML files")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	// Flags participate in viper precedence: explicit flag beats
	// SYNGEN_ env var beats syngen.yaml beats flag default.
	v := newViper()
	for _, name := range []string{"scenario", "seed", "multiplier", "batch-size", "db", "schema", "env"} {
		_ = v.BindPFlag(name, cmd.Flags().Lookup(name))
	}
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		opts.Scenario = v.GetString("scenario")
		opts.Seed = v.GetInt64("seed")
		opts.Multiplier = v.GetFloat64("multiplier")
		opts.BatchSize = v.GetInt("batch-size")
		opts.Database = v.GetString("db")
		opts.Schema = v.GetString("schema")
		opts.Environment = v.GetString("env")
	}

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	setupLogging(opts.Verbose)

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := buildConfig(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	if opts.ProfileDir != "" {
		n, err := opts.Scenarios.LoadDir(opts.ProfileDir)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load scenario profiles", err)
		}
		slog.Info("loaded scenario profiles", "dir", opts.ProfileDir, "count", n)
	}

	orchOpts := []orchestrator.Option{}
	if !cfg.DryRun {
		if opts.Database == "" {
			return WrapExitError(ExitCommandError, "--db is required unless --dry-run is set", nil)
		}
		slog.Info("opening database", "path", opts.Database)
		st, err := store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()
		orchOpts = append(orchOpts, orchestrator.WithStore(st))
	}

	if opts.Format == "text" {
		orchOpts = append(orchOpts, orchestrator.WithProgressListener(
			progressRenderer(cmd.ErrOrStderr())))
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	result, err := orchestrator.New(opts.Scenarios, orchOpts...).Execute(ctx, cfg)
	if err != nil {
		code := ExitFailure
		if orchestrator.IsConfigError(err) {
			code = ExitCommandError
		}
		_ = formatter.Error(errorCode(err), err.Error(), result.RecordCounts)
		return WrapExitError(code, "generation failed", err)
	}

	return outputResult(formatter, result)
}

// buildConfig translates flags into the engine-facing configuration.
func buildConfig(opts *GenerateOptions) (orchestrator.GeneratorConfig, error) {
	start, err := time.Parse(dateLayout, opts.Start)
	if err != nil {
		return orchestrator.GeneratorConfig{}, fmt.Errorf("parse --start: %w", err)
	}
	end, err := time.Parse(dateLayout, opts.End)
	if err != nil {
		return orchestrator.GeneratorConfig{}, fmt.Errorf("parse --end: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		slog.Info("no seed supplied, derived one", "seed", seed)
	}

	env := opts.Environment
	if env == "" {
		env = safety.ResolveEnvironment()
	}

	return orchestrator.GeneratorConfig{
		Scenario:         opts.Scenario,
		Seed:             seed,
		StartDate:        start,
		EndDate:          end,
		VolumeMultiplier: opts.Multiplier,
		BatchSize:        opts.BatchSize,
		DryRun:           opts.DryRun,
		Environment:      env,
		TargetSchema:     opts.Schema,
	}, nil
}

// setupLogging configures the process-wide slog handler.
func setupLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// signalContext cancels on SIGINT/SIGTERM so a run can be interrupted
// cleanly between stages.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// progressRenderer returns a listener that paints stage transitions.
// Goes to stderr so piped stdout stays clean.
func progressRenderer(w io.Writer) progress.Listener {
	var (
		stage = color.New(color.FgCyan)
		done  = color.New(color.FgGreen)
		bad   = color.New(color.FgRed)
		warn  = color.New(color.FgYellow)
	)
	printer := message.NewPrinter(language.English)

	return func(snap progress.Snapshot, ev progress.Event) {
		switch ev.Type {
		case progress.EventEntityStarted:
			stage.Fprintf(w, "  → %s\n", ev.Entity)
		case progress.EventEntityCompleted:
			done.Fprintf(w, "  ✓ %-20s %s records  (%.1f%%)\n",
				ev.Entity, printer.Sprintf("%d", snap.Counts[ev.Entity]), snap.Percent)
		case progress.EventCompleted:
			done.Fprintf(w, "completed: %s records\n", printer.Sprintf("%d", snap.Counts.Total()))
		case progress.EventError:
			bad.Fprintf(w, "  ✗ %s: %v\n", ev.Entity, ev.Err)
		case progress.EventRolledBack:
			warn.Fprintln(w, "rolled back partial writes")
		case progress.EventCancelled:
			warn.Fprintln(w, "cancelled")
		}
	}
}

// resultSummary is the JSON payload for a finished run.
type resultSummary struct {
	JobID    string         `json:"jobId"`
	Scenario string         `json:"scenario"`
	Seed     int64          `json:"seed"`
	DryRun   bool           `json:"dryRun"`
	Duration string         `json:"duration"`
	Counts   map[string]int `json:"recordCounts"`
	Total    int            `json:"total"`
}

func outputResult(f *OutputFormatter, result *orchestrator.GenerationResult) error {
	summary := resultSummary{
		JobID:    result.JobID,
		Scenario: result.Scenario,
		Seed:     result.Config.Seed,
		DryRun:   result.DryRun,
		Duration: result.Duration.Round(time.Millisecond).String(),
		Counts:   result.RecordCounts,
		Total:    result.RecordCounts.Total(),
	}
	if f.Format == "json" {
		return f.Success(summary)
	}

	printer := message.NewPrinter(language.English)
	fmt.Fprintf(f.Writer, "job %s (%s, seed %d)\n", summary.JobID, summary.Scenario, summary.Seed)
	for _, kind := range result.RecordCounts.Kinds() {
		fmt.Fprintf(f.Writer, "  %-22s %s\n", kind, printer.Sprintf("%d", result.RecordCounts[kind]))
	}
	fmt.Fprintf(f.Writer, "  %-22s %s\n", "total", printer.Sprintf("%d", summary.Total))
	if result.DryRun {
		fmt.Fprintln(f.Writer, "dry run: nothing was written")
	}
	fmt.Fprintf(f.Writer, "finished in %s\n", summary.Duration)
	return nil
}

// errorCode maps pipeline error categories to stable CLI error codes.
func errorCode(err error) string {
	switch {
	case orchestrator.IsConfigError(err):
		return "E_CONFIG"
	case orchestrator.IsSafetyError(err):
		return "E_SAFETY"
	case orchestrator.IsGenerationError(err):
		return "E_GENERATE"
	case orchestrator.IsWriteError(err):
		return "E_WRITE"
	default:
		return "E_RUN"
	}
}
