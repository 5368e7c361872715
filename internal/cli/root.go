// Package cli implements the syngen command tree: generate, scenarios,
// and validate. Global flags select output format and verbosity;
// per-run configuration comes from flags merged with a viper config
// file and SYNGEN_-prefixed environment variables.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MoraFFox/syncolow-org-sub003/internal/scenario"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// Scenarios is the shared registry, constructed once per process
	// and passed down explicitly.
	Scenarios *scenario.Manager
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the syngen CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{
		Scenarios: scenario.NewManager(),
	}

	cmd := &cobra.Command{
		Use:   "syngen",
		Short: "Synthetic order-management dataset generator",
		Long: `syngen generates deterministic synthetic datasets for an
order-management domain: seeded sampling, scenario profiles, temporal
event placement, anomaly injection, and safety-gated persistence.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewScenariosCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

// newViper builds the configuration source shared by commands: an
// optional syngen.yaml in the working directory plus SYNGEN_ env vars.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("syngen")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("SYNGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// A missing config file is fine; flags and env cover everything.
	_ = v.ReadInConfig()
	return v
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
