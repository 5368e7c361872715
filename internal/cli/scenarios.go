package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// scenarioSummary is one registry entry in list output.
type scenarioSummary struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	AnomalyRate float64 `json:"anomalyRate"`
}

// NewScenariosCommand creates the scenarios command group.
func NewScenariosCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List and inspect scenario profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenariosList(rootOpts, cmd)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "show <name>",
		Short:         "Print one profile as JSON",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenariosShow(rootOpts, args[0], cmd)
		},
	})

	return cmd
}

func runScenariosList(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format: opts.Format,
		Writer: cmd.OutOrStdout(),
	}

	var summaries []scenarioSummary
	for _, name := range opts.Scenarios.Names() {
		p, err := opts.Scenarios.Get(name)
		if err != nil {
			return WrapExitError(ExitCommandError, "registry lookup failed", err)
		}
		summaries = append(summaries, scenarioSummary{
			Name:        p.Name,
			Description: p.Description,
			AnomalyRate: p.EffectiveAnomalyRate(),
		})
	}

	if opts.Format == "json" {
		return formatter.Success(summaries)
	}
	for _, s := range summaries {
		fmt.Fprintf(formatter.Writer, "%-20s anomaly %.0f%%  %s\n",
			s.Name, s.AnomalyRate*100, s.Description)
	}
	return nil
}

func runScenariosShow(opts *RootOptions, name string, cmd *cobra.Command) error {
	p, err := opts.Scenarios.Get(name)
	if err != nil {
		return WrapExitError(ExitCommandError, "unknown scenario", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return WrapExitError(ExitCommandError, "encode profile", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
