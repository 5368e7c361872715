package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MoraFFox/syncolow-org-sub003/internal/scenario"
)

// ValidationResult holds profile validation results.
type ValidationResult struct {
	Valid  bool                       `json:"valid"`
	Errors []scenario.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <profile.yaml>",
		Short: "Validate a scenario profile file",
		Long: `Validate a YAML scenario profile against the schema: numeric
ranges, distribution sums, anomaly types. The profile is not registered;
this is a pure check for development feedback.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "read profile", err)
	}

	var p scenario.Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		_ = formatter.Error("E_PARSE", err.Error(), nil)
		return WrapExitError(ExitFailure, "profile does not parse", err)
	}

	result := opts.Scenarios.Validate(&p)
	out := ValidationResult{Valid: result.Valid, Errors: result.Errors}

	if opts.Format == "json" {
		if err := formatter.Success(out); err != nil {
			return err
		}
	} else if out.Valid {
		fmt.Fprintf(formatter.Writer, "%s: valid\n", p.Name)
	} else {
		fmt.Fprintf(formatter.Writer, "%s: %d problem(s)\n", p.Name, len(out.Errors))
		for _, e := range out.Errors {
			fmt.Fprintf(formatter.Writer, "  [%s] %s: %s\n", e.Code, e.Field, e.Message)
		}
	}

	if !out.Valid {
		return WrapExitError(ExitFailure, "profile is invalid", nil)
	}
	return nil
}
