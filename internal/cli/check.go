package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/mockingbird/internal/engine"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Overrides    string
	Options      string
	Root         string
	Query        string
	Operation    string
	RequiredOnly bool
	Strict       bool // unused patterns fail the check
}

// CheckIssue is one problem found by check.
type CheckIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CheckResult is the JSON payload of the check command.
type CheckResult struct {
	Valid  bool         `json:"valid"`
	Paths  int          `json:"paths"`
	Errors []CheckIssue `json:"errors,omitempty"`
	Unused []string     `json:"unused,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <schema>",
		Short: "Check overrides and options against a schema",
		Long: `Resolve overrides and options against every schema path without
generating values.

Reports malformed patterns, ambiguous overrides, rules and relations,
excluded required fields, rules that loosen schema constraints and override
values that violate them. Patterns that match no path are listed as unused.

Exit codes:
  0 - No problems found
  1 - One or more problems found
  2 - Command error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Overrides, "overrides", "", "overrides file")
	cmd.Flags().StringVar(&opts.Options, "options", "", "options file")
	cmd.Flags().StringVar(&opts.Root, "root", "", "CUE value to check, e.g. '#User'")
	cmd.Flags().StringVar(&opts.Query, "query", "", "GraphQL operation file")
	cmd.Flags().StringVar(&opts.Operation, "operation", "", "GraphQL operation name")
	cmd.Flags().BoolVar(&opts.RequiredOnly, "required-only", false, "check as if only required fields are generated")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "treat unused patterns as errors")

	return cmd
}

func runCheck(opts *CheckOptions, schemaPath string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	if s := opts.Settings; s != nil {
		if !cmd.Flags().Changed("root") && s.Root != "" {
			opts.Root = s.Root
		}
		if !cmd.Flags().Changed("options") && s.Options != "" {
			opts.Options = s.Options
		}
	}

	schema, err := LoadSchema(SchemaInput{
		Path:      schemaPath,
		Root:      opts.Root,
		Query:     opts.Query,
		Operation: opts.Operation,
	})
	if err != nil {
		return commandError(formatter, err)
	}
	overrides, options, err := loadInputs(opts.Overrides, opts.Options)
	if err != nil {
		return commandError(formatter, err)
	}
	callOpts, err := options.EngineOptions()
	if err != nil {
		return commandError(formatter, &LoadError{Code: ErrCodeBadInput, Message: err.Error()})
	}
	if cmd.Flags().Changed("required-only") {
		callOpts = append(callOpts, engine.WithRequiredOnly(opts.RequiredOnly))
	}

	fx := engine.New(schema, engine.WithRegistry(engine.NewRegistry()), engine.WithLogger(opts.logger(cmd)))
	report, err := fx.Check(overrides, callOpts...)
	if err != nil {
		return generationError(formatter, err)
	}

	result := CheckResult{Valid: report.OK(), Paths: report.Paths, Unused: report.Unused}
	for _, e := range report.Errors {
		result.Errors = append(result.Errors, CheckIssue{Code: string(engine.ErrorCode(e)), Message: e.Error()})
	}
	if opts.Strict && len(report.Unused) > 0 {
		result.Valid = false
	}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		outputCheckText(formatter, result)
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d problem(s) found", len(result.Errors)+unusedProblems(opts.Strict, result.Unused)))
	}
	return nil
}

func outputCheckText(f *OutputFormatter, result CheckResult) {
	for _, issue := range result.Errors {
		f.Fail("[%s] %s", issue.Code, issue.Message)
	}
	for _, p := range result.Unused {
		f.Warn("pattern %q matches no path", p)
	}
	if result.Valid {
		f.Pass("%d path(s) checked, no problems", result.Paths)
		return
	}
	f.Info("%d path(s) checked, %d error(s), %d unused pattern(s)", result.Paths, len(result.Errors), len(result.Unused))
}

func unusedProblems(strict bool, unused []string) int {
	if strict {
		return len(unused)
	}
	return 0
}
