package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/mockingbird/internal/engine"
	"github.com/roach88/mockingbird/internal/pathmatch"
)

// MatchResult is the JSON payload of the match command.
type MatchResult struct {
	Path    string   `json:"path"`
	Matched []string `json:"matched"`
	Missed  []string `json:"missed"`
}

// NewMatchCommand creates the match command.
func NewMatchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "match <path> <pattern>...",
		Short: "Show which patterns match a path",
		Long: `Test path patterns against a concrete path.

  *   matches one segment, or the rest of a segment (user.is*)
  **  matches zero or more whole segments (**.id)
  ?   matches one character inside a segment

Exit codes:
  0 - At least one pattern matched
  1 - No pattern matched
  2 - Malformed path or pattern`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(rootOpts, args[0], args[1:], cmd)
		},
	}
}

func runMatch(opts *RootOptions, path string, patterns []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if err := pathmatch.ValidateAll("path", path); err != nil {
		return matchError(formatter, err)
	}
	if err := pathmatch.ValidateAll("pattern", patterns...); err != nil {
		return matchError(formatter, err)
	}

	result := MatchResult{Path: path, Matched: []string{}, Missed: []string{}}
	for _, p := range patterns {
		if pathmatch.Matches(path, p) {
			result.Matched = append(result.Matched, p)
		} else {
			result.Missed = append(result.Missed, p)
		}
	}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		for _, p := range result.Matched {
			formatter.Pass("%s", p)
		}
		for _, p := range result.Missed {
			formatter.Fail("%s", p)
		}
	}

	if len(result.Matched) == 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("no pattern matches %s", path))
	}
	return nil
}

func matchError(formatter *OutputFormatter, err error) error {
	code := string(engine.ErrorCode(err))
	if outErr := formatter.Error(code, err.Error(), nil); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, code, err)
}
