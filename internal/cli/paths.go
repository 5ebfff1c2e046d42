package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/mockingbird/internal/ir"
)

// PathsOptions holds flags for the paths command.
type PathsOptions struct {
	*RootOptions
	Root      string
	Query     string
	Operation string
	MaxDepth  int
}

// PathInfo describes one schema node.
type PathInfo struct {
	Path        ir.Path `json:"path"`
	Type        string  `json:"type"`
	TypeName    string  `json:"type_name,omitempty"`
	Required    bool    `json:"required"`
	Array       bool    `json:"array,omitempty"`
	Constraints string  `json:"constraints,omitempty"`
}

// NewPathsCommand creates the paths command.
func NewPathsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PathsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "paths <schema>",
		Short: "List every path of a schema",
		Long: `List every node path of a schema with its type and requiredness.

Use the listing to write override keys, rule patterns and relations.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPaths(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Root, "root", "", "CUE value to list, e.g. '#User'")
	cmd.Flags().StringVar(&opts.Query, "query", "", "GraphQL operation file")
	cmd.Flags().StringVar(&opts.Operation, "operation", "", "GraphQL operation name")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "expansion depth for recursive types (0 uses the default)")

	return cmd
}

func runPaths(opts *PathsOptions, schemaPath string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	if !cmd.Flags().Changed("root") && opts.Settings != nil {
		opts.Root = opts.Settings.Root
	}

	schema, err := LoadSchema(SchemaInput{
		Path:      schemaPath,
		Root:      opts.Root,
		Query:     opts.Query,
		Operation: opts.Operation,
		MaxDepth:  opts.MaxDepth,
	})
	if err != nil {
		return commandError(formatter, err)
	}

	infos := ListPaths(schema.Root())
	if opts.Format == "json" {
		return formatter.Success(infos)
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	for _, info := range infos {
		req := ""
		if info.Required {
			req = "required"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.Path, info.displayType(), req, info.Constraints)
	}
	return tw.Flush()
}

// ListPaths flattens a schema tree into path descriptions in declaration
// order.
func ListPaths(root *ir.Node) []PathInfo {
	infos := []PathInfo{}
	if root == nil {
		return infos
	}
	root.Walk(func(p ir.Path, n *ir.Node) bool {
		info := PathInfo{
			Path:     p,
			Type:     string(n.Type),
			TypeName: n.TypeName,
			Required: n.Required,
			Array:    n.Array,
		}
		if !n.IsLeaf() {
			info.Type = "object"
		}
		if !n.Constraints.IsZero() {
			info.Constraints = n.Constraints.String()
		}
		infos = append(infos, info)
		return true
	})
	return infos
}

// displayType renders the type column, e.g. "[Post]" or "string".
func (p PathInfo) displayType() string {
	t := p.Type
	if p.TypeName != "" && !strings.EqualFold(p.TypeName, p.Type) {
		t = p.TypeName
	}
	if p.Array {
		return "[" + t + "]"
	}
	return t
}
