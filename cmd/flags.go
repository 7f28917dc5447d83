package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thediveo/enumflag/v2"

	"github.com/zbiljic/semrel/pkg/history"
)

// OutputFormat selects how command results are printed.
type OutputFormat enumflag.Flag

const (
	// TextFormat prints human readable output.
	TextFormat OutputFormat = iota
	// JSONFormat prints machine readable output.
	JSONFormat
	// MarkdownFormat prints release notes as markdown.
	MarkdownFormat
)

// OutputFormatIds maps OutputFormat to their string representations.
var OutputFormatIds = map[OutputFormat][]string{
	TextFormat:     {"text"},
	JSONFormat:     {"json"},
	MarkdownFormat: {"markdown", "md"},
}

func (f OutputFormat) String() string {
	if ids, ok := OutputFormatIds[f]; ok {
		return ids[0]
	}
	return fmt.Sprintf("OutputFormat(%d)", f)
}

// addFormatFlag adds the output format flag to a command
func addFormatFlag(cmd *cobra.Command, format *OutputFormat, usage string) {
	cmd.Flags().VarP(enumflag.New(format, "format", OutputFormatIds, enumflag.EnumCaseInsensitive), "format", "f", usage)
}

// addHistoryFlags adds the flags that control how history is read
func addHistoryFlags(cmd *cobra.Command, opts *historyOptions) {
	cmd.Flags().VarP(enumflag.New(&opts.Backend, "backend", history.BackendIds, enumflag.EnumCaseInsensitive), "backend", "B", "Git history backend to use (exec, gogit)")
	cmd.Flags().StringVar(&opts.Branch, "branch", "", "Branch name to evaluate instead of the checked out one")
}

type historyOptions struct {
	Backend history.Backend
	Branch  string
}
