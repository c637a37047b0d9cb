// Package page provides page-related commands.
package page

import (
	"github.com/spf13/cobra"
)

// NewCmdPage creates the page command.
func NewCmdPage() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "page",
		Aliases: []string{"pages"},
		Short:   "Inspect Confluence pages",
		Long:    `Commands for viewing Confluence pages before exporting them.`,
	}

	cmd.AddCommand(NewCmdView())

	return cmd
}
