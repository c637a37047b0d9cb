// Package root provides the root command for the cfx CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/confluence-export/internal/cmd/completion"
	"github.com/open-cli-collective/confluence-export/internal/cmd/configcmd"
	"github.com/open-cli-collective/confluence-export/internal/cmd/export"
	initcmd "github.com/open-cli-collective/confluence-export/internal/cmd/init"
	"github.com/open-cli-collective/confluence-export/internal/cmd/navcmd"
	"github.com/open-cli-collective/confluence-export/internal/cmd/page"
	"github.com/open-cli-collective/confluence-export/internal/version"
)

// NewCmdRoot creates the root command for cfx.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cfx",
		Short: "Export Confluence pages to Markdown",
		Long: `cfx exports Atlassian Confluence Cloud pages to Markdown.

It walks a page and its descendants, converts each page's storage
format to Markdown, downloads image attachments, and writes a
directory hierarchy that drops straight into an mkdocs docs tree.

Get started by running: cfx init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/cfx/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	// Set version template
	cmd.SetVersionTemplate("cfx version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(export.NewCmdExport())
	cmd.AddCommand(page.NewCmdPage())
	cmd.AddCommand(navcmd.NewCmdNav())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
