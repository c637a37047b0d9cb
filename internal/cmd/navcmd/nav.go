// Package navcmd provides the nav command for cfx.
package navcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/confluence-export/internal/nav"
	"github.com/open-cli-collective/confluence-export/internal/view"
)

// NewCmdNav creates the nav command.
func NewCmdNav() *cobra.Command {
	var (
		docsDir    string
		mkdocsYAML string
	)

	cmd := &cobra.Command{
		Use:   "nav",
		Short: "Rebuild the mkdocs nav from exported Markdown",
		Long: `Rebuild the nav section of mkdocs.yml from a docs directory.

The directory hierarchy becomes the navigation hierarchy. Page titles
are taken from each file's first level-1 heading, falling back to the
file name. Asset directories (css, img, javascript, overrides, icons)
are skipped. All other mkdocs.yml settings are left untouched.`,
		Example: `  # Rebuild nav for the default layout
  cfx nav

  # Explicit paths
  cfx nav --docs-dir site/docs --mkdocs-yaml site/mkdocs.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runNav(docsDir, mkdocsYAML, noColor)
		},
	}

	cmd.Flags().StringVar(&docsDir, "docs-dir", "docs", "Directory containing Markdown docs")
	cmd.Flags().StringVar(&mkdocsYAML, "mkdocs-yaml", "mkdocs.yml", "Path to mkdocs.yml")

	return cmd
}

func runNav(docsDir, mkdocsYAML string, noColor bool) error {
	renderer := view.NewRenderer(view.FormatTable, noColor)

	if err := nav.Update(docsDir, mkdocsYAML); err != nil {
		return err
	}

	renderer.Success(fmt.Sprintf("Updated nav in %s from %s", mkdocsYAML, docsDir))
	return nil
}
