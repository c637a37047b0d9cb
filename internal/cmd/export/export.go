// Package export provides the export command for cfx.
package export

import (
	"context"
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/confluence-export/api"
	"github.com/open-cli-collective/confluence-export/internal/config"
	exp "github.com/open-cli-collective/confluence-export/internal/export"
	"github.com/open-cli-collective/confluence-export/internal/view"
)

var pageIDArg = regexp.MustCompile(`^\d+$`)

type exportOptions struct {
	outputDir string
	keepRaw   bool
	noColor   bool
}

// NewCmdExport creates the export command.
func NewCmdExport() *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export <page-url-or-id>",
		Short: "Export a page tree to Markdown",
		Long: `Export a Confluence page and all of its descendants to Markdown.

The root page becomes index.md in the output directory. Child pages
with children of their own become subdirectories; leaf pages become
sibling .md files. Image attachments are downloaded into images/
directories next to the pages that reference them.`,
		Example: `  # Export by page URL
  cfx export https://mycompany.atlassian.net/wiki/spaces/DOCS/pages/12345/Home

  # Export by page ID into a specific directory
  cfx export 12345 --out docs

  # Keep the raw storage format next to each page
  cfx export 12345 --raw`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runExport(cmd.Context(), args[0], opts, nil)
		},
	}

	cmd.Flags().StringVar(&opts.outputDir, "out", "", "Output directory (default: from config, else \"docs\")")
	cmd.Flags().BoolVar(&opts.keepRaw, "raw", false, "Also write each page's raw storage format next to its Markdown file")

	return cmd
}

func runExport(ctx context.Context, pageRef string, opts *exportOptions, client *api.Client) error {
	if ctx == nil {
		ctx = context.Background()
	}

	outputDir := opts.outputDir

	// Create API client if not provided (allows injection for testing)
	if client == nil {
		cfg, err := config.LoadWithEnv(config.DefaultConfigPath())
		if err != nil {
			return fmt.Errorf("failed to load config: %w (run 'cfx init' to configure)", err)
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w (run 'cfx init' to configure)", err)
		}

		if outputDir == "" {
			outputDir = cfg.OutputDir
		}
		client = api.NewClient(cfg.URL, cfg.Email, cfg.APIToken)
	}
	if outputDir == "" {
		outputDir = "docs"
	}

	pageID := pageRef
	if !pageIDArg.MatchString(pageRef) {
		var err error
		pageID, err = client.ResolvePageID(ctx, pageRef)
		if err != nil {
			return err
		}
	}

	renderer := view.NewRenderer(view.FormatTable, opts.noColor)

	crawler := exp.NewCrawler(client, exp.NewWriter(), renderer)
	crawler.KeepRaw = opts.keepRaw

	if err := crawler.Export(ctx, pageID, outputDir); err != nil {
		return err
	}

	renderer.Success(fmt.Sprintf("Export complete: %s", outputDir))
	return nil
}
