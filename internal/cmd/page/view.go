package page

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/confluence-export/api"
	"github.com/open-cli-collective/confluence-export/internal/config"
	"github.com/open-cli-collective/confluence-export/internal/view"
	"github.com/open-cli-collective/confluence-export/pkg/md"
)

type viewOptions struct {
	raw       bool
	converted bool
	web       bool
	output    string
	noColor   bool
}

// NewCmdView creates the page view command.
func NewCmdView() *cobra.Command {
	opts := &viewOptions{}

	cmd := &cobra.Command{
		Use:   "view <page-id>",
		Short: "View a page",
		Long: `View a Confluence page.

By default the storage format is rendered as a readable Markdown
preview. Use --converted to see the exact Markdown the export command
would write, or --raw for the untouched storage format.`,
		Example: `  # Preview a page
  cfx page view 12345

  # Show the Markdown the exporter would produce
  cfx page view 12345 --converted

  # View raw storage format
  cfx page view 12345 --raw

  # Open in browser
  cfx page view 12345 --web`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runView(args[0], opts, nil)
		},
	}

	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Show raw Confluence storage format")
	cmd.Flags().BoolVar(&opts.converted, "converted", false, "Show the Markdown the export command would write")
	cmd.Flags().BoolVarP(&opts.web, "web", "w", false, "Open in browser instead of displaying")

	return cmd
}

func runView(pageID string, opts *viewOptions, client *api.Client) error {
	// Track base URL for --web flag
	var baseURL string

	// Validate output format
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	// Create API client if not provided (allows injection for testing)
	if client == nil {
		cfg, err := config.LoadWithEnv(config.DefaultConfigPath())
		if err != nil {
			return fmt.Errorf("failed to load config: %w (run 'cfx init' to configure)", err)
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w (run 'cfx init' to configure)", err)
		}

		baseURL = cfg.URL
		client = api.NewClient(cfg.URL, cfg.Email, cfg.APIToken)
	}

	page, err := client.GetPage(context.Background(), pageID)
	if err != nil {
		return fmt.Errorf("failed to get page: %w", err)
	}

	// Open in browser if requested
	if opts.web {
		if baseURL == "" {
			baseURL = client.BaseURL()
		}
		return openBrowser(fmt.Sprintf("%s/pages/viewpage.action?pageId=%s", baseURL, page.ID))
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)

	if opts.output == "json" {
		return renderer.RenderJSON(page)
	}

	renderer.RenderKeyValue("Title", page.Title)
	renderer.RenderKeyValue("ID", page.ID)
	fmt.Println()

	content := page.Storage()
	if content == "" {
		fmt.Println("(No content)")
		return nil
	}

	switch {
	case opts.raw:
		fmt.Println(content)
	case opts.converted:
		fmt.Println(md.Convert(content))
	default:
		preview, err := md.Preview(content)
		if err != nil {
			// Fall back to raw content if conversion fails
			fmt.Println("(Failed to convert to markdown, showing raw storage format)")
			fmt.Println()
			fmt.Println(content)
			return nil
		}
		fmt.Println(preview)
	}

	return nil
}

func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform")
	}

	return cmd.Start()
}
