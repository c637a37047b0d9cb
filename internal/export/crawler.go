package export

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/open-cli-collective/confluence-export/api"
	"github.com/open-cli-collective/confluence-export/pkg/md"
)

// Source provides page content, the page hierarchy, and attachments.
// api.Client satisfies it.
type Source interface {
	GetPage(ctx context.Context, pageID string) (*api.Page, error)
	GetChildren(ctx context.Context, pageID string) ([]api.Page, error)
	GetImages(ctx context.Context, pageID string) ([]api.Image, error)
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}

// Reporter receives progress and error messages during a crawl.
// view.Renderer satisfies it.
type Reporter interface {
	Success(msg string)
	Error(msg string)
}

// Crawler exports a page and its descendants to a directory tree.
// The root page becomes index.md in the output directory. A child with
// children of its own becomes a subdirectory holding index.md; a leaf
// child becomes <sanitized title>.md alongside its siblings.
type Crawler struct {
	source   Source
	writer   *Writer
	reporter Reporter

	// KeepRaw also writes each page's storage-format source next to its
	// Markdown file: raw.html for index pages, <title>.raw.html for leaves.
	KeepRaw bool
}

// NewCrawler creates a crawler over the given source.
func NewCrawler(source Source, writer *Writer, reporter Reporter) *Crawler {
	return &Crawler{source: source, writer: writer, reporter: reporter}
}

// Export exports the page tree rooted at pageID into outputDir.
// Failures on individual child pages and images are reported and
// skipped; only a failure on the root page aborts the export.
func (c *Crawler) Export(ctx context.Context, pageID, outputDir string) error {
	return c.processPage(ctx, pageID, outputDir, true)
}

func (c *Crawler) processPage(ctx context.Context, pageID, parentDir string, isRoot bool) error {
	page, err := c.source.GetPage(ctx, pageID)
	if err != nil {
		return fmt.Errorf("failed to retrieve page %s: %w", pageID, err)
	}

	title := page.Title
	if title == "" {
		title = "page_" + pageID
	}

	children, err := c.source.GetChildren(ctx, pageID)
	if err != nil {
		return fmt.Errorf("failed to list children of page %s: %w", pageID, err)
	}

	outputDir := parentDir
	fileName := md.SanitizeTitle(title) + ".md"
	switch {
	case isRoot:
		fileName = "index.md"
	case len(children) > 0:
		outputDir = filepath.Join(parentDir, md.SanitizeTitle(title))
		fileName = "index.md"
	}

	if c.KeepRaw {
		// Leaves share their parent's directory, so the dump carries the
		// page title to keep one file per page.
		rawName := "raw.html"
		if fileName != "index.md" {
			rawName = md.SanitizeTitle(title) + ".raw.html"
		}
		if err := c.writer.SaveMarkdown(filepath.Join(outputDir, rawName), page.Storage()); err != nil {
			c.reporter.Error(fmt.Sprintf("could not write raw source for %q: %v", title, err))
		}
	}

	images, err := c.source.GetImages(ctx, pageID)
	if err != nil {
		c.reporter.Error(fmt.Sprintf("could not list images for %q: %v", title, err))
		images = nil
	}
	filenames := make([]string, 0, len(images))
	for _, img := range images {
		filenames = append(filenames, img.Filename)
	}

	markdown := md.Convert(page.Storage())
	markdown = md.ReplaceBlobImageRefs(markdown, filenames)
	content := fmt.Sprintf("# %s\n\n%s", title, markdown)

	path := filepath.Join(outputDir, fileName)
	if err := c.writer.SaveMarkdown(path, content); err != nil {
		return fmt.Errorf("failed to save page %q: %w", title, err)
	}
	c.reporter.Success(fmt.Sprintf("Saved %s", path))

	for _, img := range images {
		if err := c.saveImage(ctx, outputDir, img); err != nil {
			c.reporter.Error(fmt.Sprintf("could not save image %s: %v", img.Filename, err))
		}
	}

	for _, child := range children {
		if err := c.processPage(ctx, child.ID, outputDir, false); err != nil {
			c.reporter.Error(err.Error())
		}
	}

	return nil
}

func (c *Crawler) saveImage(ctx context.Context, outputDir string, img api.Image) error {
	body, err := c.source.Download(ctx, img.URL)
	if err != nil {
		return err
	}
	defer body.Close()

	return c.writer.SaveImage(outputDir, md.SanitizeTitle(img.Filename), body)
}
