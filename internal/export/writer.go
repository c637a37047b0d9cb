// Package export walks a Confluence page tree and writes it out as a
// Markdown directory hierarchy with downloaded image attachments.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Writer persists exported Markdown files and image attachments.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// SaveMarkdown writes Markdown content to path, creating parent
// directories as needed.
func (w *Writer) SaveMarkdown(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write markdown file: %w", err)
	}
	return nil
}

// SaveImage streams an image body into outputDir/images/filename.
func (w *Writer) SaveImage(outputDir, filename string, body io.Reader) error {
	imagesDir := filepath.Join(outputDir, "images")
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return fmt.Errorf("failed to create images directory: %w", err)
	}

	f, err := os.Create(filepath.Join(imagesDir, filename))
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}
	return nil
}
