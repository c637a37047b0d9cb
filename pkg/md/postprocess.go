package md

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	headingLinePattern = regexp.MustCompile(`(?m)^#+\s+.*$`)
	imageNotLineStart  = regexp.MustCompile(`([^\n])(!\[)`)
	localImageRef      = regexp.MustCompile(`(\]\(images/[^)]+\))`)
	srcLabelPattern    = regexp.MustCompile(`(?m)^src:\s*`)
	bareURLPattern     = regexp.MustCompile(`(https?://\S+)`)
)

// postProcess runs the cleanup passes over the assembled document. The order
// matters: Unicode decoding can surface URL text, so the link rewrite runs
// last. Re-running the link rewrite on its own output double-wraps URLs that
// already sit inside generated links; that quirk is kept as-is.
func postProcess(text string) string {
	// Headings carry their own emphasis; stray bold markers inside them
	// produce broken rendering.
	text = headingLinePattern.ReplaceAllStringFunc(text, func(line string) string {
		return strings.ReplaceAll(line, "**", "")
	})

	// Image references render reliably only at line start, and local image
	// links need the following text pushed to the next line.
	text = imageNotLineStart.ReplaceAllString(text, "$1\n$2")
	text = localImageRef.ReplaceAllString(text, "$1\n")

	text = srcLabelPattern.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimRightFunc(lines[i], unicode.IsSpace)
	}
	text = strings.Join(lines, "\n")

	text = DecodeUnicodeEscapes(text)
	text = bareURLPattern.ReplaceAllString(text, "[Click Me 👆]($1#code)")
	return text
}
