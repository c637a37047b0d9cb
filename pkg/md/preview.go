package md

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

var (
	previewMacroPattern    = regexp.MustCompile(`(?s)<ac:structured-macro[^>]*ac:name="([^"]*)"[^>]*>.*?</ac:structured-macro>`)
	previewLinkPattern     = regexp.MustCompile(`(?s)<ac:link[^>]*>.*?</ac:link>`)
	previewPageRefPattern  = regexp.MustCompile(`<ri:page[^>]*/?>`)
	previewLinkBodyPattern = regexp.MustCompile(`(?s)<ac:plain-text-link-body><!\[CDATA\[(.*?)\]\]></ac:plain-text-link-body>`)
	previewParamPattern    = regexp.MustCompile(`(?s)<ac:parameter[^>]*>.*?</ac:parameter>`)
)

// Preview converts storage format to Markdown for terminal display. Unlike
// Convert, it is lossy on purpose: macros are reduced to [NAME] placeholders
// and internal link plumbing is stripped. The export pipeline uses Convert.
func Preview(storage string) (string, error) {
	if storage == "" {
		return "", nil
	}

	storage = previewMacroPattern.ReplaceAllStringFunc(storage, func(match string) string {
		if m := previewMacroPattern.FindStringSubmatch(match); len(m) > 1 && m[1] != "" {
			return "[" + strings.ToUpper(m[1]) + "]"
		}
		return "[MACRO]"
	})
	storage = previewLinkBodyPattern.ReplaceAllString(storage, "$1")
	storage = previewLinkPattern.ReplaceAllString(storage, "")
	storage = previewPageRefPattern.ReplaceAllString(storage, "")
	storage = previewParamPattern.ReplaceAllString(storage, "")

	markdown, err := htmltomarkdown.ConvertString(storage)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(markdown), nil
}
