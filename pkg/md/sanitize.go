package md

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
)

var (
	invalidFilenameChars = regexp.MustCompile(`[<>:"|?*]`)
	whitespaceRun        = regexp.MustCompile(`\s+`)
	unicodeEscapeRun     = regexp.MustCompile(`(\\u[0-9A-Fa-f]{4}|\\U[0-9A-Fa-f]{8})+`)
)

// SanitizeTitle converts arbitrary text into a safe filename token while
// keeping recognizable characters. Path separators become dashes, characters
// that are invalid in filenames are dropped, and whitespace runs become
// underscores.
func SanitizeTitle(title string) string {
	title = strings.TrimSpace(title)
	title = strings.ReplaceAll(title, "/", "-")
	title = strings.ReplaceAll(title, "\\", "-")
	title = invalidFilenameChars.ReplaceAllString(title, "")
	return whitespaceRun.ReplaceAllString(title, "_")
}

// DecodeUnicodeEscapes decodes runs of literal backslash-escaped sequences
// like \u00e9 or \U0001F600 into characters. Adjacent \u escapes forming a
// surrogate pair decode to a single rune. Sequences that do not decode to
// valid characters are preserved verbatim.
func DecodeUnicodeEscapes(text string) string {
	return unicodeEscapeRun.ReplaceAllStringFunc(text, decodeEscapeRun)
}

// decodeEscapeRun decodes one matched run of escapes. The pattern guarantees
// the run is a sequence of well-formed \uXXXX and \UXXXXXXXX escapes.
func decodeEscapeRun(run string) string {
	var points []rune
	for i := 0; i < len(run); {
		width := 6 // \uXXXX
		if run[i+1] == 'U' {
			width = 10 // \UXXXXXXXX
		}
		v, err := strconv.ParseUint(run[i+2:i+width], 16, 32)
		if err != nil || v > uint64(unicode.MaxRune) {
			return run
		}
		points = append(points, rune(v))
		i += width
	}

	var b strings.Builder
	for i := 0; i < len(points); i++ {
		r := points[i]
		if utf16.IsSurrogate(r) {
			if i+1 < len(points) {
				if combined := utf16.DecodeRune(r, points[i+1]); combined != unicode.ReplacementChar {
					b.WriteRune(combined)
					i++
					continue
				}
			}
			return run
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ReplaceBlobImageRefs rewrites Markdown image references whose URL is a
// browser blob: link with local images/ paths, matching on the attachment
// filename appearing in the alt text.
func ReplaceBlobImageRefs(markdown string, filenames []string) string {
	for _, fn := range filenames {
		pattern := regexp.MustCompile(`(!\[[^\]]*` + regexp.QuoteMeta(fn) + `[^\]]*\]\()blob:[^)]+\)`)
		markdown = pattern.ReplaceAllString(markdown, "${1}images/"+fn+")")
	}
	return markdown
}
