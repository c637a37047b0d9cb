package md

import (
	"regexp"
	"strings"
)

const plainTextBodyTag = "<ac:plain-text-body>"
const plainTextBodyEndTag = "</ac:plain-text-body>"

// cdataPattern matches a payload entirely wrapped in a CDATA section.
var cdataPattern = regexp.MustCompile(`(?s)^<!\[CDATA\[(.*)\]\]>$`)

// codeMacro tracks the span of an open code macro. The span starts at the
// macro's open tag and ends at its close tag; the payload is recovered from
// the original source so literal code is never mangled by tokenization.
type codeMacro struct {
	active      bool
	inBody      bool
	startOffset int
}

func (m *codeMacro) begin(offset int) {
	m.active = true
	m.startOffset = offset
}

func (m *codeMacro) beginBody() {
	m.inBody = true
}

func (m *codeMacro) endBody() {
	m.inBody = false
}

// finalize slices the verbatim macro span out of src, extracts the
// plain-text-body payload (unwrapping CDATA when present) and returns a
// fenced block. The macro is reset unconditionally; a missing payload yields
// an empty block rather than an error.
func (m *codeMacro) finalize(src string, offset int) string {
	defer m.reset()

	snippet := sliceSpan(src, m.startOffset, offset)
	lower := strings.ToLower(snippet)

	var text string
	if begin := strings.Index(lower, plainTextBodyTag); begin != -1 {
		if end := strings.Index(lower[begin:], plainTextBodyEndTag); end != -1 {
			after := begin + len(plainTextBodyTag)
			text = strings.TrimSpace(snippet[after : begin+end])
		}
	}
	if match := cdataPattern.FindStringSubmatch(text); match != nil {
		text = strings.TrimRight(strings.TrimLeft(match[1], "\n\r"), " \t\n\r")
	}

	return "\n```plaintext\n" + text + "\n```\n"
}

func (m *codeMacro) reset() {
	m.active = false
	m.inBody = false
	m.startOffset = 0
}

// sliceSpan returns src[start:end] with both bounds clamped to the valid
// range, so a confused offset never panics.
func sliceSpan(src string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(src) {
		end = len(src)
	}
	if start >= end {
		return ""
	}
	return src[start:end]
}
