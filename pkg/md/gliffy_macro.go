package md

import (
	"regexp"
	"strings"
)

// fallbackDiagramName is used when a gliffy macro carries no name parameter.
const fallbackDiagramName = "gliffy_diagram"

// diagramNamePattern locates the macro's "name" parameter in the raw span.
var diagramNamePattern = regexp.MustCompile(`(?i)<ac:parameter\s+ac:name="name">\s*([^<]+?)\s*</ac:parameter>`)

// gliffyMacro tracks the span of an open gliffy macro.
type gliffyMacro struct {
	active      bool
	startOffset int
}

func (m *gliffyMacro) begin(offset int) {
	m.active = true
	m.startOffset = offset
}

// finalize slices the macro span out of src, pulls the declared diagram name
// (or the fallback) and returns a Markdown image reference pointing at the
// exported PNG. The macro is reset unconditionally.
func (m *gliffyMacro) finalize(src string, offset int) string {
	defer m.reset()

	snippet := sliceSpan(src, m.startOffset, offset)
	name := fallbackDiagramName
	if match := diagramNamePattern.FindStringSubmatch(snippet); match != nil {
		name = strings.TrimSpace(match[1])
	}

	return "\n![" + name + "](images/" + SanitizeTitle(name) + ".png)\n"
}

func (m *gliffyMacro) reset() {
	m.active = false
	m.startOffset = 0
}
