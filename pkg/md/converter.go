// Package md converts Confluence storage format (XHTML) into Markdown.
//
// The converter walks the document once as a flat token stream. Most content
// is rewritten into Markdown through a static tag→handler table; tables are
// captured verbatim and passed through with task checkboxes rewritten, and
// code/gliffy macros are re-sliced from the original source so their payloads
// survive byte for byte.
package md

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// listEntry tracks one level of list nesting. ordinal is the next number to
// emit for ordered lists; it is unused for unordered ones.
type listEntry struct {
	kind    string // "ul" or "ol"
	ordinal int
}

// converter holds the per-document parse state. One converter serves exactly
// one Convert call; nothing survives across documents.
type converter struct {
	src string
	tz  *tokenizer
	out []string

	tagStack  []string
	listStack []listEntry

	inListItem  bool
	listItemBuf []string

	taskStatus string
	inTaskBody bool
	taskBuf    []string

	inTable    bool
	tableDepth int
	tableBuf   []string

	code   codeMacro
	gliffy gliffyMacro
}

// Convert turns one Confluence storage-format document into Markdown.
// Malformed input degrades to omission or a best-effort fallback; Convert
// never fails.
func Convert(input string) string {
	c := &converter{
		src: input,
		tz:  newTokenizer(input),
	}
	for {
		switch c.tz.next() {
		case html.ErrorToken:
			return postProcess(strings.Join(c.out, ""))
		case html.StartTagToken:
			c.handleOpenTag()
		case html.EndTagToken:
			c.handleCloseTag()
		case html.SelfClosingTagToken:
			c.handleSelfCloseTag()
		case html.TextToken:
			c.handleText()
		}
		// Comments and doctypes contribute nothing.
	}
}

func (c *converter) handleOpenTag() {
	name, attrs := c.tz.tag()

	if c.inTable {
		c.appendTableChunk(c.tz.rawText())
		if name == "table" {
			c.tableDepth++
		}
		c.tagStack = append(c.tagStack, name)
		return
	}

	c.tagStack = append(c.tagStack, name)

	if name == "ac:structured-macro" {
		switch strings.ToLower(attrValue(attrs, "ac:name")) {
		case "code":
			c.code.begin(c.tz.pos())
		case "gliffy":
			c.gliffy.begin(c.tz.pos())
		}
	}
	if c.code.active && name == "ac:plain-text-body" {
		c.code.beginBody()
	}

	if h, ok := openHandlers[name]; ok {
		h(c, name, attrs)
	}

	if name == "table" {
		c.startTableMode(c.tz.rawText())
	}
}

func (c *converter) handleCloseTag() {
	name, _ := c.tz.tag()

	if c.inTable {
		c.appendTableChunk(c.tz.rawText())
		if name == "table" {
			c.tableDepth--
			if c.tableDepth == 0 {
				c.endTableMode()
			}
		}
		c.popTag(name)
		return
	}

	matched := c.popTag(name)

	if c.code.active && name == "ac:plain-text-body" {
		c.code.endBody()
	}
	if c.code.active && name == "ac:structured-macro" {
		c.out = append(c.out, c.code.finalize(c.src, c.tz.pos()))
	}
	if c.gliffy.active && name == "ac:structured-macro" {
		c.out = append(c.out, c.gliffy.finalize(c.src, c.tz.pos()))
	}

	// A close tag with no matching open contributes nothing.
	if h, ok := closeHandlers[name]; ok && matched {
		h(c, name)
	}
}

func (c *converter) handleSelfCloseTag() {
	name, attrs := c.tz.tag()

	if c.inTable {
		c.appendTableChunk(c.tz.rawText())
		return
	}

	// Self-closing tags dispatch through the open table; they are never
	// pushed on the stack.
	if h, ok := openHandlers[name]; ok {
		h(c, name, attrs)
	}
}

func (c *converter) handleText() {
	// CDATA payloads are recovered verbatim from the raw source during macro
	// finalization; their decoded form must not flow into output as well.
	if c.tz.isCDATA() {
		return
	}
	// Inside a macro span, text outside the payload body is internal
	// bookkeeping (ids, parameter values) and must not leak into output.
	if c.code.active && !c.code.inBody {
		return
	}
	if c.gliffy.active {
		return
	}
	if c.inTable {
		c.appendTableChunk(c.tz.text())
		return
	}
	if trimmed := strings.TrimSpace(c.tz.text()); trimmed != "" {
		c.appendText(trimmed)
	}
}

// popTag removes the most recent stack entry matching name and reports
// whether one was found. A close tag with no matching open leaves the stack
// untouched.
func (c *converter) popTag(name string) bool {
	for i := len(c.tagStack) - 1; i >= 0; i-- {
		if c.tagStack[i] == name {
			c.tagStack = append(c.tagStack[:i], c.tagStack[i+1:]...)
			return true
		}
	}
	return false
}

// appendText routes text to whichever buffer is active. Inside inline
// formatting the trailing whitespace is dropped so closing markers do not end
// up as "word** ".
func (c *converter) appendText(text string) {
	if c.inInlineFormatting() {
		text = strings.TrimRightFunc(text, unicode.IsSpace)
	}
	switch {
	case c.inListItem:
		c.listItemBuf = append(c.listItemBuf, text)
	case c.inTaskBody:
		c.taskBuf = append(c.taskBuf, text)
	default:
		c.out = append(c.out, text)
	}
}

// inlineTags are the formatting spans whose enclosed text is right-trimmed.
var inlineTags = map[string]bool{
	"strong": true,
	"b":      true,
	"em":     true,
	"i":      true,
	"u":      true,
	"del":    true,
	"strike": true,
}

func (c *converter) inInlineFormatting() bool {
	for _, t := range c.tagStack {
		if inlineTags[t] {
			return true
		}
	}
	return false
}

func (c *converter) startTableMode(rawTag string) {
	c.inTable = true
	c.tableDepth = 1
	c.tableBuf = nil
	c.appendTableChunk(rawTag)
}

func (c *converter) endTableMode() {
	c.inTable = false
	transformed := transformTable(strings.Join(c.tableBuf, ""))
	c.out = append(c.out, "\n"+transformed+"\n")
	c.tableBuf = nil
}

func (c *converter) appendTableChunk(chunk string) {
	c.tableBuf = append(c.tableBuf, chunk)
}
