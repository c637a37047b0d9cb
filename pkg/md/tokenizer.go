package md

import (
	"strings"

	"golang.org/x/net/html"
)

// tokenizer walks a document as a flat stream of tag and text tokens while
// tracking each token's absolute byte offset in the original input. Offsets
// are exact because the html tokenizer's Raw() bytes, concatenated, reproduce
// the input verbatim.
type tokenizer struct {
	z      *html.Tokenizer
	raw    string
	offset int
}

func newTokenizer(input string) *tokenizer {
	z := html.NewTokenizer(strings.NewReader(input))
	// Without this, a CDATA section becomes a bogus comment cut short at the
	// first ">", which would corrupt the span of code payloads containing one.
	z.AllowCDATA(true)
	return &tokenizer{z: z}
}

// next advances to the following token and returns its type.
// After next returns, pos() reports the start of the current token.
func (t *tokenizer) next() html.TokenType {
	t.offset += len(t.raw)
	tt := t.z.Next()
	t.raw = string(t.z.Raw())
	return tt
}

// pos returns the absolute byte offset of the start of the current token.
func (t *tokenizer) pos() int {
	return t.offset
}

// rawText returns the verbatim source text of the current token.
func (t *tokenizer) rawText() string {
	return t.raw
}

// tag returns the lowercased name and ordered attributes of the current tag
// token. Attribute keys are lowercased by the underlying tokenizer; values are
// entity-decoded.
func (t *tokenizer) tag() (string, []html.Attribute) {
	name, hasAttr := t.z.TagName()
	var attrs []html.Attribute
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = t.z.TagAttr()
		attrs = append(attrs, html.Attribute{Key: string(key), Val: string(val)})
	}
	return string(name), attrs
}

// text returns the entity-decoded text of the current text token.
func (t *tokenizer) text() string {
	return string(t.z.Text())
}

// isCDATA reports whether the current text token came from a CDATA section.
func (t *tokenizer) isCDATA() bool {
	return strings.HasPrefix(t.raw, "<![CDATA[")
}

// attrValue returns the value of the named attribute, or "" if absent.
func attrValue(attrs []html.Attribute, key string) string {
	for _, a := range attrs {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
