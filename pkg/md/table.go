package md

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	// taskLeftoverNumeric and taskLeftoverStatus catch the id/status text that
	// Confluence leaves at task top level, outside the body element.
	taskLeftoverNumeric = regexp.MustCompile(`^[0-9]+(\.|\)|\s|$)`)
	taskLeftoverStatus  = regexp.MustCompile(`^[0-9]+(\.|\)|\s)*(complete|incomplete)?$`)

	// taskPrefixPattern strips ordinal and status artifacts from the front of
	// an assembled task body.
	taskPrefixPattern = regexp.MustCompile(`(?i)^[0-9.)(\-_\s]*(complete|incomplete)?\s*`)
)

// transformTable re-tokenizes one table subtree and rewrites only its task
// constructs; everything else passes through with attributes re-serialized in
// original order. Markdown cannot represent merged cells or rich cell
// content, so the table itself stays as markup.
func transformTable(tableMarkup string) string {
	t := &tableTransformer{tz: newTokenizer(tableMarkup)}
	for {
		switch t.tz.next() {
		case html.ErrorToken:
			return strings.Join(t.out, "")
		case html.StartTagToken:
			name, attrs := t.tz.tag()
			t.openTag(name, attrs, false)
		case html.SelfClosingTagToken:
			name, attrs := t.tz.tag()
			t.openTag(name, attrs, true)
		case html.EndTagToken:
			name, _ := t.tz.tag()
			t.closeTag(name)
		case html.TextToken:
			if !t.tz.isCDATA() {
				t.text(t.tz.text())
			}
		}
	}
}

// tableTransformer holds the task sub-state while walking one table subtree.
type tableTransformer struct {
	tz  *tokenizer
	out []string

	inTask     bool
	inTaskBody bool
	inStatus   bool
	status     string
	taskBuf    []string
}

func (t *tableTransformer) openTag(name string, attrs []html.Attribute, selfClosing bool) {
	switch name {
	case "ac:task-id":
		return
	case "span":
		if attrValue(attrs, "class") == "placeholder-inline-tasks" {
			return
		}
	case "ac:task-list":
		t.out = append(t.out, "<ul>")
		return
	case "ac:task":
		t.inTask = true
		t.status = attrValue(attrs, "ac:task-status")
		if t.status == "" {
			t.status = "incomplete"
		}
		return
	case "ac:task-body":
		t.inTaskBody = true
		return
	case "ac:task-status":
		t.inStatus = true
		return
	}
	t.out = append(t.out, serializeTag(name, attrs, selfClosing))
}

func (t *tableTransformer) closeTag(name string) {
	switch name {
	case "ac:task-list":
		t.out = append(t.out, "</ul>")
	case "ac:task":
		text := strings.TrimSpace(strings.Join(t.taskBuf, ""))
		text = taskPrefixPattern.ReplaceAllString(text, "")
		checkbox := "<input type='checkbox'>"
		if strings.ToLower(t.status) == "complete" {
			checkbox = "<input type='checkbox' checked>"
		}
		t.out = append(t.out, "<li>"+checkbox+" "+text+"</li>")
		t.taskBuf = nil
		t.inTask = false
	case "ac:task-body":
		t.inTaskBody = false
	case "ac:task-status":
		t.inStatus = false
	case "ac:task-id", "span":
		// Dropped on open, dropped on close.
	default:
		t.out = append(t.out, "</"+name+">")
	}
}

func (t *tableTransformer) text(data string) {
	if t.inStatus {
		t.status = strings.ToLower(strings.TrimSpace(data))
		return
	}
	if t.inTask && !t.inTaskBody {
		check := strings.ToLower(strings.TrimSpace(data))
		if taskLeftoverNumeric.MatchString(check) || taskLeftoverStatus.MatchString(check) {
			return
		}
	}
	if t.inTaskBody {
		t.taskBuf = append(t.taskBuf, data)
		return
	}
	t.out = append(t.out, data)
}

// serializeTag rebuilds a tag with its attributes in document order,
// double-quoted.
func serializeTag(name string, attrs []html.Attribute, selfClosing bool) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(name)
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(a.Val)
		b.WriteByte('"')
	}
	if selfClosing {
		b.WriteByte('/')
	}
	b.WriteByte('>')
	return b.String()
}
