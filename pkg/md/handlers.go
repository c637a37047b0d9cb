package md

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

type openHandler func(c *converter, tag string, attrs []html.Attribute)
type closeHandler func(c *converter, tag string)

// openHandlers and closeHandlers are built once and never mutated. Tags with
// no entry are no-ops; their enclosed text still flows through handleText.
var (
	openHandlers  map[string]openHandler
	closeHandlers map[string]closeHandler
)

func init() {
	openHandlers = map[string]openHandler{
		"h1":                  handleHeading,
		"h2":                  handleHeading,
		"h3":                  handleHeading,
		"h4":                  handleHeading,
		"h5":                  handleHeading,
		"h6":                  handleHeading,
		"p":                   handleParagraph,
		"ul":                  handleListOpen,
		"ol":                  handleListOpen,
		"li":                  handleListItemOpen,
		"code":                marker(" `"),
		"pre":                 marker("\n```\n"),
		"strong":              marker(" **"),
		"em":                  marker(" _"),
		"u":                   marker(" <u>"),
		"del":                 marker(" ~~"),
		"ac:emoticon":         handleEmoticon,
		"ac:task-list":        marker("\n"),
		"ac:task":             handleTaskOpen,
		"ac:task-body":        handleTaskBodyOpen,
		"img":                 handleImage,
		"ac:image":            handleConfluenceImage,
		"ac:structured-macro": handleStructuredMacro,
	}
	closeHandlers = map[string]closeHandler{
		"ul":           handleListClose,
		"ol":           handleListClose,
		"li":           handleListItemClose,
		"code":         endMarker("` "),
		"pre":          endMarker("\n```\n"),
		"strong":       endMarker("** "),
		"em":           endMarker("_ "),
		"u":            endMarker("</u> "),
		"del":          endMarker("~~ "),
		"ac:task-list": endMarker("\n"),
		"ac:task":      handleTaskClose,
		"ac:task-body": handleTaskBodyClose,
	}
}

// marker returns an open handler that emits a fixed fragment.
func marker(s string) openHandler {
	return func(c *converter, _ string, _ []html.Attribute) {
		c.appendText(s)
	}
}

// endMarker returns a close handler that emits a fixed fragment.
func endMarker(s string) closeHandler {
	return func(c *converter, _ string) {
		c.appendText(s)
	}
}

func handleHeading(c *converter, tag string, _ []html.Attribute) {
	level := 1
	if len(tag) > 1 {
		if n, err := strconv.Atoi(tag[1:]); err == nil {
			level = n
		}
	}
	c.appendText("\n" + strings.Repeat("#", level) + " ")
}

func handleParagraph(c *converter, _ string, _ []html.Attribute) {
	c.appendText("\n\n")
}

func handleListOpen(c *converter, tag string, _ []html.Attribute) {
	entry := listEntry{kind: tag}
	if tag == "ol" {
		entry.ordinal = 1
	}
	c.listStack = append(c.listStack, entry)
	c.appendText("\n")
}

func handleListClose(c *converter, _ string) {
	if len(c.listStack) > 0 {
		c.listStack = c.listStack[:len(c.listStack)-1]
	}
}

func handleListItemOpen(c *converter, _ string, _ []html.Attribute) {
	c.inListItem = true
	c.listItemBuf = nil
}

func handleListItemClose(c *converter, _ string) {
	c.inListItem = false
	prefix := "- "
	if len(c.listStack) > 0 {
		top := &c.listStack[len(c.listStack)-1]
		if top.kind == "ol" {
			prefix = strconv.Itoa(top.ordinal) + ". "
			top.ordinal++
		}
	}
	content := strings.TrimSpace(strings.Join(c.listItemBuf, ""))
	c.out = append(c.out, "\n"+prefix+content)
}

func handleEmoticon(c *converter, _ string, attrs []html.Attribute) {
	if fb := attrValue(attrs, "ac:emoji-fallback"); fb != "" {
		c.appendText(fb)
	} else if sn := attrValue(attrs, "ac:emoji-shortname"); sn != "" {
		c.appendText(sn)
	}
}

func handleTaskOpen(c *converter, _ string, attrs []html.Attribute) {
	status := attrValue(attrs, "ac:task-status")
	if status == "" {
		status = "incomplete"
	}
	c.taskStatus = strings.ToLower(status)
	c.inTaskBody = true
	c.taskBuf = nil
}

// taskArtifactPattern strips the numeric id and status words that leak into
// task text ahead of the real body.
var taskArtifactPattern = regexp.MustCompile(`(?i)^[0-9]+\s*(complete|incomplete)\s*`)

func handleTaskClose(c *converter, _ string) {
	checkbox := "[ ]"
	if c.taskStatus == "complete" {
		checkbox = "[x]"
	}
	combined := strings.TrimSpace(strings.Join(c.taskBuf, ""))
	combined = taskArtifactPattern.ReplaceAllString(combined, "")
	c.out = append(c.out, "\n- "+checkbox+" "+combined)
	c.inTaskBody = false
	c.taskBuf = nil
	c.taskStatus = ""
}

func handleTaskBodyOpen(c *converter, _ string, _ []html.Attribute) {
	c.inTaskBody = true
}

func handleTaskBodyClose(c *converter, _ string) {
	c.inTaskBody = false
}

func handleImage(c *converter, _ string, attrs []html.Attribute) {
	alt := strings.TrimSpace(attrValue(attrs, "alt"))
	if alt == "" {
		alt = "image"
	}
	s := SanitizeTitle(alt)
	c.appendText("\n![" + s + "](images/" + s + ")\n")
}

func handleConfluenceImage(c *converter, _ string, attrs []html.Attribute) {
	alt := strings.TrimSpace(attrValue(attrs, "ac:alt"))
	if alt == "" {
		alt = strings.TrimSpace(attrValue(attrs, "ri:filename"))
	}
	if alt == "" {
		alt = "image"
	}
	s := SanitizeTitle(alt)
	c.appendText("\n![" + s + "](images/" + s + ")\n")
}

// handleStructuredMacro emits a separating space for macros the converter does
// not extract. Code and gliffy macros are finalized on their close tag.
func handleStructuredMacro(c *converter, _ string, attrs []html.Attribute) {
	name := strings.ToLower(attrValue(attrs, "ac:name"))
	if name != "code" && name != "gliffy" {
		c.appendText(" ")
	}
}
