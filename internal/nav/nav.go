// Package nav rebuilds the nav section of an mkdocs.yml from a tree of
// exported Markdown files.
package nav

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Asset directories that never contribute nav entries.
var excludedDirs = map[string]bool{
	"css":        true,
	"img":        true,
	"javascript": true,
	"overrides":  true,
	"icons":      true,
}

// Item is one navigation entry: either a page (Path set) or a section
// grouping child entries.
type Item struct {
	Title    string
	Path     string
	Children []Item
}

// BuildTree scans docsDir for Markdown files and returns the nested
// navigation structure reflecting the directory hierarchy. Page titles
// come from the file's first level-1 heading, falling back to the file
// or directory name.
func BuildTree(docsDir string) ([]Item, error) {
	return buildDir(docsDir, "")
}

func buildDir(dir, rel string) ([]Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %s: %w", dir, err)
	}

	var items []Item
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			if excludedDirs[name] {
				continue
			}
			children, err := buildDir(filepath.Join(dir, name), path.Join(rel, name))
			if err != nil {
				return nil, err
			}
			if len(children) > 0 {
				items = append(items, Item{Title: name, Children: children})
			}
			continue
		}
		if !strings.HasSuffix(strings.ToLower(name), ".md") {
			continue
		}

		fallback := strings.TrimSuffix(name, filepath.Ext(name))
		if strings.EqualFold(name, "index.md") {
			fallback = path.Base(rel)
			if rel == "" {
				fallback = "Home"
			}
		}

		title := fallback
		if src, err := os.ReadFile(filepath.Join(dir, name)); err == nil {
			if h := firstHeading(src); h != "" {
				title = h
			}
		}

		items = append(items, Item{Title: title, Path: path.Join(rel, name)})
	}

	return items, nil
}

var titleParser = goldmark.New()

// firstHeading returns the text of the first level-1 heading in src,
// or "" if there is none.
func firstHeading(src []byte) string {
	doc := titleParser.Parser().Parse(text.NewReader(src))
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 1 {
			continue
		}

		var b strings.Builder
		for child := h.FirstChild(); child != nil; child = child.NextSibling() {
			if textNode, ok := child.(*ast.Text); ok {
				b.Write(textNode.Segment.Value(src))
			}
		}
		return strings.TrimSpace(b.String())
	}
	return ""
}

// Update rewrites the nav section of the mkdocs.yml at mkdocsPath with
// the structure built from docsDir. All other configuration keys are
// preserved as-is.
func Update(docsDir, mkdocsPath string) error {
	items, err := BuildTree(docsDir)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(mkdocsPath)
	if err != nil {
		return fmt.Errorf("failed to read mkdocs config: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse mkdocs config: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return fmt.Errorf("unexpected mkdocs config structure in %s", mkdocsPath)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("mkdocs config root is not a mapping in %s", mkdocsPath)
	}

	setMappingKey(root, "nav", navNode(items))

	out, err := marshalWithIndent(&doc)
	if err != nil {
		return fmt.Errorf("failed to serialize mkdocs config: %w", err)
	}
	if err := os.WriteFile(mkdocsPath, out, 0644); err != nil {
		return fmt.Errorf("failed to write mkdocs config: %w", err)
	}
	return nil
}

// setMappingKey replaces the value of key in the mapping node, or
// appends the pair when the key is absent.
func setMappingKey(mapping *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = value
			return
		}
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		value,
	)
}

// navNode converts the nav structure into yaml nodes: a sequence of
// single-key mappings, mkdocs style.
func navNode(items []Item) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, item := range items {
		var value *yaml.Node
		if item.Path != "" {
			value = &yaml.Node{Kind: yaml.ScalarNode, Value: item.Path}
		} else {
			value = navNode(item.Children)
		}
		seq.Content = append(seq.Content, &yaml.Node{
			Kind: yaml.MappingNode,
			Content: []*yaml.Node{
				{Kind: yaml.ScalarNode, Value: item.Title},
				value,
			},
		})
	}
	return seq
}

func marshalWithIndent(doc *yaml.Node) ([]byte, error) {
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}
