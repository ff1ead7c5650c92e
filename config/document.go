package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document couples the decoded configuration with its yaml.Node tree. The
// node tree preserves ordering, comments, and source positions, which the
// struct view cannot, and is what revision rewrites operate on.
type Document struct {
	Path   string
	Config *Config

	root *yaml.Node
}

// ParseDocument decodes a configuration document from raw YAML.
func ParseDocument(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		return nil, fmt.Errorf("empty document")
	}

	var cfg Config
	if err := root.Decode(&cfg); err != nil {
		return nil, err
	}

	return &Document{Config: &cfg, root: &root}, nil
}

// Root exposes the underlying document node.
func (d *Document) Root() *yaml.Node {
	return d.root
}

// Raw decodes the document into generic YAML values, the form schema
// validation operates on.
func (d *Document) Raw() interface{} {
	var raw interface{}
	if err := d.root.Decode(&raw); err != nil {
		return nil
	}
	return raw
}

// Encode renders the document canonically: two-space indentation, block
// style, comments preserved.
func (d *Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RevEntry points at the rev scalar of one remote repository block.
type RevEntry struct {
	Index   int
	RepoURL string
	RevNode *yaml.Node
}

// RevEntries returns the rev scalars of all repository blocks that carry
// one, in document order. Rewriting these nodes is how revisions are
// upgraded without disturbing the rest of the document.
func (d *Document) RevEntries() []RevEntry {
	mapping := documentMapping(d.root)
	if mapping == nil {
		return nil
	}

	reposNode := mappingValue(mapping, "repos")
	if reposNode == nil || reposNode.Kind != yaml.SequenceNode {
		return nil
	}

	var entries []RevEntry
	for i, block := range reposNode.Content {
		if block.Kind != yaml.MappingNode {
			continue
		}
		repoNode := mappingValue(block, "repo")
		revNode := mappingValue(block, "rev")
		if repoNode == nil || revNode == nil {
			continue
		}
		entries = append(entries, RevEntry{
			Index:   i,
			RepoURL: repoNode.Value,
			RevNode: revNode,
		})
	}
	return entries
}

// documentMapping unwraps the document node to its top-level mapping.
func documentMapping(root *yaml.Node) *yaml.Node {
	node := root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	return node
}

// mappingValue returns the value node for a key in a mapping node.
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}
