package loader

import (
	"errors"
	"fmt"
	"io"

	"github.com/leapstack-labs/rowql/pkg/core"
	"gopkg.in/yaml.v3"
)

// DecodeYAML reads a YAML sequence of flat mappings. Mapping key order
// is kept, which is why the document is walked as a node tree.
func DecodeYAML(r io.Reader) (core.Table, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return core.Table{}, nil
		}
		return nil, err
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: expected a sequence of mappings", root.Line)
	}

	table := make(core.Table, 0, len(root.Content))
	for i, item := range root.Content {
		row, err := decodeYAMLRow(resolveAlias(item), i)
		if err != nil {
			return nil, err
		}
		table = append(table, row)
	}
	return table, nil
}

func decodeYAMLRow(node *yaml.Node, index int) (*core.Row, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("row %d (line %d): expected a mapping", index, node.Line)
	}

	row := core.NewRow(len(node.Content) / 2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		valNode := resolveAlias(node.Content[i+1])
		if valNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("row %d, key %q (line %d): nested values are not supported", index, key, valNode.Line)
		}

		var raw any
		if err := valNode.Decode(&raw); err != nil {
			return nil, fmt.Errorf("row %d, key %q: %w", index, key, err)
		}
		v, err := normalizeCell(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d, key %q: %w", index, key, err)
		}
		row.Set(key, v)
	}
	return row, nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}
