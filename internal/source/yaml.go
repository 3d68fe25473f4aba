package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	appLog "wallcal/internal/log"
	"wallcal/internal/model"
)

// yamlRow mirrors one row of a dataset table. Column names match the
// column headers of the events spreadsheet.
type yamlRow struct {
	Date        string `yaml:"Date"`
	Description string `yaml:"Description,omitempty"`
	Name        string `yaml:"Name,omitempty"`
	GridColor   string `yaml:"Grid Color"`
	TextColor   string `yaml:"Text Color"`
}

// File is a YAML dataset: a mapping from table name to a list of rows.
type File struct {
	Path   string
	tables map[string][]model.Row
}

// ReadFile loads a YAML dataset. A missing file is reported as
// ErrUnavailable.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found", ErrUnavailable, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	appLog.Debug("dataset loaded", "path", path, "tables", len(f.tables))
	return f, nil
}

// Parse decodes a YAML dataset held in memory. Only a document that is
// not YAML, or not a mapping of tables, is rejected; a row or table of the
// wrong shape is logged and skipped.
func Parse(data []byte) (*File, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	f := &File{tables: map[string][]model.Row{}}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	switch root.Kind {
	case 0, yaml.DocumentNode:
		return f, nil
	case yaml.MappingNode:
	default:
		return nil, fmt.Errorf("%w: line %d: dataset is not a mapping of tables", ErrUnavailable, root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		f.tables[name] = parseTable(name, root.Content[i+1])
	}
	return f, nil
}

func parseTable(name string, node *yaml.Node) []model.Row {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return []model.Row{}
	}
	if node.Kind != yaml.SequenceNode {
		appLog.Warn("skipping dataset table, want a list of rows", "table", name, "line", node.Line)
		return []model.Row{}
	}

	out := make([]model.Row, 0, len(node.Content))
	for _, item := range node.Content {
		var r yamlRow
		if err := item.Decode(&r); err != nil {
			appLog.Warn("skipping dataset row", "table", name, "line", item.Line, "reason", err.Error())
			continue
		}
		desc := r.Description
		if strings.TrimSpace(desc) == "" && strings.TrimSpace(r.Name) != "" {
			desc = strings.TrimSpace(r.Name) + "'s Birthday"
		}
		out = append(out, model.Row{
			Date:        r.Date,
			Description: desc,
			GridColor:   r.GridColor,
			TextColor:   r.TextColor,
		})
	}
	return out
}

func (f *File) Table(_ context.Context, name string) ([]model.Row, error) {
	rows, ok := f.tables[name]
	if !ok {
		return nil, nil
	}
	return append([]model.Row(nil), rows...), nil
}

// marshalTables renders tables in YAML dataset form, in the given table
// order.
func marshalTables(order []string, tables map[string][]model.Row) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range order {
		rows := make([]yamlRow, 0, len(tables[name]))
		for _, r := range tables[name] {
			rows = append(rows, yamlRow{
				Date:        r.Date,
				Description: r.Description,
				GridColor:   r.GridColor,
				TextColor:   r.TextColor,
			})
		}
		var val yaml.Node
		if err := val.Encode(rows); err != nil {
			return nil, err
		}
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: name},
			&val,
		)
	}
	return yaml.Marshal(doc)
}
