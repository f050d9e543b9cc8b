package feed

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeFile parses a single feed file into a generic document: a
// map[string]interface{} or []interface{} depending on the format. Returns
// (nil, nil) for unsupported extensions so callers can skip them.
func DecodeFile(path string) (interface{}, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return decodeJSON(path)
	case ".xml":
		return decodeXML(path)
	case ".csv":
		return decodeCSV(path)
	case ".yaml", ".yml":
		return decodeYAML(path)
	default:
		return nil, nil
	}
}

func decodeJSON(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON feed: %w", err)
	}
	return doc, nil
}

func decodeYAML(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML feed: %w", err)
	}
	return doc, nil
}

// decodeCSV reads a CSV file into a list of header-keyed row maps.
func decodeCSV(path string) (interface{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return []interface{}{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV feed: %w", err)
	}

	var rows []interface{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV feed: %w", err)
		}
		row := make(map[string]interface{}, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// xmlNode is a generic XML element used to decode arbitrary feed documents.
type xmlNode struct {
	XMLName xml.Name
	Content string    `xml:",chardata"`
	Nodes   []xmlNode `xml:",any"`
}

// decodeXML parses an XML document into {rootTag: nested maps}. Leaf elements
// become their text content; repeated sibling tags become lists, matching the
// shape JSON feeds arrive in.
func decodeXML(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var root xmlNode
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse XML feed: %w", err)
	}
	return map[string]interface{}{root.XMLName.Local: nodeToValue(&root)}, nil
}

func nodeToValue(n *xmlNode) interface{} {
	if len(n.Nodes) == 0 {
		return strings.TrimSpace(n.Content)
	}

	out := make(map[string]interface{})
	for i := range n.Nodes {
		child := &n.Nodes[i]
		tag := child.XMLName.Local
		value := nodeToValue(child)

		existing, seen := out[tag]
		if !seen {
			out[tag] = value
			continue
		}
		if list, ok := existing.([]interface{}); ok {
			out[tag] = append(list, value)
		} else {
			out[tag] = []interface{}{existing, value}
		}
	}
	return out
}
