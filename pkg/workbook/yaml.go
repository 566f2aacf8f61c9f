package workbook

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Document is the YAML form of a workbook
type Document struct {
	Sheets []Sheet `yaml:"sheets"`
}

// Sheet is one named table of cells
type Sheet struct {
	Name string     `yaml:"name"`
	Rows [][]string `yaml:"rows"`
}

func readYAML(name string, r io.Reader) (*memWorkbook, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	wb := newMemWorkbook(name)
	for i, sheet := range doc.Sheets {
		if sheet.Name == "" {
			return nil, fmt.Errorf("sheet %d has no name", i+1)
		}
		if err := wb.add(sheet.Name, sheet.Rows); err != nil {
			return nil, err
		}
	}
	return wb, nil
}

// WriteYAML encodes sheets as a YAML workbook document
func WriteYAML(w io.Writer, sheets []Sheet) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Document{Sheets: sheets}); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return enc.Close()
}
