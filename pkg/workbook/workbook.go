// Package workbook reads tabular workbooks from spreadsheet or YAML files.
package workbook

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	rackerr "github.com/braunma/rack-layout/pkg/errors"
)

// Workbook is an ordered set of named sheets of string cells
type Workbook interface {
	// Name is the file name the workbook was read from
	Name() string
	// SheetNames returns the sheet names in workbook order
	SheetNames() []string
	// Rows returns every row of a sheet, header first
	Rows(sheet string) ([][]string, error)
}

// Format identifies a workbook encoding
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatYAML Format = "yaml"
)

// DetectFormat maps a file extension to a workbook format
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", rackerr.New(rackerr.ErrCodeUnsupportedFormat, "unsupported workbook extension %q", filepath.Ext(path))
}

// Open reads a workbook from disk
func Open(path string) (Workbook, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, rackerr.Wrap(rackerr.ErrCodeIngestionFailure, err, "failed to open %s", path)
	}
	defer file.Close()

	return Read(filepath.Base(path), format, file)
}

// Read decodes a workbook of the given format from r
func Read(name string, format Format, r io.Reader) (Workbook, error) {
	var (
		wb  *memWorkbook
		err error
	)
	switch format {
	case FormatXLSX:
		wb, err = readXLSX(name, r)
	case FormatYAML:
		wb, err = readYAML(name, r)
	default:
		return nil, rackerr.New(rackerr.ErrCodeUnsupportedFormat, "unsupported workbook format %q", format)
	}
	if err != nil {
		return nil, rackerr.Wrap(rackerr.ErrCodeIngestionFailure, err, "failed to read workbook %s", name)
	}
	return wb, nil
}

// ReadBytes decodes a workbook held in memory
func ReadBytes(name string, format Format, data []byte) (Workbook, error) {
	return Read(name, format, bytes.NewReader(data))
}

// memWorkbook holds fully decoded sheets so readers never keep files open
type memWorkbook struct {
	name   string
	order  []string
	sheets map[string][][]string
}

func newMemWorkbook(name string) *memWorkbook {
	return &memWorkbook{name: name, sheets: make(map[string][][]string)}
}

func (w *memWorkbook) add(sheet string, rows [][]string) error {
	if _, exists := w.sheets[sheet]; exists {
		return fmt.Errorf("duplicate sheet name %q", sheet)
	}
	w.order = append(w.order, sheet)
	w.sheets[sheet] = rows
	return nil
}

func (w *memWorkbook) Name() string {
	return w.name
}

func (w *memWorkbook) SheetNames() []string {
	return append([]string(nil), w.order...)
}

func (w *memWorkbook) Rows(sheet string) ([][]string, error) {
	rows, ok := w.sheets[sheet]
	if !ok {
		return nil, fmt.Errorf("sheet %q not found", sheet)
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

// FindSheet returns the first sheet whose name matches want case-insensitively
func FindSheet(wb Workbook, want string) (string, bool) {
	want = strings.ToLower(strings.TrimSpace(want))
	for _, name := range wb.SheetNames() {
		if strings.ToLower(strings.TrimSpace(name)) == want {
			return name, true
		}
	}
	return "", false
}
