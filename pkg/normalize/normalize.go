// Package normalize turns raw cabinet-sheet rows into validated devices.
package normalize

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/braunma/rack-layout/internal/constants"
	rackerr "github.com/braunma/rack-layout/pkg/errors"
	"github.com/braunma/rack-layout/pkg/geometry"
	"github.com/braunma/rack-layout/pkg/models"
)

// RawRow is one data row of a cabinet sheet, keyed by header
type RawRow struct {
	CabinetID string
	Row       int // 1-based row number in the source sheet
	Index     int // 0-based position among the sheet's data rows
	Cells     map[string]string
}

// Rejection describes a row that could not become a device
type Rejection struct {
	Code      rackerr.Code
	CabinetID string
	Row       int
	Reason    string
	Values    map[string]string
}

// Error implements the error interface
func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: cabinet %q row %d: %s %s", r.Code, r.CabinetID, r.Row, r.Reason, formatValues(r.Values))
}

// Err returns the rejection as a coded error
func (r *Rejection) Err() *rackerr.Error {
	return rackerr.New(r.Code, "cabinet %q row %d: %s", r.CabinetID, r.Row, r.Reason)
}

// Normalizer validates rows against a closed face table and an ordered list of label columns
type Normalizer struct {
	labelColumns []string
	rearTokens   map[string]bool
}

// NewNormalizer creates a normalizer. Empty arguments fall back to the defaults.
func NewNormalizer(labelColumns, rearTokens []string) *Normalizer {
	if len(labelColumns) == 0 {
		labelColumns = constants.BrandModelColumns
	}
	if len(rearTokens) == 0 {
		rearTokens = constants.RearFaceTokens
	}

	tokens := make(map[string]bool, len(rearTokens))
	for _, tok := range rearTokens {
		tokens[strings.ToLower(strings.TrimSpace(tok))] = true
	}

	return &Normalizer{
		labelColumns: append([]string(nil), labelColumns...),
		rearTokens:   tokens,
	}
}

// Default returns a normalizer with the built-in columns and face tokens
func Default() *Normalizer {
	return NewNormalizer(nil, nil)
}

// Normalize converts a raw row into a device, or explains why it cannot
func (n *Normalizer) Normalize(row RawRow) (*models.Device, *Rejection) {
	rawStart := lookup(row.Cells, constants.StartUColumn)
	rawSize := lookup(row.Cells, constants.USizeColumn)

	startU, err := ParseInt(rawStart)
	if err != nil {
		return nil, n.reject(row, rackerr.ErrCodeMalformedNumber, fmt.Sprintf("start U %q is not an integer", rawStart))
	}
	uSize, err := ParseInt(rawSize)
	if err != nil {
		return nil, n.reject(row, rackerr.ErrCodeMalformedNumber, fmt.Sprintf("U size %q is not an integer", rawSize))
	}

	if startU < 1 || startU > constants.MaxU {
		return nil, n.reject(row, rackerr.ErrCodeOutOfRange, fmt.Sprintf("start U %d outside 1..%d", startU, constants.MaxU))
	}
	if uSize < 1 {
		return nil, n.reject(row, rackerr.ErrCodeOutOfRange, fmt.Sprintf("U size %d is less than 1", uSize))
	}

	label := n.ResolveLabel(row.Cells)
	if label == "" {
		return nil, n.reject(row, rackerr.ErrCodeMissingLabel, "no brand/model value in "+strings.Join(n.labelColumns, ", "))
	}

	face := n.ParseFace(lookup(row.Cells, constants.FaceColumn))

	return &models.Device{
		ID:         models.DeviceID(row.CabinetID, startU, face, label, row.Index),
		StartU:     startU,
		USize:      uSize,
		Face:       face,
		BrandModel: label,
		Oversized:  geometry.IsOversized(startU, uSize),
	}, nil
}

// ParseFace maps any input to front or rear. Only the configured rear tokens mean rear.
func (n *Normalizer) ParseFace(raw string) models.Face {
	if n.rearTokens[strings.ToLower(strings.TrimSpace(raw))] {
		return models.FaceRear
	}
	return models.FaceFront
}

// ResolveLabel returns the first non-empty label column in priority order
func (n *Normalizer) ResolveLabel(cells map[string]string) string {
	for _, key := range n.labelColumns {
		if v := strings.TrimSpace(lookup(cells, key)); v != "" {
			return v
		}
	}
	return ""
}

func (n *Normalizer) reject(row RawRow, code rackerr.Code, reason string) *Rejection {
	values := make(map[string]string, len(row.Cells))
	for k, v := range row.Cells {
		values[k] = v
	}
	return &Rejection{
		Code:      code,
		CabinetID: row.CabinetID,
		Row:       row.Row,
		Reason:    reason,
		Values:    values,
	}
}

// ParseInt parses a cell as an integer. Integral decimals like "40.0" are accepted.
func ParseInt(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("%q is out of range", s)
	}
	return int(f), nil
}

// lookup finds a cell by exact header, then by case-insensitive trimmed header.
// Ties between headers that differ only in case resolve to the lexically smallest.
func lookup(cells map[string]string, key string) string {
	if v, ok := cells[key]; ok {
		return v
	}
	want := strings.ToLower(strings.TrimSpace(key))
	match := ""
	found := false
	for k := range cells {
		if strings.ToLower(strings.TrimSpace(k)) == want && (!found || k < match) {
			match, found = k, true
		}
	}
	if !found {
		return ""
	}
	return cells[match]
}

func formatValues(values map[string]string) string {
	if len(values) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%q", k, values[k]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
