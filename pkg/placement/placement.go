// Package placement assigns floor-plan positions to cabinets, either from an
// explicit location sheet or from a deterministic row/column grid.
package placement

import (
	"strings"

	"github.com/braunma/rack-layout/internal/constants"
	rackerr "github.com/braunma/rack-layout/pkg/errors"
	"github.com/braunma/rack-layout/pkg/geometry"
	"github.com/braunma/rack-layout/pkg/models"
)

// Options controls spacing and origin of both explicit and fallback layouts
type Options struct {
	StartX          float64 `yaml:"start_x" toml:"start_x"`
	StartY          float64 `yaml:"start_y" toml:"start_y"`
	AdjacentSpacing float64 `yaml:"adjacent_spacing" toml:"adjacent_spacing"`
	CorridorSpacing float64 `yaml:"corridor_spacing" toml:"corridor_spacing"`
	CabinetsPerRow  int     `yaml:"cabinets_per_row" toml:"cabinets_per_row"`
	GroupColumn     string  `yaml:"group_column" toml:"group_column"`
}

// DefaultOptions returns the built-in origin, spacing and grid width
func DefaultOptions() Options {
	return Options{
		StartX:          constants.DefaultStartX,
		StartY:          constants.DefaultStartY,
		AdjacentSpacing: constants.DefaultAdjacentSpacing,
		CorridorSpacing: constants.DefaultCorridorSpacing,
		CabinetsPerRow:  constants.DefaultCabinetsPerRow,
		GroupColumn:     constants.GroupColumnHeader,
	}
}

// Placement is the resolved position and display name of one cabinet
type Placement struct {
	Position models.Point
	Name     string
	Explicit bool
}

// Resolver computes placements on a given floor plan
type Resolver struct {
	opts  Options
	floor geometry.FloorPlan
}

// NewResolver creates a resolver. A non-positive CabinetsPerRow falls back to the default.
func NewResolver(opts Options, floor geometry.FloorPlan) *Resolver {
	if opts.CabinetsPerRow < 1 {
		opts.CabinetsPerRow = constants.DefaultCabinetsPerRow
	}
	if opts.GroupColumn == "" {
		opts.GroupColumn = constants.GroupColumnHeader
	}
	return &Resolver{opts: opts, floor: floor}
}

// stepX is the horizontal distance between neighbouring cabinets
func (r *Resolver) stepX() float64 {
	return r.floor.Footprint.Width + r.opts.AdjacentSpacing
}

// stepY is the vertical distance between corridors or grid rows
func (r *Resolver) stepY() float64 {
	return r.floor.Footprint.Height + r.opts.CorridorSpacing
}

// ParseLocationSheet reads the location sheet. The first row is the header and
// must contain the group column; every later row is one group whose non-empty
// cells name cabinets, laid out left to right. Groups stack downward, and only
// groups that placed at least one cabinet advance the vertical offset.
func (r *Resolver) ParseLocationSheet(rows [][]string) ([]models.LocationRecord, []*rackerr.Error) {
	var warnings []*rackerr.Error
	if len(rows) == 0 {
		return nil, append(warnings, rackerr.New(rackerr.ErrCodeMissingGroupColumn, "location sheet is empty"))
	}

	groupCol := -1
	want := strings.ToLower(strings.TrimSpace(r.opts.GroupColumn))
	for i, h := range rows[0] {
		if strings.ToLower(strings.TrimSpace(h)) == want {
			groupCol = i
			break
		}
	}
	if groupCol == -1 {
		return nil, append(warnings, rackerr.New(rackerr.ErrCodeMissingGroupColumn,
			"%q column not found in location sheet header", r.opts.GroupColumn))
	}

	var records []models.LocationRecord
	seen := make(map[string]bool)
	y := r.opts.StartY

	for _, row := range rows[1:] {
		group := ""
		if groupCol < len(row) {
			group = strings.TrimSpace(row[groupCol])
		}

		x := r.opts.StartX
		placed := 0
		for j, cell := range row {
			if j == groupCol {
				continue
			}
			id := strings.TrimSpace(cell)
			if id == "" {
				continue
			}
			if seen[id] {
				warnings = append(warnings, rackerr.New(rackerr.ErrCodeDuplicateLocation,
					"cabinet %q listed more than once, keeping its first position", id))
				continue
			}
			seen[id] = true
			records = append(records, models.LocationRecord{
				CabinetID: id,
				Name:      id,
				Group:     group,
				X:         x,
				Y:         y,
			})
			x += r.stepX()
			placed++
		}

		if placed > 0 {
			y += r.stepY()
		}
	}

	return records, warnings
}

// GridPosition returns the fallback position of the k-th unplaced cabinet
func (r *Resolver) GridPosition(slot int) models.Point {
	col := slot % r.opts.CabinetsPerRow
	row := slot / r.opts.CabinetsPerRow
	return models.Point{
		X: r.opts.StartX + float64(col)*r.stepX(),
		Y: r.opts.StartY + float64(row)*r.stepY(),
	}
}

// Resolve assigns every cabinet id a position. Explicit records are used as
// given; the rest are placed on the fallback grid in the order of ids.
// All positions are clamped into the floor plan.
func (r *Resolver) Resolve(ids []string, explicit []models.LocationRecord) map[string]Placement {
	byID := make(map[string]models.LocationRecord, len(explicit))
	for _, rec := range explicit {
		if _, ok := byID[rec.CabinetID]; !ok {
			byID[rec.CabinetID] = rec
		}
	}

	out := make(map[string]Placement, len(ids))
	slot := 0
	for _, id := range ids {
		if _, done := out[id]; done {
			continue
		}
		if rec, ok := byID[id]; ok {
			name := rec.Name
			if name == "" {
				name = id
			}
			out[id] = Placement{
				Position: r.floor.Clamp(models.Point{X: rec.X, Y: rec.Y}),
				Name:     name,
				Explicit: true,
			}
			continue
		}
		out[id] = Placement{
			Position: r.floor.Clamp(r.GridPosition(slot)),
			Name:     id,
		}
		slot++
	}
	return out
}

// Unmatched returns explicit records whose cabinet has no sheet
func Unmatched(ids []string, explicit []models.LocationRecord) []models.LocationRecord {
	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	var out []models.LocationRecord
	for _, rec := range explicit {
		if !known[rec.CabinetID] {
			out = append(out, rec)
		}
	}
	return out
}
