package geometry

import (
	"math"

	"github.com/braunma/rack-layout/internal/constants"
	"github.com/braunma/rack-layout/pkg/models"
)

// FloorPlan describes the top-down design area
type FloorPlan struct {
	GridSize  float64     `yaml:"grid_size" toml:"grid_size" json:"gridSize"`
	Area      models.Size `yaml:"area" toml:"area" json:"area"`
	Footprint models.Size `yaml:"footprint" toml:"footprint" json:"footprint"`
}

// DefaultFloorPlan returns the 2000x1500 area with a 20px grid and the
// cabinet footprint derived from its physical width and depth
func DefaultFloorPlan() FloorPlan {
	return FloorPlan{
		GridSize:  constants.GridCellPx,
		Area:      models.Size{Width: constants.AreaWidthPx, Height: constants.AreaHeightPx},
		Footprint: DefaultFootprint(),
	}
}

// DefaultFootprint scales the cabinet width/depth in mm down to floor-plan pixels
func DefaultFootprint() models.Size {
	return models.Size{
		Width:  constants.FootprintWidthPx,
		Height: constants.FootprintDepthPx,
	}
}

// MaxPosition returns the largest top-left corner that keeps a footprint inside the area
func (fp FloorPlan) MaxPosition() models.Point {
	return models.Point{
		X: math.Max(0, fp.Area.Width-fp.Footprint.Width),
		Y: math.Max(0, fp.Area.Height-fp.Footprint.Height),
	}
}

// Clamp moves p into [0, MaxPosition]
func (fp FloorPlan) Clamp(p models.Point) models.Point {
	limit := fp.MaxPosition()
	return models.Point{
		X: clamp(p.X, 0, limit.X),
		Y: clamp(p.Y, 0, limit.Y),
	}
}

// Contains reports whether a cabinet anchored at p lies fully inside the area
func (fp FloorPlan) Contains(p models.Point) bool {
	limit := fp.MaxPosition()
	return p.X >= 0 && p.Y >= 0 && p.X <= limit.X && p.Y <= limit.Y
}

// Rect returns the cabinet's footprint rectangle; ok is false when unplaced
func (fp FloorPlan) Rect(c models.Cabinet) (Rect, bool) {
	if c.Position == nil {
		return Rect{}, false
	}
	return Rect{
		X:      c.Position.X,
		Y:      c.Position.Y,
		Width:  fp.Footprint.Width,
		Height: fp.Footprint.Height,
	}, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
