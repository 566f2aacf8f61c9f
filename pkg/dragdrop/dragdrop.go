// Package dragdrop converts pointer drag gestures into floor-plan positions.
package dragdrop

import (
	"math"
	"strconv"
	"strings"

	"github.com/braunma/rack-layout/internal/constants"
	rackerr "github.com/braunma/rack-layout/pkg/errors"
	"github.com/braunma/rack-layout/pkg/models"
)

// Payload is the data captured when a drag starts: which cabinet, and where
// inside it the pointer grabbed, in unscaled floor-plan units
type Payload struct {
	CabinetID string
	Offset    models.Point
}

// ParsePayload reads cabinetId, offsetX and offsetY from drag transfer data
func ParsePayload(data map[string]string) (Payload, error) {
	id := strings.TrimSpace(data[constants.PayloadCabinetID])
	if id == "" {
		return Payload{}, rackerr.New(rackerr.ErrCodeMalformedDragPayload, "drag payload has no %s", constants.PayloadCabinetID)
	}

	ox, err := parseCoord(data, constants.PayloadOffsetX)
	if err != nil {
		return Payload{}, err
	}
	oy, err := parseCoord(data, constants.PayloadOffsetY)
	if err != nil {
		return Payload{}, err
	}

	return Payload{CabinetID: id, Offset: models.Point{X: ox, Y: oy}}, nil
}

func parseCoord(data map[string]string, key string) (float64, error) {
	raw, ok := data[key]
	if !ok {
		return 0, rackerr.New(rackerr.ErrCodeMalformedDragPayload, "drag payload has no %s", key)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, rackerr.Wrap(rackerr.ErrCodeMalformedDragPayload, err, "drag payload %s=%q", key, raw)
	}
	if !finite(v) {
		return 0, rackerr.New(rackerr.ErrCodeMalformedDragPayload, "drag payload %s=%q is not finite", key, raw)
	}
	return v, nil
}

// Snap rounds v to the nearest multiple of grid
func Snap(v, grid float64) float64 {
	return math.Round(v/grid) * grid
}

// ComputeDropPosition returns the grid-snapped top-left corner for a drop.
// The raw target is pointer - containerOrigin - offset. Each axis is snapped
// to the grid and then clamped into [0, area - footprint], with the upper
// bound rounded down to the grid so the result stays aligned.
func ComputeDropPosition(pointer, offset, containerOrigin models.Point, gridSize float64, area, footprint models.Size) (models.Point, error) {
	for _, v := range []float64{pointer.X, pointer.Y, offset.X, offset.Y, containerOrigin.X, containerOrigin.Y, area.Width, area.Height, footprint.Width, footprint.Height} {
		if !finite(v) {
			return models.Point{}, rackerr.New(rackerr.ErrCodeMalformedDragPayload, "drop coordinates must be finite")
		}
	}
	if !finite(gridSize) || gridSize <= 0 {
		return models.Point{}, rackerr.New(rackerr.ErrCodeMalformedDragPayload, "grid size %v must be positive", gridSize)
	}

	rawX := pointer.X - containerOrigin.X - offset.X
	rawY := pointer.Y - containerOrigin.Y - offset.Y

	return models.Point{
		X: clampAligned(Snap(rawX, gridSize), area.Width-footprint.Width, gridSize),
		Y: clampAligned(Snap(rawY, gridSize), area.Height-footprint.Height, gridSize),
	}, nil
}

func clampAligned(v, bound, grid float64) float64 {
	hi := math.Floor(bound/grid) * grid
	if hi < 0 {
		hi = 0
	}
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
