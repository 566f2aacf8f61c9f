// Package geometry holds the capacity math and the three projections
// (floor plan, elevation, 3D world) shared by every renderer.
//
// All projections use U1 at the bottom of the cabinet.
package geometry

import (
	"github.com/braunma/rack-layout/internal/constants"
	"github.com/braunma/rack-layout/pkg/models"
)

// IsOversized reports whether a device starting at startU with uSize units
// extends past the top of the cabinet
func IsOversized(startU, uSize int) bool {
	return startU+uSize-1 > constants.MaxU
}

// InRange reports whether startU is a usable slot
func InRange(startU int) bool {
	return startU >= 1 && startU <= constants.MaxU
}

// CappedSize returns the number of units a device occupies within [1, MaxU].
// Devices starting outside the cabinet occupy nothing.
func CappedSize(d models.Device) int {
	if !InRange(d.StartU) || d.USize < 1 {
		return 0
	}
	if IsOversized(d.StartU, d.USize) {
		return constants.MaxU - d.StartU + 1
	}
	return d.USize
}

// CappedEndU returns the highest slot actually drawn for the device
func CappedEndU(d models.Device) int {
	return d.StartU + CappedSize(d) - 1
}

// UsedU sums the capped sizes of every device in the cabinet
func UsedU(c models.Cabinet) int {
	total := 0
	for _, d := range c.Devices {
		total += CappedSize(d)
	}
	return total
}

// ExceedsCapacity reports whether the cabinet declares more units than it has
func ExceedsCapacity(c models.Cabinet) bool {
	return UsedU(c) > constants.MaxU
}

// Overflow returns how many units the cabinet is over capacity (0 when it fits)
func Overflow(c models.Cabinet) int {
	if over := UsedU(c) - constants.MaxU; over > 0 {
		return over
	}
	return 0
}

// UsageRatio returns used/MaxU, capped at 1
func UsageRatio(c models.Cabinet) float64 {
	ratio := float64(UsedU(c)) / float64(constants.MaxU)
	if ratio > 1 {
		return 1
	}
	return ratio
}
