package geometry

import (
	"github.com/braunma/rack-layout/internal/constants"
	"github.com/braunma/rack-layout/pkg/models"
)

// Box is a device rectangle in elevation pixels, measured from the top of the cabinet
type Box struct {
	Top    float64 `yaml:"top" json:"top"`
	Height float64 `yaml:"height" json:"height"`
	Width  float64 `yaml:"width" json:"width"`
}

// SlotTop returns the pixel offset of the top edge of slot u.
// U1 sits at the bottom, so U42 has offset 0.
func SlotTop(u int) float64 {
	return float64(constants.MaxU-u) * constants.UHeightPx
}

// ElevationBox projects a device into the front/rear elevation view.
// Only the portion within [1, MaxU] is drawn; ok is false when nothing is visible.
func ElevationBox(d models.Device) (Box, bool) {
	size := CappedSize(d)
	if size == 0 {
		return Box{}, false
	}
	return Box{
		Top:    SlotTop(CappedEndU(d)),
		Height: float64(size) * constants.UHeightPx,
		Width:  constants.ElevationWidthPx,
	}, true
}

// LabelledSlots returns the U numbers printed on the elevation ruler:
// U1, every fifth slot, and the top slot
func LabelledSlots() []int {
	slots := []int{1}
	for u := constants.ElevationLabelStep; u < constants.MaxU; u += constants.ElevationLabelStep {
		slots = append(slots, u)
	}
	return append(slots, constants.MaxU)
}

// FaceDevices returns the devices mounted on one face, preserving source order
func FaceDevices(c models.Cabinet, face models.Face) []models.Device {
	var out []models.Device
	for _, d := range c.Devices {
		if d.Face == face {
			out = append(out, d)
		}
	}
	return out
}
