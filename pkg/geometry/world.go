package geometry

import (
	"github.com/braunma/rack-layout/internal/constants"
	"github.com/braunma/rack-layout/pkg/models"
)

// Vec3 is a point or extent in 3D world units
type Vec3 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// World dimensions of the cabinet shell, derived from the same mm constants as the 2D views
var (
	CabinetWorldSize = Vec3{
		X: constants.CabinetWidthMM * constants.WorldScale,
		Y: constants.CabinetHeightMM * constants.WorldScale,
		Z: constants.CabinetDepthMM * constants.WorldScale,
	}
	UWorldHeight = constants.UHeightMM * constants.WorldScale
)

// DeviceWorldSize returns the visible extent of a device mesh
func DeviceWorldSize(d models.Device) Vec3 {
	return Vec3{
		X: CabinetWorldSize.X * constants.DeviceWidthRatio,
		Y: float64(CappedSize(d)) * UWorldHeight,
		Z: CabinetWorldSize.Z * constants.DeviceDepthRatio,
	}
}

// DeviceWorldCenter returns the device centre relative to the cabinet centre.
// Front devices are pushed toward +Z, rear devices toward -Z.
func DeviceWorldCenter(d models.Device) (Vec3, bool) {
	size := CappedSize(d)
	if size == 0 {
		return Vec3{}, false
	}
	height := float64(size) * UWorldHeight
	depthGap := (CabinetWorldSize.Z - CabinetWorldSize.Z*constants.DeviceDepthRatio) / 2
	z := depthGap
	if d.Face == models.FaceRear {
		z = -depthGap
	}
	return Vec3{
		X: 0,
		Y: float64(d.StartU-1)*UWorldHeight + height/2 - CabinetWorldSize.Y/2,
		Z: z,
	}, true
}

// CabinetWorldPosition maps a floor-plan position to the cabinet centre in world space.
// Floor pixels are converted back to mm with the footprint divisor, then scaled.
func CabinetWorldPosition(c models.Cabinet) (Vec3, bool) {
	if c.Position == nil {
		return Vec3{}, false
	}
	return Vec3{
		X: c.Position.X * constants.FloorPxToWorld,
		Y: CabinetWorldSize.Y / 2,
		Z: c.Position.Y * constants.FloorPxToWorld,
	}, true
}
