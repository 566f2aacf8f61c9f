package models

import (
	"fmt"
	"strings"
)

// Face identifies which side of a cabinet a device is mounted on
type Face string

const (
	FaceFront Face = "front"
	FaceRear  Face = "rear"
)

// Valid reports whether f is one of the two known faces
func (f Face) Valid() bool {
	return f == FaceFront || f == FaceRear
}

// Device represents a device mounted in a cabinet
type Device struct {
	ID         string `yaml:"id" json:"id" validate:"required"`
	StartU     int    `yaml:"start_u" json:"startU" validate:"required,min=1,max=42"`
	USize      int    `yaml:"u_size" json:"uSize" validate:"required,min=1"`
	Face       Face   `yaml:"face" json:"face" validate:"required,oneof=front rear"`
	BrandModel string `yaml:"brand_model" json:"brandModel" validate:"required"`
	Oversized  bool   `yaml:"oversized,omitempty" json:"oversized,omitempty"`
}

// EndU returns the last slot the device declares, which may exceed the cabinet
func (d *Device) EndU() int {
	return d.StartU + d.USize - 1
}

// DeviceID builds the stable identifier of a device inside its cabinet
func DeviceID(cabinetID string, startU int, face Face, brandModel string, index int) string {
	compact := strings.Join(strings.Fields(brandModel), "")
	return fmt.Sprintf("%s-U%d-%s-%s-%d", cabinetID, startU, face, compact, index)
}
