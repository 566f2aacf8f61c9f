package models

import (
	"testing"
)

func TestDeviceID(t *testing.T) {
	tests := []struct {
		name       string
		cabinetID  string
		startU     int
		face       Face
		brandModel string
		index      int
		expected   string
	}{
		{
			name:       "simple label",
			cabinetID:  "C01",
			startU:     1,
			face:       FaceFront,
			brandModel: "Server",
			index:      0,
			expected:   "C01-U1-front-Server-0",
		},
		{
			name:       "label with spaces",
			cabinetID:  "C01",
			startU:     12,
			face:       FaceRear,
			brandModel: "Dell  PowerEdge R740",
			index:      3,
			expected:   "C01-U12-rear-DellPowerEdgeR740-3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DeviceID(tt.cabinetID, tt.startU, tt.face, tt.brandModel, tt.index)
			if result != tt.expected {
				t.Errorf("DeviceID() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func TestDeviceEndU(t *testing.T) {
	d := Device{StartU: 40, USize: 5}
	if d.EndU() != 44 {
		t.Errorf("Device.EndU() = %d, expected %d", d.EndU(), 44)
	}
}

func TestFaceValid(t *testing.T) {
	if !FaceFront.Valid() || !FaceRear.Valid() {
		t.Error("front and rear should be valid faces")
	}
	if Face("side").Valid() {
		t.Error("side should not be a valid face")
	}
}

func TestCabinetDisplayName(t *testing.T) {
	c := Cabinet{ID: "C01"}
	if c.DisplayName() != "C01" {
		t.Errorf("Cabinet.DisplayName() = %q, expected %q", c.DisplayName(), "C01")
	}

	c.Name = "Cabinet Alpha"
	if c.DisplayName() != "Cabinet Alpha" {
		t.Errorf("Cabinet.DisplayName() = %q, expected %q", c.DisplayName(), "Cabinet Alpha")
	}
}

func TestCabinetClone(t *testing.T) {
	src := Cabinet{
		ID:       "C01",
		Devices:  []Device{{ID: "d1", StartU: 1, USize: 2, Face: FaceFront, BrandModel: "Server"}},
		Position: &Point{X: 20, Y: 40},
	}

	clone := src.Clone()
	clone.Position.X = 100
	clone.Devices[0].BrandModel = "Changed"

	if src.Position.X != 20 {
		t.Errorf("src position mutated through clone: X = %v", src.Position.X)
	}
	if src.Devices[0].BrandModel != "Server" {
		t.Errorf("src devices mutated through clone: %q", src.Devices[0].BrandModel)
	}
}

func TestCabinetPlaced(t *testing.T) {
	c := Cabinet{ID: "C01"}
	if c.Placed() {
		t.Error("cabinet without position should not be placed")
	}

	c.Position = &Point{}
	if !c.Placed() {
		t.Error("cabinet at origin should be placed")
	}
}
