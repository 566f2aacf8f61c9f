package scene

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	rackerr "github.com/braunma/rack-layout/pkg/errors"
	"github.com/braunma/rack-layout/pkg/geometry"
	"github.com/braunma/rack-layout/pkg/models"
	"github.com/braunma/rack-layout/pkg/overlap"
	"github.com/braunma/rack-layout/pkg/state"
)

func sampleLayout() models.Layout {
	return models.Layout{
		Source: "room.xlsx",
		Cabinets: []models.Cabinet{
			{
				ID:       "A",
				Name:     "Alpha",
				Position: &models.Point{X: 0, Y: 0},
				Devices: []models.Device{
					{ID: "A-U1-front-ServerX1-0", StartU: 1, USize: 2, Face: models.FaceFront, BrandModel: "Server X1"},
					{ID: "A-U40-rear-UPS-1", StartU: 40, USize: 5, Face: models.FaceRear, BrandModel: "UPS", Oversized: true},
				},
			},
			{ID: "B", Position: &models.Point{X: 79, Y: 0}},
			{ID: "C"},
		},
	}
}

func TestBuild(t *testing.T) {
	layout := sampleLayout()
	opts := DefaultOptions()
	s := Build(layout, overlap.Detect(layout.Cabinets, opts.Floor.Footprint), opts)

	if s.MaxU != 42 || s.Source != "room.xlsx" || s.ViewMode != "2d" || s.ActiveTab != "design" {
		t.Errorf("scene header = %+v", s)
	}
	if len(s.Cabinets) != 3 {
		t.Fatalf("Cabinets = %d, expected 3", len(s.Cabinets))
	}
	if len(s.Overlaps) != 2 || len(s.Pairs) != 1 {
		t.Errorf("Overlaps = %v Pairs = %v", s.Overlaps, s.Pairs)
	}

	a, c := s.Cabinets[0], s.Cabinets[2]
	if a.Name != "Alpha" || !a.Overlapping || a.UsedU != 5 {
		t.Errorf("A view = %+v", a)
	}
	if a.Rect == nil || *a.Rect != (geometry.Rect{Width: 80, Height: 100}) {
		t.Errorf("A rect = %+v", a.Rect)
	}
	if c.Rect != nil || c.World != nil || c.Overlapping || c.Name != "C" {
		t.Errorf("unplaced C view = %+v", c)
	}

	ups := a.Devices[1]
	if ups.VisibleU != 3 || !ups.Oversized {
		t.Errorf("UPS visible %d oversized %v, expected 3 and true", ups.VisibleU, ups.Oversized)
	}
	if ups.Elevation == nil || ups.Elevation.Top != 0 || ups.Elevation.Height != 36 {
		t.Errorf("UPS elevation = %+v, expected top 0 height 36", ups.Elevation)
	}
	if ups.Color != "#fcd34d" || a.Devices[0].Color != "#7dd3fc" {
		t.Errorf("colors = %q, %q", a.Devices[0].Color, ups.Color)
	}
	if ups.WorldCenter == nil || ups.WorldCenter.Z >= 0 {
		t.Errorf("rear device should sit at negative Z, got %+v", ups.WorldCenter)
	}
}

func TestBuildRuler(t *testing.T) {
	s := Build(models.Layout{}, overlap.Set{}, DefaultOptions())

	if len(s.Ruler) == 0 || s.Ruler[0].Label != "U1" || s.Ruler[len(s.Ruler)-1].Label != "U42" {
		t.Fatalf("Ruler = %+v", s.Ruler)
	}
	if s.Ruler[len(s.Ruler)-1].Top != 0 {
		t.Errorf("U42 top = %v, expected 0", s.Ruler[len(s.Ruler)-1].Top)
	}
	if s.Elevation.Height != 504 || s.Elevation.Width != 150 {
		t.Errorf("Elevation = %+v, expected 150x504", s.Elevation)
	}
	if s.Overlaps == nil {
		t.Error("Overlaps should encode as an empty list, not null")
	}
}

func TestBuildFaceColorOverride(t *testing.T) {
	opts := DefaultOptions()
	opts.FaceColors = map[string]string{"front": "#0F0"}
	s := Build(sampleLayout(), overlap.Set{}, opts)

	if got := s.Cabinets[0].Devices[0].Color; got != "#00ff00" {
		t.Errorf("Color = %q, expected #00ff00", got)
	}
}

func TestFromStore(t *testing.T) {
	store := state.NewStore(geometry.DefaultFloorPlan(), nil)
	if err := store.Load(sampleLayout()); err != nil {
		t.Fatal(err)
	}
	_ = store.SetViewMode(state.ViewMode3D)
	_ = store.SetActiveTab("A")

	s := FromStore(store, DefaultOptions())
	if s.ViewMode != "3d" || s.ActiveTab != "A" {
		t.Errorf("ViewMode %q ActiveTab %q", s.ViewMode, s.ActiveTab)
	}
	if len(s.Overlaps) != 2 {
		t.Errorf("Overlaps = %v", s.Overlaps)
	}
}

func TestEncode(t *testing.T) {
	s := Build(sampleLayout(), overlap.Set{}, DefaultOptions())

	var js bytes.Buffer
	if err := Encode(&js, s, "json"); err != nil {
		t.Fatalf("Encode(json) error = %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["maxU"] != float64(42) {
		t.Errorf("maxU = %v", decoded["maxU"])
	}

	var ym bytes.Buffer
	if err := Encode(&ym, s, "YAML"); err != nil {
		t.Fatalf("Encode(yaml) error = %v", err)
	}
	var back map[string]interface{}
	if err := yaml.Unmarshal(ym.Bytes(), &back); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if !strings.Contains(ym.String(), "brand_model: UPS") {
		t.Errorf("YAML output missing device label:\n%s", ym.String())
	}

	if err := Encode(&js, s, "xml"); !rackerr.Is(err, rackerr.ErrCodeUnsupportedFormat) {
		t.Errorf("Encode(xml) error = %v", err)
	}
}
