// Package scene assembles the read-only snapshot handed to renderers: every
// cabinet with its floor rectangle, world position, capacity and overlap flag,
// and every device with its elevation box and 3D placement.
package scene

import (
	"github.com/braunma/rack-layout/internal/constants"
	"github.com/braunma/rack-layout/pkg/geometry"
	"github.com/braunma/rack-layout/pkg/models"
	"github.com/braunma/rack-layout/pkg/overlap"
	"github.com/braunma/rack-layout/pkg/state"
	"github.com/braunma/rack-layout/pkg/utils"
)

// Scene is the complete render input
type Scene struct {
	Source      string             `yaml:"source,omitempty" json:"source,omitempty"`
	IngestionID string             `yaml:"ingestion_id,omitempty" json:"ingestionId,omitempty"`
	ViewMode    string             `yaml:"view_mode" json:"viewMode"`
	ActiveTab   string             `yaml:"active_tab" json:"activeTab"`
	MaxU        int                `yaml:"max_u" json:"maxU"`
	Elevation   geometry.Box       `yaml:"elevation" json:"elevation"`
	Floor       geometry.FloorPlan `yaml:"floor" json:"floor"`
	Ruler       []RulerMark        `yaml:"ruler" json:"ruler"`
	Cabinets    []CabinetView      `yaml:"cabinets" json:"cabinets"`
	Overlaps    []string           `yaml:"overlaps" json:"overlaps"`
	Pairs       []overlap.Pair     `yaml:"pairs,omitempty" json:"pairs,omitempty"`
}

// RulerMark is one labelled slot on the elevation ruler
type RulerMark struct {
	U     int     `yaml:"u" json:"u"`
	Label string  `yaml:"label" json:"label"`
	Top   float64 `yaml:"top" json:"top"`
}

// CabinetView is one cabinet as renderers see it
type CabinetView struct {
	ID           string         `yaml:"id" json:"id"`
	Name         string         `yaml:"name" json:"name"`
	Rect         *geometry.Rect `yaml:"rect,omitempty" json:"rect,omitempty"`
	World        *geometry.Vec3 `yaml:"world,omitempty" json:"world,omitempty"`
	UsedU        int            `yaml:"used_u" json:"usedU"`
	UsageRatio   float64        `yaml:"usage_ratio" json:"usageRatio"`
	OverCapacity bool           `yaml:"over_capacity" json:"overCapacity"`
	Overflow     int            `yaml:"overflow,omitempty" json:"overflow,omitempty"`
	Overlapping  bool           `yaml:"overlapping" json:"overlapping"`
	Devices      []DeviceView   `yaml:"devices" json:"devices"`
}

// DeviceView is one device in all three projections
type DeviceView struct {
	ID          string         `yaml:"id" json:"id"`
	BrandModel  string         `yaml:"brand_model" json:"brandModel"`
	Face        models.Face    `yaml:"face" json:"face"`
	StartU      int            `yaml:"start_u" json:"startU"`
	USize       int            `yaml:"u_size" json:"uSize"`
	VisibleU    int            `yaml:"visible_u" json:"visibleU"`
	Oversized   bool           `yaml:"oversized" json:"oversized"`
	Color       string         `yaml:"color" json:"color"`
	Elevation   *geometry.Box  `yaml:"elevation,omitempty" json:"elevation,omitempty"`
	WorldCenter *geometry.Vec3 `yaml:"world_center,omitempty" json:"worldCenter,omitempty"`
	WorldSize   geometry.Vec3  `yaml:"world_size" json:"worldSize"`
}

// Options controls presentation details that are not part of the layout
type Options struct {
	Floor      geometry.FloorPlan
	FaceColors map[string]string
	ViewMode   string
	ActiveTab  string
}

// DefaultOptions returns the default floor plan and palette
func DefaultOptions() Options {
	return Options{
		Floor:     geometry.DefaultFloorPlan(),
		ViewMode:  string(state.ViewMode2D),
		ActiveTab: constants.DefaultActiveTab,
	}
}

// Build projects a cabinet collection
func Build(layout models.Layout, overlaps overlap.Set, opts Options) *Scene {
	s := &Scene{
		Source:      layout.Source,
		IngestionID: layout.IngestionID,
		ViewMode:    opts.ViewMode,
		ActiveTab:   opts.ActiveTab,
		MaxU:        constants.MaxU,
		Elevation:   geometry.Box{Height: constants.ElevationHeightPx, Width: constants.ElevationWidthPx},
		Floor:       opts.Floor,
		Ruler:       ruler(),
		Cabinets:    make([]CabinetView, 0, len(layout.Cabinets)),
		Overlaps:    overlaps.IDs(),
		Pairs:       overlap.Pairs(layout.Cabinets, opts.Floor.Footprint),
	}

	for _, c := range layout.Cabinets {
		s.Cabinets = append(s.Cabinets, cabinetView(c, overlaps, opts))
	}
	return s
}

// FromStore snapshots a store, including its view mode and active tab
func FromStore(store *state.Store, opts Options) *Scene {
	opts.Floor = store.FloorPlan()
	opts.ViewMode = string(store.ViewMode())
	opts.ActiveTab = store.ActiveTab()
	return Build(store.Layout(), store.Overlaps(), opts)
}

func cabinetView(c models.Cabinet, overlaps overlap.Set, opts Options) CabinetView {
	view := CabinetView{
		ID:           c.ID,
		Name:         c.DisplayName(),
		UsedU:        geometry.UsedU(c),
		UsageRatio:   geometry.UsageRatio(c),
		OverCapacity: geometry.ExceedsCapacity(c),
		Overflow:     geometry.Overflow(c),
		Overlapping:  overlaps.Has(c.ID),
		Devices:      make([]DeviceView, 0, len(c.Devices)),
	}
	if rect, ok := opts.Floor.Rect(c); ok {
		view.Rect = &rect
	}
	if world, ok := geometry.CabinetWorldPosition(c); ok {
		view.World = &world
	}

	for _, d := range c.Devices {
		view.Devices = append(view.Devices, deviceView(d, opts))
	}
	return view
}

func deviceView(d models.Device, opts Options) DeviceView {
	view := DeviceView{
		ID:         d.ID,
		BrandModel: d.BrandModel,
		Face:       d.Face,
		StartU:     d.StartU,
		USize:      d.USize,
		VisibleU:   geometry.CappedSize(d),
		Oversized:  geometry.IsOversized(d.StartU, d.USize),
		Color:      utils.CSSColor(utils.GetFaceColor(string(d.Face), opts.FaceColors)),
		WorldSize:  geometry.DeviceWorldSize(d),
	}
	if box, ok := geometry.ElevationBox(d); ok {
		view.Elevation = &box
	}
	if center, ok := geometry.DeviceWorldCenter(d); ok {
		view.WorldCenter = &center
	}
	return view
}

func ruler() []RulerMark {
	slots := geometry.LabelledSlots()
	marks := make([]RulerMark, 0, len(slots))
	for _, u := range slots {
		marks = append(marks, RulerMark{U: u, Label: utils.FormatU(u), Top: geometry.SlotTop(u)})
	}
	return marks
}
