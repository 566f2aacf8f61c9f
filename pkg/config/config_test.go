package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	rackerr "github.com/braunma/rack-layout/pkg/errors"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Floor.GridSize != 20 || cfg.Floor.Footprint.Width != 80 || cfg.Floor.Footprint.Height != 100 {
		t.Errorf("Floor = %+v", cfg.Floor)
	}
	if cfg.Placement.CabinetsPerRow != 5 || cfg.Placement.StartX != 40 {
		t.Errorf("Placement = %+v", cfg.Placement)
	}
}

func TestParseYAMLPartial(t *testing.T) {
	doc := `
view_mode: 3d
import:
  location_sheet: Floor
  rear_tokens: [rear, hinten]
floor:
  grid_size: 25
placement:
  start_x: 0
  cabinets_per_row: 8
colors:
  rear: "#F00"
`
	cfg, err := Parse([]byte(doc), ".yaml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.ViewMode != "3d" || cfg.Import.LocationSheet != "Floor" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Floor.GridSize != 25 || cfg.Floor.Area.Width != 2000 {
		t.Errorf("Floor = %+v, expected grid 25 with default area", cfg.Floor)
	}
	if cfg.Placement.StartX != 0 || cfg.Placement.StartY != 40 || cfg.Placement.CabinetsPerRow != 8 {
		t.Errorf("Placement = %+v", cfg.Placement)
	}
	if len(cfg.Import.LabelColumns) != 3 {
		t.Errorf("LabelColumns = %v, expected defaults", cfg.Import.LabelColumns)
	}

	opts := cfg.IngestOptions()
	if opts.LocationSheet != "Floor" || opts.RearTokens[1] != "hinten" || opts.Floor.GridSize != 25 {
		t.Errorf("IngestOptions() = %+v", opts)
	}
	if cfg.SceneOptions().FaceColors["rear"] != "#F00" {
		t.Errorf("SceneOptions() colors = %v", cfg.SceneOptions().FaceColors)
	}
}

func TestParseTOML(t *testing.T) {
	doc := `
layout_file = "room.state.yaml"

[import]
label_columns = ["Model", "BrandModel"]

[floor]
grid_size = 10

[floor.area]
width = 1000
height = 800

[placement]
corridor_spacing = 60
`
	cfg, err := Parse([]byte(doc), "toml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.LayoutFile != "room.state.yaml" || cfg.Floor.GridSize != 10 || cfg.Floor.Area.Width != 1000 || cfg.Floor.Area.Height != 800 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Placement.CorridorSpacing != 60 || cfg.Placement.AdjacentSpacing != 20 {
		t.Errorf("Placement = %+v", cfg.Placement)
	}
	if cfg.Import.LabelColumns[0] != "Model" {
		t.Errorf("LabelColumns = %v", cfg.Import.LabelColumns)
	}
}

func TestParseEmptyYAML(t *testing.T) {
	cfg, err := Parse([]byte("  \n"), "yml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.LayoutFile != DefaultLayoutFile {
		t.Errorf("LayoutFile = %q", cfg.LayoutFile)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		ext  string
		code rackerr.Code
		want string
	}{
		{name: "broken yaml", doc: "floor: [", ext: "yaml", code: rackerr.ErrCodeInvalidConfig},
		{name: "broken toml", doc: "floor = = 1", ext: "toml", code: rackerr.ErrCodeInvalidConfig},
		{name: "zero grid", doc: "floor:\n  grid_size: 0\n", ext: "yaml", code: rackerr.ErrCodeInvalidConfig, want: "grid_size"},
		{name: "tiny area", doc: "floor:\n  area: {width: 50, height: 50}\n", ext: "yaml", code: rackerr.ErrCodeInvalidConfig, want: "area"},
		{name: "zero per row", doc: "placement:\n  cabinets_per_row: 0\n", ext: "yaml", code: rackerr.ErrCodeInvalidConfig, want: "cabinets_per_row"},
		{name: "negative spacing", doc: "placement:\n  adjacent_spacing: -5\n", ext: "yaml", code: rackerr.ErrCodeInvalidConfig, want: "spacing"},
		{name: "bad view mode", doc: "view_mode: vr\n", ext: "yaml", code: rackerr.ErrCodeInvalidConfig, want: "view_mode"},
		{name: "bad color", doc: "colors:\n  front: skyblue\n", ext: "yaml", code: rackerr.ErrCodeInvalidConfig, want: "colors.front"},
		{name: "unknown face color", doc: "colors:\n  top: \"#fff\"\n", ext: "yaml", code: rackerr.ErrCodeInvalidConfig, want: "colors.top"},
		{name: "front as rear token", doc: "import:\n  rear_tokens: [Front]\n", ext: "yaml", code: rackerr.ErrCodeInvalidConfig, want: "rear_tokens"},
		{name: "unknown extension", doc: "{}", ext: ".json", code: rackerr.ErrCodeUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), tt.ext)
			if !rackerr.Is(err, tt.code) {
				t.Fatalf("Parse() error = %v, expected %s", err, tt.code)
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse() error = %q, expected mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(path, []byte("view_mode = \"3d\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, used, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if used != path || cfg.ViewMode != "3d" {
		t.Errorf("Load() = %+v from %q", cfg, used)
	}

	if _, _, err := Load(filepath.Join(dir, "missing.yaml")); !rackerr.Is(err, rackerr.ErrCodeInvalidConfig) {
		t.Errorf("Load(missing) error = %v", err)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(path, []byte("layout_file: env.state.yaml\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfigPath, path)

	cfg, used, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if used != path || cfg.LayoutFile != "env.state.yaml" {
		t.Errorf("Load() = %q from %q", cfg.LayoutFile, used)
	}
}
