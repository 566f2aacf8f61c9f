// Package config loads rack-layout settings.
//
// Config file locations (priority order):
//  1. the --config flag
//  2. $RACK_LAYOUT_CONFIG
//  3. ./rack-layout.yaml, ./rack-layout.yml, ./rack-layout.toml
//
// Without a file the built-in defaults apply. A file only needs the keys it
// changes; everything else keeps its default.
package config

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/braunma/rack-layout/internal/constants"
	rackerr "github.com/braunma/rack-layout/pkg/errors"
	"github.com/braunma/rack-layout/pkg/geometry"
	"github.com/braunma/rack-layout/pkg/ingest"
	"github.com/braunma/rack-layout/pkg/models"
	"github.com/braunma/rack-layout/pkg/placement"
	"github.com/braunma/rack-layout/pkg/scene"
	"github.com/braunma/rack-layout/pkg/state"
	"github.com/braunma/rack-layout/pkg/utils"
)

// EnvConfigPath names the environment variable holding a config path
const EnvConfigPath = "RACK_LAYOUT_CONFIG"

// DefaultLayoutFile is where the CLI keeps the current layout between runs
const DefaultLayoutFile = "rack-layout.state.yaml"

var searchPaths = []string{"rack-layout.yaml", "rack-layout.yml", "rack-layout.toml"}

// Config is the full application configuration
type Config struct {
	LayoutFile string             `yaml:"layout_file" toml:"layout_file"`
	ViewMode   string             `yaml:"view_mode" toml:"view_mode"`
	Import     ImportConfig       `yaml:"import" toml:"import"`
	Floor      geometry.FloorPlan `yaml:"floor" toml:"floor"`
	Placement  placement.Options  `yaml:"placement" toml:"placement"`
	Colors     map[string]string  `yaml:"colors" toml:"colors"`
}

// ImportConfig controls how workbooks are read
type ImportConfig struct {
	LocationSheet string   `yaml:"location_sheet" toml:"location_sheet"`
	LabelColumns  []string `yaml:"label_columns" toml:"label_columns"`
	RearTokens    []string `yaml:"rear_tokens" toml:"rear_tokens"`
}

// DefaultConfig returns the built-in settings
func DefaultConfig() *Config {
	return &Config{
		LayoutFile: DefaultLayoutFile,
		ViewMode:   string(state.ViewMode2D),
		Import: ImportConfig{
			LocationSheet: constants.LocationSheetName,
			LabelColumns:  append([]string(nil), constants.BrandModelColumns...),
			RearTokens:    append([]string(nil), constants.RearFaceTokens...),
		},
		Floor:     geometry.DefaultFloorPlan(),
		Placement: placement.DefaultOptions(),
		Colors: map[string]string{
			string(models.FaceFront): constants.FaceColorMap[string(models.FaceFront)],
			string(models.FaceRear):  constants.FaceColorMap[string(models.FaceRear)],
		},
	}
}

// FindConfigPath returns the first config file that exists, or ""
func FindConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	for _, p := range searchPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load reads path, or the first file FindConfigPath finds when path is empty.
// It returns the path actually used ("" for pure defaults).
func Load(path string) (*Config, string, error) {
	if path == "" {
		path = FindConfigPath()
	}
	if path == "" {
		return DefaultConfig(), "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, rackerr.Wrap(rackerr.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Parse decodes a YAML or TOML document over the defaults and validates it.
// ext selects the format and may be given with or without a leading dot.
func Parse(data []byte, ext string) (*Config, error) {
	cfg := DefaultConfig()

	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		if len(bytes.TrimSpace(data)) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, rackerr.Wrap(rackerr.ErrCodeInvalidConfig, err, "parse config")
			}
		}
	case "toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, rackerr.Wrap(rackerr.ErrCodeInvalidConfig, err, "parse config")
		}
	default:
		return nil, rackerr.New(rackerr.ErrCodeUnsupportedFormat, "unsupported config format %q", ext)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults restores lists and names a file emptied out
func (c *Config) applyDefaults() {
	if c.LayoutFile == "" {
		c.LayoutFile = DefaultLayoutFile
	}
	if c.ViewMode == "" {
		c.ViewMode = string(state.ViewMode2D)
	}
	if c.Import.LocationSheet == "" {
		c.Import.LocationSheet = constants.LocationSheetName
	}
	if len(c.Import.LabelColumns) == 0 {
		c.Import.LabelColumns = append([]string(nil), constants.BrandModelColumns...)
	}
	if len(c.Import.RearTokens) == 0 {
		c.Import.RearTokens = append([]string(nil), constants.RearFaceTokens...)
	}
	if c.Placement.GroupColumn == "" {
		c.Placement.GroupColumn = constants.GroupColumnHeader
	}
}

// Validate checks that every setting is usable
func (c *Config) Validate() error {
	var problems []string

	if !positive(c.Floor.GridSize) {
		problems = append(problems, "floor.grid_size must be positive")
	}
	if !positive(c.Floor.Footprint.Width) || !positive(c.Floor.Footprint.Height) {
		problems = append(problems, "floor.footprint must be positive")
	}
	if c.Floor.Area.Width < c.Floor.Footprint.Width || c.Floor.Area.Height < c.Floor.Footprint.Height {
		problems = append(problems, "floor.area must fit at least one footprint")
	}
	if c.Placement.CabinetsPerRow < 1 {
		problems = append(problems, "placement.cabinets_per_row must be at least 1")
	}
	if !nonNegative(c.Placement.AdjacentSpacing) || !nonNegative(c.Placement.CorridorSpacing) {
		problems = append(problems, "placement spacing must not be negative")
	}
	if !nonNegative(c.Placement.StartX) || !nonNegative(c.Placement.StartY) {
		problems = append(problems, "placement start must not be negative")
	}
	if !state.ViewMode(c.ViewMode).Valid() {
		problems = append(problems, fmt.Sprintf("view_mode %q must be 2d or 3d", c.ViewMode))
	}
	for _, col := range c.Import.LabelColumns {
		if strings.TrimSpace(col) == "" {
			problems = append(problems, "import.label_columns must not contain blank names")
			break
		}
	}
	for face, color := range c.Colors {
		if !models.Face(face).Valid() {
			problems = append(problems, fmt.Sprintf("colors.%s is not a device face", face))
		} else if utils.NormalizeColor(color) == "" {
			problems = append(problems, fmt.Sprintf("colors.%s %q is not a hex color", face, color))
		}
	}
	if utils.ContainsFold(c.Import.RearTokens, string(models.FaceFront)) {
		problems = append(problems, "import.rear_tokens must not contain \"front\"")
	}

	if len(problems) > 0 {
		return rackerr.New(rackerr.ErrCodeInvalidConfig, "%s", strings.Join(problems, "; "))
	}
	return nil
}

// IngestOptions returns the import settings
func (c *Config) IngestOptions() ingest.Options {
	return ingest.Options{
		LocationSheet: c.Import.LocationSheet,
		LabelColumns:  c.Import.LabelColumns,
		RearTokens:    c.Import.RearTokens,
		Placement:     c.Placement,
		Floor:         c.Floor,
	}
}

// SceneOptions returns the renderer settings
func (c *Config) SceneOptions() scene.Options {
	opts := scene.DefaultOptions()
	opts.Floor = c.Floor
	opts.FaceColors = c.Colors
	opts.ViewMode = c.ViewMode
	return opts
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
