package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/braunma/rack-layout/pkg/models"
	"github.com/braunma/rack-layout/pkg/utils"
)

// DataLoader reads and writes layout documents under a base directory
type DataLoader struct {
	basePath string
	logger   *utils.Logger
}

// NewDataLoader creates a new data loader
func NewDataLoader(basePath string, logger *utils.Logger) *DataLoader {
	return &DataLoader{
		basePath: basePath,
		logger:   logger,
	}
}

// Path resolves name against the base directory. Absolute names are kept.
func (dl *DataLoader) Path(name string) string {
	if filepath.IsAbs(name) || dl.basePath == "" {
		return name
	}
	return filepath.Join(dl.basePath, name)
}

// LoadLayout reads a layout file. A missing file yields an empty layout.
func (dl *DataLoader) LoadLayout(name string) (*models.Layout, error) {
	path := dl.Path(name)

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		dl.logger.Warning("Layout %s not found, starting empty", path)
		return &models.Layout{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var layout models.Layout
	if err := yaml.Unmarshal(content, &layout); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML in %s: %w", path, err)
	}

	dl.logger.Debug("Loaded %d cabinets from %s", len(layout.Cabinets), path)
	return &layout, nil
}

// SaveLayout writes a layout file, replacing any previous version in one rename
func (dl *DataLoader) SaveLayout(name string, layout models.Layout) error {
	path := dl.Path(name)

	data, err := yaml.Marshal(layout)
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".layout-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	dl.logger.Debug("Saved %d cabinets to %s", len(layout.Cabinets), path)
	return nil
}
