package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/braunma/rack-layout/pkg/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestWorkflow(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	dir := t.TempDir()
	book := filepath.Join(dir, "room.yaml")
	layout := filepath.Join(dir, "layout.yaml")

	if out, err := run(t, "template", book); err != nil {
		t.Fatalf("template: %v\n%s", err, out)
	}

	out, err := run(t, "--layout", layout, "import", book)
	if err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Imported 2 cabinets with 5 devices") {
		t.Errorf("import output = %q", out)
	}

	if out, err := run(t, "--layout", layout, "drop", "C02", "97", "53"); err != nil {
		t.Fatalf("drop: %v\n%s", err, out)
	} else if !strings.Contains(out, "Dropped C02 at (100, 60)") {
		t.Errorf("drop output = %q", out)
	}

	if _, err := run(t, "--layout", layout, "overlaps", "--fail"); err == nil {
		t.Error("overlaps --fail should report C01 and C02 overlapping")
	}

	if out, err := run(t, "--layout", layout, "move", "C02", "600", "600"); err != nil {
		t.Fatalf("move: %v\n%s", err, out)
	}
	if _, err := run(t, "--layout", layout, "overlaps", "--fail"); err != nil {
		t.Errorf("overlaps after move: %v", err)
	}

	out, err = run(t, "--layout", layout, "scene", "--view", "3d")
	if err != nil {
		t.Fatalf("scene: %v", err)
	}
	var decoded struct {
		ViewMode string `json:"viewMode"`
		Cabinets []struct {
			ID string `json:"id"`
		} `json:"cabinets"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("scene output is not JSON: %v\n%s", err, out)
	}
	if decoded.ViewMode != "3d" || len(decoded.Cabinets) != 2 {
		t.Errorf("scene = %+v", decoded)
	}

	out, err = run(t, "--layout", layout, "capacity")
	if err != nil {
		t.Fatalf("capacity: %v", err)
	}
	if !strings.Contains(out, "C02") || !strings.Contains(out, "REAR") || !strings.Contains(out, "extends past U42") {
		t.Errorf("capacity output = %q", out)
	}
}

func TestMoveUnknownCabinet(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	layout := filepath.Join(t.TempDir(), "layout.yaml")

	if _, err := run(t, "--layout", layout, "move", "ghost", "1", "1"); err == nil {
		t.Error("move of an unknown cabinet should fail")
	}
}

func TestImportUnsupportedFile(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	dir := t.TempDir()

	if _, err := run(t, "--layout", filepath.Join(dir, "layout.yaml"), "import", filepath.Join(dir, "room.csv")); err == nil {
		t.Error("import of a .csv should fail")
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		flag, output, expected string
	}{
		{"", "scene.yaml", "yaml"},
		{"", "scene.json", "json"},
		{"", "scene", "json"},
		{"yaml", "scene.json", "yaml"},
	}
	for _, tt := range tests {
		if got := formatFor(tt.flag, tt.output); got != tt.expected {
			t.Errorf("formatFor(%q, %q) = %q, expected %q", tt.flag, tt.output, got, tt.expected)
		}
	}
}
