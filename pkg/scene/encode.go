package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	rackerr "github.com/braunma/rack-layout/pkg/errors"
)

// Encode writes the scene as "json" or "yaml"
func Encode(w io.Writer, s *Scene, format string) error {
	switch strings.ToLower(format) {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("failed to marshal scene: %w", err)
		}
		return nil
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("failed to marshal scene: %w", err)
		}
		return enc.Close()
	}
	return rackerr.New(rackerr.ErrCodeUnsupportedFormat, "unsupported scene format %q", format)
}
