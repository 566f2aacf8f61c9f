package utils

import (
	"strings"

	"github.com/braunma/rack-layout/internal/constants"
)

// NormalizeColor converts various color formats to 6-char lower-case hex without #
func NormalizeColor(input string) string {
	if input == "" {
		return ""
	}

	input = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(input), "#"))

	if !isHex(input) {
		return ""
	}

	// Expand shorthand, "f00" -> "ff0000"
	if len(input) == 3 {
		return string([]byte{
			input[0], input[0],
			input[1], input[1],
			input[2], input[2],
		})
	}

	if len(input) == 6 {
		return input
	}

	return ""
}

// CSSColor returns the normalized color with a leading #, or "" when invalid
func CSSColor(input string) string {
	if c := NormalizeColor(input); c != "" {
		return "#" + c
	}
	return ""
}

// GetFaceColor returns the fill color for a device face. Overrides win over the
// built-in palette; unknown faces get no color.
func GetFaceColor(face string, overrides map[string]string) string {
	key := strings.ToLower(face)
	if c := NormalizeColor(overrides[key]); c != "" {
		return c
	}
	return constants.FaceColorMap[key]
}

func isHex(s string) bool {
	for _, r := range s {
		if !(r >= '0' && r <= '9') && !(r >= 'a' && r <= 'f') {
			return false
		}
	}
	return true
}
