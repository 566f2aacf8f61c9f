package utils

import (
	"testing"
)

func TestContainsFold(t *testing.T) {
	tests := []struct {
		name     string
		slice    []string
		item     string
		expected bool
	}{
		{
			name:     "exact",
			slice:    []string{"rear", "back"},
			item:     "back",
			expected: true,
		},
		{
			name:     "different case and padding",
			slice:    []string{"rear", "Back "},
			item:     " BACK",
			expected: true,
		},
		{
			name:     "not found",
			slice:    []string{"rear"},
			item:     "front",
			expected: false,
		},
		{
			name:     "empty slice",
			slice:    []string{},
			item:     "a",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ContainsFold(tt.slice, tt.item)
			if result != tt.expected {
				t.Errorf("ContainsFold(%v, %q) = %v, expected %v", tt.slice, tt.item, result, tt.expected)
			}
		})
	}
}

func TestFormatU(t *testing.T) {
	if got := FormatU(42); got != "U42" {
		t.Errorf("FormatU(42) = %q, expected %q", got, "U42")
	}
}
