package utils

import (
	"fmt"
	"strings"
)

// ContainsFold checks if a string slice contains item, ignoring case and surrounding space
func ContainsFold(slice []string, item string) bool {
	item = strings.TrimSpace(item)
	for _, s := range slice {
		if strings.EqualFold(strings.TrimSpace(s), item) {
			return true
		}
	}
	return false
}

// FormatU renders a rack unit label such as "U12"
func FormatU(u int) string {
	return fmt.Sprintf("U%d", u)
}
