package campus

import "strings"

// Locate resolves a free-text message to a building. The message is
// lower-cased and scanned against the alias table in declaration order; a
// building matches when its alias or its full lower-cased name appears as a
// substring. The first match wins. Returns nil when nothing matches.
func Locate(message string) *Building {
	lowered := strings.ToLower(message)
	for _, e := range aliases {
		if strings.Contains(lowered, e.alias) || strings.Contains(lowered, strings.ToLower(e.building.Name)) {
			b := *e.building
			return &b
		}
	}
	return nil
}
