package campus

import "strings"

// routePatterns are the preposition pairs recognized in routing requests,
// e.g. "from X to Y", "between X and Y", "get to Y from X".
var routePatterns = [][2]string{
	{"from", "to"},
	{"between", "and"},
	{"get to", "from"},
}

// ResolveRoute extracts an origin and destination building from a free-text
// routing request. Every pattern present in the message is evaluated (no
// short-circuit), and within each split the whole alias table is scanned
// with later matches overwriting earlier ones, so phrases that trigger more
// than one pattern resolve deterministically.
//
// Returns both buildings and true only when origin and destination resolve.
func ResolveRoute(message string) (*Building, *Building, bool) {
	lowered := strings.ToLower(message)

	var origin, destination *Building

	for _, pattern := range routePatterns {
		first, second := pattern[0], pattern[1]
		if !strings.Contains(lowered, first) || !strings.Contains(lowered, second) {
			continue
		}

		parts := strings.Split(lowered, first)
		if len(parts) < 2 {
			continue
		}
		segments := strings.Split(parts[1], second)
		if len(segments) < 2 {
			continue
		}

		originText := strings.TrimSpace(segments[0])
		destText := strings.TrimSpace(segments[1])

		for _, e := range aliases {
			if strings.Contains(originText, e.alias) || e.alias == originText {
				origin = e.building
			}
			if strings.Contains(destText, e.alias) || e.alias == destText {
				destination = e.building
			}
		}
	}

	if origin == nil || destination == nil {
		return nil, nil, false
	}
	o, d := *origin, *destination
	return &o, &d, true
}
