package followup

import (
	"encoding/json"
	"regexp"
	"strings"
)

// jsonArrayPattern finds the first JSON-array-looking span in model output
// that has prose or code fences around the array.
var jsonArrayPattern = regexp.MustCompile(`\[[\s\S]*\]`)

// ParseSuggestionList extracts a list of suggestion strings from raw model
// output. It first tries the whole payload as JSON, then salvages the first
// bracketed span. Non-string array elements are dropped. Returns nil when
// nothing parseable is found.
func ParseSuggestionList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if list := parseStringArray(raw); list != nil {
		return list
	}

	match := jsonArrayPattern.FindString(raw)
	if match == "" || match == raw {
		return nil
	}
	return parseStringArray(match)
}

func parseStringArray(raw string) []string {
	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			s = strings.TrimSpace(s)
			if s != "" {
				out = append(out, s)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
