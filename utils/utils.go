package utils

import "strings"

// SplitCommaSeparated splits a comma separated list, trimming each entry
// and dropping empty ones.
func SplitCommaSeparated(list string) []string {
	var out []string
	for _, item := range strings.Split(list, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
