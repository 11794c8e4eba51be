package util

import "strings"

// NormaliseName lower cases and trims a display name so it can be used as a comparison key
func NormaliseName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func TrimString(s string, length int) string {
	if len(s) <= length {
		return s
	}

	return s[:length]
}
