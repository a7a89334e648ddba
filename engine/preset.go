package engine

import (
	"strings"

	"wpstyle/style"
)

// presetMarker is the low-specificity check for preset values, presets are
// expressed as class names instead of inline CSS.
const presetMarker = "var:"

// SlugFromPreset extracts kebab-cased slug from a preset value of the given
// property key, "heavenly-blue" from "var:preset|color|heavenlyBlue".
func SlugFromPreset(v style.Value, propertyKey string) (string, bool) {
	s, ok := v.Text()
	if !ok || !strings.Contains(s, "var:preset|"+propertyKey+"|") {
		return "", false
	}
	slug := kebabCase(s[strings.LastIndexByte(s, '|')+1:])
	if len(slug) == 0 {
		return "", false
	}
	return slug, true
}

func isPreset(v style.Value) bool {
	s, ok := v.Text()
	return ok && strings.Contains(s, presetMarker)
}
