package engine

import "strings"

// Template placeholders.
const (
	phSide     = "$side"
	phSlug     = "$slug"
	phProperty = "$property"
)

// substitute replaces placeholders in template, pairs are placeholder and
// value alternating. Replacement is done in a single pass so substituted
// values are never expanded again.
func substitute(template string, pairs ...string) string {
	if len(pairs)%2 != 0 {
		panic("substitute: odd number of placeholder/value arguments")
	}
	if len(pairs) == 0 || !strings.Contains(template, "$") {
		return template
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
