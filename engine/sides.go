package engine

import "wpstyle/style"

// boxModelRules expands per-side mapping using definition's sides template.
// Definitions without sides template produce nothing for mappings.
func boxModelRules(v style.Value, def *Definition) []Declaration {
	if len(def.Sides) == 0 {
		return nil
	}
	var rules []Declaration
	for _, m := range v.Members() {
		value, ok := m.Value.Text()
		if !ok || len(value) == 0 {
			continue
		}
		rules = append(rules, Declaration{
			Property: substitute(def.Sides, phSide, kebabCase(m.Key)),
			Value:    value,
		})
	}
	return rules
}

// sideRules produces declarations for a single side group, for example
// border.top{color,width,style}. Declarations follow key order of the input.
func sideRules(v style.Value, def *Definition) []Declaration {
	if !v.IsObject() || v.IsEmpty() || len(def.Path) < 2 {
		return nil
	}
	group, side := def.Path[0], def.Path[1]

	var rules []Declaration
	for _, m := range v.Members() {
		value, ok := m.Value.Text()
		if !ok || len(value) == 0 {
			continue
		}
		sub := lookup(group, m.Key)
		if sub == nil || len(sub.Sides) == 0 {
			continue
		}
		if tmpl, ok := def.presetTemplate(m.Key); ok {
			if slug, ok := SlugFromPreset(m.Value, m.Key); ok {
				value = "var(" + substitute(tmpl, phProperty, m.Key, phSlug, slug) + ")"
			}
		}
		rules = append(rules, Declaration{
			Property: substitute(sub.Sides, phSide, side),
			Value:    value,
		})
	}
	return rules
}
