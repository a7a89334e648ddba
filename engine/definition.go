package engine

import "strings"

// RuleKind selects how CSS declarations are produced for a definition.
type RuleKind int

const (
	// RuleScalar definitions accept single values only.
	RuleScalar RuleKind = iota
	// RuleBoxModel definitions accept single values and per-side mappings.
	RuleBoxModel
	// RuleSideGroup definitions hold properties of a single side, for
	// example border.top{color,width,style}.
	RuleSideGroup
)

func (k RuleKind) String() string {
	switch k {
	case RuleScalar:
		return "scalar"
	case RuleBoxModel:
		return "box-model"
	case RuleSideGroup:
		return "side-group"
	default:
		return "unknown"
	}
}

// ClassnamePattern is a class name template. Always patterns are emitted for
// any non-empty value, others only for preset values of PropertyKey with
// $slug replaced by preset slug.
type ClassnamePattern struct {
	Template    string
	Always      bool
	PropertyKey string
}

// PresetVar maps sub-property to CSS custom property template with $property
// and $slug placeholders.
type PresetVar struct {
	Property string
	Template string
}

// Definition describes how one style value maps to CSS and class names.
type Definition struct {
	Name       string
	Path       []string
	Property   string
	Sides      string
	Classnames []ClassnamePattern
	Kind       RuleKind
	PresetVars []PresetVar
}

// Group is a top-level style category.
type Group struct {
	Name        string
	Definitions []Definition
}

// PathString returns dotted path, used for diagnostics.
func (d *Definition) PathString() string {
	return strings.Join(d.Path, ".")
}

func (d *Definition) presetTemplate(property string) (string, bool) {
	for _, pv := range d.PresetVars {
		if pv.Property == property {
			return pv.Template, true
		}
	}
	return "", false
}

func (d Definition) clone() Definition {
	d.Path = append([]string(nil), d.Path...)
	d.Classnames = append([]ClassnamePattern(nil), d.Classnames...)
	d.PresetVars = append([]PresetVar(nil), d.PresetVars...)
	return d
}
