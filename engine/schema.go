package engine

const presetVar = "--wp--preset--$property--$slug"

func always(tmpl string) ClassnamePattern {
	return ClassnamePattern{Template: tmpl, Always: true}
}

func preset(tmpl, key string) ClassnamePattern {
	return ClassnamePattern{Template: tmpl, PropertyKey: key}
}

func scalar(group, name, property string, classnames ...ClassnamePattern) Definition {
	return Definition{
		Name:       name,
		Path:       []string{group, name},
		Property:   property,
		Classnames: classnames,
		Kind:       RuleScalar,
	}
}

func boxModel(group, name, property, sides string, classnames ...ClassnamePattern) Definition {
	return Definition{
		Name:       name,
		Path:       []string{group, name},
		Property:   property,
		Sides:      sides,
		Classnames: classnames,
		Kind:       RuleBoxModel,
	}
}

func sideGroup(group, side string) Definition {
	return Definition{
		Name:       side,
		Path:       []string{group, side},
		Kind:       RuleSideGroup,
		PresetVars: []PresetVar{{Property: "color", Template: presetVar}},
	}
}

// schema is never modified after initialization, everything handed out is
// copied.
var schema = []Group{
	{
		Name: "color",
		Definitions: []Definition{
			scalar("color", "text", "color",
				always("has-text-color"),
				preset("has-$slug-color", "color")),
			scalar("color", "background", "background-color",
				always("has-background"),
				preset("has-$slug-background-color", "background-color")),
			scalar("color", "gradient", "background",
				always("has-background"),
				preset("has-$slug-gradient-background", "background")),
		},
	},
	{
		Name: "border",
		Definitions: []Definition{
			boxModel("border", "color", "border-color", "border-$side-color",
				always("has-border-color"),
				preset("has-$slug-border-color", "border-color")),
			boxModel("border", "radius", "border-radius", "border-$side-radius"),
			boxModel("border", "style", "border-style", "border-$side-style"),
			boxModel("border", "width", "border-width", "border-$side-width"),
			sideGroup("border", "top"),
			sideGroup("border", "right"),
			sideGroup("border", "bottom"),
			sideGroup("border", "left"),
		},
	},
	{
		Name: "spacing",
		Definitions: []Definition{
			boxModel("spacing", "padding", "padding", "padding-$side"),
			boxModel("spacing", "margin", "margin", "margin-$side"),
		},
	},
	{
		Name: "typography",
		Definitions: []Definition{
			scalar("typography", "fontSize", "font-size",
				preset("has-$slug-font-size", "font-size")),
			scalar("typography", "fontFamily", "font-family",
				preset("has-$slug-font-family", "font-family")),
			scalar("typography", "fontStyle", "font-style"),
			scalar("typography", "fontWeight", "font-weight"),
			scalar("typography", "lineHeight", "line-height"),
			scalar("typography", "textDecoration", "text-decoration"),
			scalar("typography", "textTransform", "text-transform"),
			scalar("typography", "letterSpacing", "letter-spacing"),
		},
	},
}

// Groups returns copy of the style definitions schema in evaluation order.
func Groups() []Group {
	out := make([]Group, len(schema))
	for i, g := range schema {
		out[i] = Group{Name: g.Name, Definitions: make([]Definition, len(g.Definitions))}
		for j, d := range g.Definitions {
			out[i].Definitions[j] = d.clone()
		}
	}
	return out
}

// Lookup returns copy of definition located by its group and name.
func Lookup(group, name string) (Definition, bool) {
	d := lookup(group, name)
	if d == nil {
		return Definition{}, false
	}
	return d.clone(), true
}

func lookup(group, name string) *Definition {
	for i := range schema {
		if schema[i].Name != group {
			continue
		}
		for j := range schema[i].Definitions {
			if schema[i].Definitions[j].Name == name {
				return &schema[i].Definitions[j]
			}
		}
	}
	return nil
}
