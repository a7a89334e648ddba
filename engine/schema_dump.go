package engine

import (
	"wpstyle/utils/debug"
)

// DumpSchema returns human readable representation of the style definitions
// schema.
func DumpSchema() string {
	tw := debug.NewTreeWriter()
	for _, g := range schema {
		tw.Line(0, "%s", g.Name)
		for _, d := range g.Definitions {
			tw.Line(1, "%s (%s)", d.PathString(), d.Kind)
			if len(d.Property) > 0 {
				tw.TextBlock(2, "default", d.Property)
			}
			if len(d.Sides) > 0 {
				tw.TextBlock(2, "sides", d.Sides)
			}
			if len(d.Classnames) > 0 {
				tw.Line(2, "classnames")
				for _, cn := range d.Classnames {
					if cn.Always {
						tw.KeyValue(3, cn.Template, "always")
					} else {
						tw.KeyValue(3, cn.Template, "preset "+cn.PropertyKey)
					}
				}
			}
			if len(d.PresetVars) > 0 {
				tw.Line(2, "preset variables")
				for _, pv := range d.PresetVars {
					tw.KeyValue(3, pv.Property, pv.Template)
				}
			}
		}
	}
	return tw.String()
}
