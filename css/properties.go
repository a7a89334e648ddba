package css

// safeProperties lists CSS properties allowed in inline style declarations
// produced from untrusted block attributes.
var safeProperties = []string{
	"background",
	"background-color",
	"background-image",
	"background-position",
	"background-size",
	"background-attachment",
	"background-blend-mode",

	"border",
	"border-radius",
	"border-width",
	"border-color",
	"border-style",
	"border-right",
	"border-right-color",
	"border-right-style",
	"border-right-width",
	"border-bottom",
	"border-bottom-color",
	"border-bottom-left-radius",
	"border-bottom-right-radius",
	"border-bottom-style",
	"border-bottom-width",
	"border-left",
	"border-left-color",
	"border-left-style",
	"border-left-width",
	"border-top",
	"border-top-color",
	"border-top-left-radius",
	"border-top-right-radius",
	"border-top-style",
	"border-top-width",
	"border-spacing",
	"border-collapse",
	"caption-side",

	"columns",
	"column-count",
	"column-fill",
	"column-gap",
	"column-rule",
	"column-span",
	"column-width",

	"color",
	"filter",
	"font",
	"font-family",
	"font-size",
	"font-style",
	"font-variant",
	"font-weight",
	"letter-spacing",
	"line-height",
	"text-align",
	"text-decoration",
	"text-indent",
	"text-transform",

	"height",
	"min-height",
	"max-height",
	"width",
	"min-width",
	"max-width",

	"margin",
	"margin-right",
	"margin-bottom",
	"margin-left",
	"margin-top",

	"padding",
	"padding-right",
	"padding-bottom",
	"padding-left",
	"padding-top",

	"flex",
	"flex-basis",
	"flex-direction",
	"flex-flow",
	"flex-grow",
	"flex-shrink",

	"grid-template-columns",
	"grid-auto-columns",
	"grid-column-start",
	"grid-column-end",
	"grid-column-gap",
	"grid-template-rows",
	"grid-auto-rows",
	"grid-row-start",
	"grid-row-end",
	"grid-row-gap",
	"grid-gap",

	"justify-content",
	"justify-items",
	"justify-self",
	"align-content",
	"align-items",
	"align-self",

	"clear",
	"cursor",
	"direction",
	"float",
	"list-style-type",
	"object-position",
	"overflow",
	"vertical-align",
}

// urlProperties may reference resources with url().
var urlProperties = []string{
	"background",
	"background-image",
	"cursor",
	"list-style",
	"list-style-image",
}

// gradientProperties may use gradient functions.
var gradientProperties = []string{
	"background",
	"background-image",
}

var defaultFunctions = []string{"var", "calc"}

var gradientFunctions = []string{
	"linear-gradient",
	"radial-gradient",
	"conic-gradient",
	"repeating-linear-gradient",
	"repeating-radial-gradient",
	"repeating-conic-gradient",
}

// colors are only expected as gradient stops
var gradientColorFunctions = []string{"rgb", "rgba", "hsl", "hsla"}

var defaultURLProtocols = []string{"http", "https"}

func set(lists ...[]string) map[string]bool {
	m := make(map[string]bool)
	for _, l := range lists {
		for _, s := range l {
			m[s] = true
		}
	}
	return m
}
