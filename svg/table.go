// Package svg implements the passes that clean an SVG document tree.
package svg // import "github.com/tdewolff/svgclean/svg"

// NamespacePrefixes are the editor namespaces whose elements and attributes are removed by default.
var NamespacePrefixes = []string{"dc", "rdf", "sodipodi", "cc", "inkscape"}

// referencingProps are the style properties and presentation attributes that may hold url(#id).
var referencingProps = []string{
	"fill",
	"stroke",
	"filter",
	"clip-path",
	"mask",
	"marker-start",
	"marker-end",
	"marker-mid",
}

// elements inside defs that are kept even when nobody references them
var alwaysKeepTagMap = map[string]bool{
	"font":     true,
	"style":    true,
	"metadata": true,
	"script":   true,
	"title":    true,
	"desc":     true,
}

// elements outside defs that are removed when nobody references them
var inlineDefTagMap = map[string]bool{
	"linearGradient": true,
	"radialGradient": true,
	"pattern":        true,
}

var emptyContainerTags = []string{"defs", "metadata", "g"}

var (
	strokeProps = []string{
		"stroke",
		"stroke-width",
		"stroke-linejoin",
		"stroke-opacity",
		"stroke-miterlimit",
		"stroke-linecap",
		"stroke-dasharray",
		"stroke-dashoffset",
	}
	fillProps = []string{
		"fill",
		"fill-opacity",
		"fill-rule",
	}
	textProps = []string{
		"font-family",
		"font-size",
		"font-stretch",
		"font-size-adjust",
		"font-style",
		"font-variant",
		"font-weight",
		"letter-spacing",
		"line-height",
		"kerning",
		"text-align",
		"text-anchor",
		"text-decoration",
		"text-rendering",
		"unicode-bidi",
		"word-spacing",
		"writing-mode",
	}
)

var vendorPrefixes = []string{"-inkscape"}

// style properties that are promoted to attributes
var presentationAttrMap = map[string]bool{
	"clip-rule":         true,
	"display":           true,
	"fill":              true,
	"fill-opacity":      true,
	"fill-rule":         true,
	"filter":            true,
	"font-family":       true,
	"font-size":         true,
	"font-stretch":      true,
	"font-style":        true,
	"font-variant":      true,
	"font-weight":       true,
	"line-height":       true,
	"marker":            true,
	"marker-end":        true,
	"marker-mid":        true,
	"marker-start":      true,
	"opacity":           true,
	"overflow":          true,
	"stop-color":        true,
	"stop-opacity":      true,
	"stroke":            true,
	"stroke-dasharray":  true,
	"stroke-dashoffset": true,
	"stroke-linecap":    true,
	"stroke-linejoin":   true,
	"stroke-miterlimit": true,
	"stroke-opacity":    true,
	"stroke-width":      true,
	"visibility":        true,
}

var noTextTagMap = map[string]bool{
	"rect":     true,
	"circle":   true,
	"ellipse":  true,
	"line":     true,
	"polygon":  true,
	"polyline": true,
	"path":     true,
	"image":    true,
	"stop":     true,
}

// elements that contain text only if one of their children may
var containerTagMap = map[string]bool{
	"g":              true,
	"clipPath":       true,
	"marker":         true,
	"mask":           true,
	"pattern":        true,
	"linearGradient": true,
	"radialGradient": true,
	"symbol":         true,
}

// without returns list minus the given names.
func without(list []string, names ...string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		skip := false
		for _, name := range names {
			if item == name {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, item)
		}
	}
	return out
}
