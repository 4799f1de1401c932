package svg // import "github.com/tdewolff/svgclean/svg"

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/strconv"
	"github.com/tdewolff/svgclean/css"
	"github.com/tdewolff/svgclean/dom"
)

// NormalizeStyles normalizes the style attribute of every element under root and returns the number of elements that changed.
func NormalizeStyles(root *dom.Node, styleToAttributes bool) int {
	n := 0
	for _, elem := range root.Find(hasAttr("style")) {
		if NormalizeStyle(elem, styleToAttributes) {
			n++
		}
	}
	return n
}

// NormalizeStyle removes style properties of n that have no effect and, if styleToAttributes is set, moves properties that have a presentation attribute out of the style. It returns true if the element changed.
func NormalizeStyle(n *dom.Node, styleToAttributes bool) bool {
	orig, ok := n.Attr("style")
	if !ok {
		return false
	}
	style := css.ParseStyle(orig)
	if style.Len() == 0 {
		return false
	}

	// editors write fill:url(#gradient) rgb(0, 0, 0)
	repaired := false
	for _, prop := range []string{"fill", "stroke"} {
		if val, ok := style.Get(prop); ok {
			if paint, ok := repairPaint(val); ok {
				style.Set(prop, paint)
				repaired = true
			}
		}
	}

	if val, ok := style.Get("opacity"); ok {
		if f, ok := parseNumber(val); !ok || f != 0.0 {
			if repaired {
				n.SetAttr("style", style.String())
				return true
			}
			return false
		}
		// fully transparent, fill and stroke are useless
		style.Remove(strokeProps...)
		style.Remove(fillProps...)
	}

	if val, ok := style.Get("stroke"); ok && val == "none" {
		style.Remove(without(strokeProps, "stroke")...)
	}
	if val, ok := style.Get("fill"); ok && val == "none" {
		style.Remove(without(fillProps, "fill")...)
	}
	if val, ok := style.Get("fill-opacity"); ok {
		if f, ok := parseNumber(val); ok && f == 0.0 {
			style.Remove(without(fillProps, "fill-opacity")...)
		}
	}
	if val, ok := style.Get("stroke-opacity"); ok {
		if f, ok := parseNumber(val); ok && f == 0.0 {
			style.Remove(without(strokeProps, "stroke-opacity")...)
		}
	}
	if val, ok := style.Get("stroke-width"); ok {
		if f, ok := parseLength(val); ok && f == 0.0 {
			style.Remove(without(strokeProps, "stroke-width")...)
		}
	}

	if !mayContainText(n) {
		style.Remove(textProps...)
	}

	var vendor []string
	for _, name := range style.Names() {
		for _, prefix := range vendorPrefixes {
			if strings.HasPrefix(name, prefix) {
				vendor = append(vendor, name)
				break
			}
		}
	}
	style.Remove(vendor...)

	if styleToAttributes {
		for _, p := range style.Properties() {
			if presentationAttrMap[p.Name] {
				n.SetAttr(p.Name, p.Value)
				style.Remove(p.Name)
			}
		}
	}

	if style.Len() == 0 {
		n.RemoveAttr("style")
		return true
	}
	s := style.String()
	n.SetAttr("style", s)
	return s != orig
}

// repairPaint collapses url(#id) <paint> into url(#id).
func repairPaint(val string) (string, bool) {
	chunks := strings.Split(val, ") ")
	if len(chunks) != 2 {
		return val, false
	}
	if strings.HasPrefix(chunks[0], "url(#") || strings.HasPrefix(chunks[0], `url("#`) || strings.HasPrefix(chunks[0], "url('#") {
		return chunks[0] + ")", true
	}
	return val, false
}

// mayContainText returns false for nodes that can never render text.
func mayContainText(n *dom.Node) bool {
	switch n.Type {
	case dom.CommentNode:
		return false
	case dom.ElementNode:
		if noTextTagMap[n.Name] {
			return false
		} else if containerTagMap[n.Name] {
			for _, c := range n.Children {
				if mayContainText(c) {
					return true
				}
			}
			return false
		}
	}
	return true
}

// parseNumber parses the number at the start of s.
func parseNumber(s string) (float64, bool) {
	f, n := strconv.ParseFloat(parse.TrimWhitespace([]byte(s)))
	return f, n != 0
}

// parseLength parses a length, ignoring its unit.
func parseLength(s string) (float64, bool) {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c == '-' || c == '.' || '0' <= c && c <= '9' {
			b = append(b, c)
		}
	}
	f, n := strconv.ParseFloat(b)
	return f, n != 0
}

func hasAttr(key string) func(*dom.Node) bool {
	return func(n *dom.Node) bool {
		return n.Attrs.Has(key)
	}
}
