package svg // import "github.com/tdewolff/svgclean/svg"

import (
	"github.com/tdewolff/svgclean/dom"
)

// RemoveUnreferencedElements removes the elements that nothing references, and returns the number of removed elements. Inside defs every element is removed unless it is referenced or always kept; unreferenced groups are searched for referenced descendants and then unwrapped. Outside defs only unreferenced gradients and patterns are removed. Removing an element may leave others unreferenced, so it repeats with a fresh scan until nothing changes.
func RemoveUnreferencedElements(root *dom.Node) int {
	n := 0
	for {
		removed := removeUnreferencedElements(root)
		if removed == 0 {
			return n
		}
		n += removed
	}
}

func removeUnreferencedElements(root *dom.Node) int {
	g := Scan(root)

	n := 0
	for _, defs := range root.FindByTag("defs") {
		if defs.Attached(root) {
			n += pruneDefs(defs, g)
		}
	}

	for _, elem := range root.Find(isInlineDef) {
		if id, ok := elem.Attr("id"); ok && !g.Has(id) && elem.Attached(root) {
			elem.Remove()
			n++
		}
	}
	return n
}

func pruneDefs(parent *dom.Node, g *Graph) int {
	n := 0
	for _, elem := range parent.Elements() {
		if alwaysKeepTagMap[elem.Name] {
			continue
		} else if id, ok := elem.Attr("id"); ok && g.Has(id) {
			continue
		}

		if elem.Name == "g" {
			// an unreferenced group only wraps, its children may still be referenced
			n += pruneDefs(elem, g)
			elem.Unwrap()
		} else {
			elem.Remove()
		}
		n++
	}
	return n
}

func isInlineDef(n *dom.Node) bool {
	return inlineDefTagMap[n.Name] && n.Parent != nil && n.Parent.Type == dom.ElementNode && n.Attrs.Has("id")
}

// RemoveUnreferencedIDs removes id attributes that are not referenced anywhere and returns their number.
func RemoveUnreferencedIDs(root *dom.Node) int {
	g := Scan(root)

	n := 0
	for _, elem := range root.Find(hasAttr("id")) {
		if !g.Has(elem.ID()) {
			elem.RemoveAttr("id")
			n++
		}
	}
	return n
}

// RemoveEmptyContainers removes defs, metadata and g elements without children, repeatedly until none are left, and returns the number of removed elements.
func RemoveEmptyContainers(root *dom.Node) int {
	n := 0
	for {
		removed := 0
		for _, elem := range root.FindByTag(emptyContainerTags...) {
			if len(elem.Children) == 0 && elem != root {
				elem.Remove()
				removed++
			}
		}
		if removed == 0 {
			return n
		}
		n += removed
	}
}
