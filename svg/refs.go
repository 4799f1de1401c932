package svg // import "github.com/tdewolff/svgclean/svg"

import (
	"strings"

	"github.com/tdewolff/svgclean/css"
	"github.com/tdewolff/svgclean/dom"
)

// Kind is the way a reference to an identifier is encoded.
type Kind int

// Kind values.
const (
	StyleRule      Kind = iota // url(#id) in a declaration of a style element
	XLink                      // #id in xlink:href or href
	StyleAttribute             // url(#id) in the style attribute
	PlainAttribute             // url(#id) in a presentation attribute such as fill
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case StyleRule:
		return "StyleRule"
	case XLink:
		return "XLink"
	case StyleAttribute:
		return "StyleAttribute"
	case PlainAttribute:
		return "PlainAttribute"
	}
	return "Invalid"
}

// Reference is a single place in the document that points to an identifier. Attr is the attribute holding the reference for XLink and PlainAttribute references.
type Reference struct {
	Kind Kind
	Node *dom.Node
	Attr string
}

// Graph maps identifiers to the references pointing at them. Only identifiers with at least one reference are present.
type Graph struct {
	ids  []string
	refs map[string][]Reference
}

func newGraph() *Graph {
	return &Graph{refs: map[string][]Reference{}}
}

func (g *Graph) add(id string, ref Reference) {
	if _, ok := g.refs[id]; !ok {
		g.ids = append(g.ids, id)
	}
	g.refs[id] = append(g.refs[id], ref)
}

// Has returns true if id is referenced.
func (g *Graph) Has(id string) bool {
	_, ok := g.refs[id]
	return ok
}

// Refs returns the references to id in document order.
func (g *Graph) Refs(id string) []Reference {
	return g.refs[id]
}

// Count returns the number of references to id.
func (g *Graph) Count(id string) int {
	return len(g.refs[id])
}

// IDs returns the referenced identifiers in order of discovery.
func (g *Graph) IDs() []string {
	return append([]string(nil), g.ids...)
}

// Len returns the number of referenced identifiers.
func (g *Graph) Len() int {
	return len(g.ids)
}

// Scan walks all elements under root and returns the graph of references. Style elements are parsed as CSS, the other elements are checked for xlink:href and for url(#id) in their referencing attributes and style properties.
func Scan(root *dom.Node) *Graph {
	g := newGraph()
	root.Walk(func(n *dom.Node) bool {
		if n.Type != dom.ElementNode {
			return true
		}
		if n.Name == "style" {
			for _, rule := range css.ParseRules([]byte(n.Text())) {
				for _, prop := range referencingProps {
					if val, ok := rule.Get(prop); ok {
						if id, ok := ReferencedID(val); ok {
							g.add(id, Reference{Kind: StyleRule, Node: n})
						}
					}
				}
			}
			return false
		}

		for _, attr := range []string{"xlink:href", "href"} {
			if href, ok := n.Attr(attr); ok && !strings.HasPrefix(href, "data:") {
				if id := strings.TrimPrefix(strings.TrimSpace(href), "#"); id != "" {
					g.add(id, Reference{Kind: XLink, Node: n, Attr: attr})
				}
			}
		}

		var style *css.Style
		if val, ok := n.Attr("style"); ok {
			style = css.ParseStyle(val)
		}
		for _, prop := range referencingProps {
			if val, ok := n.Attr(prop); ok {
				if id, ok := ReferencedID(val); ok {
					g.add(id, Reference{Kind: PlainAttribute, Node: n, Attr: prop})
				}
			}
			if style != nil {
				if val, ok := style.Get(prop); ok {
					if id, ok := ReferencedID(val); ok {
						g.add(id, Reference{Kind: StyleAttribute, Node: n})
					}
				}
			}
		}
		return true
	})
	return g
}

// ReferencedID extracts the identifier from a url(#id) value. Whitespace and quotes are ignored.
func ReferencedID(val string) (string, bool) {
	v := strings.Join(strings.Fields(val), "")
	if !strings.HasPrefix(v, "url(") {
		return "", false
	}
	v = v[len("url("):]
	if end := strings.IndexByte(v, ')'); end != -1 {
		v = v[:end]
	}
	v = strings.Trim(v, `"'`)
	v = strings.TrimPrefix(v, "#")
	return v, v != ""
}
