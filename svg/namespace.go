package svg // import "github.com/tdewolff/svgclean/svg"

import (
	"strings"

	"github.com/tdewolff/svgclean/dom"
)

func prefix(name string) string {
	if i := strings.IndexByte(name, ':'); i != -1 {
		return name[:i]
	}
	return ""
}

func hasPrefix(name string, prefixes []string) bool {
	if p := prefix(name); p != "" {
		for _, q := range prefixes {
			if p == q {
				return true
			}
		}
	}
	return false
}

// RemoveNamespacedElements removes the elements whose namespace prefix is one of prefixes, and returns their number.
func RemoveNamespacedElements(root *dom.Node, prefixes []string) int {
	n := 0
	for _, elem := range root.Find(func(elem *dom.Node) bool { return hasPrefix(elem.Name, prefixes) }) {
		if elem.Attached(root) {
			elem.Remove()
			n++
		}
	}
	return n
}

// RemoveNamespacedAttributes removes the attributes whose namespace prefix is one of prefixes, together with the xmlns declarations of those prefixes, and returns their number.
func RemoveNamespacedAttributes(root *dom.Node, prefixes []string) int {
	n := 0
	for _, elem := range root.Find(func(*dom.Node) bool { return true }) {
		attrs := elem.Attrs[:0]
		for _, attr := range elem.Attrs {
			if hasPrefix(attr.Key, prefixes) || prefix(attr.Key) == "xmlns" && hasPrefix(attr.Key[len("xmlns:"):]+":", prefixes) {
				n++
				continue
			}
			attrs = append(attrs, attr)
		}
		elem.Attrs = attrs
	}
	return n
}

// RemoveComments removes all comments and returns their number.
func RemoveComments(root *dom.Node) int {
	var comments []*dom.Node
	root.Walk(func(n *dom.Node) bool {
		if n.Type == dom.CommentNode {
			comments = append(comments, n)
		}
		return true
	})
	for _, c := range comments {
		c.Remove()
	}
	return len(comments)
}
