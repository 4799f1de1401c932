// Package dom is a small mutable tree for SVG and XML documents.
package dom // import "github.com/tdewolff/svgclean/dom"

// NodeType is the kind of a Node.
type NodeType uint32

// NodeType values.
const (
	DocumentNode NodeType = iota
	ElementNode
	TextNode
	CDATANode
	CommentNode
	ProcInstNode
	DoctypeNode
)

// String returns the string representation of a NodeType.
func (nt NodeType) String() string {
	switch nt {
	case DocumentNode:
		return "Document"
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CDATANode:
		return "CDATA"
	case CommentNode:
		return "Comment"
	case ProcInstNode:
		return "ProcInst"
	case DoctypeNode:
		return "Doctype"
	}
	return "Invalid"
}

// Attr is a single attribute. Val holds the value with its entities decoded.
type Attr struct {
	Key, Val string
}

// Attrs is an ordered list of attributes with unique keys.
type Attrs []Attr

// Get returns the value of key and whether it is present.
func (as Attrs) Get(key string) (string, bool) {
	for _, a := range as {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Has returns true if key is present.
func (as Attrs) Has(key string) bool {
	_, ok := as.Get(key)
	return ok
}

// Set replaces the value of key in place, or appends it.
func (as *Attrs) Set(key, val string) {
	for i := range *as {
		if (*as)[i].Key == key {
			(*as)[i].Val = val
			return
		}
	}
	*as = append(*as, Attr{key, val})
}

// Remove deletes key and returns true if it was present.
func (as *Attrs) Remove(key string) bool {
	for i := range *as {
		if (*as)[i].Key == key {
			*as = append((*as)[:i], (*as)[i+1:]...)
			return true
		}
	}
	return false
}

// Node is a node in the document tree. Name is the tag name for elements and the target for processing instructions. Data holds the content of text, CDATA, comment and doctype nodes.
type Node struct {
	Type     NodeType
	Name     string
	Attrs    Attrs
	Data     string
	Children []*Node
	Parent   *Node
}

// NewElement returns a detached element.
func NewElement(name string, attrs ...Attr) *Node {
	return &Node{Type: ElementNode, Name: name, Attrs: attrs}
}

// NewText returns a detached text node.
func NewText(data string) *Node {
	return &Node{Type: TextNode, Data: data}
}

// IsElement returns true for element nodes, optionally with one of the given names.
func (n *Node) IsElement(names ...string) bool {
	if n.Type != ElementNode {
		return false
	} else if len(names) == 0 {
		return true
	}
	for _, name := range names {
		if n.Name == name {
			return true
		}
	}
	return false
}

// Attr returns the value of an attribute and whether it is present.
func (n *Node) Attr(key string) (string, bool) {
	return n.Attrs.Get(key)
}

// SetAttr sets an attribute.
func (n *Node) SetAttr(key, val string) {
	n.Attrs.Set(key, val)
}

// RemoveAttr removes an attribute and returns true if it was present.
func (n *Node) RemoveAttr(key string) bool {
	return n.Attrs.Remove(key)
}

// ID returns the id attribute, empty when absent.
func (n *Node) ID() string {
	id, _ := n.Attrs.Get("id")
	return id
}

// Elements returns a snapshot of the child elements.
func (n *Node) Elements() []*Node {
	elems := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Type == ElementNode {
			elems = append(elems, c)
		}
	}
	return elems
}

// Walk calls fn for n and its descendants in document order. Returning false from fn skips the descendants of that node. The children are snapshotted before descending, so fn may remove the node it is given.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	children := append([]*Node(nil), n.Children...)
	for _, c := range children {
		c.Walk(fn)
	}
}

// Find returns all descendant elements (n included) for which pred returns true, in document order.
func (n *Node) Find(pred func(*Node) bool) []*Node {
	var nodes []*Node
	n.Walk(func(c *Node) bool {
		if c.Type == ElementNode && pred(c) {
			nodes = append(nodes, c)
		}
		return true
	})
	return nodes
}

// FindByTag returns all descendant elements with one of the given names.
func (n *Node) FindByTag(names ...string) []*Node {
	return n.Find(func(c *Node) bool {
		return c.IsElement(names...)
	})
}

// AppendChild adds c as the last child of n.
func (n *Node) AppendChild(c *Node) {
	if c.Parent != nil {
		c.Remove()
	}
	c.Parent = n
	n.Children = append(n.Children, c)
}

// InsertBefore inserts c before ref, or appends when ref is not a child of n.
func (n *Node) InsertBefore(c, ref *Node) {
	if c.Parent != nil {
		c.Remove()
	}
	i := n.index(ref)
	if i < 0 {
		n.AppendChild(c)
		return
	}
	c.Parent = n
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = c
}

func (n *Node) index(c *Node) int {
	for i, child := range n.Children {
		if child == c {
			return i
		}
	}
	return -1
}

// Remove detaches n and its subtree from its parent.
func (n *Node) Remove() {
	if n.Parent == nil {
		return
	}
	if i := n.Parent.index(n); i >= 0 {
		n.Parent.Children = append(n.Parent.Children[:i], n.Parent.Children[i+1:]...)
	}
	n.Parent = nil
}

// Unwrap replaces n by its children.
func (n *Node) Unwrap() {
	parent := n.Parent
	if parent == nil {
		return
	}
	children := n.Children
	n.Children = nil
	for _, c := range children {
		c.Parent = nil
		parent.InsertBefore(c, n)
	}
	n.Remove()
}

// Attached returns true if root is n or one of its ancestors.
func (n *Node) Attached(root *Node) bool {
	for ; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}

// Text returns the concatenated content of the text and CDATA children.
func (n *Node) Text() string {
	text := ""
	for _, c := range n.Children {
		if c.Type == TextNode || c.Type == CDATANode {
			text += c.Data
		}
	}
	return text
}

// SetText replaces all children by a single text node.
func (n *Node) SetText(text string) {
	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = n.Children[:0]
	n.AppendChild(NewText(text))
}

// ReplaceText rewrites every text and CDATA child in place.
func (n *Node) ReplaceText(fn func(string) string) {
	for _, c := range n.Children {
		if c.Type == TextNode || c.Type == CDATANode {
			c.Data = fn(c.Data)
		}
	}
}
