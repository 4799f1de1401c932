package svgclean // import "github.com/tdewolff/svgclean"

import (
	"io"
	"strings"

	"github.com/tdewolff/svgclean/dom"
	"github.com/tdewolff/svgclean/svg"
)

// Document runs individual passes on a loaded SVG document. Every pass returns the document so they can be chained.
type Document struct {
	doc   *dom.Document
	stats Stats
}

// Load parses an SVG document from r.
func Load(r io.Reader) (*Document, error) {
	doc, err := dom.Parse(r)
	if err != nil {
		return nil, err
	} else if !isSVG(doc) {
		return nil, ErrNotSVG
	}
	return &Document{doc: doc}, nil
}

// LoadString parses an SVG document from a string.
func LoadString(s string) (*Document, error) {
	return Load(strings.NewReader(s))
}

// Tree returns the underlying document tree.
func (d *Document) Tree() *dom.Document {
	return d.doc
}

// RemoveNamespaced removes the elements and attributes in the given namespaces, or in the default editor namespaces if none are given.
func (d *Document) RemoveNamespaced(prefixes ...string) *Document {
	if len(prefixes) == 0 {
		prefixes = svg.NamespacePrefixes
	}
	d.stats.NamespacedElements += svg.RemoveNamespacedElements(d.doc.Root, prefixes)
	d.stats.NamespacedAttributes += svg.RemoveNamespacedAttributes(d.doc.Root, prefixes)
	return d
}

// RemoveComments removes all comments.
func (d *Document) RemoveComments() *Document {
	d.stats.Comments += svg.RemoveComments(d.doc.Root)
	return d
}

// RepairStyles normalizes the style attributes, and moves presentation properties to attributes if styleToAttributes is set.
func (d *Document) RepairStyles(styleToAttributes bool) *Document {
	d.stats.Styles += svg.NormalizeStyles(d.doc.Root, styleToAttributes)
	return d
}

// RemoveUnreferencedElements removes unreferenced definitions.
func (d *Document) RemoveUnreferencedElements() *Document {
	d.stats.Elements += svg.RemoveUnreferencedElements(d.doc.Root)
	return d
}

// RemoveEmptyContainers removes childless defs, metadata and g elements.
func (d *Document) RemoveEmptyContainers() *Document {
	d.stats.EmptyContainers += svg.RemoveEmptyContainers(d.doc.Root)
	return d
}

// RemoveUnreferencedIDs removes id attributes that nothing references.
func (d *Document) RemoveUnreferencedIDs() *Document {
	d.stats.IDs += svg.RemoveUnreferencedIDs(d.doc.Root)
	return d
}

// ShortenIDs renames the referenced identifiers, counting names from start.
func (d *Document) ShortenIDs(start int) *Document {
	d.stats.ShortenedIDs += svg.ShortenIDs(d.doc.Root, start)
	return d
}

// References returns the current reference graph.
func (d *Document) References() *svg.Graph {
	return svg.Scan(d.doc.Root)
}

// Stats returns the changes made so far.
func (d *Document) Stats() Stats {
	return d.stats
}

// WriteTo writes the document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.doc.WriteTo(w)
}

// String returns the serialized document.
func (d *Document) String() string {
	return d.doc.String()
}
