// Package svgclean removes editor metadata, unused definitions and redundant style from SVG documents, and renames the remaining identifiers to the shortest free names.
package svgclean // import "github.com/tdewolff/svgclean"

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/tdewolff/svgclean/dom"
	"github.com/tdewolff/svgclean/svg"
)

// ErrNotSVG is returned when the document element is not an svg element.
var ErrNotSVG = errors.New("document element is not svg")

// Cleaner holds the options of the cleaning pipeline. Namespaces lists the prefixes whose elements and attributes are removed.
type Cleaner struct {
	StyleToAttributes bool     `yaml:"style-to-attributes"`
	Namespaces        []string `yaml:"namespaces"`
	IDStart           int      `yaml:"id-start"`
	KeepComments      bool     `yaml:"keep-comments"`
}

// Default is the Cleaner used by the package level functions.
var Default = &Cleaner{
	StyleToAttributes: true,
	Namespaces:        svg.NamespacePrefixes,
	IDStart:           1,
}

// Stats counts the changes of every pass.
type Stats struct {
	NamespacedElements   int
	NamespacedAttributes int
	Comments             int
	Styles               int
	Elements             int
	EmptyContainers      int
	IDs                  int
	ShortenedIDs         int
}

// Add returns the sum of two Stats.
func (s Stats) Add(t Stats) Stats {
	return Stats{
		NamespacedElements:   s.NamespacedElements + t.NamespacedElements,
		NamespacedAttributes: s.NamespacedAttributes + t.NamespacedAttributes,
		Comments:             s.Comments + t.Comments,
		Styles:               s.Styles + t.Styles,
		Elements:             s.Elements + t.Elements,
		EmptyContainers:      s.EmptyContainers + t.EmptyContainers,
		IDs:                  s.IDs + t.IDs,
		ShortenedIDs:         s.ShortenedIDs + t.ShortenedIDs,
	}
}

// Total returns the number of changes.
func (s Stats) Total() int {
	return s.NamespacedElements + s.NamespacedAttributes + s.Comments + s.Styles + s.Elements + s.EmptyContainers + s.IDs + s.ShortenedIDs
}

// Clean reads an SVG document from r, cleans it and writes it to w.
func (c *Cleaner) Clean(w io.Writer, r io.Reader) error {
	_, err := c.CleanStats(w, r)
	return err
}

// CleanStats is like Clean but also returns what was changed.
func (c *Cleaner) CleanStats(w io.Writer, r io.Reader) (Stats, error) {
	doc, err := dom.Parse(r)
	if err != nil {
		return Stats{}, err
	} else if !isSVG(doc) {
		return Stats{}, ErrNotSVG
	}

	stats := c.Process(doc)
	if _, err := doc.WriteTo(w); err != nil {
		return stats, err
	}
	return stats, nil
}

// Process runs the passes on a parsed document in place. Namespaced content goes first so that its references do not keep definitions alive, and the identifiers are shortened last when only referenced ones are left.
func (c *Cleaner) Process(doc *dom.Document) Stats {
	d := &Document{doc: doc}
	if 0 < len(c.Namespaces) {
		d.RemoveNamespaced(c.Namespaces...)
	}
	if !c.KeepComments {
		d.RemoveComments()
	}
	return d.RepairStyles(c.StyleToAttributes).
		RemoveUnreferencedElements().
		RemoveEmptyContainers().
		RemoveUnreferencedIDs().
		ShortenIDs(c.IDStart).
		Stats()
}

func isSVG(doc *dom.Document) bool {
	elem := doc.DocumentElement()
	return elem != nil && (elem.Name == "svg" || strings.HasSuffix(elem.Name, ":svg"))
}

// Clean cleans an SVG document from r to w using the Default options.
func Clean(w io.Writer, r io.Reader) error {
	return Default.Clean(w, r)
}

// Bytes cleans an SVG document in a byte slice using the Default options.
func Bytes(b []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := Default.Clean(buf, bytes.NewReader(b)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// String cleans an SVG document in a string using the Default options.
func String(s string) (string, error) {
	buf := &bytes.Buffer{}
	if err := Default.Clean(buf, strings.NewReader(s)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
