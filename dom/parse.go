package dom // import "github.com/tdewolff/svgclean/dom"

import (
	"bytes"
	"html"
	"io"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

var (
	cdataStartBytes = []byte("<![CDATA[")
	cdataEndBytes   = []byte("]]>")
)

// Document is a parsed document. Root is of type DocumentNode and holds the prolog nodes and the root element.
type Document struct {
	Root *Node
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{&Node{Type: DocumentNode}}
}

// DocumentElement returns the first element child of the document, or nil.
func (d *Document) DocumentElement() *Node {
	for _, c := range d.Root.Children {
		if c.Type == ElementNode {
			return c
		}
	}
	return nil
}

// Parse reads a document from r. Whitespace-only text is dropped and entities in attribute values are decoded. Elements left open at the end of the input are closed implicitly.
func Parse(r io.Reader) (*Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(b)
}

// ParseString parses a document from a string.
func ParseString(s string) (*Document, error) {
	return ParseBytes([]byte(s))
}

// ParseBytes parses a document from b. Input in a charset other than UTF-8, as declared by the XML declaration, is transcoded first. The lexer works in place, so b may be modified.
func ParseBytes(b []byte) (*Document, error) {
	b, transcoded, err := toUTF8(b)
	if err != nil {
		return nil, err
	}

	doc := NewDocument()
	input := parse.NewInputBytes(b)
	l := xml.NewLexer(input)

	cur := doc.Root // element or document the next node is appended to
	var open *Node  // element or processing instruction receiving attributes
	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if l.Err() == io.EOF {
				return doc, nil
			}
			return nil, l.Err()
		case xml.TextToken:
			if !parse.IsAllWhitespace(data) {
				cur.AppendChild(&Node{Type: TextNode, Data: string(data)})
			}
		case xml.CDATAToken:
			data = bytes.TrimPrefix(data, cdataStartBytes)
			data = bytes.TrimSuffix(data, cdataEndBytes)
			cur.AppendChild(&Node{Type: CDATANode, Data: string(data)})
		case xml.CommentToken:
			cur.AppendChild(&Node{Type: CommentNode, Data: string(data)})
		case xml.DOCTYPEToken:
			cur.AppendChild(&Node{Type: DoctypeNode, Data: string(data)})
		case xml.StartTagPIToken:
			open = &Node{Type: ProcInstNode, Name: string(l.Text())}
			cur.AppendChild(open)
		case xml.StartTagClosePIToken:
			if transcoded && open != nil && open.Name == "xml" && open.Attrs.Has("encoding") {
				open.SetAttr("encoding", "UTF-8")
			}
			open = nil
		case xml.StartTagToken:
			open = NewElement(string(l.Text()))
			cur.AppendChild(open)
			cur = open
		case xml.AttributeToken:
			if open != nil {
				open.Attrs.Set(string(l.Text()), html.UnescapeString(unquote(l.AttrVal())))
			}
		case xml.StartTagCloseToken:
			open = nil
		case xml.StartTagCloseVoidToken:
			open = nil
			if cur.Parent != nil {
				cur = cur.Parent
			}
		case xml.EndTagToken:
			name := string(bytes.TrimSpace(l.Text()))
			n := cur
			for n != nil && n.Type == ElementNode && n.Name != name {
				n = n.Parent
			}
			if n == nil || n.Type != ElementNode {
				return nil, parse.NewErrorLexer(input, "unexpected closing tag </%s>", name)
			}
			cur = n.Parent
		}
	}
}

func unquote(b []byte) string {
	if 1 < len(b) && (b[0] == '"' || b[0] == '\'') && b[0] == b[len(b)-1] {
		b = b[1 : len(b)-1]
	}
	return string(b)
}
