package dom // import "github.com/tdewolff/svgclean/dom"

import (
	"bytes"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2/xml"
)

var (
	ltBytes         = []byte("<")
	gtBytes         = []byte(">")
	voidBytes       = []byte("/>")
	piStartBytes    = []byte("<?")
	piEndBytes      = []byte("?>")
	isBytes         = []byte("=")
	spaceBytes      = []byte(" ")
	endBytes        = []byte("</")
	CDATAStartBytes = []byte("<![CDATA[")
	CDATAEndBytes   = []byte("]]>")
)

var attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", "\n", "&#10;", "\r", "&#13;", "\t", "&#9;")

type writer struct {
	w       io.Writer
	n       int64
	err     error
	attrBuf []byte
}

func (w *writer) write(b []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(b)
	w.n += int64(n)
	w.err = err
}

func (w *writer) writeString(s string) {
	w.write([]byte(s))
}

func (w *writer) attrs(attrs Attrs) {
	for _, a := range attrs {
		w.write(spaceBytes)
		w.writeString(a.Key)
		w.write(isBytes)
		// prefer single or double quotes depending on what occurs more often in value
		w.write(xml.EscapeAttrVal(&w.attrBuf, []byte(attrEscaper.Replace(a.Val))))
	}
}

func (w *writer) node(n *Node) {
	switch n.Type {
	case DocumentNode:
		for _, c := range n.Children {
			w.node(c)
		}
	case ElementNode:
		w.write(ltBytes)
		w.writeString(n.Name)
		w.attrs(n.Attrs)
		if len(n.Children) == 0 {
			// collapse empty tags to single void tag
			w.write(voidBytes)
			return
		}
		w.write(gtBytes)
		for _, c := range n.Children {
			w.node(c)
		}
		w.write(endBytes)
		w.writeString(n.Name)
		w.write(gtBytes)
	case TextNode:
		w.writeString(n.Data)
	case CDATANode:
		w.write(CDATAStartBytes)
		w.writeString(n.Data)
		w.write(CDATAEndBytes)
	case CommentNode, DoctypeNode:
		w.writeString(n.Data)
	case ProcInstNode:
		w.write(piStartBytes)
		w.writeString(n.Name)
		w.attrs(n.Attrs)
		w.write(piEndBytes)
	}
}

// WriteTo serializes the node and its subtree to w.
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	wr := &writer{w: w}
	wr.node(n)
	return wr.n, wr.err
}

// String returns the serialized node.
func (n *Node) String() string {
	buf := &bytes.Buffer{}
	n.WriteTo(buf)
	return buf.String()
}

// WriteTo serializes the document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.Root.WriteTo(w)
}

// String returns the serialized document.
func (d *Document) String() string {
	return d.Root.String()
}
