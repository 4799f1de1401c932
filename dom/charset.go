package dom // import "github.com/tdewolff/svgclean/dom"

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
	"golang.org/x/text/encoding/htmlindex"
)

var xmlDeclBytes = []byte("<?xml")

// declaredEncoding returns the encoding attribute of the XML declaration, if any.
func declaredEncoding(b []byte) string {
	if !bytes.HasPrefix(parse.TrimWhitespace(b), xmlDeclBytes) {
		return ""
	}
	l := xml.NewLexer(parse.NewInputBytes(b))
	for {
		tt, _ := l.Next()
		switch tt {
		case xml.AttributeToken:
			if string(l.Text()) == "encoding" {
				return unquote(l.AttrVal())
			}
		case xml.StartTagPIToken, xml.TextToken:
		default:
			return ""
		}
	}
}

// toUTF8 transcodes b to UTF-8 when the XML declaration asks for another charset.
func toUTF8(b []byte) ([]byte, bool, error) {
	name := strings.ToLower(strings.TrimSpace(declaredEncoding(b)))
	if name == "" || name == "utf-8" || name == "utf8" || name == "us-ascii" {
		return b, false, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, false, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	r := enc.NewDecoder().Reader(bytes.NewReader(b))
	utf8, err := io.ReadAll(r)
	if err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", name, err)
	}
	return utf8, true, nil
}
