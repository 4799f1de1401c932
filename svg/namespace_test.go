package svg // import "github.com/tdewolff/svgclean/svg"

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestRemoveNamespaced(t *testing.T) {
	doc := parseDoc(t, `<svg xmlns:inkscape="x" xmlns:sodipodi="y" xmlns:xlink="z" inkscape:version="1"><sodipodi:namedview id="base"><inkscape:grid/></sodipodi:namedview><rect inkscape:label="l" xlink:href="#a"/><!-- c --></svg>`)
	test.T(t, RemoveNamespacedElements(doc.Root, NamespacePrefixes), 1)
	test.T(t, RemoveNamespacedAttributes(doc.Root, NamespacePrefixes), 4)
	test.T(t, RemoveComments(doc.Root), 1)
	test.String(t, doc.String(), `<svg xmlns:xlink="z"><rect xlink:href="#a"/></svg>`)
}

func TestRemoveNamespacedPrefixes(t *testing.T) {
	doc := parseDoc(t, `<svg xmlns:foo="x" foo:a="1" inkscape:b="2"><foo:bar/><inkscape:x/></svg>`)
	test.T(t, RemoveNamespacedElements(doc.Root, []string{"foo"}), 1)
	test.T(t, RemoveNamespacedAttributes(doc.Root, []string{"foo"}), 2)
	test.String(t, doc.String(), `<svg inkscape:b="2"><inkscape:x/></svg>`)

	doc = parseDoc(t, `<svg inkscape:b="2"/>`)
	test.T(t, RemoveNamespacedAttributes(doc.Root, nil), 0)
}

func TestRemoveComments(t *testing.T) {
	doc := parseDoc(t, `<!-- a --><svg><g><!-- b --><rect/></g><style><!-- c --></style></svg>`)
	test.T(t, RemoveComments(doc.Root), 3)
	test.String(t, doc.String(), `<svg><g><rect/></g><style/></svg>`)
}
