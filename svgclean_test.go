package svgclean // import "github.com/tdewolff/svgclean"

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/test"
)

const inkscapeSVG = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape" xmlns:sodipodi="http://sodipodi.sourceforge.net/DTD/sodipodi-0.dtd" width="100" height="100">
  <!-- Created with Inkscape -->
  <sodipodi:namedview id="base" inkscape:zoom="1"/>
  <defs id="defs2">
    <linearGradient id="linearGradient1" inkscape:collect="always"><stop offset="0" style="stop-color:#ff0000;stop-opacity:1"/></linearGradient>
    <linearGradient id="linearGradient2" xlink:href="#linearGradient1" x1="0" y1="0" x2="1" y2="1"/>
    <radialGradient id="unused"/>
  </defs>
  <g id="layer1" inkscape:label="Layer 1" inkscape:groupmode="layer">
    <rect id="rect1" width="50" height="50" style="fill:url(#linearGradient2) #000000;fill-opacity:1;stroke:none;stroke-width:2;font-size:12px"/>
  </g>
</svg>`

const inkscapeCleaned = `<?xml version="1.0" encoding="UTF-8"?>` +
	`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="100" height="100">` +
	`<defs><linearGradient id="a"><stop offset="0" stop-color="#ff0000" stop-opacity="1"/></linearGradient>` +
	`<linearGradient id="b" xlink:href="#a" x1="0" y1="0" x2="1" y2="1"/></defs>` +
	`<g><rect width="50" height="50" fill="url(#b)" fill-opacity="1" stroke="none"/></g></svg>`

func TestClean(t *testing.T) {
	cleanTests := []struct {
		svg      string
		expected string
	}{
		{`<svg><defs><pattern id="p" width="10" height="10"/></defs><rect id="r" width="100" height="100"/></svg>`, `<svg><rect width="100" height="100"/></svg>`},
		{`<svg><defs><pattern id="p" width="10" height="10"/></defs><rect id="r" width="100" height="100" fill="url(#p)"/></svg>`, `<svg><defs><pattern id="a" width="10" height="10"/></defs><rect width="100" height="100" fill="url(#a)"/></svg>`},
		{`<svg><defs><pattern id="p" width="10" height="10"/><rect id="r" width="100" height="100" fill="url(#p)"/></defs></svg>`, `<svg/>`},
		{`<svg><defs><g></g></defs></svg>`, `<svg/>`},
		{`<svg><defs><g id="x"><pattern id="y"/></g></defs><rect fill="url(#y)"/></svg>`, `<svg><defs><pattern id="a"/></defs><rect fill="url(#a)"/></svg>`},
		{`<svg><linearGradient id="lg"/><rect style="fill:url(#lg) rgb(0,0,0)"/></svg>`, `<svg><linearGradient id="a"/><rect fill="url(#a)"/></svg>`},
		{`<svg><style>.a{fill:url(#grad)}</style><defs><linearGradient id="grad"/><linearGradient id="other"/></defs><rect class="a"/></svg>`, `<svg><style>.a{fill:url(#a)}</style><defs><linearGradient id="a"/></defs><rect class="a"/></svg>`},
		{`<svg><metadata><rdf:RDF/></metadata><rect/></svg>`, `<svg><rect/></svg>`},
		{`<svg><use xlink:href="#missing"/></svg>`, `<svg><use xlink:href="#missing"/></svg>`},
		{inkscapeSVG, inkscapeCleaned},
	}

	for _, tt := range cleanTests {
		t.Run(tt.svg, func(t *testing.T) {
			r := bytes.NewBufferString(tt.svg)
			w := &bytes.Buffer{}
			err := Clean(w, r)
			test.Minify(t, tt.svg, err, w.String(), tt.expected)
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	out, err := String(inkscapeSVG)
	test.Error(t, err)
	again, err := String(out)
	test.Error(t, err)
	test.String(t, again, out)
}

func TestCleanStats(t *testing.T) {
	stats, err := Default.CleanStats(&bytes.Buffer{}, strings.NewReader(inkscapeSVG))
	test.Error(t, err)
	test.T(t, stats, Stats{
		NamespacedElements:   1,
		NamespacedAttributes: 5,
		Comments:             1,
		Styles:               2,
		Elements:             1,
		EmptyContainers:      0,
		IDs:                  3,
		ShortenedIDs:         2,
	})
	test.T(t, stats.Total(), 15)
	test.T(t, stats.Add(stats).Total(), 30)
}

func TestCleanOptions(t *testing.T) {
	input := `<svg xmlns:inkscape="x"><!-- c --><linearGradient id="lg"/><rect inkscape:label="l" style="fill:url(#lg);cursor:pointer"/></svg>`
	cleanTests := []struct {
		cleaner  Cleaner
		expected string
	}{
		{Cleaner{}, `<svg xmlns:inkscape="x"><linearGradient id="a"/><rect inkscape:label="l" style="fill:url(#a);cursor:pointer;"/></svg>`},
		{Cleaner{KeepComments: true, IDStart: 3}, `<svg xmlns:inkscape="x"><!-- c --><linearGradient id="c"/><rect inkscape:label="l" style="fill:url(#c);cursor:pointer;"/></svg>`},
		{Cleaner{StyleToAttributes: true, Namespaces: []string{"inkscape"}}, `<svg><linearGradient id="a"/><rect style="cursor:pointer;" fill="url(#a)"/></svg>`},
	}

	for _, tt := range cleanTests {
		t.Run(tt.expected, func(t *testing.T) {
			w := &bytes.Buffer{}
			err := tt.cleaner.Clean(w, strings.NewReader(input))
			test.Minify(t, input, err, w.String(), tt.expected)
		})
	}
}

func TestCleanErrors(t *testing.T) {
	_, err := String(`<html><body/></html>`)
	test.T(t, err, ErrNotSVG)

	_, err = String(`<!-- only a comment -->`)
	test.T(t, err, ErrNotSVG)

	_, err = Bytes([]byte(`<svg></g>`))
	_, ok := err.(*parse.Error)
	test.That(t, ok, "must be a parse error")

	out, err := Bytes([]byte(`<svg:svg><svg:rect id="x"/></svg:svg>`))
	test.Error(t, err)
	test.String(t, string(out), `<svg:svg><svg:rect/></svg:svg>`)
}

func TestDocument(t *testing.T) {
	d, err := LoadString(`<svg xmlns:dc="x"><dc:title/><!-- c --><defs><linearGradient id="one"/><linearGradient id="two"/></defs><g id="g"/><rect style="fill:url(#one) red;font-size:2px"/></svg>`)
	test.Error(t, err)
	test.T(t, d.References().IDs(), []string{"one"})

	d.RemoveNamespaced().
		RemoveComments().
		RepairStyles(false).
		RemoveUnreferencedElements().
		RemoveEmptyContainers().
		RemoveUnreferencedIDs().
		ShortenIDs(1)
	test.String(t, d.String(), `<svg><defs><linearGradient id="a"/></defs><rect style="fill:url(#a);"/></svg>`)
	test.T(t, d.Stats(), Stats{
		NamespacedElements:   1,
		NamespacedAttributes: 1,
		Comments:             1,
		Styles:               1,
		Elements:             1,
		EmptyContainers:      1,
		IDs:                  0,
		ShortenedIDs:         1,
	})
	test.T(t, d.Tree().DocumentElement().Name, "svg")

	w := &bytes.Buffer{}
	_, err = d.WriteTo(w)
	test.Error(t, err)
	test.String(t, w.String(), d.String())

	_, err = LoadString(`<html/>`)
	test.T(t, err, ErrNotSVG)
}

func ExampleString() {
	out, err := String(`<svg><defs><linearGradient id="gradient"/><linearGradient id="unused"/></defs><rect id="box" fill="url(#gradient)"/></svg>`)
	if err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output: <svg><defs><linearGradient id="a"/></defs><rect fill="url(#a)"/></svg>
}

func BenchmarkClean(b *testing.B) {
	r := strings.NewReader(inkscapeSVG)
	w := &bytes.Buffer{}
	b.SetBytes(int64(len(inkscapeSVG)))
	for i := 0; i < b.N; i++ {
		r.Reset(inkscapeSVG)
		w.Reset()
		if err := Clean(w, r); err != nil {
			b.Fatal(err)
		}
	}
}
