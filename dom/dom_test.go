package dom // import "github.com/tdewolff/svgclean/dom"

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/test"
)

func TestParse(t *testing.T) {
	var parseTests = []struct {
		xml      string
		expected string
	}{
		{`<svg/>`, `<svg/>`},
		{`<svg></svg>`, `<svg/>`},
		{`<svg><g id="a"><rect/></g></svg>`, `<svg><g id="a"><rect/></g></svg>`},
		{"<svg>\n  <rect x='1'/>\n</svg>", `<svg><rect x="1"/></svg>`},
		{`<?xml version="1.0" encoding="UTF-8"?><!DOCTYPE svg><svg/>`, `<?xml version="1.0" encoding="UTF-8"?><!DOCTYPE svg><svg/>`},
		{`<style><![CDATA[a{fill:url(#x)}]]></style>`, `<style><![CDATA[a{fill:url(#x)}]]></style>`},
		{`<svg><!-- comment --></svg>`, `<svg><!-- comment --></svg>`},
		{`<text>a &amp; b</text>`, `<text>a &amp; b</text>`},
		{`<a b='x"y'/>`, `<a b='x"y'/>`},
		{`<a b="x'y"/>`, `<a b="x'y"/>`},
		{`<a b="&quot;&amp;&lt;&#65;"/>`, `<a b='"&amp;&lt;A'/>`},
		{`<a b="x&#10;y&#9;z&#13;"/>`, `<a b="x&#10;y&#9;z&#13;"/>`},
		{`<a xlink:href="#x" b=""/>`, `<a xlink:href="#x" b=""/>`},
		{`<svg><g></svg>`, `<svg><g/></svg>`},
		{`<svg><g>`, `<svg><g/></svg>`},
	}

	for _, tt := range parseTests {
		t.Run(tt.xml, func(t *testing.T) {
			doc, err := ParseString(tt.xml)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, doc.String())
		})
	}
}

func TestParseError(t *testing.T) {
	_, err := ParseString(`<svg></g>`)
	require.Error(t, err)
	_, ok := err.(*parse.Error)
	assert.True(t, ok, "must be a parse error")
}

func TestParseCharset(t *testing.T) {
	doc, err := ParseBytes([]byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><text>\xe9</text>"))
	require.NoError(t, err)
	assert.Equal(t, "<?xml version=\"1.0\" encoding=\"UTF-8\"?><text>é</text>", doc.String())

	_, err = ParseString(`<?xml version="1.0" encoding="no-such-charset"?><svg/>`)
	assert.Error(t, err)
}

func TestDocumentElement(t *testing.T) {
	doc, err := ParseString(`<?xml version="1.0"?><!-- x --><svg/>`)
	require.NoError(t, err)
	require.NotNil(t, doc.DocumentElement())
	assert.Equal(t, "svg", doc.DocumentElement().Name)
	assert.Nil(t, NewDocument().DocumentElement())
}

func TestAttrs(t *testing.T) {
	n := NewElement("rect", Attr{"x", "1"}, Attr{"y", "2"})
	n.SetAttr("x", "3")
	n.SetAttr("width", "4")
	assert.Equal(t, `<rect x="3" y="2" width="4"/>`, n.String())

	val, ok := n.Attr("y")
	assert.True(t, ok)
	assert.Equal(t, "2", val)
	assert.True(t, n.RemoveAttr("y"))
	assert.False(t, n.RemoveAttr("y"))
	assert.False(t, n.Attrs.Has("y"))
	assert.Equal(t, "", n.ID())
}

func TestMutation(t *testing.T) {
	doc, err := ParseString(`<svg><defs><g id="g"><a/><b/></g><c/></defs></svg>`)
	require.NoError(t, err)

	gs := doc.Root.FindByTag("g")
	require.Len(t, gs, 1)
	g := gs[0]
	g.Unwrap()
	assert.Nil(t, g.Parent)
	assert.Equal(t, `<svg><defs><a/><b/><c/></defs></svg>`, doc.String())

	defs := doc.Root.FindByTag("defs")[0]
	c := defs.Elements()[2]
	c.Remove()
	assert.False(t, c.Attached(doc.Root))
	defs.InsertBefore(c, defs.Elements()[0])
	assert.True(t, c.Attached(doc.Root))
	assert.Equal(t, `<svg><defs><c/><a/><b/></defs></svg>`, doc.String())

	var names []string
	for _, n := range doc.Root.Find(func(*Node) bool { return true }) {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"svg", "defs", "c", "a", "b"}, names)
}

func TestText(t *testing.T) {
	doc, err := ParseString(`<style>a{}<![CDATA[b{}]]></style>`)
	require.NoError(t, err)
	style := doc.DocumentElement()
	assert.Equal(t, "a{}b{}", style.Text())

	style.ReplaceText(func(s string) string { return s + ";" })
	assert.Equal(t, `<style>a{};<![CDATA[b{};]]></style>`, style.String())

	style.SetText("c{}")
	assert.Equal(t, `<style>c{}</style>`, style.String())
}

func TestWriterErrors(t *testing.T) {
	doc, err := ParseString(`<svg><rect x="1"/></svg>`)
	require.NoError(t, err)
	for _, n := range []int{0, 1, 2, 5} {
		w := test.NewErrorWriter(n)
		_, err := doc.WriteTo(w)
		assert.Equal(t, test.ErrPlain, err, "WriteTo must return error at write", n)
	}

	buf := &bytes.Buffer{}
	m, err := doc.WriteTo(buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), m)
}
