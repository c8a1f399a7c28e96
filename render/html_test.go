package render

import (
	_ "embed"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hhhapz/docmark/document"
)

//go:embed testdata/connect.md
var connectPage string

func renderHTML(t *testing.T, src string) *goquery.Document {
	t.Helper()
	doc, _, err := document.Parse("test.md", src)
	require.NoError(t, err)

	out, err := NewHTML(Config{}).Render(doc)
	require.NoError(t, err)

	q, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	return q
}

func TestHTMLGuidePage(t *testing.T) {
	q := renderHTML(t, connectPage)

	assert.Equal(t, "Connecting to a Model Provider", q.Find("header h1").Text())
	assert.Equal(t, 2, q.Find("details.accordion").Length())
	assert.Equal(t, 0, q.Find("details.accordion[open]").Length(), "accordions start collapsed")
	assert.Equal(t, 1, q.Find("ol.steps").Length())
	assert.Equal(t, 3, q.Find("li.step").Length())
	assert.Equal(t, 2, q.Find("a.card").Length())
	assert.Equal(t, 2, q.Find("aside.callout").Length())
	assert.Equal(t, 1, q.Find("aside.callout-warning").Length())
	assert.Equal(t, 5, q.Find("pre code").Length())
	assert.Equal(t, 1, q.Find("figure.frame figcaption").Length())
}

func TestHTMLTabsInitialState(t *testing.T) {
	q := renderHTML(t, `<Tabs><Tab title="A">x</Tab><Tab title="B">y</Tab></Tabs>`)

	panels := q.Find(".tab-panel")
	require.Equal(t, 2, panels.Length())

	_, hidden := panels.First().Attr("hidden")
	assert.False(t, hidden, "first panel is shown")
	_, hidden = panels.Last().Attr("hidden")
	assert.True(t, hidden, "second panel is hidden")

	selected := q.Find(`.tab-list button[aria-selected="true"]`)
	require.Equal(t, 1, selected.Length())
	assert.Equal(t, "A", selected.Text())
}

func TestHTMLTabsSelect(t *testing.T) {
	doc, _, err := document.Parse("test.md",
		`<Tabs><Tab title="A">x</Tab><Tab title="B">y</Tab></Tabs>`)
	require.NoError(t, err)

	st := NewDocState(doc)
	st.Select(doc.Children[0], 1)

	out, err := NewHTML(Config{}).RenderWith(doc, st)
	require.NoError(t, err)

	q, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)

	panels := q.Find(".tab-panel")
	_, hidden := panels.First().Attr("hidden")
	assert.True(t, hidden, "first panel now hidden")
	_, hidden = panels.Last().Attr("hidden")
	assert.False(t, hidden, "selected panel shown")
	assert.Equal(t, "B", q.Find(`.tab-list button[aria-selected="true"]`).Text())
}

func TestHTMLAccordionExpanded(t *testing.T) {
	doc, _, err := document.Parse("test.md", `<Accordion title="a">body</Accordion>`)
	require.NoError(t, err)

	st := NewDocState(doc)
	st.Toggle(doc.Children[0].(*document.Accordion))

	out, err := NewHTML(Config{}).RenderWith(doc, st)
	require.NoError(t, err)
	assert.Contains(t, out, "<details class=\"accordion\" open>")
}

func TestHTMLRenderIdempotent(t *testing.T) {
	doc, _, err := document.Parse("connect.md", connectPage)
	require.NoError(t, err)

	r := NewHTML(Config{})
	st := NewDocState(doc)
	first, err := r.RenderWith(doc, st)
	require.NoError(t, err)
	second, err := r.RenderWith(doc, st)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHTMLEmptyAccordionGroup(t *testing.T) {
	q := renderHTML(t, "<AccordionGroup></AccordionGroup>\n")
	assert.Equal(t, 1, q.Find("div.accordion-group").Length(), "empty group still renders")
}

func TestHTMLErrorPlaceholder(t *testing.T) {
	q := renderHTML(t, "before\n\n</Accordion>\n\nafter\n")

	placeholder := q.Find("div.doc-error")
	require.Equal(t, 1, placeholder.Length())
	assert.Contains(t, placeholder.Text(), "</Accordion>")

	// Surrounding valid content still renders.
	text := q.Find("article").Text()
	assert.Contains(t, text, "before")
	assert.Contains(t, text, "after")
}

func TestHTMLCodeNeverInterpreted(t *testing.T) {
	q := renderHTML(t, "```html\n<script>alert(1)</script>\n```\n")

	require.Equal(t, 0, q.Find("script").Length(), "code content must stay inert")
	code := q.Find("pre code")
	require.Equal(t, 1, code.Length())
	assert.Contains(t, code.Text(), "<script>alert(1)</script>")
	val, _ := code.Attr("class")
	assert.Equal(t, "language-html", val)
}

func TestHTMLInlineMarkdown(t *testing.T) {
	q := renderHTML(t, "set `OPENAI_API_KEY` and **restart**\n")

	assert.Equal(t, "OPENAI_API_KEY", q.Find("p code").Text())
	assert.Equal(t, "restart", q.Find("p strong").Text())
}
