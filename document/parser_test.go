package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) (*Document, []Diagnostic) {
	t.Helper()
	doc, diags, err := Parse("test.md", src)
	require.NoError(t, err)
	return doc, diags
}

func TestBuildTabs(t *testing.T) {
	doc, diags := parse(t, `<Tabs><Tab title="A">x</Tab><Tab title="B">y</Tab></Tabs>`)
	require.Empty(t, diags)
	require.Len(t, doc.Children, 1)

	tabs, ok := doc.Children[0].(*Tabs)
	require.True(t, ok, "expected *Tabs, got %T", doc.Children[0])
	require.Len(t, tabs.Children, 2)

	first, ok := tabs.Children[0].(*Tab)
	require.True(t, ok)
	assert.Equal(t, "A", first.Title)

	second, ok := tabs.Children[1].(*Tab)
	require.True(t, ok)
	assert.Equal(t, "B", second.Title)
}

func TestBuildOrderPreserved(t *testing.T) {
	src := "# One\n\nfirst\n\n<Note>\nsecond\n</Note>\n\nthird\n"
	doc, _ := parse(t, src)

	require.Len(t, doc.Children, 4)
	_, ok := doc.Children[0].(*Heading)
	assert.True(t, ok, "child 0 should be heading, got %T", doc.Children[0])
	_, ok = doc.Children[1].(*Paragraph)
	assert.True(t, ok, "child 1 should be paragraph, got %T", doc.Children[1])
	_, ok = doc.Children[2].(*Callout)
	assert.True(t, ok, "child 2 should be callout, got %T", doc.Children[2])
	_, ok = doc.Children[3].(*Paragraph)
	assert.True(t, ok, "child 3 should be paragraph, got %T", doc.Children[3])
}

func TestBuildStrayClose(t *testing.T) {
	src := "fine before\n\n</Accordion>\n\nfine after\n"
	doc, diags := parse(t, src)

	require.Len(t, diags, 1)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.Equal(t, 3, diags[0].Line)
	assert.Contains(t, diags[0].Message, "</Accordion>")

	// The stray close stays in the tree as literal text.
	require.Len(t, doc.Children, 3)
	txt, ok := doc.Children[1].(*Text)
	require.True(t, ok, "got %T", doc.Children[1])
	assert.Equal(t, "</Accordion>", txt.Content)
	assert.Len(t, txt.Diags(), 1)
}

func TestBuildUnclosedTag(t *testing.T) {
	doc, diags := parse(t, "<Accordion title=\"open\">\nbody text\n")

	require.Len(t, diags, 1)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "unclosed")

	require.Len(t, doc.Children, 1)
	acc, ok := doc.Children[0].(*Accordion)
	require.True(t, ok)
	assert.Len(t, acc.Children, 1)
}

func TestBuildInterleavedClose(t *testing.T) {
	// </Tabs> closes the still-open Tab with a diagnostic.
	doc, diags := parse(t, `<Tabs><Tab title="A">x</Tabs>`)

	require.Len(t, doc.Children, 1)
	tabs, ok := doc.Children[0].(*Tabs)
	require.True(t, ok)
	require.Len(t, tabs.Children, 1)

	found := false
	for _, d := range diags {
		if d.Severity == SeverityError {
			found = true
		}
	}
	assert.True(t, found, "expected an unclosed-tag error, got %v", diags)
}

func TestBuildUnknownTag(t *testing.T) {
	doc, diags := parse(t, "<Wobble>x</Wobble>\n")

	require.NotEmpty(t, diags)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "Wobble")

	// Both tags and their content survive as text.
	var texts int
	Walk(doc, func(n Node) {
		if _, ok := n.(*Text); ok {
			texts++
		}
	})
	assert.NotZero(t, texts)
}

func TestBuildCodeBlock(t *testing.T) {
	doc, diags := parse(t, "```yaml config.yaml\nmodel: gpt-4o\ntemperature: 0.2\n```\n")
	require.Empty(t, diags)
	require.Len(t, doc.Children, 1)

	cb, ok := doc.Children[0].(*CodeBlock)
	require.True(t, ok)
	assert.Equal(t, "yaml", cb.Language)
	assert.Equal(t, "config.yaml", cb.Label)
	assert.Equal(t, "model: gpt-4o\ntemperature: 0.2", cb.Content)
}

func TestBuildInlineLinks(t *testing.T) {
	doc, _ := parse(t, "see the [credentials reference](/reference/credentials) for details\n")

	require.Len(t, doc.Children, 1)
	para, ok := doc.Children[0].(*Paragraph)
	require.True(t, ok)
	require.Len(t, para.Children, 3)

	link, ok := para.Children[1].(*Link)
	require.True(t, ok)
	assert.Equal(t, "credentials reference", link.Label)
	assert.Equal(t, "/reference/credentials", link.Href)
	assert.Equal(t, 9, link.Pos().Column)
}

func TestBuildHeadingLevels(t *testing.T) {
	doc, _ := parse(t, "## Setup\n\n#### Details\n\n####### not a heading\n")

	var levels []int
	Walk(doc, func(n Node) {
		if h, ok := n.(*Heading); ok {
			levels = append(levels, h.Level)
		}
	})
	assert.Equal(t, []int{2, 4}, levels)
}

func TestBuildFrontmatterOffset(t *testing.T) {
	src := "---\ntitle: Page\n---\n\n</Tab>\n"
	doc, diags := parse(t, src)

	assert.Equal(t, "Page", doc.Meta.Title)
	require.Len(t, diags, 1)
	// Line numbers refer to the full file, frontmatter included.
	assert.Equal(t, 5, diags[0].Line)
}

func TestBuildSelfClosingCard(t *testing.T) {
	doc, diags := parse(t, `<Card title="FAQ" icon="circle-question" href="/faq" />`)
	require.Empty(t, diags)
	require.Len(t, doc.Children, 1)

	card, ok := doc.Children[0].(*Card)
	require.True(t, ok)
	assert.Equal(t, "FAQ", card.Title)
	assert.Equal(t, "/faq", card.Href)
	assert.Equal(t, "circle-question", card.Icon)
	assert.Empty(t, card.Children)
}
