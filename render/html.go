package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/hhhapz/docmark/document"
)

// HTML renders a document tree into markup. Interactive components are
// expressed declaratively: accordions as <details>, tabs as panels with
// the inactive ones carrying the hidden attribute. The hosting site owns
// styling and behavior.
type HTML struct {
	cfg Config
	md  goldmark.Markdown
}

func NewHTML(cfg Config) *HTML {
	return &HTML{
		cfg: cfg,
		md:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Render uses the initial state model: accordions collapsed, first tab
// active.
func (r *HTML) Render(doc *document.Document) (string, error) {
	return r.RenderWith(doc, NewDocState(doc))
}

func (r *HTML) RenderWith(doc *document.Document, st *DocState) (string, error) {
	if st == nil {
		st = NewDocState(doc)
	}
	var b strings.Builder
	b.WriteString(`<article class="docmark">` + "\n")
	if doc.Meta.Title != "" {
		fmt.Fprintf(&b, "<header><h1>%s</h1>", html.EscapeString(doc.Meta.Title))
		if doc.Meta.Description != "" {
			fmt.Fprintf(&b, `<p class="doc-description">%s</p>`, html.EscapeString(doc.Meta.Description))
		}
		b.WriteString("</header>\n")
	}
	if err := r.nodes(&b, doc.Children, st); err != nil {
		return "", err
	}
	b.WriteString("</article>\n")
	return b.String(), nil
}

func (r *HTML) nodes(b *strings.Builder, nodes []document.Node, st *DocState) error {
	for _, n := range nodes {
		if err := r.node(b, n, st); err != nil {
			return err
		}
	}
	return nil
}

func (r *HTML) node(b *strings.Builder, n document.Node, st *DocState) error {
	// Regions with structure errors render inside a marked placeholder
	// instead of being dropped.
	if msg, bad := firstError(n); bad {
		fmt.Fprintf(b, `<div class="doc-error" data-message="%s">`, html.EscapeString(msg))
		defer b.WriteString("</div>\n")
	}

	switch t := n.(type) {
	case *document.Text:
		b.WriteString(html.EscapeString(t.Content))
		b.WriteString("\n")

	case *document.Heading:
		level := t.Level
		fmt.Fprintf(b, "<h%d>%s</h%d>\n", level, html.EscapeString(t.Text), level)

	case *document.Paragraph:
		b.WriteString("<p>")
		for _, c := range t.Children {
			switch in := c.(type) {
			case *document.Text:
				s, err := r.inline(in.Content)
				if err != nil {
					return err
				}
				b.WriteString(s)
			case *document.Link:
				fmt.Fprintf(b, `<a href="%s">%s</a>`,
					html.EscapeString(in.Href), html.EscapeString(in.Label))
			}
		}
		b.WriteString("</p>\n")

	case *document.Link:
		fmt.Fprintf(b, `<a href="%s">%s</a>`+"\n",
			html.EscapeString(t.Href), html.EscapeString(t.Label))

	case *document.CodeBlock:
		r.codeBlock(b, t)

	case *document.Accordion:
		open := ""
		if st.Expanded(t) {
			open = " open"
		}
		fmt.Fprintf(b, `<details class="accordion"%s><summary>%s</summary>`+"\n",
			open, html.EscapeString(t.Title))
		if err := r.nodes(b, t.Children, st); err != nil {
			return err
		}
		b.WriteString("</details>\n")

	case *document.AccordionGroup:
		b.WriteString(`<div class="accordion-group">` + "\n")
		if err := r.nodes(b, t.Children, st); err != nil {
			return err
		}
		b.WriteString("</div>\n")

	case *document.Tabs:
		if err := r.tabbed(b, t, t.Children, tabTitles(t.Children), st); err != nil {
			return err
		}

	case *document.Tab:
		// Reached only when a Tab sits outside Tabs; render the body.
		if err := r.nodes(b, t.Children, st); err != nil {
			return err
		}

	case *document.Steps:
		b.WriteString(`<ol class="steps">` + "\n")
		for _, c := range t.Children {
			step, ok := c.(*document.Step)
			if !ok {
				if err := r.node(b, c, st); err != nil {
					return err
				}
				continue
			}
			b.WriteString(`<li class="step">`)
			if step.Title != "" {
				fmt.Fprintf(b, `<p class="step-title">%s</p>`, html.EscapeString(step.Title))
			}
			b.WriteString("\n")
			if err := r.nodes(b, step.Children, st); err != nil {
				return err
			}
			b.WriteString("</li>\n")
		}
		b.WriteString("</ol>\n")

	case *document.Step:
		if err := r.nodes(b, t.Children, st); err != nil {
			return err
		}

	case *document.Card:
		fmt.Fprintf(b, `<a class="card" href="%s">`, html.EscapeString(t.Href))
		if t.Icon != "" {
			if r.cfg.IconBase != "" {
				fmt.Fprintf(b, `<img class="card-icon" src="%s/%s.svg" alt="">`,
					strings.TrimSuffix(r.cfg.IconBase, "/"), html.EscapeString(t.Icon))
			} else {
				fmt.Fprintf(b, `<span class="card-icon">%s</span>`, html.EscapeString(t.Icon))
			}
		}
		fmt.Fprintf(b, `<span class="card-title">%s</span>`, html.EscapeString(t.Title))
		b.WriteString("\n")
		if err := r.nodes(b, t.Children, st); err != nil {
			return err
		}
		b.WriteString("</a>\n")

	case *document.CardGroup:
		fmt.Fprintf(b, `<div class="card-group" data-cols="%d">`+"\n", t.Cols)
		if err := r.nodes(b, t.Children, st); err != nil {
			return err
		}
		b.WriteString("</div>\n")

	case *document.Frame:
		b.WriteString(`<figure class="frame">` + "\n")
		if err := r.nodes(b, t.Children, st); err != nil {
			return err
		}
		if t.Caption != "" {
			fmt.Fprintf(b, "<figcaption>%s</figcaption>\n", html.EscapeString(t.Caption))
		}
		b.WriteString("</figure>\n")

	case *document.Callout:
		fmt.Fprintf(b, `<aside class="callout callout-%s">`+"\n", t.Kind)
		if err := r.nodes(b, t.Children, st); err != nil {
			return err
		}
		b.WriteString("</aside>\n")

	case *document.CodeGroup:
		if err := r.tabbed(b, t, t.Children, codeTitles(t.Children), st); err != nil {
			return err
		}
	}
	return nil
}

// tabbed writes the shared markup of Tabs and CodeGroup: a tab list
// followed by one panel per child, inactive panels hidden.
func (r *HTML) tabbed(b *strings.Builder, n document.Node, children []document.Node, titles []string, st *DocState) error {
	active := st.ActiveTab(n)

	b.WriteString(`<div class="tabs">` + "\n" + `<div class="tab-list" role="tablist">`)
	for i, title := range titles {
		selected := "false"
		if i == active {
			selected = "true"
		}
		fmt.Fprintf(b, `<button role="tab" aria-selected="%s">%s</button>`,
			selected, html.EscapeString(title))
	}
	b.WriteString("</div>\n")

	for i, c := range children {
		hidden := ""
		if i != active {
			hidden = " hidden"
		}
		fmt.Fprintf(b, `<div class="tab-panel" role="tabpanel"%s>`+"\n", hidden)

		var err error
		if tab, ok := c.(*document.Tab); ok {
			err = r.nodes(b, tab.Children, st)
		} else {
			err = r.node(b, c, st)
		}
		if err != nil {
			return err
		}
		b.WriteString("</div>\n")
	}
	b.WriteString("</div>\n")
	return nil
}

func (r *HTML) codeBlock(b *strings.Builder, t *document.CodeBlock) {
	b.WriteString("<pre>")
	var attrs strings.Builder
	if t.Language != "" {
		fmt.Fprintf(&attrs, ` class="language-%s"`, html.EscapeString(t.Language))
	}
	if t.Label != "" {
		fmt.Fprintf(&attrs, ` data-label="%s"`, html.EscapeString(t.Label))
	}
	fmt.Fprintf(b, "<code%s>%s</code>", attrs.String(), html.EscapeString(t.Content))
	b.WriteString("</pre>\n")
}

// inline converts one markdown text run and strips the paragraph
// wrapper goldmark puts around it.
func (r *HTML) inline(s string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(s), &buf); err != nil {
		return "", errors.Wrap(err, "could not convert markdown")
	}
	out := strings.TrimSpace(buf.String())
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")
	return out, nil
}

func tabTitles(children []document.Node) []string {
	titles := make([]string, len(children))
	for i, c := range children {
		if tab, ok := c.(*document.Tab); ok && tab.Title != "" {
			titles[i] = tab.Title
		} else {
			titles[i] = fmt.Sprintf("Tab %d", i+1)
		}
	}
	return titles
}

func codeTitles(children []document.Node) []string {
	titles := make([]string, len(children))
	for i, c := range children {
		cb, ok := c.(*document.CodeBlock)
		switch {
		case ok && cb.Label != "":
			titles[i] = cb.Label
		case ok && cb.Language != "":
			titles[i] = cb.Language
		default:
			titles[i] = fmt.Sprintf("Code %d", i+1)
		}
	}
	return titles
}

func firstError(n document.Node) (string, bool) {
	for _, d := range n.Diags() {
		if d.Severity == document.SeverityError {
			return d.Message, true
		}
	}
	return "", false
}
