package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hhhapz/docmark/document"
)

var (
	colorAccent  = lipgloss.Color("#007D9C")
	colorMuted   = lipgloss.Color("#6B7280")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorTip     = lipgloss.Color("#10B981")
)

type termStyles struct {
	Title     lipgloss.Style
	Heading   lipgloss.Style
	Summary   lipgloss.Style
	Focused   lipgloss.Style
	TabActive lipgloss.Style
	TabIdle   lipgloss.Style
	StepNum   lipgloss.Style
	Code      lipgloss.Style
	CodeLabel lipgloss.Style
	Link      lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
}

func defaultTermStyles() termStyles {
	return termStyles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Heading:   lipgloss.NewStyle().Bold(true),
		Summary:   lipgloss.NewStyle().Foreground(colorAccent),
		Focused:   lipgloss.NewStyle().Reverse(true),
		TabActive: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(colorAccent),
		TabIdle:   lipgloss.NewStyle().Foreground(colorMuted),
		StepNum:   lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Code:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1),
		CodeLabel: lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
		Link:      lipgloss.NewStyle().Underline(true).Foreground(colorAccent),
		Muted:     lipgloss.NewStyle().Foreground(colorMuted),
		Error:     lipgloss.NewStyle().Foreground(colorError).Bold(true),
	}
}

// Term renders a document tree as a terminal layout. The same renderer
// backs the static `render --format term` output and the interactive
// viewer; the caller provides the state and, optionally, the focused
// node to highlight.
type Term struct {
	cfg    Config
	styles termStyles
}

func NewTerm(cfg Config) *Term {
	return &Term{cfg: cfg, styles: defaultTermStyles()}
}

// Render uses the initial state model when st is nil.
func (r *Term) Render(doc *document.Document, st *DocState) string {
	return r.RenderFocused(doc, st, nil)
}

func (r *Term) RenderFocused(doc *document.Document, st *DocState, focus document.Node) string {
	if st == nil {
		st = NewDocState(doc)
	}

	var blocks []string
	if doc.Meta.Title != "" {
		title := r.styles.Title.Render(doc.Meta.Title)
		if doc.Meta.Description != "" {
			title += "\n" + r.styles.Muted.Render(doc.Meta.Description)
		}
		blocks = append(blocks, title)
	}
	blocks = append(blocks, r.blocks(doc.Children, st, focus)...)

	sep := "\n\n"
	if r.cfg.Compact {
		sep = "\n"
	}
	return strings.Join(blocks, sep) + "\n"
}

func (r *Term) blocks(nodes []document.Node, st *DocState, focus document.Node) []string {
	var out []string
	for _, n := range nodes {
		if s := r.node(n, st, focus); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (r *Term) node(n document.Node, st *DocState, focus document.Node) string {
	var out string

	switch t := n.(type) {
	case *document.Text:
		out = t.Content

	case *document.Heading:
		out = r.styles.Heading.Render(strings.Repeat("#", t.Level) + " " + t.Text)

	case *document.Paragraph:
		var b strings.Builder
		for _, c := range t.Children {
			switch in := c.(type) {
			case *document.Text:
				b.WriteString(in.Content)
			case *document.Link:
				b.WriteString(r.styles.Link.Render(in.Label))
			}
		}
		out = wrap(b.String(), r.cfg.width())

	case *document.Link:
		out = r.styles.Link.Render(t.Label) + r.styles.Muted.Render(" ("+t.Href+")")

	case *document.CodeBlock:
		body := t.Content
		if label := codeTitles([]document.Node{t})[0]; label != "" {
			body = r.styles.CodeLabel.Render(label) + "\n" + body
		}
		out = r.styles.Code.Render(body)

	case *document.Accordion:
		marker := "▸"
		title := t.Title
		if title == "" {
			title = "(untitled)"
		}
		summary := r.styles.Summary
		if n == focus {
			summary = r.styles.Focused
		}
		if st.Expanded(t) {
			marker = "▾"
			body := strings.Join(r.blocks(t.Children, st, focus), "\n\n")
			out = summary.Render(marker+" "+title) + "\n" + indent(body, 2)
		} else {
			out = summary.Render(marker + " " + title)
		}

	case *document.AccordionGroup:
		out = strings.Join(r.blocks(t.Children, st, focus), "\n")

	case *document.Tabs:
		out = r.tabbed(t, t.Children, tabTitles(t.Children), st, focus)

	case *document.Tab:
		out = strings.Join(r.blocks(t.Children, st, focus), "\n\n")

	case *document.Steps:
		num := 0
		var parts []string
		for _, c := range t.Children {
			step, ok := c.(*document.Step)
			if !ok {
				parts = append(parts, r.node(c, st, focus))
				continue
			}
			num++
			head := r.styles.StepNum.Render(fmt.Sprintf("%d.", num))
			if step.Title != "" {
				head += " " + r.styles.Heading.Render(step.Title)
			}
			body := strings.Join(r.blocks(step.Children, st, focus), "\n\n")
			if body != "" {
				head += "\n" + indent(body, 3)
			}
			parts = append(parts, head)
		}
		out = strings.Join(parts, "\n\n")

	case *document.Step:
		out = strings.Join(r.blocks(t.Children, st, focus), "\n\n")

	case *document.Card:
		title := t.Title
		if t.Icon != "" {
			title = "[" + t.Icon + "] " + title
		}
		out = r.styles.Summary.Render("▣ "+title) + r.styles.Muted.Render(" → "+t.Href)
		if body := strings.Join(r.blocks(t.Children, st, focus), "\n"); body != "" {
			out += "\n" + indent(body, 2)
		}

	case *document.CardGroup:
		out = strings.Join(r.blocks(t.Children, st, focus), "\n")

	case *document.Frame:
		body := strings.Join(r.blocks(t.Children, st, focus), "\n")
		if t.Caption != "" {
			body += "\n" + r.styles.Muted.Render(t.Caption)
		}
		out = body

	case *document.Callout:
		label := strings.ToUpper(t.Kind)
		style := r.styles.Summary
		switch t.Kind {
		case "warning":
			style = r.styles.Error.Foreground(colorWarning)
		case "tip":
			style = r.styles.Summary.Foreground(colorTip)
		}
		body := strings.Join(r.blocks(t.Children, st, focus), "\n\n")
		out = style.Render("● "+label) + "\n" + indent(body, 2)

	case *document.CodeGroup:
		out = r.tabbed(t, t.Children, codeTitles(t.Children), st, focus)
	}

	if msg, bad := firstError(n); bad {
		out = r.styles.Error.Render("[error: "+msg+"]") + "\n" + out
	}
	return out
}

func (r *Term) tabbed(n document.Node, children []document.Node, titles []string, st *DocState, focus document.Node) string {
	active := st.ActiveTab(n)

	var bar []string
	for i, title := range titles {
		style := r.styles.TabIdle
		if i == active {
			style = r.styles.TabActive
			if n == focus {
				style = r.styles.Focused
			}
		}
		bar = append(bar, style.Render(title))
	}

	out := strings.Join(bar, r.styles.Muted.Render(" │ "))
	if active >= 0 && active < len(children) {
		var body string
		if tab, ok := children[active].(*document.Tab); ok {
			body = strings.Join(r.blocks(tab.Children, st, focus), "\n\n")
		} else {
			body = r.node(children[active], st, focus)
		}
		out += "\n" + indent(body, 2)
	}
	return out
}

// indent prefixes every non-empty line of s, keeping ANSI sequences
// intact since the prefix is plain spaces.
func indent(s string, n int) string {
	if s == "" {
		return s
	}
	prefix := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// wrap is a simple word wrapper for prose blocks.
func wrap(s string, width int) string {
	var b strings.Builder
	col := 0
	for _, f := range strings.Fields(s) {
		w := lipgloss.Width(f)
		if col > 0 && col+1+w > width {
			b.WriteByte('\n')
			col = 0
		} else if col > 0 {
			b.WriteByte(' ')
			col++
		}
		b.WriteString(f)
		col += w
	}
	return b.String()
}
