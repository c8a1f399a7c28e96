package render

import (
	"strconv"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hhhapz/docmark/document"
)

// Model is the interactive terminal viewer. All interactivity routes
// through the DocState transitions: toggling the focused accordion and
// selecting tabs. The tree itself is read-only.
type Model struct {
	doc  *document.Document
	st   *DocState
	term *Term

	vp    viewport.Model
	focus []document.Node
	idx   int
	ready bool
}

func NewModel(doc *document.Document, cfg Config) Model {
	m := Model{
		doc:  doc,
		st:   NewDocState(doc),
		term: NewTerm(cfg),
	}
	document.Walk(doc, func(n document.Node) {
		switch n.(type) {
		case *document.Accordion, *document.Tabs, *document.CodeGroup:
			m.focus = append(m.focus, n)
		}
	})
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-2)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - 2
		}
		m.term.cfg.Width = msg.Width - 2
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "j":
			if len(m.focus) > 0 {
				m.idx = (m.idx + 1) % len(m.focus)
				m.refresh()
			}
			return m, nil

		case "shift+tab", "k":
			if len(m.focus) > 0 {
				m.idx = (m.idx + len(m.focus) - 1) % len(m.focus)
				m.refresh()
			}
			return m, nil

		case "enter", " ":
			if acc, ok := m.focused().(*document.Accordion); ok {
				m.st.Toggle(acc)
				m.refresh()
			}
			return m, nil

		case "h", "left":
			m.selectTab(-1)
			return m, nil

		case "l", "right":
			m.selectTab(+1)
			return m, nil

		default:
			if n, err := strconv.Atoi(key); err == nil && n >= 1 {
				if f := m.focused(); f != nil {
					m.st.Select(f, n-1)
					m.refresh()
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *Model) focused() document.Node {
	if m.idx < 0 || m.idx >= len(m.focus) {
		return nil
	}
	return m.focus[m.idx]
}

func (m *Model) selectTab(delta int) {
	f := m.focused()
	if f == nil {
		return
	}
	switch f.(type) {
	case *document.Tabs, *document.CodeGroup:
		m.st.Select(f, m.st.ActiveTab(f)+delta)
		m.refresh()
	}
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.vp.SetContent(m.term.RenderFocused(m.doc, m.st, m.focused()))
}

var helpStyle = lipgloss.NewStyle().Foreground(colorMuted)

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	help := helpStyle.Render("tab/j/k: focus · enter: toggle · h/l: switch tab · q: quit")
	return m.vp.View() + "\n" + help
}
