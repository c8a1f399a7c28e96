package render

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hhhapz/docmark/document"
)

func key(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelFocusOrder(t *testing.T) {
	doc, _, err := document.Parse("connect.md", connectPage)
	require.NoError(t, err)

	m := NewModel(doc, Config{})
	// One Tabs, one CodeGroup and two accordions, in source order.
	require.Len(t, m.focus, 4)

	_, ok := m.focus[0].(*document.Tabs)
	assert.True(t, ok, "first focusable should be the tabs, got %T", m.focus[0])
	_, ok = m.focus[1].(*document.CodeGroup)
	assert.True(t, ok, "second focusable should be the code group, got %T", m.focus[1])
	_, ok = m.focus[2].(*document.Accordion)
	assert.True(t, ok)
}

func TestModelToggleAndSelect(t *testing.T) {
	doc := parseDoc(t, `<Tabs><Tab title="A">x</Tab><Tab title="B">y</Tab></Tabs><Accordion title="faq">z</Accordion>`)

	var m tea.Model = NewModel(doc, Config{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	// Focus starts on the tabs node; l selects the next tab.
	m, _ = m.Update(key("l"))
	model := m.(Model)
	assert.Equal(t, 1, model.st.ActiveTab(model.focus[0]))

	// Out-of-range select stays put.
	m, _ = m.Update(key("l"))
	model = m.(Model)
	assert.Equal(t, 1, model.st.ActiveTab(model.focus[0]))

	// Move focus to the accordion and toggle it twice.
	m, _ = m.Update(key("j"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = m.(Model)
	acc := model.focus[1].(*document.Accordion)
	assert.True(t, model.st.Expanded(acc))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = m.(Model)
	assert.False(t, model.st.Expanded(acc))
}

func TestModelQuit(t *testing.T) {
	doc := parseDoc(t, "plain\n")
	var m tea.Model = NewModel(doc, Config{})

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
