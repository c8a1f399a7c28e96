package render

import "github.com/hhhapz/docmark/document"

// AccordionState is the two-state machine behind a single accordion.
type AccordionState uint8

const (
	Collapsed AccordionState = iota
	Expanded
)

// Toggle is an involution: toggling twice returns the original state.
func (s AccordionState) Toggle() AccordionState {
	if s == Collapsed {
		return Expanded
	}
	return Collapsed
}

// TabsState tracks which child of a tabbed container is active. The
// first child is active initially.
type TabsState struct {
	active int
	count  int
}

func NewTabsState(count int) TabsState {
	return TabsState{count: count}
}

func (s TabsState) Active() int { return s.active }
func (s TabsState) Count() int  { return s.count }

// Select activates tab i. Out-of-range indices are a no-op.
func (s TabsState) Select(i int) TabsState {
	if i < 0 || i >= s.count {
		return s
	}
	s.active = i
	return s
}

// DocState holds the presentation state of one document instance. No
// two nodes share state, and the document tree itself is never touched;
// a viewer owns exactly one DocState at a time.
type DocState struct {
	accordions map[*document.Accordion]AccordionState
	tabbed     map[document.Node]TabsState
}

// NewDocState registers every interactive node of doc with its initial
// state: accordions collapsed, first tab active.
func NewDocState(doc *document.Document) *DocState {
	st := &DocState{
		accordions: map[*document.Accordion]AccordionState{},
		tabbed:     map[document.Node]TabsState{},
	}
	document.Walk(doc, func(n document.Node) {
		switch t := n.(type) {
		case *document.Accordion:
			st.accordions[t] = Collapsed
		case *document.Tabs:
			st.tabbed[t] = NewTabsState(len(t.Children))
		case *document.CodeGroup:
			st.tabbed[t] = NewTabsState(len(t.Children))
		}
	})
	return st
}

func (st *DocState) Toggle(n *document.Accordion) {
	st.accordions[n] = st.accordions[n].Toggle()
}

func (st *DocState) Expanded(n *document.Accordion) bool {
	return st.accordions[n] == Expanded
}

// Select activates tab i of a Tabs or CodeGroup node.
func (st *DocState) Select(n document.Node, i int) {
	if s, ok := st.tabbed[n]; ok {
		st.tabbed[n] = s.Select(i)
	}
}

func (st *DocState) ActiveTab(n document.Node) int {
	return st.tabbed[n].active
}

func (st *DocState) TabCount(n document.Node) int {
	return st.tabbed[n].count
}
