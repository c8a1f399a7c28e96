package document

import "sort"

// Validate walks the built tree and enforces the structural invariants.
// It annotates nodes and returns the collected diagnostics; it never
// changes the structure of the tree, and the caller renders the document
// regardless of what is reported here.
func Validate(doc *Document) []Diagnostic {
	v := &validator{}
	v.walk(doc, doc)
	sortDiagnostics(v.diags)
	return v.diags
}

type validator struct {
	diags []Diagnostic
}

func (v *validator) report(n Node, d Diagnostic) {
	n.attach(d)
	v.diags = append(v.diags, d)
}

func (v *validator) warn(n Node, format string, args ...interface{}) {
	v.report(n, diagAt(SeverityWarning, n.Pos(), format, args...))
}

func (v *validator) err(n Node, format string, args ...interface{}) {
	v.report(n, diagAt(SeverityError, n.Pos(), format, args...))
}

func (v *validator) walk(parent, n Node) {
	switch t := n.(type) {
	case *AccordionGroup:
		if len(t.Children) == 0 {
			v.warn(t, "empty accordion group")
		}
		for _, c := range t.Children {
			if _, ok := c.(*Accordion); !ok {
				v.err(c, "only <Accordion> elements may appear inside <AccordionGroup>")
			}
		}

	case *Accordion:
		if t.Title == "" {
			v.warn(t, "accordion has no title")
		}

	case *Tabs:
		if countKind(t.Children, isTab) == 0 {
			v.err(t, "tabs must contain at least one <Tab>")
		}
		for _, c := range t.Children {
			if !isTab(c) {
				v.err(c, "only <Tab> elements may appear inside <Tabs>")
			}
		}

	case *Tab:
		if _, ok := parent.(*Tabs); !ok {
			v.err(t, "<Tab> is only valid inside <Tabs>")
		}
		if t.Title == "" {
			v.warn(t, "tab has no title")
		}

	case *Steps:
		if countKind(t.Children, isStep) == 0 {
			v.err(t, "steps must contain at least one <Step>")
		}
		for _, c := range t.Children {
			if !isStep(c) {
				v.err(c, "only <Step> elements may appear inside <Steps>")
			}
		}

	case *Step:
		if _, ok := parent.(*Steps); !ok {
			v.err(t, "<Step> is only valid inside <Steps>")
		}
		if t.Title == "" {
			v.warn(t, "step has no title")
		}

	case *Card:
		if t.Title == "" {
			v.warn(t, "card has no title")
		}
		if t.Href == "" {
			v.warn(t, "card has no href")
		}

	case *CodeGroup:
		for _, c := range t.Children {
			if _, ok := c.(*CodeBlock); !ok {
				v.err(c, "only code blocks may appear inside <CodeGroup>")
			}
		}
	}

	for _, c := range Children(n) {
		v.walk(n, c)
	}
}

func isTab(n Node) bool {
	_, ok := n.(*Tab)
	return ok
}

func isStep(n Node) bool {
	_, ok := n.(*Step)
	return ok
}

func countKind(nodes []Node, fn func(Node) bool) int {
	count := 0
	for _, n := range nodes {
		if fn(n) {
			count++
		}
	}
	return count
}

func sortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		if diags[i].Column != diags[j].Column {
			return diags[i].Column < diags[j].Column
		}
		return diags[i].Severity > diags[j].Severity
	})
}
