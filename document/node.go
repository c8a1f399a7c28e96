package document

import "fmt"

type Severity uint8

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is a non-fatal structural or validation issue. Diagnostics
// are attached to the offending node and collected into a flat list;
// they never stop the document from rendering.
type Diagnostic struct {
	Severity Severity
	Message  string
	Line     int
	Column   int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Column, d.Severity, d.Message)
}

func diagAt(sev Severity, pos Position, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
		Line:     pos.Line,
		Column:   pos.Column,
	}
}

// Node is the closed set of document tree variants. Nodes are built once
// by the tree builder, annotated with diagnostics by the validator, and
// never mutated structurally afterwards.
type Node interface {
	Pos() Position
	Diags() []Diagnostic
	attach(Diagnostic)
}

type base struct {
	pos   Position
	diags []Diagnostic
}

func at(pos Position) base { return base{pos: pos} }

func (b *base) Pos() Position       { return b.pos }
func (b *base) Diags() []Diagnostic { return b.diags }
func (b *base) attach(d Diagnostic) { b.diags = append(b.diags, d) }

// Document is the implicit root wrapper around a single parsed file.
type Document struct {
	base
	Name     string
	Meta     Meta
	Children []Node
}

type Text struct {
	base
	Content string
}

type Heading struct {
	base
	Level int
	Text  string
}

// Paragraph groups the inline runs (Text, Link) of one prose block.
type Paragraph struct {
	base
	Children []Node
}

type Link struct {
	base
	Href  string
	Label string
}

// CodeBlock content is verbatim source text. The language is display
// metadata only and is never interpreted as live code.
type CodeBlock struct {
	base
	Language string
	Label    string
	Content  string
}

type Accordion struct {
	base
	Title    string
	Children []Node
}

type AccordionGroup struct {
	base
	Children []Node
}

type Tabs struct {
	base
	Children []Node
}

type Tab struct {
	base
	Title    string
	Children []Node
}

type Steps struct {
	base
	Children []Node
}

type Step struct {
	base
	Title    string
	Children []Node
}

type Card struct {
	base
	Title    string
	Href     string
	Icon     string
	Children []Node
}

type CardGroup struct {
	base
	Cols     int
	Children []Node
}

type Frame struct {
	base
	Caption  string
	Children []Node
}

// Callout covers the Note, Warning, Tip and Info tags, distinguished by
// Kind.
type Callout struct {
	base
	Kind     string
	Children []Node
}

type CodeGroup struct {
	base
	Children []Node
}

// Children returns the ordered child list of n, or nil for leaf nodes.
func Children(n Node) []Node {
	switch t := n.(type) {
	case *Document:
		return t.Children
	case *Paragraph:
		return t.Children
	case *Accordion:
		return t.Children
	case *AccordionGroup:
		return t.Children
	case *Tabs:
		return t.Children
	case *Tab:
		return t.Children
	case *Steps:
		return t.Children
	case *Step:
		return t.Children
	case *Card:
		return t.Children
	case *CardGroup:
		return t.Children
	case *Frame:
		return t.Children
	case *Callout:
		return t.Children
	case *CodeGroup:
		return t.Children
	}
	return nil
}

// Walk visits n and all of its descendants in depth-first encounter
// order.
func Walk(n Node, fn func(Node)) {
	fn(n)
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}
