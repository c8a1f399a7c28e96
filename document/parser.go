package document

import (
	"strconv"
	"strings"
)

// Build consumes the token stream and produces the document tree. It
// only fails on fatal lex errors; every structural problem is recovered
// from and reported as a diagnostic instead, so hand-edited documents
// still render.
func Build(name string, lx *Lexer) (*Document, []Diagnostic, error) {
	doc := &Document{base: at(Position{Line: 1, Column: 1}), Name: name}
	b := &builder{stack: []*frame{{node: doc}}}

	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, nil, err
		}

		switch tok.Kind {
		case TokenEOF:
			b.finish()
			return doc, b.diags, nil
		case TokenText:
			b.text(tok)
		case TokenFenceStart:
			if err := b.fence(tok, lx); err != nil {
				return nil, nil, err
			}
		case TokenTagOpen:
			b.open(tok)
		case TokenTagSelfClose:
			b.selfClose(tok)
		case TokenTagClose:
			b.close(tok)
		}
	}
}

type frame struct {
	name string
	node Node
}

type builder struct {
	stack []*frame
	diags []Diagnostic
}

func (b *builder) top() *frame { return b.stack[len(b.stack)-1] }

func (b *builder) add(n Node) {
	appendChild(b.top().node, n)
}

func (b *builder) report(n Node, d Diagnostic) {
	n.attach(d)
	b.diags = append(b.diags, d)
}

func (b *builder) open(tok Token) {
	node, ok := newContainer(tok)
	if !ok {
		b.unknown(tok)
		return
	}
	b.stack = append(b.stack, &frame{name: tok.Name, node: node})
}

func (b *builder) selfClose(tok Token) {
	node, ok := newContainer(tok)
	if !ok {
		b.unknown(tok)
		return
	}
	b.add(node)
}

// unknown component tags become literal text; the author sees their
// markup rather than losing it.
func (b *builder) unknown(tok Token) {
	txt := &Text{base: at(tok.Pos), Content: tok.Raw}
	b.report(txt, diagAt(SeverityWarning, tok.Pos, "unknown component tag <%s>", tok.Name))
	b.add(txt)
}

func (b *builder) close(tok Token) {
	match := -1
	for i := len(b.stack) - 1; i >= 1; i-- {
		if b.stack[i].name == tok.Name {
			match = i
			break
		}
	}

	// A close with no matching open is kept as literal text.
	if match < 0 {
		txt := &Text{base: at(tok.Pos), Content: tok.Raw}
		b.report(txt, diagAt(SeverityError, tok.Pos, "unexpected closing tag </%s>", tok.Name))
		b.add(txt)
		return
	}

	for len(b.stack)-1 > match {
		b.forceClose()
	}
	f := b.top()
	b.stack = b.stack[:len(b.stack)-1]
	b.add(f.node)
}

// forceClose pops an element that was never explicitly closed and
// attaches it, with its children, to its parent.
func (b *builder) forceClose() {
	f := b.top()
	b.stack = b.stack[:len(b.stack)-1]
	b.report(f.node, diagAt(SeverityError, f.node.Pos(), "unclosed tag <%s>", f.name))
	b.add(f.node)
}

func (b *builder) finish() {
	for len(b.stack) > 1 {
		b.forceClose()
	}
}

func (b *builder) fence(start Token, lx *Lexer) error {
	var content strings.Builder
	for {
		tok, err := lx.Next()
		if err != nil {
			return err
		}
		if tok.Kind == TokenText {
			content.WriteString(tok.Raw)
			continue
		}
		// The lexer guarantees a fence end follows.
		break
	}

	language, label := splitInfo(start.Info)
	b.add(&CodeBlock{
		base:     at(start.Pos),
		Language: language,
		Label:    label,
		Content:  strings.TrimSuffix(content.String(), "\n"),
	})
	return nil
}

// splitInfo separates a fence info string like "go request.go" into the
// language word and the display label.
func splitInfo(info string) (string, string) {
	fields := strings.Fields(info)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// text structures one raw run into headings and paragraphs. Blank lines
// separate paragraphs; inline links become Link nodes.
func (b *builder) text(tok Token) {
	pos := tok.Pos
	var para []string
	var paraPos Position

	flush := func() {
		if len(para) == 0 {
			return
		}
		content := strings.Join(para, "\n")
		b.add(&Paragraph{base: at(paraPos), Children: inlineNodes(content, paraPos)})
		para = nil
	}

	rest := tok.Raw
	for len(rest) > 0 {
		var line string
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i], rest[i+1:]
		} else {
			line, rest = rest, ""
		}

		switch {
		case strings.TrimSpace(line) == "":
			flush()
		case headingLevel(line) > 0:
			flush()
			level := headingLevel(line)
			b.add(&Heading{
				base:  at(pos),
				Level: level,
				Text:  strings.TrimSpace(line[level+1:]),
			})
		default:
			if len(para) == 0 {
				paraPos = pos
			}
			para = append(para, line)
		}

		pos = Position{Line: pos.Line + 1, Column: 1}
	}
	flush()
}

func headingLevel(line string) int {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level >= len(line) || line[level] != ' ' {
		return 0
	}
	return level
}

// inlineNodes splits paragraph content into Text runs and [label](href)
// links, tracking positions through the run.
func inlineNodes(content string, pos Position) []Node {
	var nodes []Node
	segStart := 0
	segPos := pos

	cur := pos
	i := 0
	for i < len(content) {
		if content[i] == '[' {
			if link, n, ok := scanLink(content[i:]); ok {
				if i > segStart {
					nodes = append(nodes, &Text{base: at(segPos), Content: content[segStart:i]})
				}
				link.base = at(cur)
				nodes = append(nodes, link)
				cur = advancePos(cur, content[i:i+n])
				i += n
				segStart = i
				segPos = cur
				continue
			}
		}
		cur = advancePos(cur, content[i:i+1])
		i++
	}
	if segStart < len(content) {
		nodes = append(nodes, &Text{base: at(segPos), Content: content[segStart:]})
	}
	return nodes
}

func scanLink(s string) (*Link, int, bool) {
	end := strings.IndexByte(s, ']')
	if end < 0 || strings.ContainsRune(s[:end], '\n') {
		return nil, 0, false
	}
	if end+1 >= len(s) || s[end+1] != '(' {
		return nil, 0, false
	}
	hrefEnd := strings.IndexByte(s[end+2:], ')')
	if hrefEnd < 0 {
		return nil, 0, false
	}
	href := s[end+2 : end+2+hrefEnd]
	if strings.ContainsAny(href, "\n ") {
		return nil, 0, false
	}
	return &Link{Label: s[1:end], Href: href}, end + hrefEnd + 3, true
}

func advancePos(pos Position, s string) Position {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			pos.Line++
			pos.Column = 1
		} else if s[i]&0xC0 != 0x80 {
			pos.Column++
		}
	}
	return pos
}

func appendChild(parent, child Node) {
	switch p := parent.(type) {
	case *Document:
		p.Children = append(p.Children, child)
	case *Paragraph:
		p.Children = append(p.Children, child)
	case *Accordion:
		p.Children = append(p.Children, child)
	case *AccordionGroup:
		p.Children = append(p.Children, child)
	case *Tabs:
		p.Children = append(p.Children, child)
	case *Tab:
		p.Children = append(p.Children, child)
	case *Steps:
		p.Children = append(p.Children, child)
	case *Step:
		p.Children = append(p.Children, child)
	case *Card:
		p.Children = append(p.Children, child)
	case *CardGroup:
		p.Children = append(p.Children, child)
	case *Frame:
		p.Children = append(p.Children, child)
	case *Callout:
		p.Children = append(p.Children, child)
	case *CodeGroup:
		p.Children = append(p.Children, child)
	}
}

func newContainer(tok Token) (Node, bool) {
	b := at(tok.Pos)
	attr := func(key string) string {
		for _, a := range tok.Attrs {
			if a.Key == key {
				return a.Value
			}
		}
		return ""
	}

	switch tok.Name {
	case "Accordion":
		return &Accordion{base: b, Title: attr("title")}, true
	case "AccordionGroup":
		return &AccordionGroup{base: b}, true
	case "Tabs":
		return &Tabs{base: b}, true
	case "Tab":
		return &Tab{base: b, Title: attr("title")}, true
	case "Steps":
		return &Steps{base: b}, true
	case "Step":
		return &Step{base: b, Title: attr("title")}, true
	case "Card":
		return &Card{base: b, Title: attr("title"), Href: attr("href"), Icon: attr("icon")}, true
	case "CardGroup":
		cols, _ := strconv.Atoi(attr("cols"))
		return &CardGroup{base: b, Cols: cols}, true
	case "Frame":
		return &Frame{base: b, Caption: attr("caption")}, true
	case "Note", "Warning", "Tip", "Info":
		return &Callout{base: b, Kind: strings.ToLower(tok.Name)}, true
	case "CodeGroup":
		return &CodeGroup{base: b}, true
	}
	return nil, false
}
