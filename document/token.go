package document

import (
	"fmt"
	"strings"
	"unicode"
)

type TokenKind uint8

const (
	TokenText TokenKind = iota
	TokenTagOpen
	TokenTagClose
	TokenTagSelfClose
	TokenFenceStart
	TokenFenceEnd
	TokenEOF
)

func (k TokenKind) String() string {
	switch k {
	case TokenText:
		return "text"
	case TokenTagOpen:
		return "tag-open"
	case TokenTagClose:
		return "tag-close"
	case TokenTagSelfClose:
		return "tag-self-closing"
	case TokenFenceStart:
		return "code-fence-start"
	case TokenFenceEnd:
		return "code-fence-end"
	}
	return "eof"
}

// Position is a 1-based line and column in the source document.
type Position struct {
	Line   int
	Column int
}

type Attr struct {
	Key   string
	Value string
}

type Token struct {
	Kind  TokenKind
	Raw   string
	Pos   Position

	// Tag tokens only.
	Name  string
	Attrs []Attr

	// Fence start only: the info string after the backticks.
	Info string
}

// LexError is fatal: the document cannot be tokenized past this point.
type LexError struct {
	Msg string
	Pos Position
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Lexer splits a document into text runs, component tags and code fences.
// Component tags start with an upper-case letter; anything that does not
// scan as a well-formed tag is passed through as literal text, since the
// source documents are hand-authored prose.
type Lexer struct {
	src   string
	off   int
	line  int
	col   int
	queue []Token
	done  bool
}

func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Tokenize consumes a fresh lexer over src and collects all tokens up to,
// but not including, the EOF token.
func Tokenize(src string) ([]Token, error) {
	lx := NewLexer(src)
	var tokens []Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) Next() (Token, error) {
	if len(l.queue) > 0 {
		tok := l.queue[0]
		l.queue = l.queue[1:]
		return tok, nil
	}
	if l.done {
		return Token{Kind: TokenEOF, Pos: l.pos()}, nil
	}

	textStart := -1
	var textPos Position

	text := func(end int) Token {
		return Token{Kind: TokenText, Raw: l.src[textStart:end], Pos: textPos}
	}

	for l.off < len(l.src) {
		if l.col == 1 {
			if info, ok := l.fenceAhead(); ok {
				end := l.off
				toks, err := l.lexFence(info)
				if err != nil {
					return Token{}, err
				}
				if textStart >= 0 {
					l.queue = append(l.queue, toks...)
					return text(end), nil
				}
				l.queue = append(l.queue, toks[1:]...)
				return toks[0], nil
			}
		}

		if l.src[l.off] == '<' {
			if tok, n, ok := scanTag(l.src[l.off:]); ok {
				tok.Pos = l.pos()
				end := l.off
				l.advance(n)
				if textStart >= 0 {
					l.queue = append(l.queue, tok)
					return text(end), nil
				}
				return tok, nil
			}
		}

		if textStart < 0 {
			textStart = l.off
			textPos = l.pos()
		}
		l.advance(1)
	}

	l.done = true
	if textStart >= 0 {
		return text(len(l.src)), nil
	}
	return Token{Kind: TokenEOF, Pos: l.pos()}, nil
}

func (l *Lexer) pos() Position {
	return Position{Line: l.line, Column: l.col}
}

func (l *Lexer) advance(n int) {
	for i := 0; i < n && l.off < len(l.src); i++ {
		b := l.src[l.off]
		if b == '\n' {
			l.line++
			l.col = 1
		} else if b&0xC0 != 0x80 {
			// Count columns per rune, not per byte.
			l.col++
		}
		l.off++
	}
}

// fenceAhead reports whether the current line opens a code fence, and
// returns its info string.
func (l *Lexer) fenceAhead() (string, bool) {
	line := l.currentLine()
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "```") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimLeft(trimmed, "`")), true
}

func (l *Lexer) currentLine() string {
	rest := l.src[l.off:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		return rest[:i]
	}
	return rest
}

// lexFence consumes an entire fenced code block and returns its start,
// body and end tokens. A fence that is never closed is a fatal error.
func (l *Lexer) lexFence(info string) ([]Token, error) {
	startPos := l.pos()
	startLine := l.currentLine()
	l.advanceLine()

	start := Token{Kind: TokenFenceStart, Raw: startLine, Pos: startPos, Info: info}

	bodyPos := l.pos()
	bodyStart := l.off
	for l.off < len(l.src) {
		line := l.currentLine()
		if isFenceClose(line) {
			body := l.src[bodyStart:l.off]
			endPos := l.pos()
			l.advanceLine()
			toks := []Token{start}
			if body != "" {
				toks = append(toks, Token{Kind: TokenText, Raw: body, Pos: bodyPos})
			}
			return append(toks, Token{Kind: TokenFenceEnd, Raw: line, Pos: endPos}), nil
		}
		l.advanceLine()
	}
	return nil, &LexError{Msg: "unterminated code fence", Pos: startPos}
}

func isFenceClose(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "```") {
		return false
	}
	return strings.Trim(trimmed, "`") == ""
}

// advanceLine consumes the rest of the current line and its newline.
func (l *Lexer) advanceLine() {
	rest := l.src[l.off:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		l.advance(i + 1)
		return
	}
	l.advance(len(rest))
}

// scanTag tries to read a component tag at the start of s. Tags never
// span lines; a name must start with an upper-case letter to count as a
// component. On failure the caller treats the '<' as literal text.
func scanTag(s string) (Token, int, bool) {
	i := 1
	closing := false
	if i < len(s) && s[i] == '/' {
		closing = true
		i++
	}

	nameStart := i
	for i < len(s) && (isTagNameByte(s[i]) || (i > nameStart && s[i] >= '0' && s[i] <= '9')) {
		i++
	}
	name := s[nameStart:i]
	if name == "" || !unicode.IsUpper(rune(name[0])) {
		return Token{}, 0, false
	}

	var attrs []Attr
	for {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i >= len(s) || s[i] == '\n' {
			return Token{}, 0, false
		}
		if s[i] == '>' {
			i++
			kind := TokenTagOpen
			if closing {
				kind = TokenTagClose
			}
			return Token{Kind: kind, Raw: s[:i], Name: name, Attrs: attrs}, i, true
		}
		if strings.HasPrefix(s[i:], "/>") {
			if closing {
				return Token{}, 0, false
			}
			i += 2
			return Token{Kind: TokenTagSelfClose, Raw: s[:i], Name: name, Attrs: attrs}, i, true
		}
		if closing {
			return Token{}, 0, false
		}

		attr, n, ok := scanAttr(s[i:])
		if !ok {
			return Token{}, 0, false
		}
		attrs = append(attrs, attr)
		i += n
	}
}

func scanAttr(s string) (Attr, int, bool) {
	i := 0
	for i < len(s) && (isTagNameByte(s[i]) || s[i] == '-' || s[i] == '_' || (i > 0 && s[i] >= '0' && s[i] <= '9')) {
		i++
	}
	if i == 0 {
		return Attr{}, 0, false
	}
	attr := Attr{Key: s[:i]}
	if i >= len(s) || s[i] != '=' {
		return attr, i, true
	}
	i++
	if i >= len(s) {
		return Attr{}, 0, false
	}

	var close byte
	switch s[i] {
	case '"', '\'':
		close = s[i]
	case '{':
		close = '}'
	default:
		return Attr{}, 0, false
	}
	i++
	end := i
	for end < len(s) && s[end] != close && s[end] != '\n' {
		end++
	}
	if end >= len(s) || s[end] != close {
		return Attr{}, 0, false
	}
	attr.Value = s[i:end]
	return attr, end + 1, true
}

func isTagNameByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
