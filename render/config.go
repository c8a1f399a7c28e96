// Package render turns a parsed document tree into a presentation
// artifact: HTML markup or a styled terminal layout, plus an interactive
// terminal viewer. Rendering never mutates the tree; interactive
// behavior is a pure state model scoped to single nodes.
package render

type Format string

const (
	FormatHTML Format = "html"
	FormatTerm Format = "term"
)

// Config is passed explicitly into render calls. There is no package
// level renderer state, so independent documents can be processed in
// parallel.
type Config struct {
	Format Format

	// Width is the terminal layout width. Zero means 80.
	Width int

	// IconBase, when set, turns card icon names into <img> references
	// below this URL prefix.
	IconBase string

	// Compact drops blank lines between terminal blocks.
	Compact bool
}

func (c Config) width() int {
	if c.Width <= 0 {
		return 80
	}
	return c.Width
}
