package document

import (
	"bytes"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/pkg/errors"
)

// Meta is the optional YAML frontmatter block at the top of a page.
type Meta struct {
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	Icon         string `yaml:"icon"`
	SidebarTitle string `yaml:"sidebarTitle"`
}

// extractMeta splits the frontmatter from the body and reports how many
// source lines the block consumed, so diagnostics in the body keep their
// real line numbers.
func extractMeta(src string) (Meta, string, int, error) {
	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader([]byte(src)), &meta)
	if err != nil {
		return Meta{}, "", 0, errors.Wrap(err, "could not parse frontmatter")
	}

	offset := strings.Count(src, "\n") - strings.Count(string(body), "\n")
	return meta, string(body), offset, nil
}
