// Package document parses pages written in a Markdown dialect with
// custom component tags (accordions, tabs, steps, cards, frames, code
// groups) into an ordered, validated document tree.
//
// The pipeline is strictly forward: tokenize, build, validate. Only an
// unterminated code fence is fatal; every other problem is recovered
// from and surfaced as a positioned diagnostic so the document still
// renders best-effort.
package document

// Parse runs the full pipeline over one document. The returned
// diagnostics combine structure errors found while building and
// validation results, ordered by source position. The error is non-nil
// only for fatal problems (lex errors, malformed frontmatter).
func Parse(name, src string) (*Document, []Diagnostic, error) {
	meta, body, offset, err := extractMeta(src)
	if err != nil {
		return nil, nil, err
	}

	lx := NewLexer(body)
	lx.line += offset

	doc, diags, err := Build(name, lx)
	if err != nil {
		return nil, nil, err
	}
	doc.Meta = meta

	diags = append(diags, Validate(doc)...)
	sortDiagnostics(diags)
	return doc, diags, nil
}

// Errors reports how many diagnostics have error severity.
func Errors(diags []Diagnostic) int {
	count := 0
	for _, d := range diags {
		if d.Severity == SeverityError {
			count++
		}
	}
	return count
}
