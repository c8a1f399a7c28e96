package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hhhapz/docmark/document"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "docmark",
	Short: "Render documentation pages written in Markdown with component tags",
	Long: `docmark parses documentation pages that mix Markdown with custom
component tags (accordions, tabs, steps, cards, frames, code groups)
and renders them as HTML or as a terminal layout.

Documents always render best-effort: structural problems are reported
as positioned diagnostics instead of aborting.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "JSON config file with render defaults")
}

// parseInput loads and parses one document, printing diagnostics to
// stderr. Only fatal problems (I/O, unterminated fences) return an
// error.
func parseInput(path string) (*document.Document, []document.Diagnostic, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, 0, errors.Wrap(err, "could not open document")
	}

	doc, diags, err := document.Parse(filepath.Base(path), string(data))
	if err != nil {
		return nil, nil, 0, errors.Wrapf(err, "could not parse %s", path)
	}

	for _, d := range diags {
		log.Printf("%s:%s", path, d)
	}
	return doc, diags, len(data), nil
}
