package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hhhapz/docmark/render"
)

var viewCmd = &cobra.Command{
	Use:   "view <input>",
	Short: "Browse a document interactively in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, _, _, err := parseInput(args[0])
		if err != nil {
			return err
		}

		cfg, err := buildConfig()
		if err != nil {
			return err
		}
		cfg.Format = render.FormatTerm

		p := tea.NewProgram(render.NewModel(doc, cfg), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return errors.Wrap(err, "could not start viewer")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
