package main

import (
	"log"

	"github.com/dustin/go-humanize/english"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hhhapz/docmark/document"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check <input>",
	Short: "Report diagnostics for a document without rendering it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, diags, _, err := parseInput(args[0])
		if err != nil {
			return err
		}

		errs := document.Errors(diags)
		log.Printf("%s: %s, %s", args[0],
			english.Plural(errs, "error", ""),
			english.Plural(len(diags)-errs, "warning", ""))

		if checkStrict && len(diags) > 0 {
			return errors.Errorf("strict mode: %s reported",
				english.Plural(len(diags), "diagnostic", ""))
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "treat warnings as errors and fail on any diagnostic")
	rootCmd.AddCommand(checkCmd)
}
