package main

import (
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hhhapz/docmark/document"
	"github.com/hhhapz/docmark/render"
)

var (
	strict    bool
	formatArg string
	output    string
	widthArg  int
)

var renderCmd = &cobra.Command{
	Use:   "render <input>",
	Short: "Render a document to HTML or a terminal layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, diags, size, err := parseInput(args[0])
		if err != nil {
			return err
		}

		cfg, err := buildConfig()
		if err != nil {
			return err
		}

		var out string
		switch cfg.Format {
		case render.FormatTerm:
			out = render.NewTerm(cfg).Render(doc, nil)
		default:
			out, err = render.NewHTML(cfg).Render(doc)
			if err != nil {
				return err
			}
		}

		if output != "" {
			if err := os.WriteFile(output, []byte(out), 0o644); err != nil {
				return errors.Wrap(err, "could not write output")
			}
		} else if _, err := os.Stdout.WriteString(out); err != nil {
			return err
		}

		errs := document.Errors(diags)
		log.Printf("rendered %s: %s in, %s, %s",
			args[0], humanize.Bytes(uint64(size)),
			english.Plural(errs, "error", ""),
			english.Plural(len(diags)-errs, "warning", ""))

		if strict && len(diags) > 0 {
			return errors.Errorf("strict mode: %s reported",
				english.Plural(len(diags), "diagnostic", ""))
		}
		return nil
	},
}

func buildConfig() (render.Config, error) {
	fileCfg, err := loadConfig(cfgFile)
	if err != nil {
		return render.Config{}, err
	}
	cfg := fileCfg.renderConfig()

	if formatArg != "" {
		switch formatArg {
		case string(render.FormatHTML), string(render.FormatTerm):
			cfg.Format = render.Format(formatArg)
		default:
			return render.Config{}, errors.Errorf("unknown format %q", formatArg)
		}
	}
	if widthArg > 0 {
		cfg.Width = widthArg
	}
	return cfg, nil
}

func init() {
	renderCmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors and fail on any diagnostic")
	renderCmd.Flags().StringVar(&formatArg, "format", "", "output format: html or term")
	renderCmd.Flags().StringVarP(&output, "output", "o", "", "write output to a file instead of stdout")
	renderCmd.Flags().IntVar(&widthArg, "width", 0, "terminal layout width")
	rootCmd.AddCommand(renderCmd)
}
