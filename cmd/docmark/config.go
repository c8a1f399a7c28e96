package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/hhhapz/docmark/render"
)

// configuration supplies render defaults; flags override it.
type configuration struct {
	Format   string `json:"format"`
	Width    int    `json:"width"`
	IconBase string `json:"iconBase"`
	Compact  bool   `json:"compact"`
}

func configFromBytes(b []byte) (configuration, error) {
	var config configuration
	if err := json.Unmarshal(b, &config); err != nil {
		return configuration{}, errors.Wrap(err, "could not parse config")
	}

	switch config.Format {
	case "", string(render.FormatHTML), string(render.FormatTerm):
	default:
		return configuration{}, errors.Errorf("unknown format %q", config.Format)
	}
	return config, nil
}

func loadConfig(path string) (configuration, error) {
	if path == "" {
		return configuration{}, nil
	}
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return configuration{}, errors.Wrap(err, "could not open config")
	}
	return configFromBytes(fileBytes)
}

func (c configuration) renderConfig() render.Config {
	format := render.FormatHTML
	if c.Format != "" {
		format = render.Format(c.Format)
	}
	return render.Config{
		Format:   format,
		Width:    c.Width,
		IconBase: c.IconBase,
		Compact:  c.Compact,
	}
}
