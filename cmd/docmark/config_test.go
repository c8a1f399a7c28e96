package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hhhapz/docmark/render"
)

func TestConfigFromBytes(t *testing.T) {
	input := []byte(`
{
	"format": "term",
	"width": 100,
	"iconBase": "https://icons.example.com",
	"compact": true
}
`)

	config, err := configFromBytes(input)
	assert.NoError(t, err)

	expected := configuration{
		Format:   "term",
		Width:    100,
		IconBase: "https://icons.example.com",
		Compact:  true,
	}
	assert.Equal(t, expected, config)

	cfg := config.renderConfig()
	assert.Equal(t, render.FormatTerm, cfg.Format)
	assert.Equal(t, 100, cfg.Width)
	assert.True(t, cfg.Compact)
}

func TestConfigFromBytesInvalid(t *testing.T) {
	_, err := configFromBytes([]byte(`{`))
	assert.Error(t, err)

	_, err = configFromBytes([]byte(`{"format": "pdf"}`))
	assert.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	config, err := loadConfig("")
	assert.NoError(t, err)

	cfg := config.renderConfig()
	assert.Equal(t, render.FormatHTML, cfg.Format)
	assert.Zero(t, cfg.Width)
}
