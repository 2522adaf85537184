package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlDocument is the YAML layout. Its keys mirror the Lua tables:
//
//	config:
//	  width: 640
//	  duration: 3
//	  window_hints: [below, sticky]
//	frames:
//	  - colors: [red, blue]
//	    direction: down
//	palette:
//	  - [orange, pink]
type yamlDocument struct {
	Config  settings      `yaml:"config"`
	Frames  []FrameConfig `yaml:"frames"`
	Palette [][]string    `yaml:"palette"`
}

// YAMLConfigParser parses YAML configuration files.
type YAMLConfigParser struct{}

// NewYAMLConfigParser creates a YAMLConfigParser.
func NewYAMLConfigParser() *YAMLConfigParser {
	return &YAMLConfigParser{}
}

// Parse decodes a YAML configuration. Unknown keys are rejected so typos
// surface as errors instead of silently keeping defaults.
func (p *YAMLConfigParser) Parse(content []byte) (*Config, error) {
	cfg := DefaultConfig()

	var doc yamlDocument
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML configuration: %w", err)
	}

	doc.Config.apply(&cfg)
	cfg.Frames = doc.Frames
	cfg.Palette = doc.Palette
	return &cfg, nil
}
