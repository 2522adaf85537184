package config

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
)

// Format names accepted by ParseReader.
const (
	FormatLua  = "lua"
	FormatYAML = "yaml"
)

// Parser provides a unified interface for parsing gradient configuration
// files. It detects whether content is a Lua script or a YAML document.
type Parser struct {
	yamlParser *YAMLConfigParser
	luaParser  *LuaConfigParser
}

// NewParser creates a new Parser that can handle both Lua and YAML configurations.
func NewParser() (*Parser, error) {
	luaParser, err := NewLuaConfigParser()
	if err != nil {
		return nil, fmt.Errorf("failed to create Lua parser: %w", err)
	}

	return &Parser{
		yamlParser: NewYAMLConfigParser(),
		luaParser:  luaParser,
	}, nil
}

// ParseFile reads and parses a configuration file, auto-detecting the format.
func (p *Parser) ParseFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return p.Parse(content)
}

// Parse parses configuration content, auto-detecting the format. Content
// assigning to any gradient.* table is Lua, anything else YAML. Environment
// references in string values are expanded.
func (p *Parser) Parse(content []byte) (*Config, error) {
	format := FormatYAML
	if isLuaConfig(content) {
		format = FormatLua
	}
	return p.parse(content, format)
}

// luaConfigPattern matches an assignment to gradient.config, gradient.frames
// or gradient.palette at the start of a line.
var luaConfigPattern = regexp.MustCompile(`(?m)^\s*gradient\.(config|frames|palette)\s*=`)

func isLuaConfig(content []byte) bool {
	return luaConfigPattern.Match(content)
}

// ParseFromFS reads and parses a configuration file from a filesystem,
// typically an embed.FS.
func (p *Parser) ParseFromFS(fsys fs.FS, path string) (*Config, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from FS %s: %w", path, err)
	}

	return p.Parse(content)
}

// ParseReader parses configuration from an io.Reader.
// The format parameter must be "lua" or "yaml".
func (p *Parser) ParseReader(r io.Reader, format string) (*Config, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	switch format {
	case FormatLua, FormatYAML:
		return p.parse(content, format)
	default:
		return nil, fmt.Errorf("unknown format: %s (expected 'lua' or 'yaml')", format)
	}
}

func (p *Parser) parse(content []byte, format string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if format == FormatLua {
		cfg, err = p.luaParser.Parse(content)
	} else {
		cfg, err = p.yamlParser.Parse(content)
	}
	if err != nil {
		return nil, err
	}
	ExpandEnvConfig(cfg)
	return cfg, nil
}

// Close releases resources associated with the parser.
func (p *Parser) Close() error {
	if p.luaParser != nil {
		return p.luaParser.Close()
	}
	return nil
}
