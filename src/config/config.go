// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/H0llyW00dzZ/spawn-sync/src/spawn"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// EnvConfigFile names the environment variable consulted when no path is given.
const EnvConfigFile = "SPAWNSYNC_CONFIG_FILE"

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// AllowAny in Server.AllowedPrograms lets the server run any program.
const AllowAny = "*"

//go:embed schema.json
var schema string

// Schema returns the JSON Schema every configuration file is checked against.
func Schema() string { return schema }

// ErrInvalidConfig is wrapped by every schema violation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Format is a configuration file format.
type Format int

const (
	// FormatJSON is used for .json and unknown extensions.
	FormatJSON Format = iota
	// FormatYAML is used for .yaml and .yml.
	FormatYAML
)

// Config holds every spawnsync setting.
type Config struct {
	// Backend is "native" or "exec".
	Backend string `json:"backend" yaml:"backend"`
	// DrainConcurrently reads stdout and stderr in parallel.
	DrainConcurrently bool `json:"drainConcurrently" yaml:"drainConcurrently"`

	Log struct {
		// Format is "text" or "json".
		Format string `json:"format" yaml:"format"`
		// Silent drops all diagnostics.
		Silent bool `json:"silent" yaml:"silent"`
	} `json:"log" yaml:"log"`

	Output struct {
		// Encoding names the character set child output is written in
		// (WHATWG label, e.g. "windows-1252"). Empty means UTF-8.
		Encoding string `json:"encoding" yaml:"encoding"`
	} `json:"output" yaml:"output"`

	Server struct {
		// AllowedPrograms lists the exact program names or paths the MCP
		// server may launch. "*" allows everything; empty allows nothing.
		AllowedPrograms []string `json:"allowedPrograms" yaml:"allowedPrograms"`
		// WorkingDir is used when a tool call gives none.
		WorkingDir string `json:"workingDir" yaml:"workingDir"`
	} `json:"server" yaml:"server"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	c := &Config{Backend: spawn.Native.String()}
	c.Log.Format = LogFormatText
	return c
}

// DetectFormat picks the format from the file extension, case-insensitively.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads the configuration.
//
// Parameters:
//   - path: configuration file; when empty, [EnvConfigFile] is consulted,
//     and when that is empty too the defaults are returned
//
// Returns:
//   - the configuration with defaults applied
//   - an error if the file cannot be read, parsed or fails validation
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data, DetectFormat(path))
}

// Parse validates data against the schema and decodes it over the defaults.
func Parse(data []byte, format Format) (*Config, error) {
	var doc any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	if doc == nil {
		// Empty YAML document.
		doc = map[string]any{}
	}

	if err := validate(doc); err != nil {
		return nil, err
	}

	c := Default()
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}
	c.applyDefaults()
	return c, nil
}

func validate(doc any) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func (c *Config) applyDefaults() {
	if c.Backend == "" {
		c.Backend = spawn.Native.String()
	}
	if c.Log.Format == "" {
		c.Log.Format = LogFormatText
	}
}

// SpawnBackend returns the configured backend.
func (c *Config) SpawnBackend() (spawn.Backend, error) {
	return spawn.ParseBackend(c.Backend)
}

// Allowed reports whether the MCP server may launch program. Matching is
// exact: allowing "go" does not allow "/tmp/go".
func (c *Config) Allowed(program string) bool {
	if program == "" {
		return false
	}
	return slices.Contains(c.Server.AllowedPrograms, AllowAny) ||
		slices.Contains(c.Server.AllowedPrograms, program)
}
