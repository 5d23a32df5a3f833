package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a configuration file encoding.
type Format string

const (
	// FormatYAML is the YAML encoding (.yaml, .yml).
	FormatYAML Format = "yaml"
	// FormatTOML is the TOML encoding (.toml).
	FormatTOML Format = "toml"
)

// FormatFromPath picks the encoding from a file extension.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - Format: the encoding
//   - error: an error if the extension is not recognized
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported config extension %q", filepath.Ext(path))
	}
}

// Load reads, parses and validates a configuration file. The encoding is chosen by extension.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - *Config: the loaded configuration
//   - error: an error if the file cannot be read, parsed or validated
func Load(path string) (*Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data on top of Default and validates the result. Fields absent from the
// document keep their default values; lists present in the document replace the defaults.
// Unknown fields are rejected.
//
// Parameters:
//   - data: the encoded document
//   - format: the encoding
//
// Returns:
//   - *Config: the parsed configuration
//   - error: an error if decoding or validation fails
func Parse(data []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse yaml config: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse toml config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Marshal encodes the configuration.
//
// Parameters:
//   - cfg: the configuration
//   - format: the encoding
//
// Returns:
//   - []byte: the encoded document
//   - error: an error if encoding fails
func Marshal(cfg *Config, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(cfg)
	case FormatTOML:
		return toml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
}

// Save validates and writes the configuration, choosing the encoding by extension.
//
// Parameters:
//   - cfg: the configuration
//   - path: the file path
//
// Returns:
//   - error: an error if validation, encoding or writing fails
func Save(cfg *Config, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	data, err := Marshal(cfg, format)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
