package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a config file encoding.
type Format int

const (
	JSON Format = iota
	YAML
)

// FormatOf picks the encoding from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return JSON, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
}

// Load reads path on top of Default and validates the result.
func Load(path string) (Config, error) {
	f, err := FormatOf(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Decode(bytes.NewReader(data), f)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads one document on top of Default and validates the result.
// Unknown keys are rejected so typos do not pass silently.
func Decode(r io.Reader, f Format) (Config, error) {
	cfg := Default()
	switch f {
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil && err != io.EOF {
			return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && err != io.EOF {
			return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	default:
		return Config{}, fmt.Errorf("%w: format %d", ErrUnsupportedFormat, f)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to path in the encoding its extension names.
func Save(path string, cfg Config) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	var data []byte
	switch f {
	case JSON:
		data, err = json.MarshalIndent(cfg, "", "  ")
	case YAML:
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
