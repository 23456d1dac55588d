package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrNotFound indicates the configuration file does not exist.
var ErrNotFound = errors.New("config file not found")

// ParseError indicates the configuration file content is not well-formed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads and parses the configuration file at path. The file is JSON
// unless the path carries a .yaml or .yml extension. A missing file yields
// ErrNotFound, malformed content a *ParseError. Defaults are applied after
// decoding.
func Load(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if isYAMLPath(path) {
		var rawConfig map[string]interface{}
		if err := yaml.Unmarshal(data, &rawConfig); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
		if err := mapstructure.Decode(rawConfig, &cfg); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	} else {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Save serializes the full record to path, overwriting any existing
// content. The write is best effort, not atomic. Keys the record does not
// carry are dropped.
func Save(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAMLPath(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "    ")
		if err == nil {
			data = append(data, '\n')
		}
	}
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
