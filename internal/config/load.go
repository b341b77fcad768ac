package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported scene file format")
	ErrNotAnObject       = errors.New("scene file root is not an object")
)

// LoadFile reads a scene file and returns its root object. The decoder is
// chosen by extension. A root of the form {"scene": {...}} is unwrapped.
func LoadFile(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read scene file: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes scene data in the format named by ext (".json", ".yaml",
// ".yml" or ".toml").
func Parse(data []byte, ext string) (Record, error) {
	var root any
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("could not unmarshal scene json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("could not unmarshal scene yaml: %w", err)
		}
	case ".toml":
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("could not unmarshal scene toml: %w", err)
		}
		root = m
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	r, ok := AsRecord(root)
	if !ok {
		return nil, ErrNotAnObject
	}
	if inner, ok := r.Record("scene"); ok {
		return inner, nil
	}
	return r, nil
}
