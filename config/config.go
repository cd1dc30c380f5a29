package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/uyouii/percentile-chart/capabilities"
	"github.com/uyouii/percentile-chart/common"
)

// UserConfig holds the optional user overrides. A nil field means the user
// did not set it.
type UserConfig struct {
	DataPoint DataPointConfig `koanf:"dataPoint" json:"dataPoint"`
	Labels    LabelsConfig    `koanf:"labels" json:"labels"`
}

type DataPointConfig struct {
	Fill *string `koanf:"fill" json:"fill,omitempty"`
}

type LabelsConfig struct {
	LabelPrecision *int `koanf:"labelPrecision" json:"labelPrecision,omitempty"`
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	}
	return nil, fmt.Errorf("config file %s: %w", path, common.ErrorUnsupportedFormat)
}

// Load reads a YAML, JSON or TOML user configuration file.
func Load(path string) (*UserConfig, error) {
	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return fromKoanf(k)
}

// FromMap builds a UserConfig from an already decoded document, the way
// the host hands over its property bag.
func FromMap(raw map[string]any) (*UserConfig, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(raw, "."), nil); err != nil {
		return nil, err
	}
	return fromKoanf(k)
}

func fromKoanf(k *koanf.Koanf) (*UserConfig, error) {
	if err := capabilities.Validate(k.Raw()); err != nil {
		return nil, err
	}
	cfg := &UserConfig{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInvalidConfig, err)
	}
	return cfg, nil
}
