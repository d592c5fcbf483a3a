// Package config reads clampwind settings from a project's package.json or
// from .config/clampwind.{yaml,yml,json}.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/clampwind/internal/clamp"
)

// PackageJSONKey is the package.json field holding clampwind settings
const PackageJSONKey = "clampwind"

// configFiles are tried in order below <root>/.config when package.json
// has no clampwind field
var configFiles = []string{
	"clampwind.yaml",
	"clampwind.yml",
	"clampwind.json",
}

// Config holds project settings. Zero values keep the built-in defaults.
type Config struct {
	// RootFontSize is the root font size in px
	RootFontSize float64 `json:"rootFontSize,omitempty" yaml:"rootFontSize,omitempty"`
	// Spacing is the spacing unit in rem
	Spacing float64 `json:"spacing,omitempty" yaml:"spacing,omitempty"`
	// Precision is the number of decimals in generated values; nil keeps the
	// default and 0 rounds to whole numbers
	Precision *int `json:"precision,omitempty" yaml:"precision,omitempty"`
	// Breakpoints are viewport breakpoints such as {"sm": "40rem"}
	Breakpoints map[string]string `json:"breakpoints,omitempty" yaml:"breakpoints,omitempty"`
	// ContainerBreakpoints are container breakpoints; the @ prefix is optional
	ContainerBreakpoints map[string]string `json:"containerBreakpoints,omitempty" yaml:"containerBreakpoints,omitempty"`
	// TokensFiles are design token files to read breakpoints from
	TokensFiles []string `json:"tokensFiles,omitempty" yaml:"tokensFiles,omitempty"`
	// Include are glob patterns of files to process when none are given
	Include []string `json:"include,omitempty" yaml:"include,omitempty"`

	// Dir is the directory relative paths resolve against
	Dir string `json:"-" yaml:"-"`
}

// Load reads the configuration for the project at rootPath. It returns nil
// when the project has no configuration, which is not an error.
func Load(rootPath string) (*Config, error) {
	if rootPath == "" {
		return nil, nil
	}

	cfg, err := readPackageJSON(filepath.Join(rootPath, "package.json"))
	if err != nil || cfg != nil {
		if cfg != nil {
			cfg.Dir = rootPath
		}
		return cfg, err
	}

	for _, name := range configFiles {
		path := filepath.Join(rootPath, ".config", name)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		cfg, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg.Dir = rootPath
		return cfg, nil
	}

	return nil, nil
}

// LoadFile reads an explicit configuration file. The format follows the
// extension; a package.json is read from its clampwind field. Relative paths
// in the file resolve against the file's directory.
func LoadFile(path string) (*Config, error) {
	if filepath.Base(path) == "package.json" {
		cfg, err := readPackageJSON(path)
		if err != nil {
			return nil, err
		}
		if cfg == nil {
			return nil, fmt.Errorf("%s has no %q field", path, PackageJSONKey)
		}
		cfg.Dir = filepath.Dir(path)
		return cfg, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: config path comes from the user
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := &Config{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file type %s: %s", ext, path)
	}
	if err := cfg.Options().Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	cfg.Dir = filepath.Dir(path)
	return cfg, nil
}

// readPackageJSON returns the clampwind field of a package.json, or nil when
// the file or the field does not exist
func readPackageJSON(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: reading the project's package.json
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read package.json: %w", err)
	}

	var pkgJSON map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &pkgJSON); err != nil {
		return nil, fmt.Errorf("failed to parse package.json: %w", err)
	}

	raw, ok := pkgJSON[PackageJSONKey]
	if !ok {
		return nil, nil
	}

	cfg := &Config{}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("%s in package.json must be an object: %w", PackageJSONKey, err)
	}
	if err := cfg.Options().Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s settings in %s: %w", PackageJSONKey, path, err)
	}
	return cfg, nil
}

// ResolvePath makes a relative path absolute against the config directory
func (c *Config) ResolvePath(path string) string {
	if c == nil || c.Dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir, path)
}

// TokensPaths returns TokensFiles resolved against the config directory
func (c *Config) TokensPaths() []string {
	if c == nil {
		return nil
	}
	paths := make([]string, len(c.TokensFiles))
	for i, p := range c.TokensFiles {
		paths[i] = c.ResolvePath(p)
	}
	return paths
}

// Options converts the configuration into processor options. A nil Config
// yields the defaults.
func (c *Config) Options() clamp.Options {
	opts := clamp.DefaultOptions()
	if c == nil {
		return opts
	}
	if c.RootFontSize != 0 {
		opts.RootFontSize = c.RootFontSize
	}
	if c.Spacing != 0 {
		opts.Spacing = c.Spacing
	}
	if c.Precision != nil {
		opts.Precision = *c.Precision
	}
	if len(c.Breakpoints) > 0 {
		opts.Breakpoints = maps.Clone(c.Breakpoints)
	}
	if len(c.ContainerBreakpoints) > 0 {
		opts.ContainerBreakpoints = maps.Clone(c.ContainerBreakpoints)
	}
	return opts
}
