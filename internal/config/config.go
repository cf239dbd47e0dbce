package config

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	js "github.com/justin-guan/jsonschema2kotlin/jsonschema"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Conf is the CLI configuration file.
type Conf struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`
	// Concurrency bounds parallel decoding and merging.
	Concurrency int `yaml:"concurrency"`
	// Extensions lists the file suffixes read from a schema directory.
	Extensions []string `yaml:"extensions"`
	// Recursive descends into sub-directories.
	Recursive bool             `yaml:"recursive"`
	Decode    js.DecodeOptions `yaml:"decode"`
}

func (c *Conf) SetDefaults() {
	c.LogLevel = "info"
	c.Concurrency = runtime.GOMAXPROCS(0)
	c.Extensions = []string{".json", ".yaml", ".yml"}
	c.Decode.DuplicateKeys = js.DuplicateError
}

func (c *Conf) Validate() error {
	switch c.Decode.DuplicateKeys {
	case js.DuplicateError, js.DuplicateWarn, js.DuplicateIgnore:
	default:
		return fmt.Errorf("%w: decode.duplicateKeys must be error, warn or ignore, got %q", ErrInvalidConfig, c.Decode.DuplicateKeys)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be positive, got %d", ErrInvalidConfig, c.Concurrency)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("%w: at least one extension is required", ErrInvalidConfig)
	}
	if c.Decode.MaxDepth < 0 || c.Decode.MaxBytes < 0 {
		return fmt.Errorf("%w: decode limits must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Load reads path from fsys over the defaults. An empty path yields the
// defaults.
func Load(fsys afero.Fs, path string) (*Conf, error) {
	c := &Conf{}
	c.SetDefaults()
	if path == "" {
		return c, nil
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
