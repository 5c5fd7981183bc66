// Package config loads the pdfsniff command's YAML configuration file.
//
// The file is named by the --config flag or, failing that, the
// PDFSNIFF_CONFIG environment variable. Without either the defaults apply.
// Command line flags override values from the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/pdfsniff"
)

// EnvVar names the environment variable holding the default config path.
const EnvVar = "PDFSNIFF_CONFIG"

// Config holds the detection settings for the command.
type Config struct {
	// Debug enables diagnostic logging.
	Debug bool `yaml:"debug"`

	// MaxScanLines limits the number of body lines examined.
	// Default: 50000
	MaxScanLines int `yaml:"max_scan_lines"`

	// MaxStreamLength is the largest declared stream Length that is read.
	// Default: 64 MiB
	MaxStreamLength int64 `yaml:"max_stream_length"`

	// MaxDecodedLength caps the decompressed size of one stream.
	// Default: 64 MiB
	MaxDecodedLength int64 `yaml:"max_decoded_length"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		MaxScanLines:     pdfsniff.DefaultMaxScanLines,
		MaxStreamLength:  pdfsniff.DefaultMaxStreamLength,
		MaxDecodedLength: pdfsniff.DefaultMaxDecodedLength,
	}
}

// Load loads the file named by path, or by EnvVar when path is empty. With
// neither set it returns Default.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path. Keys missing from
// the file keep their defaults; unknown keys are an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML configuration data over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects negative limits.
func (c *Config) Validate() error {
	if c.MaxScanLines < 0 {
		return fmt.Errorf("max_scan_lines must not be negative, got %d", c.MaxScanLines)
	}
	if c.MaxStreamLength < 0 {
		return fmt.Errorf("max_stream_length must not be negative, got %d", c.MaxStreamLength)
	}
	if c.MaxDecodedLength < 0 {
		return fmt.Errorf("max_decoded_length must not be negative, got %d", c.MaxDecodedLength)
	}
	return nil
}

// Options converts the configuration to detection options.
func (c *Config) Options() []pdfsniff.Option {
	return []pdfsniff.Option{
		pdfsniff.WithDebug(c.Debug),
		pdfsniff.WithMaxScanLines(c.MaxScanLines),
		pdfsniff.WithMaxStreamLength(c.MaxStreamLength),
		pdfsniff.WithMaxDecodedLength(c.MaxDecodedLength),
	}
}
