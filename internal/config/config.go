// Package config loads generator settings.
//
// Settings come from, in increasing precedence: built-in defaults, a YAML
// file, environment variables (SCHEMA_GENERATOR_*, optionally read from a
// .env file), and command line flags applied by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"schema-generator/internal/gen"
)

// Output formats.
const (
	FormatGo   = "go"
	FormatYAML = "yaml"
)

// Environment variables read by ApplyEnv.
const (
	EnvPackage  = "SCHEMA_GENERATOR_PACKAGE"
	EnvFormat   = "SCHEMA_GENERATOR_FORMAT"
	EnvLogLevel = "SCHEMA_GENERATOR_LOG_LEVEL"
)

// DotEnvFile is the environment file read from the working directory.
const DotEnvFile = ".env"

// LogLevels lists the accepted log levels, most verbose first. "warning" is
// an alias of "warn".
var LogLevels = []string{"debug", "info", "warn", "warning", "error", "critical", "fatal"}

// Config holds generator settings.
type Config struct {
	// Package is the Go package name of generated code.
	Package string `yaml:"package,omitempty"`
	// Format is the output format: "go" or "yaml".
	Format string `yaml:"format,omitempty"`
	// LogLevel is one of LogLevels.
	LogLevel string `yaml:"log_level,omitempty"`
	// Scalars overrides entries of the built-in scalar table.
	Scalars map[string]gen.ScalarType `yaml:"scalars,omitempty"`
}

// Default returns the built-in settings.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)

	return c
}

// LoadFile loads and parses a YAML config file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var c Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(&c)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	return &c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Package == "" {
		c.Package = "api"
	}

	if c.Format == "" {
		c.Format = FormatGo
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Lookup retrieves an environment variable, like os.LookupEnv.
type Lookup func(key string) (string, bool)

// Env looks variables up in the process environment first, then in extra.
func Env(extra map[string]string) Lookup {
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}

		v, ok := extra[key]

		return v, ok
	}
}

// ReadDotEnv reads variables from a .env file without touching the process
// environment. A missing file yields no variables.
func ReadDotEnv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return vars, nil
}

// ApplyEnv overrides settings with non-empty environment variables.
func (c *Config) ApplyEnv(lookup Lookup) {
	if v, ok := lookup(EnvPackage); ok && v != "" {
		c.Package = v
	}

	if v, ok := lookup(EnvFormat); ok && v != "" {
		c.Format = v
	}

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
}

// Validate checks the settings, reporting every problem found.
func (c *Config) Validate() error {
	var errs []error

	if !token.IsIdentifier(c.Package) {
		errs = append(errs, fmt.Errorf("package: %q is not a valid Go package name", c.Package))
	}

	if c.Format != FormatGo && c.Format != FormatYAML {
		errs = append(errs, fmt.Errorf("format: %q is not one of %s, %s", c.Format, FormatGo, FormatYAML))
	}

	if !slices.Contains(LogLevels, c.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level: %q is not one of %v", c.LogLevel, LogLevels))
	}

	for _, name := range slices.Sorted(maps.Keys(c.Scalars)) {
		if c.Scalars[name].Type == "" {
			errs = append(errs, fmt.Errorf("scalars.%s: missing type", name))
		}
	}

	return multierr.Combine(errs...)
}

// GeneratorConfig returns the generator settings: the built-in scalar table
// with the configured overrides applied.
func (c *Config) GeneratorConfig() gen.GeneratorConfig {
	gc := gen.DefaultGeneratorConfig()
	gc.PackageName = c.Package
	maps.Copy(gc.Scalars, c.Scalars)

	return gc
}
