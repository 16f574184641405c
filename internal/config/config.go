package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lazylynx/geodesy"
)

// Config holds the geodsolve configuration.
type Config struct {
	Ellipsoid EllipsoidConfig `yaml:"ellipsoid"`
	Output    OutputConfig    `yaml:"output"`
	Workers   int             `yaml:"workers"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// EllipsoidConfig selects the ellipsoid. Flattening and InverseFlattening
// are alternatives; a zero InverseFlattening means "use Flattening".
type EllipsoidConfig struct {
	Radius            float64 `yaml:"radius"` // equatorial radius in meters (default: WGS-84)
	Flattening        float64 `yaml:"flattening"`
	InverseFlattening float64 `yaml:"inverse_flattening"`
}

// OutputConfig controls how results are written.
type OutputConfig struct {
	Precision  int  `yaml:"precision"` // decimals for distances in meters, angles get 5 more
	Full       bool `yaml:"full"`      // write the full geodesic record
	LongUnroll bool `yaml:"long_unroll"`
}

// MetricsConfig holds the prometheus endpoint settings.
type MetricsConfig struct {
	Port int `yaml:"port"` // 0 disables the endpoint
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Env   string `yaml:"env"`   // prod, local, dev (default: local)
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

const defaultPrecision = 3

// Default returns the configuration used when no file is given.
func Default() Config {
	cfg := Config{Output: OutputConfig{Precision: defaultPrecision}}
	cfg.ApplyDefaults()
	return cfg
}

// Load reads configuration from a YAML file. An empty path yields the
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	// Precision 0 is meaningful, so its default is set before decoding.
	cfg := Config{Output: OutputConfig{Precision: defaultPrecision}}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Ellipsoid.Radius == 0 {
		c.Ellipsoid.Radius = geodesy.WGS84.EquatorialRadius()
		if c.Ellipsoid.Flattening == 0 && c.Ellipsoid.InverseFlattening == 0 {
			c.Ellipsoid.Flattening = geodesy.WGS84.Flattening()
		}
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "local"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Ellipsoid.Flattening != 0 && c.Ellipsoid.InverseFlattening != 0 {
		return fmt.Errorf("ellipsoid.flattening and ellipsoid.inverse_flattening are mutually exclusive")
	}
	if _, err := c.NewEllipsoid(); err != nil {
		return err
	}
	if c.Output.Precision < 0 || c.Output.Precision > 10 {
		return fmt.Errorf("output.precision must be between 0 and 10, got %d", c.Output.Precision)
	}
	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be between 0 and 65535, got %d", c.Metrics.Port)
	}
	switch c.Logging.Env {
	case "prod", "local", "dev":
	default:
		return fmt.Errorf("logging.env must be one of prod, local, dev, got %q", c.Logging.Env)
	}
	return nil
}

// FlatteningValue returns the flattening, deriving it from the inverse
// flattening when that is set.
func (c *Config) FlatteningValue() float64 {
	if c.Ellipsoid.InverseFlattening != 0 {
		return 1 / c.Ellipsoid.InverseFlattening
	}
	return c.Ellipsoid.Flattening
}

// NewEllipsoid builds the configured ellipsoid, reusing geodesy.WGS84 when
// the parameters match it.
func (c *Config) NewEllipsoid() (*geodesy.Ellipsoid, error) {
	a, f := c.Ellipsoid.Radius, c.FlatteningValue()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, fmt.Errorf("ellipsoid: flattening %v is not finite", f)
	}
	if a == geodesy.WGS84.EquatorialRadius() && f == geodesy.WGS84.Flattening() {
		return geodesy.WGS84, nil
	}
	e, err := geodesy.New(a, f)
	if err != nil {
		return nil, fmt.Errorf("ellipsoid: %w", err)
	}
	return e, nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
