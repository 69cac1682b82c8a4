// Package config loads sumclock settings from defaults, an optional YAML
// file and the environment.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Environment variables consulted by FromEnv.
const (
	EnvConfig = "SUMCLOCK_CONFIG"
	EnvDB     = "SUMCLOCK_DB"
	EnvDebug  = "SUMCLOCK_DEBUG"
)

// Stepper bounds one numeric input.
type Stepper struct {
	Min  int
	Max  int
	Step int
}

// Clamp limits v to the stepper bounds.
func (s Stepper) Clamp(v int) int {
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

// Config holds all runtime settings.
type Config struct {
	TickPeriod time.Duration
	A          Stepper
	B          Stepper
	History    bool
	DBPath     string // empty means the default location
	DebugLog   string // file receiving debug output; empty disables it
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		TickPeriod: time.Second,
		A:          Stepper{Min: -100, Max: 100, Step: 1},
		B:          Stepper{Min: -100, Max: 100, Step: 1},
		History:    true,
	}
}

// Validate checks cross-field constraints the schema cannot express.
func (c Config) Validate() error {
	if c.TickPeriod <= 0 {
		return fmt.Errorf("%w: tick period must be positive, got %s", ErrInvalidConfig, c.TickPeriod)
	}
	for name, s := range map[string]Stepper{"a": c.A, "b": c.B} {
		if s.Min > s.Max {
			return fmt.Errorf("%w: stepper %s: min %d exceeds max %d", ErrInvalidConfig, name, s.Min, s.Max)
		}
		if s.Step < 1 {
			return fmt.Errorf("%w: stepper %s: step must be at least 1", ErrInvalidConfig, name)
		}
	}
	return nil
}

// fileConfig mirrors the YAML layout. Pointers mark fields left unset.
type fileConfig struct {
	TickPeriod *string `yaml:"tick_period"`
	History    *bool   `yaml:"history"`
	DB         *string `yaml:"db"`
	Steppers   struct {
		A *fileStepper `yaml:"a"`
		B *fileStepper `yaml:"b"`
	} `yaml:"steppers"`
}

type fileStepper struct {
	Min  *int `yaml:"min"`
	Max  *int `yaml:"max"`
	Step *int `yaml:"step"`
}

func (f *fileStepper) apply(s *Stepper) {
	if f == nil {
		return
	}
	if f.Min != nil {
		s.Min = *f.Min
	}
	if f.Max != nil {
		s.Max = *f.Max
	}
	if f.Step != nil {
		s.Step = *f.Step
	}
}

// Load reads the YAML file at path and merges it onto base.
func Load(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, base)
}

// Parse validates YAML data against the config schema and merges it onto
// base.
func Parse(data []byte, base Config) (Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return base, nil
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return base, fmt.Errorf("%w: parse yaml: %w", ErrInvalidConfig, err)
	}
	if err := validateDocument(doc); err != nil {
		return base, err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return base, fmt.Errorf("%w: decode: %w", ErrInvalidConfig, err)
	}

	cfg := base
	if fc.TickPeriod != nil {
		d, err := time.ParseDuration(*fc.TickPeriod)
		if err != nil {
			return base, fmt.Errorf("%w: tick_period: %w", ErrInvalidConfig, err)
		}
		cfg.TickPeriod = d
	}
	if fc.History != nil {
		cfg.History = *fc.History
	}
	if fc.DB != nil {
		cfg.DBPath = *fc.DB
	}
	fc.Steppers.A.apply(&cfg.A)
	fc.Steppers.B.apply(&cfg.B)

	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// FromEnv applies environment overrides to cfg. SUMCLOCK_CONFIG names a
// file loaded first; SUMCLOCK_DB and SUMCLOCK_DEBUG win over it.
func FromEnv(cfg Config) (Config, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		var err error
		cfg, err = Load(p, cfg)
		if err != nil {
			return cfg, err
		}
	}
	if p := os.Getenv(EnvDB); p != "" {
		cfg.DBPath = p
	}
	if p := os.Getenv(EnvDebug); p != "" {
		cfg.DebugLog = p
	}
	return cfg, nil
}

//go:embed schema.json
var schemaJSON []byte

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func configSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal(schemaJSON, &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://sumclock-config.json"
		if err := c.AddResource(url, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(url)
	})
	return compiled, compileErr
}

// validateDocument checks a decoded YAML document against the schema. The
// document goes through JSON first so the validator sees plain JSON values.
func validateDocument(doc any) error {
	schema, err := configSchema()
	if err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
