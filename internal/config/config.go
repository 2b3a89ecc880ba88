// Package config provides configuration loading and structs for xlsxcsv.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/ukaji3/xlsxcsv-go/pkg/xlsxcsv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. XLSXCSV_CONVERT_SEPARATOR.
const EnvPrefix = "XLSXCSV"

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug" envconfig:"DEBUG"`
	Convert ConvertConfig `yaml:"convert" envconfig:"CONVERT"`
	Batch   BatchConfig   `yaml:"batch" envconfig:"BATCH"`
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
}

// ConvertConfig holds the CSV rendering settings.
type ConvertConfig struct {
	Separator         string `yaml:"separator" envconfig:"SEPARATOR" validate:"required"`
	LineBreak         string `yaml:"line_break" envconfig:"LINE_BREAK" validate:"required"`
	Escape            string `yaml:"escape" envconfig:"ESCAPE" validate:"oneof=backslash quote"`
	Bounds            string `yaml:"bounds" envconfig:"BOUNDS" validate:"oneof=legacy corrected"`
	Password          string `yaml:"password" envconfig:"PASSWORD"`
	Culture           string `yaml:"culture" envconfig:"CULTURE" validate:"omitempty,oneof=en-US ja-JP ko-KR zh-CN zh-TW"`
	MaxCalcIterations uint   `yaml:"max_calc_iterations" envconfig:"MAX_CALC_ITERATIONS"`
}

// BatchConfig holds multi-file conversion settings.
type BatchConfig struct {
	Jobs   int    `yaml:"jobs" envconfig:"JOBS" validate:"min=1,max=64"`
	OutDir string `yaml:"out_dir" envconfig:"OUT_DIR"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string        `yaml:"host" envconfig:"HOST"`
	Port           int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES" validate:"min=1"`
	RequestTimeout time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" validate:"gt=0"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is not empty) and XLSXCSV_* environment variables, in that order of
// increasing precedence. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		ApplyDefaults(cfg)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if err := c.ConvertOptions().Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// ConvertOptions maps the conversion settings onto library options. The
// logger is left unset.
func (c *Config) ConvertOptions() xlsxcsv.Options {
	return xlsxcsv.Options{
		Separator:         c.Convert.Separator,
		LineBreak:         c.Convert.LineBreak,
		Escape:            xlsxcsv.EscapeStyle(c.Convert.Escape),
		Bounds:            xlsxcsv.BoundsMode(c.Convert.Bounds),
		Password:          c.Convert.Password,
		Culture:           c.Convert.Culture,
		MaxCalcIterations: c.Convert.MaxCalcIterations,
	}
}
