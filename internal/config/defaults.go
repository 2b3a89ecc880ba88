package config

import (
	"time"

	"github.com/ukaji3/xlsxcsv-go/pkg/xlsxcsv"
)

const (
	defaultHost           = "localhost"
	defaultPort           = 8080
	defaultMaxUploadBytes = 32 << 20
	defaultRequestTimeout = 60 * time.Second
	defaultJobs           = 4
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Convert.Separator == "" {
		cfg.Convert.Separator = xlsxcsv.DefaultSeparator
	}
	if cfg.Convert.LineBreak == "" {
		cfg.Convert.LineBreak = xlsxcsv.DefaultLineBreak
	}
	if cfg.Convert.Escape == "" {
		cfg.Convert.Escape = string(xlsxcsv.EscapeBackslash)
	}
	if cfg.Convert.Bounds == "" {
		cfg.Convert.Bounds = string(xlsxcsv.BoundsLegacy)
	}
	if cfg.Batch.Jobs == 0 {
		cfg.Batch.Jobs = defaultJobs
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = defaultHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
}
