package model

import "time"

// ModelVersion is reported in response envelopes
const ModelVersion = "2.0.0"

// Config is the complete Candor configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Batch    BatchConfig    `yaml:"batch" mapstructure:"batch"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr           string        `yaml:"addr" mapstructure:"addr"`
	ReadTimeout    time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`
	RateLimit      RateLimit     `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// RateLimit configures per-client request throttling
type RateLimit struct {
	Enabled           bool    `yaml:"enabled" mapstructure:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// AnalysisConfig configures the classification engine
type AnalysisConfig struct {
	NoiseAmplitude float64 `yaml:"noise_amplitude" mapstructure:"noise_amplitude"` // Confidence perturbation, uniform in [-a, a]
	Seed           uint64  `yaml:"seed" mapstructure:"seed"`                       // 0 = unseeded
	RulesFile      string  `yaml:"rules_file" mapstructure:"rules_file"`           // Optional YAML pattern rule override
	CatalogFile    string  `yaml:"catalog_file" mapstructure:"catalog_file"`       // Optional YAML business catalog override
}

// BatchConfig configures tabular analysis
type BatchConfig struct {
	MaxRows       int `yaml:"max_rows" mapstructure:"max_rows"`
	Workers       int `yaml:"workers" mapstructure:"workers"`
	MinTextLength int `yaml:"min_text_length" mapstructure:"min_text_length"`
	MaxTextLength int `yaml:"max_text_length" mapstructure:"max_text_length"`
}

// CacheConfig configures business-name resolution memoization
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// LoggingConfig configures structured logging
type LoggingConfig struct {
	Level       string `yaml:"level" mapstructure:"level"`
	Development bool   `yaml:"development" mapstructure:"development"`
}

// OutputConfig configures CLI rendering
type OutputConfig struct {
	Format  string `yaml:"format" mapstructure:"format"` // text, json, yaml
	Color   bool   `yaml:"color" mapstructure:"color"`
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   30 * time.Second,
			MaxUploadBytes: 10 << 20,
			RateLimit: RateLimit{
				Enabled:           true,
				RequestsPerSecond: 10,
				BurstSize:         20,
			},
		},
		Analysis: AnalysisConfig{
			NoiseAmplitude: 0.1,
		},
		Batch: BatchConfig{
			MaxRows:       100,
			Workers:       4,
			MinTextLength: 10,
			MaxTextLength: 2000,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             time.Hour,
			CleanupInterval: 10 * time.Minute,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}
