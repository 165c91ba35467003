package similarity

import (
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config manages similarity kernel configuration using Viper
type Config struct {
	v *viper.Viper
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	v := viper.New()

	// Kernel parameters
	v.SetDefault("similarity.topn", 200)
	v.SetDefault("similarity.batch_size", 500)

	// Performance parameters
	v.SetDefault("performance.num_workers", runtime.NumCPU())

	// Logging parameters
	v.SetDefault("logging.level", "info")

	return &Config{v: v}
}

// LoadFromFile loads configuration from file
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

// TopN returns the number of neighbors emitted per token
func (c *Config) TopN() int { return c.v.GetInt("similarity.topn") }

// BatchSize returns the number of rows multiplied per GEMM call
func (c *Config) BatchSize() int { return c.v.GetInt("similarity.batch_size") }

// NumWorkers returns the number of parallel batch workers
func (c *Config) NumWorkers() int { return c.v.GetInt("performance.num_workers") }

// LogLevel returns the configured logging level
func (c *Config) LogLevel() string { return c.v.GetString("logging.level") }

// Set allows dynamic configuration changes
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// CreateLogger creates a zerolog logger based on config
func (c *Config) CreateLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("service", "similarity").Logger()
}
