package chinesewhispers

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config manages clustering configuration using Viper
type Config struct {
	v *viper.Viper
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	v := viper.New()

	// Ego network parameters
	v.SetDefault("clustering.max_edges", 200)
	v.SetDefault("clustering.max_connectivity", 200)

	// Propagation parameters
	v.SetDefault("clustering.max_iterations", 100)
	v.SetDefault("clustering.min_cluster", 5)

	// Performance parameters
	v.SetDefault("performance.num_workers", 4)

	// Logging parameters
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.progress_interval_ms", 1000)

	return &Config{v: v}
}

// LoadFromFile loads configuration from file
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

// MaxEdges returns the maximum neighbors considered per base node
func (c *Config) MaxEdges() int { return c.v.GetInt("clustering.max_edges") }

// MaxConnectivity returns the maximum edges each neighbor contributes to an
// ego network
func (c *Config) MaxConnectivity() int { return c.v.GetInt("clustering.max_connectivity") }

// MaxIterations returns the propagation sweep cap
func (c *Config) MaxIterations() int { return c.v.GetInt("clustering.max_iterations") }

// MinCluster returns the minimum member count for a cluster to be emitted
func (c *Config) MinCluster() int { return c.v.GetInt("clustering.min_cluster") }

// NumWorkers returns the number of clustering worker threads
func (c *Config) NumWorkers() int { return c.v.GetInt("performance.num_workers") }

// LogLevel returns the configured logging level
func (c *Config) LogLevel() string { return c.v.GetString("logging.level") }

// ProgressIntervalMS returns the progress poll interval in milliseconds
func (c *Config) ProgressIntervalMS() int { return c.v.GetInt("logging.progress_interval_ms") }

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
	}).Level(level).With().Timestamp().Str("service", "chinesewhispers").Logger()
}
