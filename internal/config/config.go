// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env on top.
// - External errors must be wrapped via this package's error sentinels.
package config

// Default configuration values.
const (
	defaultAddr         = ":8090"
	defaultMaxBodyBytes = 1 << 20 // 1 MiB request body cap
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// MaxBodyBytes caps the size of request bodies accepted by the API.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// SeedProducts seeds the products collection with sample rows on startup.
	SeedProducts bool `koanf:"seed_products"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		Addr:         defaultAddr,
		MaxBodyBytes: defaultMaxBodyBytes,
		SeedProducts: true,
	}
}
