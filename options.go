package strdex

import (
	"go.uber.org/zap"

	"github.com/kailas-cloud/strdex/internal/config"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	db        config.DatabaseConfig
	keyPrefix string

	maxBatchSize int
	workers      int

	logger *zap.Logger
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		db:        config.DatabaseConfig{Driver: config.DriverMemory},
		keyPrefix: "strdex:",
		logger:    zap.NewNop(),
	}
}

// WithMemory keeps records in process memory. This is the default.
func WithMemory() Option {
	return optionFunc(func(c *clientConfig) {
		c.db = config.DatabaseConfig{Driver: config.DriverMemory}
	})
}

// WithRedis stores records in Redis. A single address connects in standalone mode.
func WithRedis(password string, addrs ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.db = config.DatabaseConfig{Driver: config.DriverRedis, Addrs: addrs, Password: password}
	})
}

// WithValkey stores records in Valkey. A single address connects in standalone mode.
func WithValkey(password string, addrs ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.db = config.DatabaseConfig{Driver: config.DriverValkey, Addrs: addrs, Password: password}
	})
}

// WithBadger stores records in an embedded Badger database at path.
// An empty path opens Badger in memory.
func WithBadger(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.db = config.DatabaseConfig{Driver: config.DriverBadger, Path: path, InMemory: path == ""}
	})
}

// WithKeyPrefix sets the key namespace used by Redis and Valkey.
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithMaxBatchSize caps the number of values accepted by AddBatch.
func WithMaxBatchSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxBatchSize = n
	})
}

// WithWorkers sets the size of the analysis pool used by AddBatch.
func WithWorkers(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.workers = n
	})
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		if l != nil {
			c.logger = l
		}
	})
}
