package configs

import "time"

// Scheduler configures the expiry sweep.
type Scheduler struct {
	Enabled   bool          `env:"ENABLED" envDefault:"true"`
	Interval  time.Duration `env:"INTERVAL" envDefault:"30s"`
	BatchSize int           `env:"BATCH_SIZE" envDefault:"500"`
	// LeaseTTL should exceed the longest expected sweep.
	LeaseTTL time.Duration `env:"LEASE_TTL" envDefault:"25s"`
}

// Ranking configures the listing ranking cache.
type Ranking struct {
	CacheSize int           `env:"CACHE_SIZE" envDefault:"1024"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"3s"`
	// DefaultLimit caps rankings when the caller sets no limit.
	DefaultLimit int `env:"DEFAULT_LIMIT" envDefault:"100"`
}
