package configs

import "time"

// Boost holds admission policy and timeouts.
type Boost struct {
	// StoreDriver selects "postgres" or "memory" adapters.
	StoreDriver     string        `env:"STORE_DRIVER" envDefault:"postgres"`
	MinCompleteness int           `env:"MIN_COMPLETENESS" envDefault:"60"`
	DailyBoostLimit int           `env:"DAILY_LIMIT" envDefault:"3"`
	PurchaseTimeout time.Duration `env:"PURCHASE_TIMEOUT" envDefault:"5s"`
	// CompensationTimeout bounds the refund credit issued after a failed
	// commit. It runs detached from the request context.
	CompensationTimeout time.Duration `env:"COMPENSATION_TIMEOUT" envDefault:"10s"`
}
