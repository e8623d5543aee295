package configs

// Redis configures the lease store used to keep one expiry sweep running
// across replicas. An empty Addr disables Redis and uses a process-local
// lease, which is only correct for a single replica.
type Redis struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}
