package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"mesa-boost/internal/config/configs"
)

// Config aggregates all configuration sections for the application. Fields
// are populated from environment variables using the caarlos0/env library.
// The nested structs are tagged with envPrefix so their fields are parsed
// with the given prefix. See the individual types in the configs package
// for default values. Use Load to construct a Config.
type Config struct {
	// Env specifies the deployment environment (e.g. prod, dev). It is
	// attached to every log record.
	Env string `env:"ENV" envDefault:"prod"`

	HTTP      configs.HTTP      `envPrefix:"HTTP_"`
	Log       configs.Logger    `envPrefix:"LOG_"`
	Psql      configs.Postgres  `envPrefix:"PSQL_"`
	Redis     configs.Redis     `envPrefix:"REDIS_"`
	Kafka     configs.Kafka     `envPrefix:"KAFKA_"`
	Boost     configs.Boost     `envPrefix:"BOOST_"`
	Pricing   configs.Pricing   `envPrefix:"PRICING_"`
	Scheduler configs.Scheduler `envPrefix:"SCHEDULER_"`
	Ranking   configs.Ranking   `envPrefix:"RANKING_"`
}

// Load reads configuration from environment variables into a Config.
// Variables from a .env file in the working directory are loaded first
// when the file exists; real environment variables take precedence.
func Load() (Config, error) {
	var cfg Config
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if cfg.Boost.StoreDriver != "postgres" && cfg.Boost.StoreDriver != "memory" {
		return cfg, errors.New("BOOST_STORE_DRIVER must be postgres or memory")
	}
	if cfg.Scheduler.Interval <= 0 || cfg.Scheduler.BatchSize <= 0 {
		return cfg, errors.New("scheduler interval and batch size must be positive")
	}
	return cfg, nil
}
