package configs

// Kafka configures the lifecycle event producer. With no brokers events
// are written to the log instead.
type Kafka struct {
	Brokers []string `env:"BROKERS" envSeparator:","`
	Topic   string   `env:"TOPIC" envDefault:"boost.events"`
}
