package db

import "time"

// Driver names accepted in DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Driver            string        `env:"DB_DRIVER" envDefault:"sqlite"`
	URL               string        `env:"DB_URL" envDefault:"file:library.db"`
	MaxOpenConns      int32         `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MinConns          int32         `env:"DB_MIN_CONNS" envDefault:"2"`
	HealthCheckPeriod time.Duration `env:"DB_HEALTHCHECK_PERIOD" envDefault:"1m"`
	MaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"30m"`

	RetryAttempts int           `env:"DB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"DB_RETRY_INTERVAL" envDefault:"2s"`
}
