package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// StorageDriver selects the repository backend: "memory" or "mongo".
	StorageDriver string `env:"STORAGE_DRIVER, default=memory"`

	Mongo MongoConfig
	Redis RedisConfig
	Loan  LoanConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=library_system"`
}

type RedisConfig struct {
	// Addr empty disables Redis (no report cache).
	Addr     string `env:"REDIS_ADDR"`
	DB       int    `env:"REDIS_DB,        default=0"`
	PoolSize int    `env:"REDIS_POOL_SIZE, default=10"`
}

type LoanConfig struct {
	PeriodDays    int           `env:"LOAN_PERIOD_DAYS,       default=14"`
	SweepInterval time.Duration `env:"OVERDUE_SWEEP_INTERVAL, default=1h"`
	NoticeWorkers int           `env:"NOTICE_WORKERS,         default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
