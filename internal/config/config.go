package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

// Config is the full service configuration, read from the environment.
type Config struct {
	Env  string     `env:"TAREAS_ENV" env-default:"local"`
	HTTP HTTPConfig `env-prefix:"TAREAS_HTTP_"`
	DB   DBConfig   `env-prefix:"TAREAS_DB_"`
}

type HTTPConfig struct {
	Host            string        `env:"HOST" env-default:""`
	Port            string        `env:"PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type DBConfig struct {
	Path string `env:"PATH" env-default:"tareas.db"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
