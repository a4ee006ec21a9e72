package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config is the process configuration, sourced from the environment with an
// optional .env bootstrap for local development.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	PostgresDSN string `env:"POSTGRES_DSN" envDefault:"host=localhost user=user password=password dbname=skillsexchange port=5432 sslmode=disable"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// JWTSecret is shared with the external auth service that issues the
	// tokens this service verifies.
	JWTSecret string `env:"JWT_SECRET,required"`
}

// Load reads .env if present, then parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
