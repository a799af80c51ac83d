package config

import (
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	DatabaseURL     string   `env:"DATABASE_URL" env-required:"true"`
	ServicePort     string   `env:"SERVICE_PORT" env-default:"8080"`
	JWTSecretKey    string   `env:"JWT_SECRET_KEY" env-required:"true"`
	TCGdexBaseURL   string   `env:"TCGDEX_BASE_URL" env-default:"https://api.tcgdex.net/v2/en"`
	AnthropicAPIKey string   `env:"ANTHROPIC_API_KEY" env-default:""`
	RateLimit       int      `env:"RATE_LIMIT" env-default:"100"` // requests per minute per IP
	AllowedOrigins  []string `env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:5173"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
