package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
// DATABASE_URL, REDIS_ADDR y LLM_API_KEY son opcionales: sin ellos el servicio
// corre con almacenamiento en memoria y sin explicador LLM.
type Config struct {
	HTTPPort         string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL      string `env:"DATABASE_URL"`
	LLMAPIKey        string `env:"LLM_API_KEY"`
	LLMBaseURL       string `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel         string `env:"LLM_MODEL" envDefault:"gpt-4"`
	RedisAddr        string `env:"REDIS_ADDR"`
	RedisPassword    string `env:"REDIS_PASSWORD"`
	RedisDB          int    `env:"REDIS_DB" envDefault:"0"`
	DataPath         string `env:"DATA_PATH"`
	DefaultFramework string `env:"DEFAULT_FRAMEWORK" envDefault:"EU_AI_ACT"`
	DecisionTTLHours int    `env:"DECISION_TTL_HOURS" envDefault:"24"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
