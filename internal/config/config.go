// Package config содержит логику чтения конфигурации сервиса заказов Sentir.
package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config содержит параметры конфигурации сервиса заказов Sentir.
type Config struct {
	RunAddress   string   `env:"RUN_ADDRESS"`
	DatabaseURI  string   `env:"DATABASE_URI"`
	ResendAPIKey string   `env:"RESEND_API_KEY"`
	FromEmail    string   `env:"FROM_EMAIL"`
	AdminEmails  []string `env:"ADMIN_EMAILS" envSeparator:","`
	ExportSecret string   `env:"EXPORT_SECRET"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных
// окружения. Локальный .env, если он есть, подгружается до разбора.
func Parse() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}

	cfg.AdminEmails = normalizeEmails(cfg.AdminEmails)
	cfg.ExportSecret = strings.TrimSpace(cfg.ExportSecret)

	return cfg, nil
}

func normalizeEmails(in []string) []string {
	out := make([]string, 0, len(in))
	for _, e := range in {
		if trimmed := strings.TrimSpace(e); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Diagnostics описывает наличие обязательных настроек без раскрытия значений.
type Diagnostics struct {
	DatabaseURI      bool `json:"databaseUri"`
	ResendAPIKey     bool `json:"resendApiKey"`
	FromEmail        bool `json:"fromEmail"`
	AdminEmailsCount int  `json:"adminEmailsCount"`
	ExportSecret     bool `json:"exportSecret"`
}

// Diagnostics возвращает отчёт о заполненности конфигурации.
// Сами значения никогда не возвращаются.
func (c *Config) Diagnostics() Diagnostics {
	return Diagnostics{
		DatabaseURI:      c.DatabaseURI != "",
		ResendAPIKey:     c.ResendAPIKey != "",
		FromEmail:        c.FromEmail != "",
		AdminEmailsCount: len(c.AdminEmails),
		ExportSecret:     c.ExportSecret != "",
	}
}
