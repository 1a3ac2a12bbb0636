// Package config loads environment-based configuration into tagged structs.
//
// It combines godotenv (optional .env file for local development) with
// caarlos0/env struct parsing, and caches each configuration type so repeated
// loads across components are cheap and consistent.
//
//	type RenderConfig struct {
//		TemplatesDir string `env:"TEMPLATES_DIR" envDefault:"templates"`
//		BaseURL      string `env:"APP_BASE_URL" envDefault:"https://storybud.com"`
//	}
//
//	var cfg RenderConfig
//	config.MustLoad(&cfg)
package config
