package config

import "github.com/satancra/bookstore/pkg/config"

type ServiceConfig struct {
	config.Config
}

func Load() ServiceConfig {
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "cart"
	}

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmpty(cfg.BookURL, "BOOK_URL")
	config.MustNonEmpty(cfg.UserURL, "USER_URL")

	return ServiceConfig{Config: cfg}
}
