package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Storage
		Global
		Admin
		Seed
	}

	HTTP struct {
		Port int32
		Host string
	}
	Storage struct {
		BooksPath      string
		CategoriesPath string
		AdminDBPath    string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Admin struct {
		Username        string
		Password        string
		SessionSecret   string // CSRF protection is disabled when empty
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool // Set to false for local dev without HTTPS
	}
	Seed struct {
		SampleBooks int // Books generated when the collection file is absent
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("books_path", DefaultBooksPath)
	v.SetDefault("categories_path", DefaultCategoriesPath)
	v.SetDefault("admin_db_path", DefaultAdminDatabasePath)
	v.SetDefault("seed_sample_books", 10)

	// Admin console defaults
	v.SetDefault("admin_username", "admin")
	v.SetDefault("admin_password", "admin123")
	v.SetDefault("admin_session_secret", "") // CSRF off if empty
	v.SetDefault("admin_session_lifetime", "24h")
	v.SetDefault("admin_bcrypt_cost", 12)
	v.SetDefault("admin_secure_cookies", true)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Storage: Storage{
			BooksPath:      v.GetString("BOOKS_PATH"),
			CategoriesPath: v.GetString("CATEGORIES_PATH"),
			AdminDBPath:    v.GetString("ADMIN_DB_PATH"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Admin: Admin{
			Username:        v.GetString("ADMIN_USERNAME"),
			Password:        v.GetString("ADMIN_PASSWORD"),
			SessionSecret:   v.GetString("ADMIN_SESSION_SECRET"),
			SessionLifetime: v.GetDuration("ADMIN_SESSION_LIFETIME"),
			BcryptCost:      v.GetInt("ADMIN_BCRYPT_COST"),
			SecureCookies:   v.GetBool("ADMIN_SECURE_COOKIES"),
		},
		Seed: Seed{
			SampleBooks: v.GetInt("SEED_SAMPLE_BOOKS"),
		},
	}
}
