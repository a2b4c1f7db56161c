package main

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// listenHost is fixed; only the port is configurable.
const listenHost = "0.0.0.0"

type Config struct {
	SecretKey string `env:"SECRET_KEY,required,notEmpty"`
	DBURI     string `env:"DB_URI" envDefault:"sqlite:///posts.db"`
	Port      int    `env:"PORT" envDefault:"5000"`
	Env       string `env:"ENV" envDefault:"production"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`

	// Outgoing mail for the contact form. MailFrom doubles as the SMTP user.
	MailFrom string `env:"MAIL"`
	MailPass string `env:"PASSKEY"`
	MailTo   string `env:"MAIL_TO"`
	SMTPHost string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort int    `env:"SMTP_PORT" envDefault:"587"`

	// Seeds user 1 when the users table is empty.
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	AdminName     string `env:"ADMIN_NAME" envDefault:"Admin"`
}

// loadConfig reads an optional .env file and then the process environment.
func loadConfig() (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.MailTo == "" {
		cfg.MailTo = cfg.MailFrom
	}
	if len(cfg.AdminPassword) > maxPasswordBytes {
		return nil, fmt.Errorf("ADMIN_PASSWORD is longer than %d bytes", maxPasswordBytes)
	}
	if scheme, _, ok := strings.Cut(cfg.DBURI, "://"); ok && scheme != "sqlite" {
		return nil, fmt.Errorf("DB_URI: unsupported scheme %q, only sqlite:/// is supported", scheme)
	}
	return cfg, nil
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", listenHost, c.Port)
}

// DBPath strips the sqlite:/// scheme accepted in DB_URI.
func (c Config) DBPath() string {
	return strings.TrimPrefix(c.DBURI, "sqlite:///")
}

func (c Config) MailEnabled() bool {
	return c.MailFrom != "" && c.MailPass != "" && c.MailTo != ""
}
