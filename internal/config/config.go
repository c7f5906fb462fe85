package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DatabaseURL      string
	SessionSecret    string
	SecureCookie     bool
	TrustProxy       bool
	AllowedOrigins   []string
	RabbitMQURL      string
	RedisAddr        string
	RedisPassword    string
	SMTPHost         string
	SMTPPort         int
	SMTPUser         string
	SMTPPass         string
	MailFrom         string
	SalesNotifyEmail string
	AdminURL         string
	SentryDSN        string
	Environment      string
	AdminStaticDir   string
	LeadRateLimit    int
	AutoMigrate      bool
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("⚠️ Não foi possível ler .env: %v", err)
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:             get("PORT", "8080"),
		DatabaseURL:      get("DATABASE_URL", ""),
		SessionSecret:    getenv("SESSION_SECRET"),
		RabbitMQURL:      get("RABBITMQ_URL", ""),
		RedisAddr:        get("REDIS_ADDR", ""),
		RedisPassword:    getenv("REDIS_PASSWORD"),
		SMTPHost:         get("SMTP_HOST", ""),
		SMTPUser:         get("SMTP_USER", ""),
		SMTPPass:         getenv("SMTP_PASS"),
		MailFrom:         get("MAIL_FROM", "no-reply@capacita.mx"),
		SalesNotifyEmail: get("SALES_NOTIFY_EMAIL", ""),
		AdminURL:         strings.TrimRight(get("ADMIN_URL", ""), "/"),
		SentryDSN:        get("SENTRY_DSN", ""),
		Environment:      get("APP_ENV", "development"),
		AdminStaticDir:   get("ADMIN_STATIC_DIR", ""),
	}

	for _, o := range strings.Split(get("ALLOWED_ORIGINS", "http://localhost:5173"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	var err error
	if cfg.SMTPPort, err = strconv.Atoi(get("SMTP_PORT", "587")); err != nil {
		return nil, fmt.Errorf("SMTP_PORT inválido: %w", err)
	}
	if cfg.LeadRateLimit, err = strconv.Atoi(get("LEAD_RATE_LIMIT", "10")); err != nil || cfg.LeadRateLimit <= 0 {
		return nil, fmt.Errorf("LEAD_RATE_LIMIT inválido: %q", getenv("LEAD_RATE_LIMIT"))
	}
	if cfg.SecureCookie, err = strconv.ParseBool(get("SESSION_SECURE_COOKIE", "false")); err != nil {
		return nil, fmt.Errorf("SESSION_SECURE_COOKIE inválido: %w", err)
	}
	if cfg.TrustProxy, err = strconv.ParseBool(get("TRUST_PROXY", "false")); err != nil {
		return nil, fmt.Errorf("TRUST_PROXY inválido: %w", err)
	}
	if cfg.AutoMigrate, err = strconv.ParseBool(get("AUTO_MIGRATE", "true")); err != nil {
		return nil, fmt.Errorf("AUTO_MIGRATE inválido: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL é obrigatório")
	}
	if len(cfg.SessionSecret) < 32 {
		return nil, errors.New("SESSION_SECRET deve ter pelo menos 32 bytes")
	}

	return cfg, nil
}

// MailEnabled reports whether lead notifications can be sent.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SalesNotifyEmail != ""
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
