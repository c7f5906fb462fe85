package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

const secret = "0123456789abcdef0123456789abcdef"

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"DATABASE_URL":   "postgres://localhost/crm",
		"SESSION_SECRET": secret,
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, 10, cfg.LeadRateLimit)
	assert.True(t, cfg.AutoMigrate)
	assert.False(t, cfg.SecureCookie)
	assert.False(t, cfg.TrustProxy)
	assert.False(t, cfg.MailEnabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"DATABASE_URL":          "postgres://localhost/crm",
		"SESSION_SECRET":        secret,
		"PORT":                  "9000",
		"ALLOWED_ORIGINS":       "https://capacita.mx, https://admin.capacita.mx ,",
		"SESSION_SECURE_COOKIE": "true",
		"TRUST_PROXY":           "true",
		"LEAD_RATE_LIMIT":       "3",
		"SMTP_HOST":             "smtp.capacita.mx",
		"SALES_NOTIFY_EMAIL":    "ventas@capacita.mx",
		"ADMIN_URL":             "https://capacita.mx/admin/",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, []string{"https://capacita.mx", "https://admin.capacita.mx"}, cfg.AllowedOrigins)
	assert.True(t, cfg.SecureCookie)
	assert.True(t, cfg.TrustProxy)
	assert.Equal(t, 3, cfg.LeadRateLimit)
	assert.True(t, cfg.MailEnabled())
	assert.Equal(t, "https://capacita.mx/admin", cfg.AdminURL)
}

func TestFromEnv_RequiredValues(t *testing.T) {
	_, err := FromEnv(envOf(map[string]string{"SESSION_SECRET": secret}))
	assert.ErrorContains(t, err, "DATABASE_URL")

	_, err = FromEnv(envOf(map[string]string{"DATABASE_URL": "x", "SESSION_SECRET": "short"}))
	assert.ErrorContains(t, err, "SESSION_SECRET")

	_, err = FromEnv(envOf(map[string]string{"DATABASE_URL": "x", "SESSION_SECRET": secret, "LEAD_RATE_LIMIT": "0"}))
	assert.ErrorContains(t, err, "LEAD_RATE_LIMIT")
}
