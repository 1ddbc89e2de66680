package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DB_NAME", "fieldservice_test")
	t.Setenv("MAIL_PROVIDER", MailProviderBrevo)
	t.Setenv("MAIL_SENDER", "service@arsonstech.example")
	t.Setenv("BREVO_API_KEY", "test-key")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "0 9 * * *", cfg.Reminder.CronSchedule)
	assert.Equal(t, "Asia/Kolkata", cfg.Reminder.Timezone)
}

func TestLoad_MissingSenderFails(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("MAIL_SENDER", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAIL_SENDER")
}

func TestLoad_BrevoRequiresAPIKey(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BREVO_API_KEY", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BREVO_API_KEY")
}

func TestLoad_GmailRequiresCredentialsPath(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("MAIL_PROVIDER", MailProviderGmail)
	t.Setenv("GMAIL_CREDENTIALS_PATH", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GMAIL_CREDENTIALS_PATH")
}

func TestLoad_UnknownProviderFails(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("MAIL_PROVIDER", "carrier-pigeon")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAIL_PROVIDER")
}

func TestLoad_CORSOriginsAreSplit(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.Server.AllowedOrigins)
}
