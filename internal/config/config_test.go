package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managedKeys = []string{
	"APP_PORT", "LOG_LEVEL", "STORAGE_DRIVER", "MONGODB_URI", "MONGODB_DB_NAME", "WATER_GOAL_ML",
	"SWEEP_CRON_SCHEDULE", "DIGEST_CRON_SCHEDULE", "TIMEZONE", "REPORT_RECIPIENTS",
	"WHATSAPP_TOKEN", "WHATSAPP_PHONE_NUMBER_ID", "WHATSAPP_VERIFY_TOKEN", "WHATSAPP_BASE_URL", "WHATSAPP_API_VERSION",
	"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_DATABASE_ID", "GOOGLE_SHEET_RANGE",
}

// clearEnv blanks every key so a developer's environment cannot leak in;
// t.Setenv restores the previous values after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range managedKeys {
		t.Setenv(key, "")
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverMongoDB, cfg.Storage.Driver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.Equal(t, 2000, cfg.Hydration.DefaultGoalMl)
	assert.Equal(t, "UTC", cfg.Reporting.Timezone)
	assert.Empty(t, cfg.Reporting.Recipients)
	assert.False(t, cfg.WhatsApp.Enabled())
	assert.False(t, cfg.WhatsApp.WebhookEnabled())
	assert.False(t, cfg.Sheets.Enabled())
	assert.Equal(t, "Summaries!A:I", cfg.Sheets.Range)
}

func TestLoad_FromEnvFile(t *testing.T) {
	clearEnv(t)
	for _, key := range managedKeys {
		// godotenv never overrides variables that are already set, even to "".
		require.NoError(t, os.Unsetenv(key))
	}

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"STORAGE_DRIVER=MEMORY\nWATER_GOAL_ML=2500\nTIMEZONE=Europe/Paris\nREPORT_RECIPIENTS=5:224600000001, 7\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	for _, key := range managedKeys {
		require.NoError(t, os.Unsetenv(key))
	}

	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 2500, cfg.Hydration.DefaultGoalMl)
	assert.Equal(t, []Recipient{{UserID: 5, Phone: "224600000001"}, {UserID: 7}}, cfg.Reporting.Recipients)
	assert.Equal(t, map[string]int64{"224600000001": 5}, cfg.Reporting.PhoneDirectory())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", loc.String())
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad goal", map[string]string{"WATER_GOAL_ML": "lots"}},
		{"negative goal", map[string]string{"WATER_GOAL_ML": "-1"}},
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "postgres"}},
		{"bad timezone", map[string]string{"TIMEZONE": "Mars/Olympus"}},
		{"bad recipients", map[string]string{"REPORT_RECIPIENTS": "abc:123"}},
		{"whatsapp without phone id", map[string]string{"WHATSAPP_TOKEN": "t"}},
		{"sheets without credentials", map[string]string{"GOOGLE_SHEET_DATABASE_ID": "sheet"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load(missingEnvFile(t))
			assert.Error(t, err)
		})
	}
}

func TestParseRecipients(t *testing.T) {
	recipients, err := ParseRecipients(" 1:111 ,, 2 ")
	require.NoError(t, err)
	assert.Equal(t, []Recipient{{UserID: 1, Phone: "111"}, {UserID: 2}}, recipients)

	_, err = ParseRecipients("0:111")
	assert.Error(t, err)
}
