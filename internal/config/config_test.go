package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WHATSAPP_TOKEN", "")
	t.Setenv("RATES_SHEET_ID", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "poultrymitra", cfg.MongoDB.DBName)
	assert.Equal(t, "Asia/Kolkata", cfg.Reporting.Timezone)
	assert.Equal(t, "Rates!A:D", cfg.Rates.SheetRange)
	assert.False(t, cfg.WhatsAppEnabled())
	assert.False(t, cfg.RatesSheetEnabled())
	assert.False(t, cfg.AIEnabled())
}

func TestLoadWhatsAppRequiresCompanions(t *testing.T) {
	t.Setenv("WHATSAPP_TOKEN", "token")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "")
	t.Setenv("META_VERIFY_TOKEN", "")

	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "12345")
	t.Setenv("META_VERIFY_TOKEN", "verify")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.WhatsAppEnabled())
}

func TestLoadRatesSheetRequiresCredentials(t *testing.T) {
	t.Setenv("WHATSAPP_TOKEN", "")
	t.Setenv("RATES_SHEET_ID", "sheet-1")
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "")

	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/etc/creds.json")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.RatesSheetEnabled())
}
