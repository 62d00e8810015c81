package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", ":8081")
	t.Setenv("SPREADSHEET_ID", "sheet-123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.App.Port)
	assert.Equal(t, "Лист1", cfg.Report.ReportSheet)
	assert.Equal(t, "Лист2", cfg.Report.ReferenceSheet)
	assert.Equal(t, int64(0), cfg.Report.ReportSheetID)
	assert.Equal(t, "pdfs", cfg.Labels.OutputDir)
	assert.Equal(t, 60*time.Second, cfg.Labels.RenderTimeout)
	assert.Equal(t, 10000, cfg.Labels.MaxLabels)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/sheet-123", cfg.Report.SpreadsheetURL())
	assert.False(t, cfg.App.IsProd())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "Production")
	t.Setenv("LABEL_RENDER_TIMEOUT", "5s")
	t.Setenv("DATABASE_URL", "postgres://localhost/labels")
	t.Setenv("FORMULA_SEPARATOR", ",")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.App.IsProd())
	assert.Equal(t, 5*time.Second, cfg.Labels.RenderTimeout)
	assert.True(t, cfg.DB.Enabled())
	assert.Equal(t, ",", cfg.Report.FormulaSeparator)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("LABEL_RENDER_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)
}
