package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const AppEnvProd = "production"

type Config struct {
	App    AppConfig
	Google GoogleConfig
	Report ReportConfig
	Labels LabelsConfig
	DB     DBConfig
}

// Load reads the configuration from the environment. .env files are loaded by main.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.App.Port = strings.TrimPrefix(strings.TrimSpace(cfg.App.Port), ":")
	return &cfg, nil
}

type AppConfig struct {
	Env           string `envconfig:"APP_ENV" default:"development"`
	Port          string `envconfig:"PORT" default:"3000"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat     string `envconfig:"LOG_FORMAT" default:"json"`
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL"`
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type GoogleConfig struct {
	CredentialsPath string `envconfig:"GOOGLE_APPLICATION_CREDENTIALS"`
	CredentialsJSON string `envconfig:"GOOGLE_APPLICATION_CREDENTIALS_JSON"`
}

// HasCredentials reports whether either credential source is configured.
func (g GoogleConfig) HasCredentials() bool {
	return g.CredentialsJSON != "" || g.CredentialsPath != ""
}

type ReportConfig struct {
	SpreadsheetID     string `envconfig:"SPREADSHEET_ID"`
	ReportSheet       string `envconfig:"REPORT_SHEET" default:"Лист1"`
	ReportSheetID     int64  `envconfig:"REPORT_SHEET_ID" default:"0"`
	ReferenceSheet    string `envconfig:"REFERENCE_SHEET" default:"Лист2"`
	Title             string `envconfig:"REPORT_TITLE" default:"ПОСТАВКА (К)"`
	ProductURLBase    string `envconfig:"PRODUCT_URL_BASE" default:"https://www.flip.kz/catalog?prod="`
	HyperlinkFunction string `envconfig:"HYPERLINK_FUNCTION" default:"HYPERLINK"`
	FormulaSeparator  string `envconfig:"FORMULA_SEPARATOR" default:";"`
}

// SpreadsheetURL is the stable link returned to clients after an export.
func (r ReportConfig) SpreadsheetURL() string {
	return "https://docs.google.com/spreadsheets/d/" + r.SpreadsheetID
}

type LabelsConfig struct {
	OutputDir     string        `envconfig:"LABEL_OUTPUT_DIR" default:"pdfs"`
	ChromePath    string        `envconfig:"CHROME_PATH"`
	RenderTimeout time.Duration `envconfig:"LABEL_RENDER_TIMEOUT" default:"60s"`
	MaxLabels     int           `envconfig:"LABEL_MAX_COUNT" default:"10000"`
}

type DBConfig struct {
	URL string `envconfig:"DATABASE_URL"`
}

// Enabled reports whether the label document ledger should be used.
func (d DBConfig) Enabled() bool {
	return strings.TrimSpace(d.URL) != ""
}
