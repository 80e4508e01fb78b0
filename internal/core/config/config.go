package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"golang.org/x/text/language"

	"github.com/aevon-lab/salesboard/internal/core/storage"
)

// Record source types.
const (
	SourceParquet  = "parquet"
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

const envPrefix = "SALESBOARD_"

// Config represents the top-level application config.
type Config struct {
	Log      LogConfig      `koanf:"log"`
	Server   ServerConfig   `koanf:"server"`
	Source   SourceConfig   `koanf:"source"`
	Database DatabaseConfig `koanf:"database"`
	Report   ReportConfig   `koanf:"report"`
	Geo      GeoConfig      `koanf:"geo"`
}

type LogConfig struct {
	Level string `koanf:"level"` // debug | info | warn | error
}

type ServerConfig struct {
	Port int    `koanf:"port"`
	Host string `koanf:"host"`
	Mode string `koanf:"mode"` // debug | release
}

type SourceConfig struct {
	Type            string            `koanf:"type"`
	Path            string            `koanf:"path"`
	Delimiter       string            `koanf:"delimiter"` // csv only
	ExcludedRegions []string          `koanf:"excluded_regions"`
	Columns         storage.ColumnMap `koanf:"columns"`
}

type DatabaseConfig struct {
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

type ReportConfig struct {
	TopCategories    int     `koanf:"top_categories"`
	Percentile       float64 `koanf:"percentile"`
	CurrencySymbol   string  `koanf:"currency_symbol"`
	EmptyPlaceholder string  `koanf:"empty_placeholder"`
	Locale           string  `koanf:"locale"` // BCP 47 tag for digit grouping
	MaxPageSize      int     `koanf:"max_page_size"`
}

type GeoConfig struct {
	Enabled     bool          `koanf:"enabled"`
	URL         string        `koanf:"url"`
	FeatureKey  string        `koanf:"feature_key"`
	Timeout     time.Duration `koanf:"timeout"`
	AliasesFile string        `koanf:"aliases_file"`
}

// SlogLevel maps the configured level name to a slog.Level.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsSQL reports whether the source reads from a database table.
func (c SourceConfig) IsSQL() bool {
	return c.Type == SourcePostgres || c.Type == SourceSQLite
}

// DelimiterRune returns the CSV field separator.
func (c SourceConfig) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// LanguageTag returns the parsed report locale.
func (c ReportConfig) LanguageTag() language.Tag {
	return language.Make(c.Locale)
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q (must be debug, info, warn or error)", c.Log.Level)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	switch c.Source.Type {
	case SourceParquet, SourceCSV:
		if strings.TrimSpace(c.Source.Path) == "" {
			return fmt.Errorf("source.path is required for source.type %q", c.Source.Type)
		}
		if _, err := os.Stat(c.Source.Path); err != nil {
			return fmt.Errorf("source.path %q is not accessible: %w", c.Source.Path, err)
		}
	case SourcePostgres, SourceSQLite:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required for source.type %q", c.Source.Type)
		}
		if c.Database.MaxOpenConns <= 0 {
			return fmt.Errorf("database.max_open_conns must be > 0")
		}
		if c.Database.MaxIdleConns <= 0 {
			return fmt.Errorf("database.max_idle_conns must be > 0")
		}
	default:
		return fmt.Errorf("unsupported source.type %q", c.Source.Type)
	}
	if utf8.RuneCountInString(c.Source.Delimiter) != 1 {
		return fmt.Errorf("source.delimiter must be a single character, got %q", c.Source.Delimiter)
	}
	if len(c.Source.ExcludedRegions) == 0 {
		return fmt.Errorf("source.excluded_regions must list at least one region")
	}
	for _, r := range c.Source.ExcludedRegions {
		if strings.TrimSpace(r) == "" {
			return fmt.Errorf("source.excluded_regions contains a blank region")
		}
	}
	if err := c.Source.Columns.Validate(); err != nil {
		return fmt.Errorf("source.columns: %w", err)
	}

	if c.Report.TopCategories <= 0 {
		return fmt.Errorf("report.top_categories must be > 0")
	}
	if c.Report.Percentile <= 0 || c.Report.Percentile > 1 {
		return fmt.Errorf("report.percentile must be in (0, 1], got %v", c.Report.Percentile)
	}
	if c.Report.MaxPageSize <= 0 {
		return fmt.Errorf("report.max_page_size must be > 0")
	}
	if _, err := language.Parse(c.Report.Locale); err != nil {
		return fmt.Errorf("invalid report.locale %q: %w", c.Report.Locale, err)
	}

	if c.Geo.Enabled {
		u, err := url.Parse(c.Geo.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("invalid geo.url %q (must be an http(s) URL)", c.Geo.URL)
		}
		if strings.TrimSpace(c.Geo.FeatureKey) == "" {
			return fmt.Errorf("geo.feature_key is required")
		}
		if c.Geo.Timeout <= 0 {
			return fmt.Errorf("geo.timeout must be > 0")
		}
	}

	return nil
}

func defaults() map[string]interface{} {
	cols := storage.DefaultColumns()
	return map[string]interface{}{
		"log.level":                     "info",
		"server.port":                   8080,
		"server.host":                   "0.0.0.0",
		"server.mode":                   "release",
		"source.type":                   SourceParquet,
		"source.path":                   "./data/dataset_tratado.parquet",
		"source.delimiter":              ",",
		"source.excluded_regions":       []string{"Desconhecido", "Unknown"},
		"source.columns.order_id":       cols.OrderID,
		"source.columns.product_name":   cols.ProductName,
		"source.columns.category":       cols.Category,
		"source.columns.customer_name":  cols.CustomerName,
		"source.columns.email":          cols.Email,
		"source.columns.region":         cols.Region,
		"source.columns.sale_date":      cols.SaleDate,
		"source.columns.sale_year":      cols.SaleYear,
		"source.columns.sale_month":     cols.SaleMonth,
		"source.columns.quantity":       cols.Quantity,
		"source.columns.unit_price":     cols.UnitPrice,
		"source.columns.total_value":    cols.TotalValue,
		"source.columns.payment_method": cols.PaymentMethod,
		"database.dsn":                  "",
		"database.max_open_conns":       10,
		"database.max_idle_conns":       10,
		"database.auto_migrate":         true,
		"report.top_categories":         10,
		"report.percentile":             0.95,
		"report.currency_symbol":        "R$",
		"report.empty_placeholder":      "N/A",
		"report.locale":                 "en",
		"report.max_page_size":          500,
		"geo.enabled":                   true,
		"geo.url":                       "https://raw.githubusercontent.com/codeforamerica/click_that_hood/master/public/data/brazil-states.geojson",
		"geo.feature_key":               "sigla",
		"geo.timeout":                   "10s",
		"geo.aliases_file":              "",
	}
}

// Load parses config from defaults, file and env, then validates it.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	for key, value := range defaults() {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
