package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Database DatabaseConfig `mapstructure:"database"`
	UI       UIConfig       `mapstructure:"ui"`
	Browser  BrowserConfig  `mapstructure:"browser"`
	Log      LogConfig      `mapstructure:"log"`
}

type APIConfig struct {
	Key         string        `mapstructure:"key"`
	BaseURL     string        `mapstructure:"base_url"`
	Language    string        `mapstructure:"language"`
	Country     string        `mapstructure:"country"`
	PageSize    int           `mapstructure:"page_size"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
}

type DatabaseConfig struct {
	Path    string        `mapstructure:"path"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type UIConfig struct {
	SearchDebounce    time.Duration `mapstructure:"search_debounce"`
	MinSearchLength   int           `mapstructure:"min_search_length"`
	RestoreLastFilter bool          `mapstructure:"restore_last_filter"`
	ImagePlaceholder  string        `mapstructure:"image_placeholder"`
	ImageUnavailable  string        `mapstructure:"image_unavailable"`
	CategoriesFile    string        `mapstructure:"categories_file"`
	Colors            UIColors      `mapstructure:"colors"`
}

type UIColors struct {
	Primary   string `mapstructure:"primary"`
	Secondary string `mapstructure:"secondary"`
	Accent    string `mapstructure:"accent"`
	Text      string `mapstructure:"text"`
	Muted     string `mapstructure:"muted"`
	Error     string `mapstructure:"error"`
}

type BrowserConfig struct {
	// Opener overrides the platform default command used to open links.
	Opener string `mapstructure:"opener"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".newsdesk", "newsdesk.db")

	return &Config{
		API: APIConfig{
			BaseURL:     "https://newsapi.org/v2",
			Language:    "en",
			Country:     "us",
			PageSize:    20,
			HTTPTimeout: 15 * time.Second,
			UserAgent:   "newsdesk/1.0 (https://github.com/pders01/newsdesk)",
		},
		Database: DatabaseConfig{
			Path:    dbPath,
			Timeout: 1 * time.Second,
		},
		UI: UIConfig{
			SearchDebounce:   300 * time.Millisecond,
			MinSearchLength:  3,
			ImagePlaceholder: "https://via.placeholder.com/400x200/667eea/ffffff?text=News+Image",
			ImageUnavailable: "https://via.placeholder.com/400x200/667eea/ffffff?text=Image+Not+Available",
			CategoriesFile:   filepath.Join(DefaultDir(), "categories.toml"),
			Colors: UIColors{
				Primary:   "#667EEA",
				Secondary: "#4ECDC4",
				Accent:    "#95E1D3",
				Text:      "#EAEAEA",
				Muted:     "#94A3B8",
				Error:     "#F87171",
			},
		},
		Browser: BrowserConfig{
			Opener: getDefaultOpener(),
		},
		Log: LogConfig{
			Level: "off",
		},
	}
}

func getDefaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "linux":
		return "xdg-open"
	case "windows":
		return "rundll32"
	default:
		return "xdg-open"
	}
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v, defaultConfig())

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(DefaultDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("NEWSDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("api.key", "NEWSDESK_API_KEY", "NEWSAPI_KEY"); err != nil {
		return nil, fmt.Errorf("binding api key: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	expandPaths(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults registers every leaf key so that env overrides and partial
// config files merge with the defaults instead of replacing whole sections.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.key", cfg.API.Key)
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.language", cfg.API.Language)
	v.SetDefault("api.country", cfg.API.Country)
	v.SetDefault("api.page_size", cfg.API.PageSize)
	v.SetDefault("api.http_timeout", cfg.API.HTTPTimeout)
	v.SetDefault("api.user_agent", cfg.API.UserAgent)

	v.SetDefault("database.path", cfg.Database.Path)
	v.SetDefault("database.timeout", cfg.Database.Timeout)

	v.SetDefault("ui.search_debounce", cfg.UI.SearchDebounce)
	v.SetDefault("ui.min_search_length", cfg.UI.MinSearchLength)
	v.SetDefault("ui.restore_last_filter", cfg.UI.RestoreLastFilter)
	v.SetDefault("ui.image_placeholder", cfg.UI.ImagePlaceholder)
	v.SetDefault("ui.image_unavailable", cfg.UI.ImageUnavailable)
	v.SetDefault("ui.categories_file", cfg.UI.CategoriesFile)
	v.SetDefault("ui.colors.primary", cfg.UI.Colors.Primary)
	v.SetDefault("ui.colors.secondary", cfg.UI.Colors.Secondary)
	v.SetDefault("ui.colors.accent", cfg.UI.Colors.Accent)
	v.SetDefault("ui.colors.text", cfg.UI.Colors.Text)
	v.SetDefault("ui.colors.muted", cfg.UI.Colors.Muted)
	v.SetDefault("ui.colors.error", cfg.UI.Colors.Error)

	v.SetDefault("browser.opener", cfg.Browser.Opener)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
}

// Validate rejects settings that would produce malformed API requests.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url must be an http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.PageSize <= 0 || c.API.PageSize > 100 {
		return fmt.Errorf("api.page_size must be between 1 and 100, got %d", c.API.PageSize)
	}
	if c.UI.SearchDebounce < 0 {
		return fmt.Errorf("ui.search_debounce must not be negative")
	}
	return nil
}

// DefaultDir is the directory searched for config.toml.
func DefaultDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "newsdesk")
}

// DefaultPath is where `config generate` writes.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.toml")
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func expandPaths(cfg *Config) {
	cfg.Database.Path = expandPath(cfg.Database.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.UI.CategoriesFile = expandPath(cfg.UI.CategoriesFile)
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Durations are written as strings so the TOML stays readable
	apiCfg := map[string]interface{}{
		"key":          config.API.Key,
		"base_url":     config.API.BaseURL,
		"language":     config.API.Language,
		"country":      config.API.Country,
		"page_size":    config.API.PageSize,
		"http_timeout": config.API.HTTPTimeout.String(),
		"user_agent":   config.API.UserAgent,
	}

	dbCfg := map[string]interface{}{
		"path":    config.Database.Path,
		"timeout": config.Database.Timeout.String(),
	}

	uiCfg := map[string]interface{}{
		"search_debounce":     config.UI.SearchDebounce.String(),
		"min_search_length":   config.UI.MinSearchLength,
		"restore_last_filter": config.UI.RestoreLastFilter,
		"image_placeholder":   config.UI.ImagePlaceholder,
		"image_unavailable":   config.UI.ImageUnavailable,
		"categories_file":     config.UI.CategoriesFile,
		"colors": map[string]interface{}{
			"primary":   config.UI.Colors.Primary,
			"secondary": config.UI.Colors.Secondary,
			"accent":    config.UI.Colors.Accent,
			"text":      config.UI.Colors.Text,
			"muted":     config.UI.Colors.Muted,
			"error":     config.UI.Colors.Error,
		},
	}

	v.Set("api", apiCfg)
	v.Set("database", dbCfg)
	v.Set("ui", uiCfg)
	v.Set("browser", map[string]interface{}{"opener": config.Browser.Opener})
	v.Set("log", map[string]interface{}{"level": config.Log.Level, "file": config.Log.File})

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
