package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	defaults := defaultConfig()
	return &Config{
		API: APIConfig{
			Key:         "test-key",
			BaseURL:     "http://127.0.0.1:0/v2", // Tests point this at an httptest server
			Language:    "en",
			Country:     "us",
			PageSize:    20,
			HTTPTimeout: 5 * time.Second,
			UserAgent:   "newsdesk-test/1.0",
		},
		Database: DatabaseConfig{
			Path:    "",
			Timeout: 1 * time.Second,
		},
		UI: UIConfig{
			SearchDebounce:   10 * time.Millisecond,
			MinSearchLength:  3,
			ImagePlaceholder: defaults.UI.ImagePlaceholder,
			ImageUnavailable: defaults.UI.ImageUnavailable,
			Colors:           defaults.UI.Colors,
		},
		Browser: BrowserConfig{Opener: "true"},
		Log:     LogConfig{Level: "off"},
	}
}
