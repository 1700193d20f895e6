// Package config holds the run configuration shared by the CLI and GUI
// front ends.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Browser choices understood by the session layer. "custom" requires
// BrowserPath to point at an existing Chromium-family executable.
const (
	BrowserChrome   = "chrome"
	BrowserChromium = "chromium"
	BrowserEdge     = "edge"
	BrowserBrave    = "brave"
	BrowserCustom   = "custom"
)

// KnownBrowsers lists the accepted values for the browser setting.
var KnownBrowsers = []string{BrowserChrome, BrowserChromium, BrowserEdge, BrowserBrave, BrowserCustom}

// Config stores all settings for one run. It is read before the run starts
// and never mutated while a run is in progress.
type Config struct {
	LinksFile   string `mapstructure:"links_file"`
	DownloadDir string `mapstructure:"download_dir"`
	Selector    string `mapstructure:"selector"`

	// MaxRetries is the number of retries after the first attempt, so every
	// target gets MaxRetries+1 attempts. 0 disables retrying.
	MaxRetries int `mapstructure:"max_retries"`

	DelaySeconds           int  `mapstructure:"delay_seconds"`
	PageTimeoutSeconds     int  `mapstructure:"page_timeout_seconds"`
	DownloadTimeoutSeconds int  `mapstructure:"download_timeout_seconds"`
	Headless               bool `mapstructure:"headless"`

	Browser     string `mapstructure:"browser"`
	BrowserPath string `mapstructure:"browser_path"`
}

// Default values, matching the GUI settings form.
const (
	DefaultSelector               = "button.download-btn"
	DefaultMaxRetries             = 2
	DefaultDelaySeconds           = 2
	DefaultPageTimeoutSeconds     = 30
	DefaultDownloadTimeoutSeconds = 60
	DefaultBrowser                = BrowserChrome
)

// Default returns a Config populated with default values. The links file and
// download directory are left to the caller.
func Default() *Config {
	return &Config{
		LinksFile:              "links.txt",
		DownloadDir:            "downloads",
		Selector:               DefaultSelector,
		MaxRetries:             DefaultMaxRetries,
		DelaySeconds:           DefaultDelaySeconds,
		PageTimeoutSeconds:     DefaultPageTimeoutSeconds,
		DownloadTimeoutSeconds: DefaultDownloadTimeoutSeconds,
		Browser:                DefaultBrowser,
	}
}

// Load reads configuration from the given file (optional) and environment
// variables prefixed with WEBGRAB_. The returned config is validated.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("WEBGRAB")
	v.AutomaticEnv()

	v.SetDefault("links_file", "links.txt")
	v.SetDefault("download_dir", "downloads")
	v.SetDefault("selector", DefaultSelector)
	v.SetDefault("max_retries", DefaultMaxRetries)
	v.SetDefault("delay_seconds", DefaultDelaySeconds)
	v.SetDefault("page_timeout_seconds", DefaultPageTimeoutSeconds)
	v.SetDefault("download_timeout_seconds", DefaultDownloadTimeoutSeconds)
	v.SetDefault("headless", false)
	v.SetDefault("browser", DefaultBrowser)
	v.SetDefault("browser_path", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every setting and returns a descriptive error for the
// first invalid one. Invalid values never fall back to defaults silently.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Selector) == "" {
		return fmt.Errorf("config: selector must not be empty")
	}
	if strings.TrimSpace(c.DownloadDir) == "" {
		return fmt.Errorf("config: download_dir must not be empty")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("config: max_retries must be >= 0, got %d", c.MaxRetries)
	}
	if c.DelaySeconds < 0 {
		return fmt.Errorf("config: delay_seconds must be >= 0, got %d", c.DelaySeconds)
	}
	if c.PageTimeoutSeconds <= 0 {
		return fmt.Errorf("config: page_timeout_seconds must be > 0, got %d", c.PageTimeoutSeconds)
	}
	if c.DownloadTimeoutSeconds <= 0 {
		return fmt.Errorf("config: download_timeout_seconds must be > 0, got %d", c.DownloadTimeoutSeconds)
	}

	known := false
	for _, b := range KnownBrowsers {
		if c.Browser == b {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("config: browser must be one of %s, got %q",
			strings.Join(KnownBrowsers, "|"), c.Browser)
	}
	if c.Browser == BrowserCustom {
		if c.BrowserPath == "" {
			return fmt.Errorf("config: browser_path is required when browser=custom")
		}
		if _, err := os.Stat(c.BrowserPath); err != nil {
			return fmt.Errorf("config: browser_path %q: %w", c.BrowserPath, err)
		}
	}
	return nil
}

// Delay is the pause between targets and between retry attempts.
func (c *Config) Delay() time.Duration {
	return time.Duration(c.DelaySeconds) * time.Second
}

// PageTimeout bounds navigation plus the page-ready wait.
func (c *Config) PageTimeout() time.Duration {
	return time.Duration(c.PageTimeoutSeconds) * time.Second
}

// DownloadTimeout bounds the wait for a triggered download to complete.
func (c *Config) DownloadTimeout() time.Duration {
	return time.Duration(c.DownloadTimeoutSeconds) * time.Second
}

// MaxAttempts is the total attempt budget per target.
func (c *Config) MaxAttempts() int {
	return c.MaxRetries + 1
}
