package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/webgrab/webgrab/internal/config"
)

func TestSettingsDefaults(t *testing.T) {
	app := test.NewApp()
	s := NewSettings(app)

	if s.Selector() != config.DefaultSelector {
		t.Errorf("Selector() = %q, want %q", s.Selector(), config.DefaultSelector)
	}
	if s.MaxRetries() != config.DefaultMaxRetries {
		t.Errorf("MaxRetries() = %d, want %d", s.MaxRetries(), config.DefaultMaxRetries)
	}
	if s.Browser() != config.DefaultBrowser {
		t.Errorf("Browser() = %q, want %q", s.Browser(), config.DefaultBrowser)
	}
	if s.Headless() {
		t.Error("Headless() should default to false")
	}
	if s.DownloadDir() == "" {
		t.Error("DownloadDir() should never be empty")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	app := test.NewApp()
	s := NewSettings(app)

	s.SetSelector("a.download-link")
	s.SetMaxRetries(5)
	s.SetDelaySeconds(7)
	s.SetHeadless(true)
	s.SetBrowser(config.BrowserBrave)
	s.SetDownloadDir("/data/grabs")
	s.SetURLList("https://a.example\nhttps://b.example\n")

	if s.Selector() != "a.download-link" {
		t.Errorf("Selector() = %q", s.Selector())
	}
	if s.MaxRetries() != 5 {
		t.Errorf("MaxRetries() = %d", s.MaxRetries())
	}
	if s.DelaySeconds() != 7 {
		t.Errorf("DelaySeconds() = %d", s.DelaySeconds())
	}
	if !s.Headless() {
		t.Error("Headless() should be true")
	}
	if s.Browser() != config.BrowserBrave {
		t.Errorf("Browser() = %q", s.Browser())
	}
	if s.DownloadDir() != "/data/grabs" {
		t.Errorf("DownloadDir() = %q", s.DownloadDir())
	}
	if s.URLList() != "https://a.example\nhttps://b.example\n" {
		t.Errorf("URLList() = %q", s.URLList())
	}
}

func TestSettingsClamping(t *testing.T) {
	app := test.NewApp()
	s := NewSettings(app)

	s.SetMaxRetries(-2)
	if s.MaxRetries() != 0 {
		t.Errorf("MaxRetries() = %d, want clamp to 0", s.MaxRetries())
	}
	s.SetPageTimeoutSeconds(0)
	if s.PageTimeoutSeconds() != 1 {
		t.Errorf("PageTimeoutSeconds() = %d, want clamp to 1", s.PageTimeoutSeconds())
	}
	s.SetDownloadTimeoutSeconds(-10)
	if s.DownloadTimeoutSeconds() != 1 {
		t.Errorf("DownloadTimeoutSeconds() = %d, want clamp to 1", s.DownloadTimeoutSeconds())
	}
}

func TestSettingsRunConfig(t *testing.T) {
	app := test.NewApp()
	s := NewSettings(app)

	cfg, err := s.RunConfig()
	if err != nil {
		t.Fatalf("RunConfig() error: %v", err)
	}
	if cfg.Selector != config.DefaultSelector {
		t.Errorf("cfg.Selector = %q", cfg.Selector)
	}

	// An invalid persisted combination must fail fast, not default silently.
	s.SetBrowser(config.BrowserCustom)
	s.SetBrowserPath("")
	if _, err := s.RunConfig(); err == nil {
		t.Error("RunConfig() with browser=custom and no path should fail")
	}
}
