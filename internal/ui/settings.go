package ui

import (
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"

	"github.com/webgrab/webgrab/internal/config"
)

// Preference keys for the GUI variant.
const (
	KeyDownloadDir     = "download_directory"
	KeySelector        = "button_selector"
	KeyMaxRetries      = "max_retries"
	KeyDelaySeconds    = "delay_seconds"
	KeyPageTimeout     = "page_timeout_seconds"
	KeyDownloadTimeout = "download_timeout_seconds"
	KeyHeadless        = "headless"
	KeyBrowser         = "browser"
	KeyBrowserPath     = "browser_path"
	KeyURLList         = "url_list"
)

// SelectorPresets are offered in the GUI settings form next to the free-form
// selector entry.
var SelectorPresets = []string{
	"button.download-btn",
	"a.download-link",
	"#downloadButton",
	`[data-action="download"]`,
	".btn-download",
}

// Settings persists run configuration between GUI sessions using Fyne
// preferences. The CLI reads the same settings through viper instead.
type Settings struct {
	app fyne.App
}

// NewSettings creates a settings manager bound to the given app.
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// DownloadDir returns the configured downloads directory, defaulting to
// ~/Downloads/webgrab.
func (s *Settings) DownloadDir() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dir = filepath.Join(home, "Downloads", "webgrab")
		s.SetDownloadDir(dir)
	}
	return dir
}

func (s *Settings) SetDownloadDir(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

func (s *Settings) Selector() string {
	sel := s.app.Preferences().String(KeySelector)
	if sel == "" {
		sel = config.DefaultSelector
		s.SetSelector(sel)
	}
	return sel
}

func (s *Settings) SetSelector(sel string) {
	s.app.Preferences().SetString(KeySelector, sel)
}

func (s *Settings) MaxRetries() int {
	return s.app.Preferences().IntWithFallback(KeyMaxRetries, config.DefaultMaxRetries)
}

func (s *Settings) SetMaxRetries(n int) {
	if n < 0 {
		n = 0
	}
	s.app.Preferences().SetInt(KeyMaxRetries, n)
}

func (s *Settings) DelaySeconds() int {
	return s.app.Preferences().IntWithFallback(KeyDelaySeconds, config.DefaultDelaySeconds)
}

func (s *Settings) SetDelaySeconds(n int) {
	if n < 0 {
		n = 0
	}
	s.app.Preferences().SetInt(KeyDelaySeconds, n)
}

func (s *Settings) PageTimeoutSeconds() int {
	return s.app.Preferences().IntWithFallback(KeyPageTimeout, config.DefaultPageTimeoutSeconds)
}

func (s *Settings) SetPageTimeoutSeconds(n int) {
	if n < 1 {
		n = 1
	}
	s.app.Preferences().SetInt(KeyPageTimeout, n)
}

func (s *Settings) DownloadTimeoutSeconds() int {
	return s.app.Preferences().IntWithFallback(KeyDownloadTimeout, config.DefaultDownloadTimeoutSeconds)
}

func (s *Settings) SetDownloadTimeoutSeconds(n int) {
	if n < 1 {
		n = 1
	}
	s.app.Preferences().SetInt(KeyDownloadTimeout, n)
}

func (s *Settings) Headless() bool {
	return s.app.Preferences().BoolWithFallback(KeyHeadless, false)
}

func (s *Settings) SetHeadless(h bool) {
	s.app.Preferences().SetBool(KeyHeadless, h)
}

func (s *Settings) Browser() string {
	b := s.app.Preferences().String(KeyBrowser)
	if b == "" {
		b = config.DefaultBrowser
		s.SetBrowser(b)
	}
	return b
}

func (s *Settings) SetBrowser(b string) {
	s.app.Preferences().SetString(KeyBrowser, b)
}

func (s *Settings) BrowserPath() string {
	return s.app.Preferences().String(KeyBrowserPath)
}

func (s *Settings) SetBrowserPath(path string) {
	s.app.Preferences().SetString(KeyBrowserPath, path)
}

// URLList returns the raw multi-line URL text persisted from the last GUI
// session.
func (s *Settings) URLList() string {
	return s.app.Preferences().String(KeyURLList)
}

func (s *Settings) SetURLList(text string) {
	s.app.Preferences().SetString(KeyURLList, text)
}

// RunConfig materializes the persisted settings into a validated Config.
func (s *Settings) RunConfig() (*config.Config, error) {
	cfg := &config.Config{
		DownloadDir:            s.DownloadDir(),
		Selector:               s.Selector(),
		MaxRetries:             s.MaxRetries(),
		DelaySeconds:           s.DelaySeconds(),
		PageTimeoutSeconds:     s.PageTimeoutSeconds(),
		DownloadTimeoutSeconds: s.DownloadTimeoutSeconds(),
		Headless:               s.Headless(),
		Browser:                s.Browser(),
		BrowserPath:            s.BrowserPath(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
