// Package browser owns the single Chrome/Chromium session used for a whole
// run: process lifecycle, page navigation, and selector-driven download
// capture over the DevTools protocol.
package browser

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/browser"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// Config holds browser session options. ExecPath must point at an existing
// Chromium-family executable; use Resolve to turn a browser choice into one.
type Config struct {
	ExecPath        string
	DownloadDir     string
	Headless        bool
	PageTimeout     time.Duration
	DownloadTimeout time.Duration
	WindowWidth     int
	WindowHeight    int
}

// DefaultConfig returns default browser configuration.
func DefaultConfig() Config {
	return Config{
		Headless:        false,
		PageTimeout:     30 * time.Second,
		DownloadTimeout: 60 * time.Second,
		WindowWidth:     1280,
		WindowHeight:    900,
	}
}

// Session is the one browser instance a run exclusively owns. Close releases
// it on every exit path.
type Session struct {
	ctx         context.Context
	allocCancel context.CancelFunc
	ctxCancel   context.CancelFunc
	cfg         Config
	log         *zap.Logger
	downloads   *downloadTracker
}

// New launches the browser and prepares the download directory. A missing or
// invalid executable fails here, before any target is processed.
func New(cfg Config, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.ExecPath == "" {
		return nil, fmt.Errorf("browser: no executable configured")
	}
	if _, err := os.Stat(cfg.ExecPath); err != nil {
		return nil, fmt.Errorf("browser: executable %q: %w", cfg.ExecPath, err)
	}
	if err := os.MkdirAll(cfg.DownloadDir, 0o755); err != nil {
		return nil, fmt.Errorf("browser: create download dir: %w", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(cfg.ExecPath),
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(cfg.WindowWidth, cfg.WindowHeight),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, ctxCancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(log.Sugar().Debugf))

	s := &Session{
		ctx:         ctx,
		allocCancel: allocCancel,
		ctxCancel:   ctxCancel,
		cfg:         cfg,
		log:         log,
		downloads:   newDownloadTracker(),
	}

	// Start the browser process now so a broken executable surfaces as a
	// fatal session error rather than a failed first attempt.
	if err := chromedp.Run(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("browser: launch failed: %w", err)
	}

	if err := chromedp.Run(ctx,
		browser.SetDownloadBehavior(browser.SetDownloadBehaviorBehaviorAllowAndName).
			WithDownloadPath(cfg.DownloadDir).
			WithEventsEnabled(true),
	); err != nil {
		s.Close()
		return nil, fmt.Errorf("browser: configure downloads: %w", err)
	}

	chromedp.ListenBrowser(ctx, s.downloads.handle)

	log.Info("browser session started",
		zap.String("exec", cfg.ExecPath),
		zap.Bool("headless", cfg.Headless),
		zap.String("download_dir", cfg.DownloadDir))
	return s, nil
}

// Close shuts the browser down. Safe to call more than once.
func (s *Session) Close() {
	if s.ctxCancel != nil {
		s.ctxCancel()
		s.ctxCancel = nil
	}
	if s.allocCancel != nil {
		s.allocCancel()
		s.allocCancel = nil
	}
}

// boundedPageContext derives a context from the session bounded by the page
// timeout. Every page interaction outside the download wait goes through it
// so a wedged renderer can never block an attempt indefinitely.
func (s *Session) boundedPageContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(s.ctx, s.cfg.PageTimeout)
}

// Visit navigates to url and waits until the document body is ready, bounded
// by the configured page timeout. The passed ctx is only consulted before
// starting: an in-flight navigation is allowed to finish or time out.
func (s *Session) Visit(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tctx, cancel := s.boundedPageContext()
	defer cancel()

	err := chromedp.Run(tctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}
