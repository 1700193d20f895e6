package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/webgrab/webgrab/internal/browser"
	"github.com/webgrab/webgrab/internal/config"
	"github.com/webgrab/webgrab/internal/model"
	"github.com/webgrab/webgrab/internal/run"
)

// appVersion is set at build time via -ldflags="-X main.appVersion=x.x.x"
var appVersion = "dev"

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	configPath := flag.String("config", "", "Path to config file (optional; env vars WEBGRAB_* also apply)")
	linksPath := flag.String("links", "", "URL list file, one URL per line (overrides config)")
	downloadDir := flag.String("download", "", "Directory to save downloads (overrides config)")
	selector := flag.String("selector", "", "CSS selector of the download control (overrides config)")
	headless := flag.Bool("headless", false, "Run the browser headless (overrides config)")
	execPath := flag.String("exec", "", "Browser executable path (implies browser=custom)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("webgrab version %s\n", appVersion)
		os.Exit(0)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}
	if *linksPath != "" {
		cfg.LinksFile = *linksPath
	}
	if *downloadDir != "" {
		cfg.DownloadDir = *downloadDir
	}
	if *selector != "" {
		cfg.Selector = *selector
	}
	if *execPath != "" {
		cfg.Browser = config.BrowserCustom
		cfg.BrowserPath = *execPath
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "headless" {
			cfg.Headless = *headless
		}
	})
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	targets, err := run.LoadTargetsFile(cfg.LinksFile)
	if err != nil {
		logger.Fatal("could not load URL list", zap.Error(err))
	}
	if len(targets) == 0 {
		logger.Fatal("URL list is empty", zap.String("file", cfg.LinksFile))
	}

	execResolved, err := browser.Resolve(cfg.Browser, cfg.BrowserPath)
	if err != nil {
		logger.Fatal("could not resolve browser", zap.Error(err))
	}

	summary, err := runBatch(cfg, execResolved, targets, logger)
	if err != nil {
		logger.Fatal("session error", zap.Error(err))
	}
	if summary.Failed > 0 {
		os.Exit(1)
	}
}

func runBatch(cfg *config.Config, execPath string, targets []model.Target, logger *zap.Logger) (*model.Summary, error) {
	bcfg := browser.DefaultConfig()
	bcfg.ExecPath = execPath
	bcfg.DownloadDir = cfg.DownloadDir
	bcfg.Headless = cfg.Headless
	bcfg.PageTimeout = cfg.PageTimeout()
	bcfg.DownloadTimeout = cfg.DownloadTimeout()

	session, err := browser.New(bcfg, logger)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, stopping after the current attempt...")
		cancel()
	}()

	sink := &consoleSink{out: os.Stdout}
	sink.banner(cfg, len(targets))

	orch := run.New(cfg, session, sink, logger)
	return orch.Run(ctx, targets), nil
}

// consoleSink renders progress events as timestamped lines on stdout.
type consoleSink struct {
	out io.Writer
}

func (c *consoleSink) line(format string, args ...interface{}) {
	fmt.Fprintf(c.out, "[%s] %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
}

func (c *consoleSink) banner(cfg *config.Config, total int) {
	c.line("==================================================")
	c.line("Starting downloads...")
	c.line("URLs to process: %d", total)
	c.line("Download folder: %s", cfg.DownloadDir)
	c.line("Button selector: %s", cfg.Selector)
	c.line("==================================================")
}

func (c *consoleSink) Publish(e run.Event) {
	switch e.Kind {
	case run.EventTargetStarted:
		c.line("--------------------------------------------------")
		c.line("[%d/%d] Opening: %s", e.Index, e.Total, e.Target)
	case run.EventAttemptFinished:
		if e.Attempt.Outcome == model.OutcomeSuccess {
			c.line("✓ Complete: %s (%d bytes)", e.Attempt.File.Name, e.Attempt.File.Size)
		} else {
			c.line("✗ Attempt %d failed: %s", e.Attempt.Number, e.Attempt.Error)
		}
	case run.EventTargetFinished:
		if e.Result != nil && !e.Result.Succeeded() {
			c.line("✗ Giving up on %s after %d attempts", e.Target, len(e.Result.Attempts))
		}
	case run.EventRunFinished:
		c.summary(e.Summary)
	}
}

func (c *consoleSink) summary(s *model.Summary) {
	if s == nil {
		return
	}
	c.line("==================================================")
	c.line("DOWNLOAD SUMMARY")
	c.line("==================================================")
	c.line("Total: %d | Success: %d | Failed: %d", s.Total, s.Succeeded, s.Failed)
	if s.Stopped {
		c.line("Run stopped by user after %d of %d targets", s.Processed(), s.Total)
	}
	if failed := s.FailedResults(); len(failed) > 0 {
		c.line("Failed URLs:")
		for _, r := range failed {
			c.line("  - %s (%s)", r.Target, r.LastError())
		}
	}
	c.line("Downloaded %d bytes to %s in %s", s.TotalSize, s.DownloadDir, s.Duration().Round(time.Second))
	c.line("Done!")
}
