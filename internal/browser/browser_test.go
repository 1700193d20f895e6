package browser

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestNewFailsWithMissingExecutable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExecPath = filepath.Join(t.TempDir(), "no-such-browser")
	cfg.DownloadDir = t.TempDir()

	if _, err := New(cfg, nil); err == nil {
		t.Fatal("New() with a missing executable should fail before any target is processed")
	}
}

func TestNewFailsWithEmptyExecutable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DownloadDir = t.TempDir()

	if _, err := New(cfg, nil); err == nil {
		t.Fatal("New() without an executable should fail")
	}
}

func TestBoundedPageContext(t *testing.T) {
	s := &Session{
		ctx: context.Background(),
		cfg: Config{PageTimeout: 10 * time.Second},
	}

	ctx, cancel := s.boundedPageContext()
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("page context should carry a deadline")
	}
	if remaining := time.Until(deadline); remaining > 10*time.Second || remaining < 9*time.Second {
		t.Errorf("deadline in %v, want about %v", remaining, 10*time.Second)
	}
}
