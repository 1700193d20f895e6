package browser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/webgrab/webgrab/internal/config"
)

func TestResolveCustomRequiresPath(t *testing.T) {
	if _, err := Resolve(config.BrowserCustom, ""); err == nil {
		t.Error("Resolve(custom, \"\") should fail")
	}
}

func TestResolveCustomMissingExecutable(t *testing.T) {
	absent := filepath.Join(t.TempDir(), "absent-browser")
	if _, err := Resolve(config.BrowserCustom, absent); err == nil {
		t.Error("Resolve(custom, <missing path>) should fail")
	}
}

func TestResolveCustomWithRealPath(t *testing.T) {
	exe := filepath.Join(t.TempDir(), "chromium")
	if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := Resolve(config.BrowserCustom, exe)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got != exe {
		t.Errorf("Resolve() = %q, want %q", got, exe)
	}
}
