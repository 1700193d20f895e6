package run

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadTargets(t *testing.T) {
	input := `https://a.example/page

  https://b.example/page
# a comment line
https://c.example/page
`
	targets, err := ReadTargets(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadTargets() error: %v", err)
	}
	want := []string{"https://a.example/page", "https://b.example/page", "https://c.example/page"}
	if len(targets) != len(want) {
		t.Fatalf("got %d targets, want %d", len(targets), len(want))
	}
	for i, w := range want {
		if string(targets[i]) != w {
			t.Errorf("targets[%d] = %q, want %q", i, targets[i], w)
		}
	}
}

func TestReadTargetsEmpty(t *testing.T) {
	targets, err := ReadTargets(strings.NewReader("\n\n# only comments\n"))
	if err != nil {
		t.Fatalf("ReadTargets() error: %v", err)
	}
	if len(targets) != 0 {
		t.Errorf("got %d targets, want 0", len(targets))
	}
}

func TestLoadTargetsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.txt")
	if err := os.WriteFile(path, []byte("https://a.example\nhttps://b.example\n"), 0644); err != nil {
		t.Fatal(err)
	}

	targets, err := LoadTargetsFile(path)
	if err != nil {
		t.Fatalf("LoadTargetsFile() error: %v", err)
	}
	if len(targets) != 2 {
		t.Errorf("got %d targets, want 2", len(targets))
	}
}

func TestLoadTargetsFileMissing(t *testing.T) {
	if _, err := LoadTargetsFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("LoadTargetsFile() on a missing file should fail")
	}
}
