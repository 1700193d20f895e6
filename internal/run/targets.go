package run

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/webgrab/webgrab/internal/model"
)

// ReadTargets parses a newline-delimited URL list. Blank lines and lines
// starting with '#' are ignored.
func ReadTargets(r io.Reader) ([]model.Target, error) {
	var targets []model.Target
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		targets = append(targets, model.Target(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read targets: %w", err)
	}
	return targets, nil
}

// LoadTargetsFile reads the whole list from path before the run starts.
func LoadTargetsFile(path string) ([]model.Target, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open links file: %w", err)
	}
	defer f.Close()
	return ReadTargets(f)
}
