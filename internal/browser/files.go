package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// uniquePath returns dir/name, adding " (1)", " (2)", ... before the
// extension until the path does not exist yet. Any stat failure counts as a
// usable name; the caller's rename surfaces the real error.
func uniquePath(dir, name string) string {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		return path
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
		if _, err := os.Stat(candidate); err != nil {
			return candidate
		}
	}
}
