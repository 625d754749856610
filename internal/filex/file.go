package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureSubDir creates (if needed) and returns the named subdirectory of
// parent. The client uses it for the exports directory under the state dir.
func EnsureSubDir(parent, name string) (string, error) {
	dir := filepath.Join(parent, name)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
