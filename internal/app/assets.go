package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// resolveClientDir locates the browser client bundle next to the working
// directory or the server binary. The server runs headless when no bundle
// is present.
func resolveClientDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve client assets: %w", err)
	}
	if dir, ok := resolveClientDirFrom(cwd); ok {
		return dir, nil
	}
	exePath, err := os.Executable()
	if err == nil {
		if dir, ok := resolveClientDirFrom(filepath.Dir(exePath)); ok {
			return dir, nil
		}
	}
	return "", fmt.Errorf("client assets directory not found")
}

func resolveClientDirFrom(base string) (string, bool) {
	candidates := []string{
		filepath.Join(base, "client"),
		filepath.Join(base, "..", "client"),
	}
	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err != nil || !info.IsDir() {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		return abs, true
	}
	return "", false
}
