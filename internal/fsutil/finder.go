// Package fsutil provides file system utility functions.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ConfigBaseName is the file name, without extension, searched for when no
// configuration path is given.
const ConfigBaseName = "kit.config"

// ConfigExtensions lists the supported configuration file extensions in
// lookup order.
var ConfigExtensions = []string{".hcl", ".json", ".jsonc", ".yaml", ".yml"}

// ErrConfigNotFound is returned when a directory holds no configuration file.
var ErrConfigNotFound = errors.New("no configuration file found")

// FindConfigFile returns the first kit.config.<ext> file found directly in
// dir, following the order of ConfigExtensions.
func FindConfigFile(dir string) (string, error) {
	for _, ext := range ConfigExtensions {
		candidate := filepath.Join(dir, ConfigBaseName+ext)
		info, err := os.Stat(candidate)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return "", fmt.Errorf("error accessing path %s: %w", candidate, err)
		}
		if !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w in %s (looked for %s.{%s})", ErrConfigNotFound, dir, ConfigBaseName, strings.Join(trimDots(ConfigExtensions), ","))
}

// Ext returns the lower-cased extension of path.
func Ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

func trimDots(exts []string) []string {
	out := make([]string, len(exts))
	for i, e := range exts {
		out[i] = strings.TrimPrefix(e, ".")
	}
	return out
}
