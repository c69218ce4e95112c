// Package fsutil holds the small filesystem helpers shared by the scraper and storage.
package fsutil

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// FallbackName is returned by SanitizeFilename when nothing usable is left.
const FallbackName = "images"

var (
	unsafeRun  = regexp.MustCompile(`[^a-z0-9_-]+`)
	hyphenRuns = regexp.MustCompile(`-+`)
)

// SanitizeFilename turns an arbitrary string into a lowercase slug made of
// [a-z0-9_-]. It never returns an empty string.
func SanitizeFilename(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = unsafeRun.ReplaceAllString(name, "-")
	name = strings.Trim(hyphenRuns.ReplaceAllString(name, "-"), "-")
	if name == "" {
		return FallbackName
	}
	return name
}

// EnsureDir creates path and any missing parents. An existing directory is not an error.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}
