package fsutil

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "already clean", input: "main", expected: "main"},
		{name: "lowercases", input: "Main", expected: "main"},
		{name: "spaces become hyphens", input: "Ferien Wohnung Oben", expected: "ferien-wohnung-oben"},
		{name: "collapses runs", input: "a  --  b", expected: "a-b"},
		{name: "trims hyphens", input: "--a--", expected: "a"},
		{name: "keeps underscores", input: "snake_case", expected: "snake_case"},
		{name: "umlauts are replaced", input: "Schöne Aussicht", expected: "sch-ne-aussicht"},
		{name: "surrounding whitespace", input: "  lenzer  ", expected: "lenzer"},
		{name: "empty falls back", input: "", expected: FallbackName},
		{name: "whitespace falls back", input: "   ", expected: FallbackName},
		{name: "punctuation falls back", input: "!!!", expected: FallbackName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeFilename(tt.input)
			if result != tt.expected {
				t.Errorf("SanitizeFilename(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSanitizeFilenameProperties(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z0-9_-]*$`)
	inputs := []string{
		"", " ", "a", "A B C", "über/../etc/passwd", "x--y", "-_-", "Image #12.JPG",
		"\t\ttabs\n", "日本語", "a b", "___", "--", "mixed_Case-and 123",
	}

	for _, input := range inputs {
		out := SanitizeFilename(input)
		if !valid.MatchString(out) {
			t.Errorf("SanitizeFilename(%q) = %q contains unsafe characters", input, out)
		}
		if strings.Contains(out, "--") {
			t.Errorf("SanitizeFilename(%q) = %q contains adjacent hyphens", input, out)
		}
		if strings.HasPrefix(out, "-") || strings.HasSuffix(out, "-") {
			t.Errorf("SanitizeFilename(%q) = %q has leading or trailing hyphen", input, out)
		}
		if again := SanitizeFilename(out); again != out {
			t.Errorf("SanitizeFilename is not idempotent for %q: %q then %q", input, out, again)
		}
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "assets", "main")

	if err := EnsureDir(target); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("Expected directory to exist: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("Expected %s to be a directory", target)
	}

	// second call on an existing directory
	if err := EnsureDir(target); err != nil {
		t.Errorf("Expected EnsureDir to be idempotent, got %v", err)
	}
}

func TestEnsureDirBlockedByFile(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "assets")
	if err := os.WriteFile(blocker, []byte("not a dir"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	if err := EnsureDir(filepath.Join(blocker, "main")); err == nil {
		t.Error("Expected error when a file occupies the path, got nil")
	}
}
