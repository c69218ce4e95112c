// Package report checks a saved backup against its metadata document.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/beimlenzer/site-scraper/internal/models"
	"gopkg.in/yaml.v3"
)

// Report summarizes a metadata document and the state of the files it references.
type Report struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	SourceURL   string   `yaml:"source_url"`
	ImageCount  int      `yaml:"image_count"`
	Present     []string `yaml:"present"`
	Missing     []string `yaml:"missing,omitempty"`
}

// Inspect resolves every image src of m against root and records whether the file exists.
func Inspect(m *models.Metadata, root string) *Report {
	r := &Report{
		Title:       m.Title,
		Description: m.Description,
		SourceURL:   m.SourceURL,
		ImageCount:  len(m.Images),
		Present:     []string{},
	}

	for _, img := range m.Images {
		path := filepath.Join(root, filepath.FromSlash(img.Src))
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			r.Missing = append(r.Missing, img.Src)
			continue
		}
		r.Present = append(r.Present, img.Src)
	}

	return r
}

// OK reports whether every referenced image was found.
func (r *Report) OK() bool {
	return len(r.Missing) == 0
}

// WriteText prints a short human-readable summary.
func (r *Report) WriteText(w io.Writer) {
	fmt.Fprintf(w, "Title: %s\n", r.Title)
	fmt.Fprintf(w, "Description: %s\n", r.Description)
	fmt.Fprintf(w, "Source: %s\n", r.SourceURL)
	fmt.Fprintf(w, "Images: %d (%d present, %d missing)\n", r.ImageCount, len(r.Present), len(r.Missing))
	for _, src := range r.Missing {
		fmt.Fprintf(w, "  missing: %s\n", src)
	}
}

// WriteYAML writes the report as YAML.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}
