package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/beimlenzer/site-scraper/internal/models"
)

// WriteMetadata writes m to path as two-space indented UTF-8 JSON. Non-ASCII
// text and HTML characters are written as-is.
func WriteMetadata(path string, m *models.Metadata) error {
	if m.Images == nil {
		m.Images = []models.ImageRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}
	return nil
}

// ReadMetadata loads a metadata document written by WriteMetadata.
func ReadMetadata(path string) (*models.Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}

	var m models.Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse metadata file: %w", err)
	}
	return &m, nil
}
