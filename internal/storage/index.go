package storage

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/beimlenzer/site-scraper/internal/models"
	"github.com/parquet-go/parquet-go"
)

// IndexFile is the name of the optional parquet image index inside the output directory.
const IndexFile = "images.parquet"

// ImageIndexRow is one saved image in the parquet index.
type ImageIndexRow struct {
	Position  int64  `parquet:"position"`
	Src       string `parquet:"src"`
	Alt       string `parquet:"alt"`
	SourceURL string `parquet:"source_url"`
}

// WriteImageIndex writes one row per image in m to a parquet file at path.
func WriteImageIndex(path string, m *models.Metadata) error {
	rows := make([]ImageIndexRow, 0, len(m.Images))
	for _, img := range m.Images {
		rows = append(rows, ImageIndexRow{
			Position:  int64(img.Position),
			Src:       img.Src,
			Alt:       img.Alt,
			SourceURL: m.SourceURL,
		})
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create index file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[ImageIndexRow](file)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write index rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize index file: %w", err)
	}

	slog.Debug("Wrote image index", "path", path, "rows", len(rows))
	return nil
}

// ReadImageIndex loads every row of a parquet index written by WriteImageIndex.
func ReadImageIndex(path string) ([]ImageIndexRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[ImageIndexRow](pf)
	defer reader.Close()

	rows := make([]ImageIndexRow, pf.NumRows())
	n, err := reader.Read(rows)
	if err != nil && n < len(rows) {
		return nil, fmt.Errorf("failed to read index rows: %w", err)
	}
	return rows[:n], nil
}
