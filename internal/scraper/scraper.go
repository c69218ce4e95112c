// Package scraper backs up a single page: its images and a metadata.json describing it.
package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/beimlenzer/site-scraper/internal/config"
	"github.com/beimlenzer/site-scraper/internal/fetch"
	"github.com/beimlenzer/site-scraper/internal/fsutil"
	"github.com/beimlenzer/site-scraper/internal/models"
	"github.com/beimlenzer/site-scraper/internal/storage"
)

// Fetcher is the network side of a scrape. *fetch.Client implements it.
type Fetcher interface {
	FetchPage(ctx context.Context, pageURL string) (*goquery.Document, error)
	DownloadImage(ctx context.Context, imageURL, outputPath string) error
}

// Result is what a successful Run produced.
type Result struct {
	Metadata     *models.Metadata
	Failures     []models.ImageFailure
	OutputDir    string
	MetadataPath string
	IndexPath    string // empty unless the image index was written
}

// Scraper runs one backup of cfg.BaseURL.
type Scraper struct {
	cfg     config.Config
	fetcher Fetcher
	out     io.Writer
}

// New creates a Scraper. Progress lines are written to out.
func New(cfg config.Config, fetcher Fetcher, out io.Writer) *Scraper {
	if out == nil {
		out = io.Discard
	}
	return &Scraper{
		cfg:     cfg,
		fetcher: fetcher,
		out:     out,
	}
}

// Run fetches the page, saves every accepted image, and writes the metadata
// document. A returned error means the page itself could not be scraped;
// individual image failures are reported in Result.Failures instead.
func (s *Scraper) Run(ctx context.Context) (*Result, error) {
	slog.Info("Scraping page", "url", s.cfg.BaseURL)

	doc, err := s.fetcher.FetchPage(ctx, s.cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	outputDir := s.cfg.OutputDir()
	if err := fsutil.EnsureDir(outputDir); err != nil {
		return nil, err
	}

	result := &Result{
		OutputDir:    outputDir,
		MetadataPath: filepath.Join(outputDir, s.cfg.MetadataFile),
	}

	images, failures := s.saveImages(ctx, doc, outputDir)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result.Failures = failures

	result.Metadata = &models.Metadata{
		Title:       s.title(doc),
		Description: s.description(doc),
		Images:      images,
		SourceURL:   s.cfg.BaseURL,
	}

	if err := storage.WriteMetadata(result.MetadataPath, result.Metadata); err != nil {
		return nil, &fetch.Error{Kind: fetch.KindIO, URL: s.cfg.BaseURL, Err: err}
	}

	fmt.Fprintf(s.out, "Scraped %d images from %s page\n", len(images), s.cfg.Name)

	if s.cfg.ImageIndex {
		indexPath := filepath.Join(outputDir, storage.IndexFile)
		if err := storage.WriteImageIndex(indexPath, result.Metadata); err != nil {
			return nil, &fetch.Error{Kind: fetch.KindIO, URL: s.cfg.BaseURL, Err: err}
		}
		result.IndexPath = indexPath
	}

	slog.Info("Scrape finished",
		"images", len(images),
		"failed", len(failures),
		"metadata", result.MetadataPath)

	return result, nil
}

// saveImages walks every <img> in document order. Positions count all
// elements, so skipped images leave gaps in the file numbering.
func (s *Scraper) saveImages(ctx context.Context, doc *goquery.Document, outputDir string) ([]models.ImageRecord, []models.ImageFailure) {
	images := []models.ImageRecord{}
	var failures []models.ImageFailure

	doc.Find("img").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if ctx.Err() != nil {
			return false
		}
		position := i + 1

		src, _ := sel.Attr("src")
		if src == "" {
			slog.Debug("Skipping image without src", "position", position)
			return true
		}

		imageURL, err := ResolveImageURL(s.cfg.BaseURL, src)
		if err != nil {
			slog.Debug("Skipping unresolvable image", "position", position, "src", src, "error", err)
			return true
		}

		if !HasAllowedExtension(imageURL, s.cfg.AllowedExtensions) {
			slog.Debug("Skipping image with unsupported extension", "position", position, "url", imageURL)
			return true
		}

		filename := ImageFilename(position)
		outputPath := filepath.Join(outputDir, filename)

		if err := s.fetcher.DownloadImage(ctx, imageURL, outputPath); err != nil {
			fmt.Fprintf(s.out, "Failed to download %s: %v\n", imageURL, err)
			slog.Warn("Image download failed",
				"url", imageURL,
				"position", position,
				"kind", fetch.KindOf(err).String())
			failures = append(failures, models.ImageFailure{Position: position, URL: imageURL, Err: err})
			return true
		}
		fmt.Fprintf(s.out, "Downloaded: %s\n", outputPath)

		alt, ok := sel.Attr("alt")
		if !ok {
			alt = fmt.Sprintf("%s %d", s.cfg.AltPrefix, position)
		}

		images = append(images, models.ImageRecord{
			Src:      ImageSrc(outputDir, filename),
			Alt:      alt,
			Position: position,
		})
		return true
	})

	return images, failures
}

func (s *Scraper) title(doc *goquery.Document) string {
	title := doc.Find("title").First()
	if title.Length() == 0 {
		return s.cfg.DefaultTitle
	}
	return strings.TrimSpace(title.Text())
}

func (s *Scraper) description(doc *goquery.Document) string {
	content, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
	return content
}
