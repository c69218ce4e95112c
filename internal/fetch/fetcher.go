package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/PuerkitoBio/goquery"
	"github.com/beimlenzer/site-scraper/internal/config"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"
)

// Client performs the page and image GETs for a scrape run.
type Client struct {
	http      *resty.Client
	chunkSize int
}

// New creates a Client that sends cfg.UserAgent with every request and
// gives up on a request after cfg.Timeout. Requests are never retried.
func New(cfg config.Config) *Client {
	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = config.DefaultChunkSize
	}

	httpClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", cfg.UserAgent).
		SetLogger(slogLogger{})

	return &Client{
		http:      httpClient,
		chunkSize: chunkSize,
	}
}

// FetchPage downloads pageURL and parses it as HTML. The body is decoded to
// UTF-8 using the Content-Type charset, a byte order mark, or a <meta> charset.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (*goquery.Document, error) {
	slog.Debug("Fetching page", "url", pageURL)

	resp, err := c.http.R().
		SetContext(ctx).
		Get(pageURL)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, URL: pageURL, Err: err}
	}

	if !resp.IsSuccess() {
		return nil, &Error{
			Kind:       KindHTTPStatus,
			URL:        pageURL,
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
		}
	}

	body, err := charset.NewReader(bytes.NewReader(resp.Body()), resp.Header().Get("Content-Type"))
	if err != nil {
		return nil, &Error{Kind: KindParse, URL: pageURL, Err: fmt.Errorf("failed to decode page: %w", err)}
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, &Error{Kind: KindParse, URL: pageURL, Err: err}
	}

	slog.Debug("Fetched page", "url", pageURL, "status", resp.StatusCode(), "bytes", len(resp.Body()))
	return doc, nil
}

// DownloadImage streams imageURL into outputPath, replacing any existing file.
// No file is left behind when it returns an error.
func (c *Client) DownloadImage(ctx context.Context, imageURL, outputPath string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(imageURL)
	if resp != nil && resp.RawBody() != nil {
		defer resp.RawBody().Close()
	}
	if err != nil {
		return &Error{Kind: KindNetwork, URL: imageURL, Err: err}
	}

	if !resp.IsSuccess() {
		return &Error{
			Kind:       KindHTTPStatus,
			URL:        imageURL,
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
		}
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return &Error{Kind: KindIO, URL: imageURL, Err: fmt.Errorf("failed to create file: %w", err)}
	}

	written, err := c.copyChunks(out, resp.RawBody())
	if closeErr := out.Close(); err == nil && closeErr != nil {
		err = &Error{Kind: KindIO, URL: imageURL, Err: fmt.Errorf("failed to close file: %w", closeErr)}
	}
	if err != nil {
		os.Remove(outputPath)
		if fe, ok := err.(*Error); ok {
			fe.URL = imageURL
			return fe
		}
		return err
	}

	slog.Debug("Saved image", "url", imageURL, "path", outputPath, "bytes", written)
	return nil
}

// copyChunks copies src to dst through a fixed-size buffer so each write is
// at most chunkSize bytes.
func (c *Client) copyChunks(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, c.chunkSize)
	var written int64

	for {
		nr, er := src.Read(buf)
		if nr > 0 {
			nw, ew := dst.Write(buf[0:nr])
			if nw < 0 || nr < nw {
				nw = 0
				if ew == nil {
					ew = fmt.Errorf("invalid write result")
				}
			}
			written += int64(nw)
			if ew != nil {
				return written, &Error{Kind: KindIO, Err: ew}
			}
			if nr != nw {
				return written, &Error{Kind: KindIO, Err: io.ErrShortWrite}
			}
		}
		if er != nil {
			if er != io.EOF {
				// the body broke off mid-transfer
				return written, &Error{Kind: KindNetwork, Err: er}
			}
			return written, nil
		}
	}
}
