package scraper

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ResolveImageURL turns an <img src> value into an absolute URL. Root-relative
// and relative values are resolved against base; anything starting with "http"
// is taken verbatim. Surrounding whitespace in src is ignored.
func ResolveImageURL(base, src string) (string, error) {
	src = strings.TrimSpace(src)
	if !strings.HasPrefix(src, "/") && strings.HasPrefix(src, "http") {
		return src, nil
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	ref, err := url.Parse(src)
	if err != nil {
		return "", fmt.Errorf("invalid image src %q: %w", src, err)
	}
	return baseURL.ResolveReference(ref).String(), nil
}

// HasAllowedExtension reports whether the path of rawURL ends in one of the
// allowed extensions, ignoring case. The query string and fragment are not considered.
func HasAllowedExtension(rawURL string, allowed []string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	p := strings.ToLower(u.Path)
	for _, ext := range allowed {
		if strings.HasSuffix(p, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// ImageFilename is the file name for the image at 1-based position n. Files are
// always named .jpg whatever the source format is.
func ImageFilename(n int) string {
	return fmt.Sprintf("img-%02d.jpg", n)
}

// ImageSrc is the slash-separated path recorded in metadata for a saved file.
func ImageSrc(outputDir, filename string) string {
	return path.Join(strings.ReplaceAll(outputDir, "\\", "/"), filename)
}
