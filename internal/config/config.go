package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/beimlenzer/site-scraper/internal/fsutil"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL   = "https://www.beimlenzer.de/"
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	DefaultTimeout   = 30 * time.Second

	// DefaultChunkSize is the write size used when streaming image bodies to disk.
	DefaultChunkSize = 8 * 1024
)

// Config holds everything a scrape run needs to know about its target and output.
type Config struct {
	BaseURL           string        `yaml:"base_url"`
	UserAgent         string        `yaml:"user_agent"`
	Timeout           time.Duration `yaml:"timeout"`
	AllowedExtensions []string      `yaml:"allowed_extensions"`
	AssetsDir         string        `yaml:"assets_dir"`
	Name              string        `yaml:"name"`
	MetadataFile      string        `yaml:"metadata_file"`
	DefaultTitle      string        `yaml:"default_title"`
	AltPrefix         string        `yaml:"alt_prefix"`
	ChunkSize         int           `yaml:"chunk_size"`
	ImageIndex        bool          `yaml:"image_index"`
}

// Default returns the configuration used when the command runs without arguments.
func Default() Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		UserAgent:         DefaultUserAgent,
		Timeout:           DefaultTimeout,
		AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".webp"},
		AssetsDir:         "assets",
		Name:              "main",
		MetadataFile:      "metadata.json",
		DefaultTitle:      "Ferienhaus Beim Lenzer",
		AltPrefix:         "Beim Lenzer - Image",
		ChunkSize:         DefaultChunkSize,
	}
}

// Load builds a Config from defaults, an optional YAML file, and environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
		slog.Debug("Loaded config file", "path", path)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.BaseURL = getEnv("SCRAPER_BASE_URL", c.BaseURL)
	c.UserAgent = getEnv("SCRAPER_USER_AGENT", c.UserAgent)
	c.Timeout = getDurationEnv("SCRAPER_TIMEOUT", c.Timeout)
	c.AssetsDir = getEnv("SCRAPER_ASSETS_DIR", c.AssetsDir)
	c.Name = getEnv("SCRAPER_NAME", c.Name)
	c.ImageIndex = getBoolEnv("SCRAPER_IMAGE_INDEX", c.ImageIndex)
}

// OutputDir is the directory images and metadata are written to, e.g. assets/main.
func (c Config) OutputDir() string {
	return filepath.Join(c.AssetsDir, fsutil.SanitizeFilename(c.Name))
}

// Validate reports the first setting that would make a run impossible.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL %q must use http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base URL %q has no host", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", c.ChunkSize)
	}
	if len(c.AllowedExtensions) == 0 {
		return fmt.Errorf("at least one allowed image extension is required")
	}
	if c.MetadataFile == "" {
		return fmt.Errorf("metadata file name is required")
	}
	return nil
}

// Host returns the host part of BaseURL, used for progress output.
func (c Config) Host() string {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" {
		return c.BaseURL
	}
	return strings.TrimPrefix(u.Host, "www.")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("Ignoring invalid duration", "key", key, "value", value, "error", err)
		return defaultValue
	}
	return duration
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		slog.Warn("Ignoring invalid boolean", "key", key, "value", value, "error", err)
		return defaultValue
	}
	return b
}
