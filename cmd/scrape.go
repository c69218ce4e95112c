package cmd

import (
	"fmt"

	"github.com/beimlenzer/site-scraper/internal/config"
	"github.com/beimlenzer/site-scraper/internal/fetch"
	"github.com/beimlenzer/site-scraper/internal/scraper"
	"github.com/spf13/cobra"
)

type scrapeOptions struct {
	configPath string
	baseURL    string
	assetsDir  string
	name       string
	imageIndex bool
}

// register adds the scrape flags to cmd. --config is persistent so subcommands
// resolve the same output directory.
func (o *scrapeOptions) register(cmd *cobra.Command) {
	defaults := config.Default()

	cmd.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&o.baseURL, "url", defaults.BaseURL, "Page to back up")
	cmd.Flags().StringVar(&o.assetsDir, "assets-dir", defaults.AssetsDir, "Root directory for saved assets")
	cmd.Flags().StringVar(&o.name, "name", defaults.Name, "Subdirectory name under the assets directory")
	cmd.Flags().BoolVar(&o.imageIndex, "image-index", defaults.ImageIndex, "Also write a parquet index of saved images")
}

// loadConfig applies flags that were set explicitly on top of file and environment settings.
func (o *scrapeOptions) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.BaseURL = o.baseURL
	}
	if flags.Changed("assets-dir") {
		cfg.AssetsDir = o.assetsDir
	}
	if flags.Changed("name") {
		cfg.Name = o.name
	}
	if flags.Changed("image-index") {
		cfg.ImageIndex = o.imageIndex
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runScrape(cmd *cobra.Command, opts *scrapeOptions) error {
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scraping %s...\n", cfg.Host())

	result, err := scraper.New(cfg, fetch.New(cfg), out).Run(cmd.Context())
	if err != nil {
		fmt.Fprintf(out, "Error scraping %s page: %v\n", cfg.Name, err)
		fmt.Fprintln(out, "Scraping failed!")
		return err
	}

	fmt.Fprintln(out, "Scraping completed successfully!")
	fmt.Fprintf(out, "Title: %s\n", result.Metadata.Title)
	fmt.Fprintf(out, "Description: %s\n", result.Metadata.Description)
	fmt.Fprintf(out, "Images downloaded: %d\n", len(result.Metadata.Images))

	return nil
}
