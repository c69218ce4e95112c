package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var verbose bool
	opts := &scrapeOptions{}

	cmd := &cobra.Command{
		Use:   "scrape-beimlenzer",
		Short: "Back up the images and metadata of beimlenzer.de",
		Long: `Fetches the beimlenzer.de start page, downloads the images it references
into assets/main/ as img-NN.jpg, and writes assets/main/metadata.json with the
page title, description and the list of saved images.

Run without arguments to use the built-in defaults. Settings can be changed
with a YAML config file, SCRAPER_* environment variables (a .env file is
loaded if present) or flags.

For personal migration/backup only. Respect the site's robots.txt and terms of service.`,
		Example: `  # Back up the site with the defaults
  scrape-beimlenzer

  # Back up another page into assets/ferienwohnung
  scrape-beimlenzer --url https://www.beimlenzer.de/ferienwohnung.html --name ferienwohnung

  # Check a previous backup
  scrape-beimlenzer inspect assets/main/metadata.json`,
		Args: cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			setupLogging(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd, opts)
		},
	}

	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")
	opts.register(cmd)

	cmd.AddCommand(newInspectCmd(&opts.configPath))

	return cmd
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
