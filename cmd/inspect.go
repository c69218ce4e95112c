package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/beimlenzer/site-scraper/internal/config"
	"github.com/beimlenzer/site-scraper/internal/report"
	"github.com/beimlenzer/site-scraper/internal/storage"
	"github.com/spf13/cobra"
)

func newInspectCmd(configPath *string) *cobra.Command {
	var root string
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "inspect [metadata.json]",
		Short: "Check a backup against its metadata file",
		Long: `Reads a metadata.json written by a previous run and checks that every image
it lists exists on disk. Image paths are resolved relative to --root.
Without an argument the metadata file is looked up in the output directory
of the active configuration (--config, SCRAPER_* variables, defaults).

Exits non-zero when the metadata cannot be read or any image is missing.`,
		Example: `  # Check the default backup
  scrape-beimlenzer inspect

  # Check the backup described by a config file
  scrape-beimlenzer inspect --config scraper.yaml

  # Print the report as YAML
  scrape-beimlenzer inspect assets/main/metadata.json --yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			path := filepath.Join(cfg.OutputDir(), cfg.MetadataFile)
			if len(args) == 1 {
				path = args[0]
			}

			m, err := storage.ReadMetadata(path)
			if err != nil {
				return err
			}

			r := report.Inspect(m, root)
			out := cmd.OutOrStdout()
			if asYAML {
				if err := r.WriteYAML(out); err != nil {
					return err
				}
			} else {
				r.WriteText(out)
			}

			if !r.OK() {
				return fmt.Errorf("%d of %d images are missing", len(r.Missing), r.ImageCount)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "Directory image paths are relative to")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the report as YAML")

	return cmd
}
