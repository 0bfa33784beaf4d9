package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ribeirogab/portfolio/internal/export"
	"github.com/ribeirogab/portfolio/internal/server"
)

var buildOut string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site as static files",
	Long: `Render every locale page, the SEO files and the assets they reference into a
directory that any static host can serve. The root index.html sends visitors to the
default locale, since static hosts cannot negotiate.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildOut, "out", "dist", "Output directory")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.VisitorLog = false

	loader, err := loadDictionaries(cfg)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, loader)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	files, err := export.NewBuilder(srv.Handler(), loader.Locales(), buildOut).Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	for _, f := range files {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", f)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d files to %s\n", len(files), buildOut)
	return nil
}
