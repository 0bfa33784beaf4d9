package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ribeirogab/portfolio/internal/export"
	"github.com/ribeirogab/portfolio/internal/i18n"
	"github.com/ribeirogab/portfolio/internal/server"
)

var (
	pdfOut     string
	pdfLocales []string
)

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Print the resume of each locale to PDF",
	Long: `Render each locale page in headless Chrome and save it as resume-<locale>.pdf.
Chrome is found on the PATH or through CHROME_PATH. Writes to RESUME_DIR unless
--out is given, so a running server offers the files for download.`,
	RunE: runPDF,
}

func init() {
	pdfCmd.Flags().StringVar(&pdfOut, "out", "", "Output directory (default: RESUME_DIR)")
	pdfCmd.Flags().StringSliceVar(&pdfLocales, "locale", nil, "Locales to print (default: all)")
	rootCmd.AddCommand(pdfCmd)
}

func runPDF(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.VisitorLog = false
	if pdfOut != "" {
		cfg.ResumeDir = pdfOut
	}

	loader, err := loadDictionaries(cfg)
	if err != nil {
		return err
	}

	locales, err := selectLocales(loader.Locales(), pdfLocales)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, loader)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	files, err := export.NewPDFRenderer().RenderLocales(cmd.Context(), srv.Handler(), locales, func(l i18n.Locale) string {
		return cfg.ResumePath(string(l))
	})
	if err != nil {
		return fmt.Errorf("pdf export failed: %w", err)
	}

	for _, f := range files {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", filepath.ToSlash(f))
	}
	return nil
}

// selectLocales resolves the --locale flag against the supported set.
func selectLocales(set i18n.Set, requested []string) ([]i18n.Locale, error) {
	if len(requested) == 0 {
		return set.Locales(), nil
	}
	var out []i18n.Locale
	for _, r := range requested {
		l, ok := set.Lookup(r)
		if !ok {
			return nil, fmt.Errorf("unsupported locale %q (supported: %v)", r, set.Locales())
		}
		out = append(out, l)
	}
	return out, nil
}
