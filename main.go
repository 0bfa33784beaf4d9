// Command portfolio serves and exports the bilingual portfolio site.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/ribeirogab/portfolio/internal/config"
	"github.com/ribeirogab/portfolio/internal/dictionary"
)

var defaultLocale string

var rootCmd = &cobra.Command{
	Use:           "portfolio",
	Short:         "Bilingual (en/pt) portfolio and resume site",
	Long:          "Serves the portfolio with Accept-Language based locale routing, exports it as static files and prints PDF resumes.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&defaultLocale, "default-locale", "", "Locale used when negotiation finds no match (overrides DEFAULT_LOCALE)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment, applies flag overrides and validates the result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if defaultLocale != "" {
		cfg.DefaultLocale = defaultLocale
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDictionaries loads the bundled dictionaries of every supported locale.
func loadDictionaries(cfg *config.Config) (*dictionary.Loader, error) {
	set, err := cfg.Locales()
	if err != nil {
		return nil, err
	}
	loader, err := dictionary.NewLoader(set, dictionary.Content())
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionaries: %w", err)
	}
	return loader, nil
}
