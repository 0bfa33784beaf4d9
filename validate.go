package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/ribeirogab/portfolio/internal/dictionary"
)

var validateDir string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the dictionaries",
	Long: `Decode every locale dictionary strictly, check required values and key parity
across locales, and validate the published JSON form against the dictionary schema.
With --dir, the <locale>.yaml files of that directory are checked instead of the
bundled ones.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateDir, "dir", "", "Directory with <locale>.yaml files (default: bundled content)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	set, err := cfg.Locales()
	if err != nil {
		return err
	}

	var content fs.FS = dictionary.Content()
	if validateDir != "" {
		content = os.DirFS(validateDir)
	}

	loader, err := dictionary.NewLoader(set, content)
	if err != nil {
		return err
	}

	for _, l := range set.Locales() {
		d, err := loader.Load(string(l))
		if err != nil {
			return err
		}
		if err := d.ValidateSchema(); err != nil {
			return fmt.Errorf("dictionary %s: %w", l, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d work entries, %d education entries, %d skills\n",
			l, len(d.Resume.Work), len(d.Resume.Education), len(d.Resume.Skills))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "All dictionaries are valid")
	return nil
}
