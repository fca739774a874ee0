package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"lilutecno/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DSN    string // overrides DB_DSN when set
	Format string // "json" | "text"
}

var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the lilutecno command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "lilutecno",
		Short: "LiluTecno storefront",
		Long:  "Serve the LiluTecno storefront API and manage its product catalog.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.DSN, "db", "", "sqlite database (default $DB_DSN or lilutecno.db)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(opts *RootOptions) config.Config {
	cfg := config.Load()
	if opts.DSN != "" {
		cfg.DBDSN = opts.DSN
	}
	return cfg
}
