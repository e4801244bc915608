package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"movie-store/config"
	"movie-store/database"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DataDir string
	Name    string
	Format  string // "json" | "text"
	Verbose bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for moviectl.
func NewRootCommand() *cobra.Command {
	cfg := config.FromEnv()
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "moviectl",
		Short:         "Manage a local movie store",
		Long:          "moviectl adds, lists, finds, counts and purges movies kept in a named SQLite store.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", cfg.DataDir, "directory holding store files (default: user config dir)")
	cmd.PersistentFlags().StringVarP(&opts.Name, "name", "n", cfg.StoreName, "store name")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log store diagnostics")

	cmd.AddCommand(newAddCommand(opts, cfg))
	cmd.AddCommand(newListCommand(opts, cfg))
	cmd.AddCommand(newFindCommand(opts, cfg))
	cmd.AddCommand(newCountCommand(opts, cfg))
	cmd.AddCommand(newPurgeCommand(opts, cfg))
	cmd.AddCommand(newImportCommand(opts, cfg))

	return cmd
}

// openStore opens the store selected by the global flags. Diagnostics go to
// stderr, and only warnings and worse unless --verbose is set.
func openStore(cmd *cobra.Command, opts *RootOptions, cfg *config.Config) (*database.Store, error) {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	storeOpts := append(cfg.StoreOptions(), database.WithLogger(logger))
	store, err := database.OpenNamed(opts.DataDir, opts.Name, storeOpts...)
	if err != nil {
		return nil, fmt.Errorf("open store %q: %w", opts.Name, err)
	}
	return store, nil
}

func formatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
}
