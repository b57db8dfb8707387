package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dgallion1/navtree/internal/config"
	"github.com/dgallion1/navtree/internal/navtree"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "navtree",
	Short: "Annotate Sphinx-style toctrees for collapsible sidebar navigation",
	Long: `navtree turns toctree HTML into a sidebar that can be expanded and
collapsed without JavaScript. It marks the current page, adds a checkbox
toggle to every entry with children and can render the toctree itself from
a markdown navigation index or a document's headings.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.Path(), "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads and validates the config named by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger writes text logs to stderr. --verbose forces debug output.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	level, _ := cfg.Level()
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newAnnotator(cfg *config.Config, log *slog.Logger) *navtree.Annotator {
	return navtree.New(
		navtree.WithCacheSize(cfg.CacheSize),
		navtree.WithStatsWindow(cfg.StatsWindow),
		navtree.WithLogger(log),
	)
}

// readInput reads the named file, or stdin when path is empty or "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
