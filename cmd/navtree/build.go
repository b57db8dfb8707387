package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/navtree/internal/parser"
	"github.com/dgallion1/navtree/internal/pipeline"
	"github.com/dgallion1/navtree/internal/theme"
	"github.com/spf13/cobra"
)

var (
	buildIndex   string
	buildOut     string
	buildWorkers int
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the sidebar navigation for every page of a site",
	Long: `Reads a markdown navigation index and writes the annotated sidebar of
each page it lists to <out>/<docname>.html. Files that are already current
are left untouched. Prints a JSON summary when done.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(buildIndex)
		if err != nil {
			return fmt.Errorf("reading index: %w", err)
		}
		tree, err := (&parser.NavIndexParser{}).Parse(bytes.NewReader(data), buildIndex)
		if err != nil {
			return fmt.Errorf("parsing index: %w", err)
		}

		workers := cfg.BuildWorkers
		if cmd.Flags().Changed("workers") {
			workers = buildWorkers
		}

		log := newLogger(cfg, cmd.ErrOrStderr())
		hooks := &theme.Hooks{}
		hooks.Connect(theme.NavigationHook(newAnnotator(cfg, log)))

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		snap := pipeline.NewBuilder(hooks, log, workers).Run(ctx, tree, buildOut).Snapshot()

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return err
		}
		if snap.Status != pipeline.StatusCompleted {
			return fmt.Errorf("build %s with %d errors", snap.Status, len(snap.Progress.Errors))
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildIndex, "index", "", "markdown navigation index")
	buildCmd.Flags().StringVar(&buildOut, "out", "_navigation", "output directory")
	buildCmd.Flags().IntVar(&buildWorkers, "workers", 0, "concurrent page renders (default from config)")
	buildCmd.MarkFlagRequired("index")
	rootCmd.AddCommand(buildCmd)
}

