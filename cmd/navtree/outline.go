package main

import (
	"bytes"
	"fmt"

	"github.com/dgallion1/navtree/internal/parser"
	"github.com/dgallion1/navtree/internal/toctree"
	"github.com/spf13/cobra"
)

var outlineMaxDepth int

var outlineCmd = &cobra.Command{
	Use:   "outline <file>",
	Short: "Print a collapsible table of contents for a document",
	Long:  `Builds a page-local navigation tree from the headings of a markdown, HTML, PDF or DOCX file.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path := args[0]
		p, err := parser.ForFile(path, parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext})
		if err != nil {
			return err
		}
		data, err := readInput(cmd, path)
		if err != nil {
			return err
		}
		tree, err := p.Parse(bytes.NewReader(data), path)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}

		fragment, err := toctree.Render(tree, "", toctree.Options{MaxDepth: outlineMaxDepth})
		if err != nil {
			return err
		}
		out, err := newAnnotator(cfg, newLogger(cfg, cmd.ErrOrStderr())).Annotate(fragment)
		if err != nil {
			return fmt.Errorf("annotate: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	outlineCmd.Flags().IntVar(&outlineMaxDepth, "maxdepth", 0, "deepest heading level shown; 0 is unlimited")
	rootCmd.AddCommand(outlineCmd)
}
