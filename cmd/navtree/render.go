package main

import (
	"bytes"
	"fmt"

	"github.com/dgallion1/navtree/internal/parser"
	"github.com/dgallion1/navtree/internal/theme"
	"github.com/dgallion1/navtree/internal/toctree"
	"github.com/spf13/cobra"
)

var (
	renderIndex         string
	renderPage          string
	renderMaxDepth      int
	renderCollapse      bool
	renderTitlesOnly    bool
	renderIncludeHidden bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the sidebar navigation for one page of a site",
	Long: `Builds the site toctree from a markdown navigation index and prints the
annotated sidebar for --page. Without toctree flags the sidebar uses the
theme's fixed options; any of --maxdepth, --collapse, --titles-only or
--include-hidden switches to the options given on the command line.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := readInput(cmd, renderIndex)
		if err != nil {
			return err
		}
		name := renderIndex
		if name == "" || name == "-" {
			name = "index.md"
		}
		tree, err := (&parser.NavIndexParser{}).Parse(bytes.NewReader(data), name)
		if err != nil {
			return fmt.Errorf("parsing index: %w", err)
		}
		if renderPage != "" && tree.Find(renderPage) == nil {
			return fmt.Errorf("page %q is not in %s", renderPage, name)
		}

		log := newLogger(cfg, cmd.ErrOrStderr())
		a := newAnnotator(cfg, log)

		var out string
		if customOptions(cmd) {
			opts := toctree.Options{
				Collapse:      renderCollapse,
				TitlesOnly:    renderTitlesOnly,
				MaxDepth:      renderMaxDepth,
				IncludeHidden: renderIncludeHidden,
			}
			fragment, err := toctree.Render(tree, renderPage, opts)
			if err != nil {
				return err
			}
			if out, err = a.Annotate(fragment); err != nil {
				return fmt.Errorf("annotate: %w", err)
			}
		} else {
			hooks := &theme.Hooks{}
			hooks.Connect(theme.NavigationHook(a))
			if out, err = hooks.PageNavigation(tree, renderPage); err != nil {
				return err
			}
		}

		log.Debug("rendered navigation", "page", renderPage, "bytes", len(out))
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func customOptions(cmd *cobra.Command) bool {
	for _, name := range []string{"maxdepth", "collapse", "titles-only", "include-hidden"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func init() {
	def := theme.NavigationOptions
	renderCmd.Flags().StringVar(&renderIndex, "index", "", "markdown navigation index (default stdin)")
	renderCmd.Flags().StringVar(&renderPage, "page", "", "docname of the page being rendered")
	renderCmd.Flags().IntVar(&renderMaxDepth, "maxdepth", def.MaxDepth, "deepest entry level; 0 is unlimited")
	renderCmd.Flags().BoolVar(&renderCollapse, "collapse", def.Collapse, "expand only entries on the current trail")
	renderCmd.Flags().BoolVar(&renderTitlesOnly, "titles-only", def.TitlesOnly, "drop in-page section entries")
	renderCmd.Flags().BoolVar(&renderIncludeHidden, "include-hidden", def.IncludeHidden, "render entries marked hidden")
	rootCmd.AddCommand(renderCmd)
}
