package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [file]",
	Short: "Annotate a rendered toctree fragment",
	Long:  `Reads toctree HTML from a file, or stdin when no file is given, and prints it with current-page markers and checkbox toggles added.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		var path string
		if len(args) == 1 {
			path = args[0]
		}
		data, err := readInput(cmd, path)
		if err != nil {
			return err
		}

		a := newAnnotator(cfg, newLogger(cfg, cmd.ErrOrStderr()))
		out, err := a.Annotate(string(data))
		if err != nil {
			return fmt.Errorf("annotate: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(annotateCmd)
}
