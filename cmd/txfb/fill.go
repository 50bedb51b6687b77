package main

import (
	"github.com/spf13/cobra"

	"github.com/adas26/txfb/pkg/render"
	"github.com/adas26/txfb/pkg/renderers/tui"
)

var (
	fillFormat string
	fillOutput string
)

var fillCmd = &cobra.Command{
	Use:   "fill <schema-file>",
	Short: "Fill a form schema interactively from the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		form, err := loadSchemaFile(args[0])
		if err != nil {
			return err
		}

		renderer, err := tui.New(tui.WithOutputFormat(tui.OutputFormat(fillFormat)))
		if err != nil {
			return err
		}

		output, err := renderer.Render(cmd.Context(), form, render.Options{Logger: logger})
		if err != nil {
			return err
		}
		return writeOutput(fillOutput, output)
	},
}

func init() {
	fillCmd.Flags().StringVar(&fillFormat, "format", "json", "answer output format: json, form, or pretty")
	fillCmd.Flags().StringVarP(&fillOutput, "output", "o", "", "output file (stdout if empty)")
}
