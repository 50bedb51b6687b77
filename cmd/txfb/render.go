package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adas26/txfb/pkg/render"
	"github.com/adas26/txfb/pkg/renderers/html"
	"github.com/adas26/txfb/pkg/schema"
)

var (
	renderOutput   string
	renderReadOnly bool
	renderSanitize bool
)

var renderCmd = &cobra.Command{
	Use:   "render <schema-file>",
	Short: "Render a form schema document to HTML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		form, err := loadSchemaFile(args[0])
		if err != nil {
			return err
		}

		var options []html.Option
		if renderSanitize {
			options = append(options, html.WithSanitizer())
		}
		renderer, err := html.New(options...)
		if err != nil {
			return err
		}

		output, err := renderer.Render(cmd.Context(), form, render.Options{
			ReadOnly: renderReadOnly,
			Logger:   logger,
		})
		if err != nil {
			return err
		}

		return writeOutput(renderOutput, output)
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file (stdout if empty)")
	renderCmd.Flags().BoolVar(&renderReadOnly, "readonly", false, "render every control disabled")
	renderCmd.Flags().BoolVar(&renderSanitize, "sanitize", false, "strip scripts from raw markup fields")
}

// loadSchemaFile reads a schema document, accepting JSON or YAML by file
// extension.
func loadSchemaFile(path string) (schema.FormSchema, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return schema.FormSchema{}, fmt.Errorf("read schema file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return schema.FromYAML(data)
	default:
		return schema.Unmarshal(data)
	}
}

func writeOutput(path string, payload []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(payload)
		return err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("written to %s\n", path)
	return nil
}
