package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	importer "github.com/adas26/txfb/pkg/importer/openapi"
	"github.com/adas26/txfb/pkg/schema"
	"github.com/adas26/txfb/pkg/store"
)

var (
	importOperation string
	importOutput    string
	importSave      bool
)

var importCmd = &cobra.Command{
	Use:   "import <openapi-file>",
	Short: "Seed a form schema from an OpenAPI operation's request body",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(filepath.Clean(args[0]))
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}

		form, err := importer.New().ImportOperation(cmd.Context(), data, importOperation)
		if err != nil {
			return err
		}

		if importSave {
			sqlite, err := store.OpenSQLite(cmd.Context(), cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer sqlite.Close()

			id, err := store.NewCatalog(sqlite, logger).Save(cmd.Context(), form)
			if err != nil {
				return err
			}
			logger.Info("imported form saved", zap.Int64("id", id))
			return nil
		}

		payload, err := schema.Marshal(form)
		if err != nil {
			return err
		}
		return writeOutput(importOutput, payload)
	},
}

func init() {
	importCmd.Flags().StringVar(&importOperation, "operation", "", "operation id to import (required)")
	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "output file (stdout if empty)")
	importCmd.Flags().BoolVar(&importSave, "save", false, "save the imported schema to the database instead of printing it")
	_ = importCmd.MarkFlagRequired("operation")
}
