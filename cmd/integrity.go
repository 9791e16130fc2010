package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"brainrot-catalog/core/assets"
	"brainrot-catalog/core/config"
	"brainrot-catalog/core/database"
	"brainrot-catalog/core/logger"
	"brainrot-catalog/feature/catalog"
	"brainrot-catalog/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the catalog schema and image cache",
	Long:  `Verifies the brainrots table schema and that every cached image referenced by the catalog exists. Outputs metrics by default or a detailed JSON report with --json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		startTime := time.Now()

		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}

		store, err := assets.NewStore(ctx, cfg.Assets, cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create asset store: %w", err)
		}

		svc := integrity.NewService(db, catalog.NewRepository(db), store, logg)
		report := svc.CheckAll(ctx)

		if jsonOutput {
			filename := fmt.Sprintf("integrity_catalog_%d.json", time.Now().Unix())
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			if err := os.WriteFile(filename, data, 0644); err != nil {
				return fmt.Errorf("failed to save JSON file: %w", err)
			}
			logg.Info("Detailed JSON report saved", zap.String("file", filename))
		}

		missingColumns, checked, missingImages := 0, 0, 0
		if report.Schema != nil {
			missingColumns = len(report.Schema.MissingColumns)
		}
		if report.Images != nil {
			checked = report.Images.Checked
			missingImages = len(report.Images.Missing)
		}

		fmt.Println("\n=== Catalog Integrity Metrics ===")
		fmt.Printf("Status: %s\n", report.Status)
		fmt.Printf("Missing Columns: %d\n", missingColumns)
		fmt.Printf("Images Checked: %d\n", checked)
		fmt.Printf("Images Missing: %d\n", missingImages)
		fmt.Printf("Execution Time: %s\n", time.Since(startTime).String())

		for check, msg := range report.Errors {
			logg.Error("Check failed", zap.String("check", check), zap.String("error", msg))
		}
		return nil
	},
}

func init() {
	integrityCmd.Flags().Bool("json", false, "Save a detailed JSON report")
	RootCmd.AddCommand(integrityCmd)
}
