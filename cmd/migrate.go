package cmd

import (
	"fmt"

	"brainrot-catalog/core/config"
	"brainrot-catalog/core/database"
	"brainrot-catalog/core/logger"
	"brainrot-catalog/feature/catalog"
	"brainrot-catalog/feature/catalog/models"
	"brainrot-catalog/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCheck bool

// migrateCmd creates or verifies the catalog schema.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the catalog schema",
	Long:  `Runs the schema migration for the brainrots table. With --check the schema is only verified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}

		table := models.Brainrot{}.TableName()
		if migrateCheck {
			report, err := checks.CheckSchema(db, table, models.RequiredColumns)
			if err != nil {
				return fmt.Errorf("schema check failed: %w", err)
			}
			if !report.Matched {
				logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", report.MissingColumns))
				return fmt.Errorf("schema of %s is out of date, run migrate", table)
			}
			logg.Info("Schema matches expected definition.", zap.String("table", table))
			return nil
		}

		if err := catalog.NewRepository(db).Migrate(cmd.Context()); err != nil {
			return err
		}
		logg.Info("Migration completed", zap.String("table", table), zap.String("driver", cfg.Database.Driver))
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateCheck, "check", false, "Only verify the schema")
	RootCmd.AddCommand(migrateCmd)
}
