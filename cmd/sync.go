package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"brainrot-catalog/core/config"
	"brainrot-catalog/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncSource string
	syncJSON   bool
)

// syncCmd runs one sync pass in the foreground.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one sync pass against a source",
	Long: `Fetches every brainrot from the selected source, caches their images and
reconciles them into the database. Prints a summary, or the full result with --json.

Examples:
  # Sync from the configured source (SYNC_SOURCE, default badges)
  sync

  # Sync from the wiki and print the result as JSON
  sync --source wiki --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if syncSource != "" {
			cfg.Sync.Source = syncSource
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		ctx := cmd.Context()
		comps, err := buildComponents(ctx, cfg, logg)
		if err != nil {
			return err
		}
		defer comps.Close()

		res, err := comps.orch.RunNow(ctx)
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		if syncJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		fmt.Println("\n=== Sync Summary ===")
		fmt.Printf("Source: %s\n", res.Source)
		fmt.Printf("Total Seen: %d\n", res.TotalSeen)
		fmt.Printf("Created: %d\n", res.Created)
		fmt.Printf("Updated: %d\n", res.Updated)
		fmt.Printf("Errors: %d\n", res.Errors)
		fmt.Printf("Execution Time: %s\n", res.Duration().String())
		for _, f := range res.Failures {
			fmt.Printf("  - %s: %s\n", f.Name, f.Error)
		}

		if !res.Success {
			logg.Warn("Sync found no records", zap.String("source", res.Source))
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().StringVar(&syncSource, "source", "", "Source to sync from (badges or wiki)")
	syncCmd.Flags().BoolVar(&syncJSON, "json", false, "Print the full result as JSON")
	RootCmd.AddCommand(syncCmd)
}
