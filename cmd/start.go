package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brainrot-catalog/core/config"
	"brainrot-catalog/core/loader"
	"brainrot-catalog/core/logger"
	"brainrot-catalog/core/middleware/auth"
	"brainrot-catalog/core/middleware/rayid"
	"brainrot-catalog/feature/catalog"
	"brainrot-catalog/feature/catalog/ingest"
	"brainrot-catalog/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "brainrot-catalog/docs/swagger"
)

// @title Brainrot Catalog API
// @version 1.0
// @description Catalog of brainrot entities ingested from the badge API and the community wiki.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the catalog server",
	Long:  `Starts the HTTP server, loads all enabled features and, when enabled, the sync scheduler.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Database, asset store and sync pipeline
		ctx := context.Background()
		comps, err := buildComponents(ctx, cfg, logg)
		if err != nil {
			logg.Fatal("Failed to initialize components", zap.Error(err))
		}
		defer comps.Close()

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		})

		// 4. Register Features
		mgr := loader.NewManager(logg)
		mgr.Register(catalog.NewFeature(catalog.NewService(comps.repo, comps.store, logg)))
		mgr.Register(ingest.NewFeature(comps.orch, logg))
		mgr.Register(integrity.NewFeature(integrity.NewService(comps.db, comps.repo, comps.store, logg)))

		// RayID first so every log line can be traced
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok", "sync": comps.orch.Status()})
		})
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: cfg.Server.IsPublic}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 5. Scheduler
		var sched *ingest.Scheduler
		if cfg.Sync.EnableCron {
			sched, err = ingest.NewScheduler(cfg.Sync, comps.orch, logg)
			if err != nil {
				logg.Fatal("Failed to create sync scheduler", zap.Error(err))
			}
			sched.Start()
		} else {
			logg.Info("Sync scheduler disabled")
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		if sched != nil {
			<-sched.Stop().Done()
		}
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
