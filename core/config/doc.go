// Package config provides configuration management for the catalog service.
//
// It uses Viper with AutomaticEnv and an optional .env file (godotenv). Every
// field of Config and its sections declares a 'default' tag; bindValues
// registers those defaults so that environment variables such as
// SYNC_SOURCE or BADGES_UNIVERSE_ID resolve to nested keys.
//
// # Configuration Structure
//
//   - Server: HTTP port and API key
//   - Database: driver (sqlite, mysql, postgres) and connection details
//   - Storage: S3/MinIO credentials for the bucket asset backend
//   - Assets: image cache backend, root and public prefix
//   - Log: level and format
//   - Sync: source selection, game id, cron schedule
//   - Badges, Wiki: source endpoints and request pacing
//   - Notify: optional Redis channel for sync events
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Sync.Source)
package config
