package config

import (
	"path/filepath"
	"reflect"
	"strings"

	"brainrot-catalog/core/assets"
	"brainrot-catalog/core/database"
	"brainrot-catalog/core/logger"
	"brainrot-catalog/core/notify"
	"brainrot-catalog/core/server"
	"brainrot-catalog/core/storage"
	"brainrot-catalog/feature/catalog/ingest"
	"brainrot-catalog/feature/catalog/sources"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Database holds configuration for the catalog database.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the object storage used by the bucket asset backend.
	Storage storage.Config `mapstructure:"storage"`
	// Assets holds configuration for the image cache.
	Assets assets.Config `mapstructure:"assets"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Sync holds configuration for the sync orchestrator and its schedule.
	Sync ingest.Config `mapstructure:"sync"`
	// Badges holds configuration for the badge statistics API source.
	Badges sources.BadgeConfig `mapstructure:"badges"`
	// Wiki holds configuration for the wiki source.
	Wiki sources.WikiConfig `mapstructure:"wiki"`
	// Notify holds configuration for sync completion events.
	Notify notify.Config `mapstructure:"notify"`
}

// LoadConfig loads configuration from environment variables and an optional .env file in path.
func LoadConfig(path string) (*Config, error) {
	envPath := ".env"
	if path != "" && path != "." {
		envPath = filepath.Join(path, ".env")
	}

	// Missing .env is fine (e.g. production)
	_ = godotenv.Load(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// SYNC_SOURCE -> sync.source
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues walks the struct and registers every mapstructure key with its
// 'default' tag value so AutomaticEnv can resolve it.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
	}
}
