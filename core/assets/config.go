package assets

// Config holds configuration for the image cache.
type Config struct {
	// Backend selects where images are kept: "filesystem" or "bucket".
	Backend string `mapstructure:"backend" default:"filesystem"`
	// Root is the managed asset directory for the filesystem backend.
	Root string `mapstructure:"root" default:"./images"`
	// PublicPrefix is prepended to file names to build the stored image path.
	PublicPrefix string `mapstructure:"public_prefix" default:"/images"`
	// DownloadTimeoutSeconds bounds a single image download.
	DownloadTimeoutSeconds int `mapstructure:"download_timeout_seconds" default:"10"`
	// UserAgent is sent with image downloads.
	UserAgent string `mapstructure:"user_agent" default:"BrainrotCatalog/1.0"`
}
