package sources

// BadgeConfig holds configuration for the badge statistics API source.
type BadgeConfig struct {
	// BaseURL is the badges API root.
	BaseURL string `mapstructure:"base_url" default:"https://badges.roblox.com/v1"`
	// ThumbnailsURL resolves badge icons.
	ThumbnailsURL string `mapstructure:"thumbnails_url" default:"https://thumbnails.roblox.com/v1/badges/icons"`
	// UniverseID is the game universe whose badges are listed.
	UniverseID string `mapstructure:"universe_id" default:"7709344486"`
	// PageSize is the number of badges requested per page.
	PageSize int `mapstructure:"page_size" default:"100"`
	// RequestDelayMS is the minimum spacing between requests.
	RequestDelayMS int `mapstructure:"request_delay_ms" default:"100"`
	// TimeoutSeconds bounds a single request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// MaxPages stops pagination after this many pages; 0 means no limit.
	MaxPages int `mapstructure:"max_pages" default:"0"`
	// UserAgent identifies the client to the API.
	UserAgent string `mapstructure:"user_agent" default:"StealABrainrotApp/1.0"`
}

// WikiConfig holds configuration for the wiki source.
type WikiConfig struct {
	// BaseURL is the wiki site root.
	BaseURL string `mapstructure:"base_url" default:"https://stealabrainrot.fandom.com"`
	// ListingPage is the wiki page that links every brainrot.
	ListingPage string `mapstructure:"listing_page" default:"Brainrots"`
	// RequestDelayMS is the minimum spacing between page fetches.
	RequestDelayMS int `mapstructure:"request_delay_ms" default:"1000"`
	// TimeoutSeconds bounds a single request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// UserAgent identifies the scraper to the wiki.
	UserAgent string `mapstructure:"user_agent" default:"StealABrainrotApp/1.0 (Educational/Research)"`
}
