package ingest

// Config holds configuration for sync passes and their schedule.
type Config struct {
	// Source selects the fetcher: "badges" or "wiki".
	Source string `mapstructure:"source" default:"badges"`
	// GameID is stored on records whose source does not provide one.
	GameID string `mapstructure:"game_id" default:"109983668079237"`
	// EnableCron starts the scheduler with the server.
	EnableCron bool `mapstructure:"enable_cron" default:"false"`
	// Schedule is a standard five field cron expression.
	Schedule string `mapstructure:"schedule" default:"0 2 * * 0"`
	// Timezone is the IANA zone the schedule is evaluated in.
	Timezone string `mapstructure:"timezone" default:"America/New_York"`
	// MaxFailures bounds the per-record failures kept on a result.
	MaxFailures int `mapstructure:"max_failures" default:"50"`
}
