package notify

// Config holds configuration for sync completion events.
type Config struct {
	// RedisAddr enables the redis publisher when set (host:port).
	RedisAddr string `mapstructure:"redis_addr" default:""`
	// RedisPassword authenticates against redis.
	RedisPassword string `mapstructure:"redis_password" default:""`
	// RedisDB selects the redis database.
	RedisDB int `mapstructure:"redis_db" default:"0"`
	// Channel is the pub/sub channel events are published to.
	Channel string `mapstructure:"channel" default:"brainrot:sync"`
}
