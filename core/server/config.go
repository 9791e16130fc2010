package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access protected routes. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// ReadTimeoutSeconds bounds reading a request.
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" default:"15"`
	// PublicPaths are path prefixes served without an API key, comma separated.
	PublicPaths string `mapstructure:"public_paths" default:"/health,/swagger,/images,/brainrots,/rarities"`
}

// PublicPrefixes returns the configured public path prefixes.
func (c Config) PublicPrefixes() []string {
	var out []string
	for _, p := range strings.Split(c.PublicPaths, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsPublic reports whether path is exempt from API key checks.
func (c Config) IsPublic(path string) bool {
	for _, prefix := range c.PublicPrefixes() {
		if path == prefix || strings.HasPrefix(path, strings.TrimSuffix(prefix, "/")+"/") {
			return true
		}
	}
	return false
}
