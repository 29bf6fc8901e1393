package configuration

import (
	"os"
	"strings"
)

// YouTubeConfig represents YouTube API configuration
type YouTubeConfig struct {
	APIKey string `mapstructure:"api_key"`
	// Endpoint overrides the API base URL; empty means the public endpoint
	Endpoint string `mapstructure:"endpoint"`
}

// GetYouTubeConfig returns YouTube configuration from JSON config with environment variable fallback
func GetYouTubeConfig() *YouTubeConfig {
	return &YouTubeConfig{
		APIKey:   getConfigValue(C.YouTube.APIKey, "YOUTUBE_API_KEY", ""),
		Endpoint: getConfigValue(C.YouTube.Endpoint, "YOUTUBE_ENDPOINT", ""),
	}
}

// getConfigValue gets value from config first, then environment variable, then default
func getConfigValue(configValue, envKey, defaultValue string) string {
	// Environment variable takes precedence when provided
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	// Otherwise use config value if set and not a placeholder
	if configValue != "" && !strings.HasPrefix(configValue, "YOUR_") {
		return configValue
	}
	return defaultValue
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
