package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const defaultMaxUploadMB = 25

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	maxUploadMB := int64(defaultMaxUploadMB)
	if raw, ok := os.LookupEnv("MAX_UPLOAD_MB"); ok {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			log.Fatalf("Error: MAX_UPLOAD_MB must be a positive integer, got %q.", raw)
		}
		maxUploadMB = parsed
	}

	cfg := Config{
		Port: getEnv("PORT"),
		Strapi: StrapiConfig{
			BaseURL:  getEnv("STRAPI_BASE_URL"),
			APIToken: getEnv("STRAPI_API_TOKEN"),
		},
		Slack: SlackConfig{
			Token:     getEnv("SLACK_BOT_TOKEN"),
			ChannelID: getEnv("SLACK_CHANNEL_ID"),
		},
		MaxUploadMB: maxUploadMB,
	}
	return cfg
}
