package config

// Config holds all configuration for the application.
type Config struct {
	Port        string
	Strapi      StrapiConfig
	Slack       SlackConfig
	MaxUploadMB int64
}

type StrapiConfig struct {
	BaseURL  string
	APIToken string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}
