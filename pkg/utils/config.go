package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Line     LineConfig
	Notify   NotifyConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// LineConfig holds messaging-channel credentials. ChannelSecret signs
// inbound webhooks, ChannelToken authorizes outbound push/reply calls.
type LineConfig struct {
	ChannelSecret     string
	ChannelToken      string
	APIEndpoint       string
	SignatureRequired bool
	TimeoutSeconds    int
}

type NotifyConfig struct {
	BufferSize int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("LINE_API_ENDPOINT", "https://api.line.me")
	viper.SetDefault("LINE_SIGNATURE_REQUIRED", false)
	viper.SetDefault("LINE_TIMEOUT_SECONDS", 10)
	viper.SetDefault("NOTIFY_BUFFER_SIZE", 64)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Line: LineConfig{
			ChannelSecret:     viper.GetString("LINE_CHANNEL_SECRET"),
			ChannelToken:      viper.GetString("LINE_CHANNEL_TOKEN"),
			APIEndpoint:       viper.GetString("LINE_API_ENDPOINT"),
			SignatureRequired: viper.GetBool("LINE_SIGNATURE_REQUIRED"),
			TimeoutSeconds:    viper.GetInt("LINE_TIMEOUT_SECONDS"),
		},
		Notify: NotifyConfig{
			BufferSize: viper.GetInt("NOTIFY_BUFFER_SIZE"),
		},
	}

	return config, nil
}
