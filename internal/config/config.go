// internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Mail     MailConfig
	Importer ImporterConfig
	Vision   VisionConfig
}

type ServerConfig struct {
	Port           string
	PortalPort     string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
	PublicBaseURL  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled           bool
	RedisURL          string
	RedisHost         string
	RedisPort         string
	RedisPassword     string
	RedisDB           int
	SummaryTTLSeconds int
	RequestTTLHours   int
}

type MailConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Manager  string
}

type ImporterConfig struct {
	Enabled         bool
	CredentialsJSON string
	FolderPath      string
	PollSeconds     int
}

type VisionConfig struct {
	ServiceURL     string
	TimeoutSeconds int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("PORTAL_PORT", "8081")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("SERVER_PUBLIC_BASE_URL", "http://localhost:8081")
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "aims")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_SUMMARY_TTL_SECONDS", 60)
		viper.SetDefault("CACHE_REQUEST_TTL_HOURS", 24)
		viper.SetDefault("MAIL_ENABLED", false)
		viper.SetDefault("MAIL_HOST", "localhost")
		viper.SetDefault("MAIL_PORT", 587)
		viper.SetDefault("MAIL_USERNAME", "")
		viper.SetDefault("MAIL_PASSWORD", "")
		viper.SetDefault("MAIL_FROM", "aims@localhost")
		viper.SetDefault("MAIL_MANAGER", "")
		viper.SetDefault("IMPORTER_ENABLED", false)
		viper.SetDefault("IMPORTER_FOLDER_PATH", "AIMS/inventory")
		viper.SetDefault("IMPORTER_POLL_SECONDS", 300)
		viper.SetDefault("VISION_SERVICE_URL", "")
		viper.SetDefault("VISION_TIMEOUT_SECONDS", 20)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				PortalPort:     viper.GetString("PORTAL_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
				PublicBaseURL:  viper.GetString("SERVER_PUBLIC_BASE_URL"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:           viper.GetBool("CACHE_ENABLED"),
				RedisURL:          viper.GetString("REDIS_URL"),
				RedisHost:         viper.GetString("REDIS_HOST"),
				RedisPort:         viper.GetString("REDIS_PORT"),
				RedisPassword:     viper.GetString("REDIS_PASSWORD"),
				RedisDB:           viper.GetInt("REDIS_DB"),
				SummaryTTLSeconds: viper.GetInt("CACHE_SUMMARY_TTL_SECONDS"),
				RequestTTLHours:   viper.GetInt("CACHE_REQUEST_TTL_HOURS"),
			},
			Mail: MailConfig{
				Enabled:  viper.GetBool("MAIL_ENABLED"),
				Host:     viper.GetString("MAIL_HOST"),
				Port:     viper.GetInt("MAIL_PORT"),
				Username: viper.GetString("MAIL_USERNAME"),
				Password: viper.GetString("MAIL_PASSWORD"),
				From:     viper.GetString("MAIL_FROM"),
				Manager:  viper.GetString("MAIL_MANAGER"),
			},
			Importer: ImporterConfig{
				Enabled:         viper.GetBool("IMPORTER_ENABLED"),
				CredentialsJSON: viper.GetString("GOOGLE_DRIVE_CREDENTIALS_JSON"),
				FolderPath:      viper.GetString("IMPORTER_FOLDER_PATH"),
				PollSeconds:     viper.GetInt("IMPORTER_POLL_SECONDS"),
			},
			Vision: VisionConfig{
				ServiceURL:     viper.GetString("VISION_SERVICE_URL"),
				TimeoutSeconds: viper.GetInt("VISION_TIMEOUT_SECONDS"),
			},
		}
	})

	return instance
}
