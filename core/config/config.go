package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration in a structured way.
type Config struct {
	App      AppConfig
	Telegram TelegramConfig
	Relay    RelayConfig
	Database DatabaseConfig
}

type AppConfig struct {
	Version   string
	Port      string
	Debug     bool
	BasePath  string
	BasicAuth []string
}

type TelegramConfig struct {
	BotToken       string
	APIBaseURL     string
	TimeoutSeconds int
}

type RelayConfig struct {
	TargetChatID     string
	AllowedSenderIDs []string
	AuditLog         bool
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string // File path for SQLite, DB name for Postgres
}

// Global provides access to the loaded configuration. Set once by
// LoadConfig before any server or command runs; read-only afterwards.
var Global *Config

// LoadConfig builds the configuration through viper and defaults. It does
// not fail on a missing credential: commands that need the token call
// Validate themselves so config-free commands keep working.
func LoadConfig() (*Config, error) {
	// Idempotent; the cmd init does the same before flag parsing, but
	// calling LoadConfig standalone must resolve env keys too.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	baseDir := getEnv("app_base_dir", "storages")
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base dir %s: %w", baseDir, err)
	}

	cfg := &Config{
		App: AppConfig{
			Version:   "v1.2.0",
			Port:      getEnv("app_port", "3000"),
			Debug:     getEnvBool("app_debug", false),
			BasePath:  strings.TrimRight(getEnv("app_base_path", ""), "/"),
			BasicAuth: splitList(viper.GetString("app_basic_auth")),
		},
		Telegram: TelegramConfig{
			BotToken:       strings.TrimSpace(viper.GetString("telegram_bot_token")),
			APIBaseURL:     getEnv("telegram_api_base_url", "https://api.telegram.org"),
			TimeoutSeconds: getEnvInt("telegram_timeout_seconds", 30),
		},
		Relay: RelayConfig{
			TargetChatID:     strings.TrimSpace(viper.GetString("relay_target_chat_id")),
			AllowedSenderIDs: splitList(viper.GetString("relay_allowed_sender_ids")),
			AuditLog:         getEnvBool("relay_audit_log", true),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("db_driver", "sqlite"),
			Host:     getEnv("db_host", "localhost"),
			Port:     getEnvInt("db_port", 5432),
			User:     getEnv("db_user", "postgres"),
			Password: viper.GetString("db_password"),
			Name:     getEnv("db_name", filepath.Join(baseDir, "relay.db")),
		},
	}

	if cfg.Telegram.TimeoutSeconds <= 0 {
		cfg.Telegram.TimeoutSeconds = 30
	}

	Global = cfg
	return cfg, nil
}

// Validate checks the settings that must be present before the relay can
// serve traffic. A missing credential is fatal at startup, never silent.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.Relay.TargetChatID == "" {
		return fmt.Errorf("RELAY_TARGET_CHAT_ID is required")
	}
	for _, id := range c.Relay.AllowedSenderIDs {
		if !chatIDPattern.MatchString(id) {
			return fmt.Errorf("RELAY_ALLOWED_SENDER_IDS contains invalid id %q", id)
		}
	}
	return nil
}
