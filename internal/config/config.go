package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"greek-vocab-trainer/pkg/validator"
)

const (
	UIModeConsole  = "console"
	UIModeTelegram = "telegram"

	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

type Config struct {
	Env      string         `mapstructure:"env" validate:"oneof=development production"`
	Log      LogConfig      `mapstructure:"log"`
	Storage  StorageConfig  `mapstructure:"storage"`
	UI       UIConfig       `mapstructure:"ui"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Quiz     QuizConfig     `mapstructure:"quiz"`
}

type LogConfig struct {
	Level  string   `mapstructure:"level" validate:"oneof=debug info warn error"`
	Output []string `mapstructure:"output" validate:"min=1,dive,required"`
}

type StorageConfig struct {
	Backend    string `mapstructure:"backend" validate:"oneof=json sqlite"`
	Path       string `mapstructure:"path" validate:"required"`
	SQLitePath string `mapstructure:"sqlite_path" validate:"required"`
}

type UIConfig struct {
	Mode string `mapstructure:"mode" validate:"oneof=console telegram"`
}

type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID int64  `mapstructure:"chat_id" validate:"min=0"`
}

type QuizConfig struct {
	Categories []string `mapstructure:"categories" validate:"dive,required"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.output", []string{"stderr"})
	v.SetDefault("storage.backend", BackendJSON)
	v.SetDefault("storage.path", "vocab.json")
	v.SetDefault("storage.sqlite_path", "vocab.db")
	v.SetDefault("ui.mode", UIModeConsole)
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.chat_id", 0)
	v.SetDefault("quiz.categories", []string{"noun", "verb", "adjective", "preposition"})
}

// Init loads configuration from an optional .env file, an optional
// configs/<CONFIG_NAME>.yaml file and VOCAB_* environment variables, in
// increasing order of precedence.
func Init() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("VOCAB")
	v.AutomaticEnv()

	configName := os.Getenv("CONFIG_NAME")
	if configName == "" {
		configName = "default"
	}

	v.AddConfigPath("configs")
	v.SetConfigName(configName)
	v.SetConfigType("yaml")

	if err := v.BindEnv("env", "VOCAB_ENV"); err != nil {
		return nil, fmt.Errorf("failed to bind VOCAB_ENV: %w", err)
	}
	if err := v.BindEnv("log.level", "VOCAB_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind VOCAB_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("storage.backend", "VOCAB_STORAGE_BACKEND"); err != nil {
		return nil, fmt.Errorf("failed to bind VOCAB_STORAGE_BACKEND: %w", err)
	}
	if err := v.BindEnv("storage.path", "VOCAB_STORAGE_PATH", "VOCAB_FILE"); err != nil {
		return nil, fmt.Errorf("failed to bind VOCAB_STORAGE_PATH: %w", err)
	}
	if err := v.BindEnv("storage.sqlite_path", "VOCAB_STORAGE_SQLITE_PATH", "DB_PATH"); err != nil {
		return nil, fmt.Errorf("failed to bind VOCAB_STORAGE_SQLITE_PATH: %w", err)
	}
	if err := v.BindEnv("ui.mode", "VOCAB_UI_MODE"); err != nil {
		return nil, fmt.Errorf("failed to bind VOCAB_UI_MODE: %w", err)
	}
	if err := v.BindEnv("telegram.token", "VOCAB_TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind TELEGRAM_BOT_TOKEN: %w", err)
	}
	if err := v.BindEnv("telegram.chat_id", "VOCAB_TELEGRAM_CHAT_ID"); err != nil {
		return nil, fmt.Errorf("failed to bind VOCAB_TELEGRAM_CHAT_ID: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := Config{}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks field constraints and the settings that depend on each other
func (c Config) Validate() error {
	if err := validator.ValidateStruct(c); err != nil {
		return err
	}

	if c.UI.Mode == UIModeTelegram && c.Telegram.Token == "" {
		return errors.New("validation failed: telegram.token is required when ui.mode is telegram")
	}

	return nil
}
