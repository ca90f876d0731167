package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultConfigPath   = "config.toml"
	DefaultModel        = "claude-sonnet-4-20250514"
	DefaultMaxTokens    = 4096
	DefaultMaxFileBytes = 50 * 1024 * 1024
)

type Config struct {
	Log    LogConfig    `toml:"log"`
	Slack  SlackConfig  `toml:"slack"`
	Claude ClaudeConfig `toml:"claude"`
	Files  FilesConfig  `toml:"files"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type SlackConfig struct {
	// BotToken (xoxb-...) authenticates API calls and file downloads.
	BotToken string `toml:"bot_token" validate:"required"`
	// AppToken (xapp-...) authenticates the Socket Mode connection.
	AppToken string `toml:"app_token" validate:"required"`
}

type ClaudeConfig struct {
	APIKey string `toml:"api_key" validate:"required"`
	// Model handles text-only turns.
	Model string `toml:"model"`
	// VisionModel handles turns that carry image blocks. Empty means use
	// Model for everything.
	VisionModel  string `toml:"vision_model"`
	MaxTokens    int    `toml:"max_tokens" validate:"gt=0"`
	SystemPrompt string `toml:"system_prompt"`
}

type FilesConfig struct {
	MaxSizeBytes int64 `toml:"max_size_bytes" validate:"gt=0"`
	// TempDir overrides the OS temp directory for spooled downloads.
	TempDir string `toml:"temp_dir"`
	// WorkingDir is the default session working directory.
	WorkingDir string `toml:"working_dir"`
}

// Load reads the config file at path, layering it over defaults. A missing
// file is not an error; env vars override secrets afterwards so the file can
// stay free of credentials.
func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Claude: ClaudeConfig{
			Model:     DefaultModel,
			MaxTokens: DefaultMaxTokens,
		},
		Files: FilesConfig{
			MaxSizeBytes: DefaultMaxFileBytes,
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return cfg, err
		}
	} else if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SLACK_BOT_TOKEN"); v != "" {
		cfg.Slack.BotToken = v
	}
	if v := os.Getenv("SLACK_APP_TOKEN"); v != "" {
		cfg.Slack.AppToken = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.Claude.APIKey = v
	}
}

// Validate checks the loaded config against its struct tags.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
