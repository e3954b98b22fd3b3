package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"StockDataset/internal/locator"
)

// Config holds all application configuration.
type Config struct {
	Input struct {
		Root string   `yaml:"root"`
		Dirs []string `yaml:"dirs"`
	} `yaml:"input"`
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
	Enrichment struct {
		Provider string        `yaml:"provider"`
		APIKey   string        `yaml:"api_key"`
		BaseURL  string        `yaml:"base_url"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"enrichment"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// DefaultCron rebuilds the dataset at 06:00 on weekdays.
const DefaultCron = "0 0 6 * * 1-5"

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PRICEDATA_ROOT"); v != "" {
		cfg.Input.Root = v
	}
	if v := os.Getenv("PRICEDATA_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("ENRICHMENT_PROVIDER"); v != "" {
		cfg.Enrichment.Provider = v
	}
	if v := os.Getenv("EODHD_API_KEY"); v != "" {
		cfg.Enrichment.APIKey = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("CRON_SCHEDULE"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Input.Root == "" {
		cfg.Input.Root = "."
	}
	if len(cfg.Input.Dirs) == 0 {
		cfg.Input.Dirs = locator.DefaultDirs(cfg.Input.Root)
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = filepath.Join(cfg.Input.Root, "data")
	}
	if cfg.Schedule.Cron == "" {
		cfg.Schedule.Cron = DefaultCron
	}

	return cfg, nil
}

// TelegramEnabled reports whether both bot credentials are set.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks field combinations that would fail at run time.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output.Dir) == "" {
		return fmt.Errorf("output.dir is required")
	}
	switch strings.ToLower(c.Enrichment.Provider) {
	case "", "none", "yahoo", "eodhd":
	default:
		return fmt.Errorf("enrichment.provider %q is not one of none, yahoo, eodhd", c.Enrichment.Provider)
	}
	if c.Enrichment.Timeout < 0 {
		return fmt.Errorf("enrichment.timeout must not be negative")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor).Parse(c.Schedule.Cron); err != nil {
		return fmt.Errorf("schedule.cron: %w", err)
	}
	return nil
}
