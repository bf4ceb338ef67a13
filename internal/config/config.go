// Package config handles configuration loading for ReviewPulse.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	LLM     LLMConfig     `mapstructure:"llm"     yaml:"llm"`
	Mail    MailConfig    `mapstructure:"mail"    yaml:"mail"`
	App     AppConfig     `mapstructure:"app"     yaml:"app"`
	Report  ReportConfig  `mapstructure:"report"  yaml:"report"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// LLMConfig holds text-generation provider configuration.
type LLMConfig struct {
	Provider    string  `mapstructure:"provider"    yaml:"provider"` // "gemini" or "openai"
	GeminiKey   string  `mapstructure:"gemini_key"  yaml:"gemini_key"`
	OpenAIKey   string  `mapstructure:"openai_key"  yaml:"openai_key"`
	Model       string  `mapstructure:"model"       yaml:"model"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"  yaml:"max_tokens"`
}

// MailConfig holds SMTP delivery settings.
type MailConfig struct {
	Address     string `mapstructure:"address"      yaml:"address"`
	AppPassword string `mapstructure:"app_password" yaml:"app_password"`
	Host        string `mapstructure:"host"         yaml:"host"`
	Port        int    `mapstructure:"port"         yaml:"port"`
	Recipient   string `mapstructure:"recipient"    yaml:"recipient"`
	Style       string `mapstructure:"style"        yaml:"style"` // "plain", "executive", "dashboard"
}

// AppConfig identifies the app whose store reviews are collected.
type AppConfig struct {
	Name      string `mapstructure:"name"       yaml:"name"`
	AndroidID string `mapstructure:"android_id" yaml:"android_id"`
	IOSID     string `mapstructure:"ios_id"     yaml:"ios_id"`
	Country   string `mapstructure:"country"    yaml:"country"`
}

// ReportConfig holds analysis and rendering settings.
type ReportConfig struct {
	Weeks     int    `mapstructure:"weeks"      yaml:"weeks"`
	MaxThemes int    `mapstructure:"max_themes" yaml:"max_themes"`
	WordLimit int    `mapstructure:"word_limit" yaml:"word_limit"`
	Executive bool   `mapstructure:"executive"  yaml:"executive"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	DataDir   string `mapstructure:"data_dir"   yaml:"data_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config.yaml (project root)
//  2. ./config/config.yaml
//  3. ~/.reviewpulse/config.yaml (home directory)
//
// Environment variables override config file values.
// Format: REVIEWPULSE_<SECTION>_<KEY>, e.g., REVIEWPULSE_LLM_GEMINI_KEY
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".reviewpulse"))

	v.SetEnvPrefix("REVIEWPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file not required to exist; defaults + env vars suffice.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("REVIEWPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// LLM defaults
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.model", "gemini-2.5-flash")
	v.SetDefault("llm.temperature", 0.3)
	v.SetDefault("llm.max_tokens", 8192)

	// Mail defaults
	v.SetDefault("mail.host", "smtp.gmail.com")
	v.SetDefault("mail.port", 465)
	v.SetDefault("mail.style", "plain")

	// App defaults
	v.SetDefault("app.name", "Groww")
	v.SetDefault("app.android_id", "com.nextbillion.groww")
	v.SetDefault("app.ios_id", "1404871631")
	v.SetDefault("app.country", "in")

	// Report defaults
	v.SetDefault("report.weeks", 10)
	v.SetDefault("report.max_themes", 5)
	v.SetDefault("report.word_limit", 250)
	v.SetDefault("report.executive", false)
	v.SetDefault("report.output_dir", "reports")
	v.SetDefault("report.data_dir", "data/raw")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("REVIEWPULSE_LLM_GEMINI_KEY"); key != "" {
		cfg.LLM.GeminiKey = key
	}
	if key := os.Getenv("REVIEWPULSE_LLM_OPENAI_KEY"); key != "" {
		cfg.LLM.OpenAIKey = key
	}
	if key := os.Getenv("REVIEWPULSE_MAIL_ADDRESS"); key != "" {
		cfg.Mail.Address = key
	}
	if key := os.Getenv("REVIEWPULSE_MAIL_APP_PASSWORD"); key != "" {
		cfg.Mail.AppPassword = key
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
