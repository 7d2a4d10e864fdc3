package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "PARTPICK"

type Config struct {
	HistoryDB string        `mapstructure:"history_db"`
	OutputDir string        `mapstructure:"output_dir"`
	Copy      bool          `mapstructure:"copy"`
	Log       LogConfig     `mapstructure:"log"`
	CSV       CSVConfig     `mapstructure:"csv"`
	Suggest   SuggestConfig `mapstructure:"suggest"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type CSVConfig struct {
	// Encoding is auto, utf-8 or euc-kr.
	Encoding string `mapstructure:"encoding"`
}

type SuggestConfig struct {
	Limit int `mapstructure:"limit"`
}

// Load reads .env, then partpick.yaml from the working directory or the user
// config directory, then PARTPICK_* environment variables.
func Load() (Config, error) {
	_ = godotenv.Load()
	return load(".", defaultConfigDir())
}

func load(dirs ...string) (Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigName("partpick")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		if dir != "" {
			v.AddConfigPath(dir)
		}
	}

	v.SetDefault("history_db", filepath.Join(cwd, "data", "partpick.db"))
	v.SetDefault("output_dir", filepath.Join(cwd, "out"))
	v.SetDefault("copy", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "INFO")
	v.SetDefault("csv.encoding", "auto")
	v.SetDefault("suggest.limit", 5)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(c.CSV.Encoding) {
	case "auto", "utf-8", "utf8", "euc-kr", "cp949":
	default:
		return fmt.Errorf("csv.encoding %q is not one of auto, utf-8, euc-kr", c.CSV.Encoding)
	}
	if c.Suggest.Limit < 0 {
		return fmt.Errorf("suggest.limit must not be negative, got %d", c.Suggest.Limit)
	}
	return nil
}

// HistoryEnabled reports whether imports and outputs are recorded.
func (c Config) HistoryEnabled() bool {
	return strings.TrimSpace(c.HistoryDB) != ""
}

func defaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "partpick")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, ".config", "partpick")
	}
}
