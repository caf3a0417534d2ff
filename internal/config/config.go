package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	SourcePath    string `mapstructure:"SOURCE_PATH"`
	SheetName     string `mapstructure:"SHEET_NAME"`
	CSVPath       string `mapstructure:"CSV_PATH"`
	BackupPath    string `mapstructure:"BACKUP_PATH"`
	MigrationDir  string `mapstructure:"MIGRATION_DIR"`
	DBSource      string `mapstructure:"DB_SOURCE"`
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	LogFormat     string `mapstructure:"LOG_FORMAT"`
}

var defaults = map[string]string{
	"SOURCE_PATH":    "local_government_codes.xlsx",
	"SHEET_NAME":     "R6.1.1現在の団体",
	"CSV_PATH":       "backend/sql/local_government_codes.csv",
	"BACKUP_PATH":    "",
	"MIGRATION_DIR":  "backend/migrations",
	"DB_SOURCE":      "",
	"SERVER_ADDRESS": "0.0.0.0:8080",
	"LOG_LEVEL":      "info",
	"LOG_FORMAT":     "console",
}

// EnvFiles are loaded into the process environment before the config is read.
var EnvFiles = []string{".env", ".env.local"}

// LoadConfig reads configuration from app.env in path, then overrides it with environment variables.
// A missing config file is not an error.
func LoadConfig(path string) (Config, error) {
	var config Config

	if err := loadEnvFiles(EnvFiles); err != nil {
		return config, fmt.Errorf("config: failed to load env files: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: failed to read config: %w", err)
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: failed to decode config: %w", err)
	}

	if config.BackupPath == "" {
		config.BackupPath = config.CSVPath + ".backup"
	}

	return config, nil
}

// loadEnvFiles loads the env files that exist. Variables already set in the environment win.
func loadEnvFiles(files []string) error {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}
