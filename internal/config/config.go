// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Dirs struct {
		// Intake is where new screenshots land before processing.
		Intake string `mapstructure:"intake" yaml:"intake"`
		// Archive is the date-organized destination for matched pairs.
		Archive string `mapstructure:"archive" yaml:"archive"`
		// Completed is the flat holding area for originals once archived.
		Completed string `mapstructure:"completed" yaml:"completed"`
	} `mapstructure:"dirs" yaml:"dirs"`

	Ledger struct {
		// Path to the ledger file; the extension selects the store (.xlsx or .csv).
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"ledger" yaml:"ledger"`

	OCR struct {
		// Tesseract is the binary name or absolute path of the OCR engine.
		Tesseract string `mapstructure:"tesseract" yaml:"tesseract"`
		Language  string `mapstructure:"language" yaml:"language"`
	} `mapstructure:"ocr" yaml:"ocr"`

	Parser struct {
		// AnchorsFile holds the address anchor rules (see internal/store).
		AnchorsFile string `mapstructure:"anchors_file" yaml:"anchors_file"`
	} `mapstructure:"parser" yaml:"parser"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional YAML config file, then TRIPAUDIT_-prefixed
// environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.trip-audit")
	v.AddConfigPath(".trip-audit")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TRIPAUDIT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars when the file is unreadable.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("dirs.intake", "to_sort")
	v.SetDefault("dirs.archive", "sorted")
	v.SetDefault("dirs.completed", "processed")

	v.SetDefault("ledger.path", "trip_audit.xlsx")

	v.SetDefault("ocr.tesseract", "tesseract")
	v.SetDefault("ocr.language", "eng")

	v.SetDefault("parser.anchors_file", "anchors.yaml")
}

func validateConfig(c *Config) error {
	if c.Dirs.Intake == "" {
		return fmt.Errorf("dirs.intake must not be empty")
	}
	if c.Dirs.Archive == "" {
		return fmt.Errorf("dirs.archive must not be empty")
	}
	if c.Dirs.Completed == "" {
		return fmt.Errorf("dirs.completed must not be empty")
	}
	if c.Ledger.Path == "" {
		return fmt.Errorf("ledger.path must not be empty")
	}
	if c.OCR.Tesseract == "" {
		return fmt.Errorf("ocr.tesseract must not be empty")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}
