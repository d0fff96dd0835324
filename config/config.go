package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/ridoystarlord/matchstats/utils"
)

// DefaultFile is the config file written by `matchstats init`.
const DefaultFile = "matchstats.yaml"

// EnvPrefix prefixes every environment override, e.g. MATCHSTATS_DASHBOARD_PORT.
const EnvPrefix = "MATCHSTATS"

// Config mirrors matchstats.yaml.
type Config struct {
	Data      DataConfig      `mapstructure:"data" yaml:"data"`
	Analysis  AnalysisConfig  `mapstructure:"analysis" yaml:"analysis"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output"`
	Dashboard DashboardConfig `mapstructure:"dashboard" yaml:"dashboard"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
}

type DataConfig struct {
	File string `mapstructure:"file" yaml:"file"` // headerless match CSV
}

type AnalysisConfig struct {
	Season      int `mapstructure:"season" yaml:"season"`             // season for the most-wins output
	TopN        int `mapstructure:"top_n" yaml:"top_n"`               // rows in pair/venue tables
	PreviewRows int `mapstructure:"preview_rows" yaml:"preview_rows"` // rows shown by preview
}

type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"` // text, json, yaml, html
	Color  bool   `mapstructure:"color" yaml:"color"`
}

type DashboardConfig struct {
	Port        string `mapstructure:"port" yaml:"port"`
	MaxUploadMB int64  `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Data:      DataConfig{},
		Analysis:  AnalysisConfig{Season: 2008, TopN: 10, PreviewRows: 5},
		Output:    OutputConfig{Format: "text", Color: true},
		Dashboard: DashboardConfig{Port: "8080", MaxUploadMB: 32},
		Log:       LogConfig{Level: "info"},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("data.file", d.Data.File)
	v.SetDefault("analysis.season", d.Analysis.Season)
	v.SetDefault("analysis.top_n", d.Analysis.TopN)
	v.SetDefault("analysis.preview_rows", d.Analysis.PreviewRows)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.color", d.Output.Color)
	v.SetDefault("dashboard.port", d.Dashboard.Port)
	v.SetDefault("dashboard.max_upload_mb", d.Dashboard.MaxUploadMB)
	v.SetDefault("log.level", d.Log.Level)
}

// Load reads configuration into the global viper instance, which is where
// command flags are bound.
func Load(path string) (*Config, error) {
	return LoadFrom(viper.GetViper(), path)
}

// LoadFrom reads configuration with precedence flag > env > file > default.
// A .env file, if present, is loaded into the environment first. A missing
// config file is not an error unless path names it explicitly.
func LoadFrom(v *viper.Viper, path string) (*Config, error) {
	utils.LoadEnv()

	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(DefaultFile, ".yaml"))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Data.File == "" {
		cfg.Data.File = utils.GetDataFile()
	}
	return &cfg, nil
}
