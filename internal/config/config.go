package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Tile    TileConfig    `yaml:"tile" mapstructure:"tile"`
	Source  SourceConfig  `yaml:"source" mapstructure:"source"`
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
	Derive  DeriveConfig  `yaml:"derive" mapstructure:"derive"`
}

// TileConfig configures the raster grid.
type TileConfig struct {
	Size float64 `yaml:"size" mapstructure:"size"`
	// Index, when set, is the file name of the tile footprint shapefile
	// written next to the tiles.
	Index string `yaml:"index" mapstructure:"index"`
}

// SourceConfig configures where product archives are fetched from.
type SourceConfig struct {
	BaseURL     string   `yaml:"base_url" mapstructure:"base_url"`
	TempDir     string   `yaml:"temp_dir" mapstructure:"temp_dir"`
	Regions     []string `yaml:"regions" mapstructure:"regions"`
	Concurrency int      `yaml:"concurrency" mapstructure:"concurrency"`
}

// StorageConfig configures remote (s3://) inputs and outputs.
type StorageConfig struct {
	S3Region string `yaml:"s3_region" mapstructure:"s3_region"`
}

// DeriveConfig configures value-added raster generation.
type DeriveConfig struct {
	Destination string `yaml:"destination" mapstructure:"destination"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GNATSGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("tile.size", 163840)
	v.SetDefault("tile.index", "tile_index")
	v.SetDefault("source.base_url", "")
	v.SetDefault("source.temp_dir", "/tmp/gnatsgo")
	v.SetDefault("source.concurrency", 4)
	v.SetDefault("storage.s3_region", "")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the settings a command mode depends on are present.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "tile":
		if c.Tile.Size <= 0 {
			problems = append(problems, "tile.size must be > 0")
		}
	case "fetch":
		if c.Source.BaseURL == "" {
			problems = append(problems, "source.base_url is required")
		}
		if c.Source.TempDir == "" {
			problems = append(problems, "source.temp_dir is required")
		}
		if c.Source.Concurrency < 1 {
			problems = append(problems, "source.concurrency must be >= 1")
		}
	case "parquet", "derive", "stac":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
