package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "TEXT_ATLAS"

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Report  ReportConfig  `mapstructure:"report"`
	S3      S3Config      `mapstructure:"s3"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type StorageConfig struct {
	DbPath string `mapstructure:"db_path"`
}

type ReportConfig struct {
	Format  string `mapstructure:"format"`
	Minimal bool   `mapstructure:"minimal"`
}

type S3Config struct {
	ProfileFile string `mapstructure:"profile_file"`
	Profile     string `mapstructure:"profile"`
}

// LoadConfig reads the optional config file at path and applies TEXT_ATLAS_* overrides.
// An empty path uses defaults and the environment only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse text-atlas config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("storage.db_path", "text-atlas.db")
	v.SetDefault("report.format", "text")
	v.SetDefault("report.minimal", false)
	v.SetDefault("s3.profile_file", "")
	v.SetDefault("s3.profile", "")
}
