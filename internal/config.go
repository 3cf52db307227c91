package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Destination string   `mapstructure:"destination"`
	PhotoExt    []string `mapstructure:"photo_extensions"`
	VideoExt    []string `mapstructure:"video_extensions"`
	SidecarExt  []string `mapstructure:"sidecar_extensions"`
	UseExifTool bool     `mapstructure:"use_exiftool"`
}

func LoadConfig() (*Config, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to find user config dir: %w", err)
	}

	viper.SetConfigName("media-importer")
	viper.SetConfigType("toml")
	viper.AddConfigPath(filepath.Join(configDir, "media-importer"))

	// Set defaults (Sony A7IV formats plus common photo containers):
	viper.SetDefault("destination", "")
	viper.SetDefault("photo_extensions", []string{".arw", ".jpg", ".jpeg", ".dng", ".tif", ".tiff"})
	viper.SetDefault("video_extensions", []string{".mp4", ".mov", ".mts", ".m2ts"})
	viper.SetDefault("sidecar_extensions", []string{".xml", ".bup", ".ifo"})
	viper.SetDefault("use_exiftool", false)

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found; that's OK, just use defaults
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
