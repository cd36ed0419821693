// Package config loads explainer configuration with viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides (EXPLAINER_TUI_THEME, ...).
const EnvPrefix = "EXPLAINER"

// Config is the root configuration.
type Config struct {
	Catalogs CatalogConfig  `mapstructure:"catalogs"`
	Playback PlaybackConfig `mapstructure:"playback"`
	TUI      TUIConfig      `mapstructure:"tui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// CatalogConfig controls where stage catalogs are discovered.
type CatalogConfig struct {
	// ProjectDir adds <dir>/.explainer/catalogs to the search path.
	ProjectDir string `mapstructure:"project_dir"`

	// Dirs are extra directories searched before the standard paths.
	Dirs []string `mapstructure:"dirs"`
}

// PlaybackConfig controls the sequencer and autoplay.
type PlaybackConfig struct {
	// ReducedMotion skips the animation and shows the final stage.
	ReducedMotion bool `mapstructure:"reduced_motion"`

	// Speed scales every stage duration; 2 plays twice as fast.
	// Default: 1.
	Speed float64 `mapstructure:"speed"`
}

// TUIConfig controls the terminal renderer.
type TUIConfig struct {
	// Theme is a palette name ("default", "high-contrast").
	Theme string `mapstructure:"theme"`
}

// LoggingConfig controls zerolog output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Playback: PlaybackConfig{Speed: 1},
		TUI:      TUIConfig{Theme: "default"},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// ConfigDir returns the user configuration directory for explainer.
func ConfigDir() string {
	if dir := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); dir != "" {
		return filepath.Join(dir, "explainer")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".config", "explainer")
	}
	return ""
}

// Load reads configuration from path, or from the standard locations when
// path is empty. A missing config file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(path) == "" {
		path = defaultConfigFile()
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		// Nothing on disk; ReadInConfig reports ConfigFileNotFoundError.
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultConfigFile returns ./explainer.yaml or <ConfigDir>/config.yaml,
// whichever exists first.
func defaultConfigFile() string {
	candidates := []string{"explainer.yaml"}
	if dir := ConfigDir(); dir != "" {
		candidates = append(candidates, filepath.Join(dir, "config.yaml"))
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("catalogs.project_dir", def.Catalogs.ProjectDir)
	v.SetDefault("catalogs.dirs", def.Catalogs.Dirs)
	v.SetDefault("playback.reduced_motion", def.Playback.ReducedMotion)
	v.SetDefault("playback.speed", def.Playback.Speed)
	v.SetDefault("tui.theme", def.TUI.Theme)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.file", def.Logging.File)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Playback.Speed <= 0 {
		return fmt.Errorf("playback.speed must be greater than 0, got %v", c.Playback.Speed)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "text", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
