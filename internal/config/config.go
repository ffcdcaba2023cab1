// Package config provides settings and the global configuration directory for mason.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Settings holds all configuration options for mason.
type Settings struct {
	// BaseDir is the root directory holding resource definitions
	// (templates/, components/, prompts/ subdirectories).
	BaseDir string `mapstructure:"base_dir"`

	Renderer RendererSettings `mapstructure:"renderer"`
}

// RendererSettings configures the external diagram compiler.
type RendererSettings struct {
	// Binary is the diagram compiler command. A bare name is resolved
	// via PATH; a path is used as-is.
	Binary string `mapstructure:"binary"`

	// TimeoutSeconds bounds a single render invocation.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`

	// OutputDir receives rendered diagrams when no explicit output path is given.
	OutputDir string `mapstructure:"output_dir"`

	// Format is the default output format (svg, png, pdf).
	Format string `mapstructure:"format"`
}

// Defaults returns the default settings.
func Defaults() Settings {
	return Settings{
		BaseDir: ".mason",
		Renderer: RendererSettings{
			Binary:         "mmdc",
			TimeoutSeconds: 30,
			OutputDir:      filepath.Join(".mason", "rendered"),
			Format:         "svg",
		},
	}
}

// Load reads settings from a config file and the environment.
//
// Resolution order:
//  1. cfgFile if non-empty (explicit --config)
//  2. .mason/config.yaml in the working directory
//  3. <config dir>/config.yaml (see Dir)
//
// Environment variables with the MASON_ prefix override file values,
// e.g. MASON_RENDERER_BINARY.
func Load(cfgFile string) (Settings, error) {
	v := viper.New()

	defaults := Defaults()
	v.SetDefault("base_dir", defaults.BaseDir)
	v.SetDefault("renderer.binary", defaults.Renderer.Binary)
	v.SetDefault("renderer.timeout_seconds", defaults.Renderer.TimeoutSeconds)
	v.SetDefault("renderer.output_dir", defaults.Renderer.OutputDir)
	v.SetDefault("renderer.format", defaults.Renderer.Format)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if _, err := os.Stat(filepath.Join(".mason", "config.yaml")); err == nil {
		v.SetConfigFile(filepath.Join(".mason", "config.yaml"))
	} else if dir := Dir(); dir != "" {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("MASON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Settings{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("parsing config: %w", err)
	}

	return settings, nil
}

// Dir returns the mason configuration directory.
//
// Resolution:
//   - $MASON_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/mason if set (respects XDG on any platform)
//   - %AppData%/mason on Windows
//   - ~/.config/mason on macOS and Linux
func Dir() string {
	if dir := os.Getenv("MASON_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mason")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "mason")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mason")
}
