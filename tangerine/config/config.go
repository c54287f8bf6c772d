// Package config loads the editor configuration. Values come from defaults,
// then an optional YAML file, then TANGERINE_* environment variables, and
// are validated last.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phanxgames/lime/tangerine/core"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Window configures the editor window.
type Window struct {
	Title  string `yaml:"title" validate:"required"`
	Width  int    `yaml:"width" validate:"min=320,max=7680"`
	Height int    `yaml:"height" validate:"min=240,max=4320"`
	TPS    int    `yaml:"tps" validate:"min=1,max=240"`
	// ScreenshotDir receives F12 captures.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// Playback configures timeline preview.
type Playback struct {
	Autoplay bool `yaml:"autoplay"`
	Loop     bool `yaml:"loop"`
}

// Logging configures the logger built by NewLogger.
type Logging struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// Config is the editor configuration.
type Config struct {
	Window   Window        `yaml:"window"`
	Playback Playback      `yaml:"playback"`
	Logging  Logging       `yaml:"logging"`
	Document core.Settings `yaml:"document"`
	// Debug turns on lime debug checks and the structural check after undo.
	Debug bool `yaml:"debug"`
	// Script is a script replayed into the sample document at start-up.
	Script string `yaml:"script"`
}

var validate = validator.New()

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Window: Window{
			Title:  "Tangerine",
			Width:  1280,
			Height: 720,
			TPS:    60,

			ScreenshotDir: "screenshots",
		},
		Playback: Playback{Loop: true},
		Logging:  Logging{Level: "info"},
		Document: core.DefaultSettings(),
	}
}

// Load builds the configuration from defaults, the YAML file at path (when
// path is not empty) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Window.Title = getEnv("TANGERINE_TITLE", c.Window.Title)
	c.Logging.Level = strings.ToLower(getEnv("TANGERINE_LOG_LEVEL", c.Logging.Level))
	c.Script = getEnv("TANGERINE_SCRIPT", c.Script)

	var err error
	if c.Window.Width, err = getEnvInt("TANGERINE_WIDTH", c.Window.Width); err != nil {
		return err
	}
	if c.Window.Height, err = getEnvInt("TANGERINE_HEIGHT", c.Window.Height); err != nil {
		return err
	}
	if c.Window.TPS, err = getEnvInt("TANGERINE_TPS", c.Window.TPS); err != nil {
		return err
	}
	if c.Document.AnimationFPS, err = getEnvInt("TANGERINE_FPS", c.Document.AnimationFPS); err != nil {
		return err
	}
	if c.Debug, err = getEnvBool("TANGERINE_DEBUG", c.Debug); err != nil {
		return err
	}
	if c.Logging.Development, err = getEnvBool("TANGERINE_LOG_DEVELOPMENT", c.Logging.Development); err != nil {
		return err
	}
	if c.Document.AutoKeyframes, err = getEnvBool("TANGERINE_AUTO_KEYFRAMES", c.Document.AutoKeyframes); err != nil {
		return err
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "%s", key)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.Wrapf(err, "%s", key)
	}
	return b, nil
}
