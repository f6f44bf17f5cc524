package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PINCHSLICE_"

// Load builds a Config by layering defaults, an optional YAML file and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file at path, or at $PINCHSLICE_CONFIG when path is empty
//  3. env (prefix PINCHSLICE_, "__" separates sections)
//
// The result is not validated; callers overlay flags first and then call
// Validate.
func Load(path string) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// PINCHSLICE_GESTURE__PINCH_THRESHOLD -> gesture.pinch_threshold
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeCursor, ModeGame:
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}

	switch c.Gesture.Smoother {
	case SmootherEMA, SmootherKalman:
	default:
		return fmt.Errorf("unknown smoother %q", c.Gesture.Smoother)
	}

	if c.Gesture.Alpha < 0 || c.Gesture.Alpha >= 1 {
		return errors.New("gesture.alpha must be in [0, 1)")
	}
	if c.Gesture.PinchThreshold <= 0 {
		return errors.New("gesture.pinch_threshold must be positive")
	}
	if c.Gesture.TrailLength <= 0 {
		return errors.New("gesture.trail_length must be positive")
	}
	if c.Game.Width <= 0 || c.Game.Height <= 0 {
		return errors.New("game viewport must be positive")
	}
	if c.Record.Save != "" && c.Record.Replay != "" {
		return errors.New("record.save and record.replay are mutually exclusive")
	}
	if (c.Record.Save != "" || c.Record.Replay != "") && c.Record.DB == "" {
		return errors.New("record.db is required to save or replay")
	}
	return nil
}
