// Package config holds the host-side settings: window scale, colors, tone
// and the keyboard layout. None of it affects emulation.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// RGB is a display color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Config holds frontend settings.
type Config struct {
	// Scale is the size of one CHIP-8 pixel in window pixels. Default: 8.
	Scale int `json:"scale"`

	// Foreground is the color of lit pixels. Default: white.
	Foreground RGB `json:"foreground"`

	// Background is the color of unlit pixels. Default: black.
	Background RGB `json:"background"`

	// ToneHz is the buzzer frequency. Default: 800.
	ToneHz int `json:"tone_hz"`

	// Volume is the buzzer amplitude in [0, 1]. Default: 0.25.
	Volume float64 `json:"volume"`

	// KeyMap maps a host key name (a single lowercase character) to a
	// keypad index.
	KeyMap map[string]uint8 `json:"key_map"`

	// KeyHoldTicks is how long the terminal frontend keeps a key down after
	// it was last seen, since terminals report no key-up events.
	// Default: 18 ticks (50 ms at 360 Hz).
	KeyHoldTicks int `json:"key_hold_ticks"`
}

// DefaultKeyMap returns the standard layout: the top letter row holds A..F,
// 0 and 1, the home row holds 2..9.
func DefaultKeyMap() map[string]uint8 {
	return map[string]uint8{
		"q": 0xA, "w": 0xB, "e": 0xC, "r": 0xD, "t": 0xE, "y": 0xF,
		"u": 0x0, "i": 0x1,
		"a": 0x2, "s": 0x3, "d": 0x4, "f": 0x5,
		"g": 0x6, "h": 0x7, "j": 0x8, "k": 0x9,
	}
}

// DefaultConfig returns the default frontend settings.
func DefaultConfig() *Config {
	return &Config{
		Scale:        8,
		Foreground:   RGB{R: 0xFF, G: 0xFF, B: 0xFF},
		Background:   RGB{},
		ToneHz:       800,
		Volume:       0.25,
		KeyMap:       DefaultKeyMap(),
		KeyHoldTicks: 18,
	}
}

// LoadConfig loads a Config from a JSON file. Fields missing from the file
// keep their defaults. A key_map present in the file replaces the default
// layout entirely.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	config.KeyMap = nil
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if config.KeyMap == nil {
		config.KeyMap = DefaultKeyMap()
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if c.Scale < 1 {
		return fmt.Errorf("scale must be >= 1")
	}
	if c.ToneHz <= 0 {
		return fmt.Errorf("tone_hz must be > 0")
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("volume must be within [0, 1]")
	}
	if c.KeyHoldTicks < 1 {
		return fmt.Errorf("key_hold_ticks must be >= 1")
	}
	for name, key := range c.KeyMap {
		if len(name) != 1 || name != strings.ToLower(name) {
			return fmt.Errorf("key_map: %q is not a single lowercase character", name)
		}
		if key > 0xF {
			return fmt.Errorf("key_map: %q maps to 0x%X, beyond 0xF", name, key)
		}
	}
	return nil
}

// Clone returns a deep copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	clone.KeyMap = make(map[string]uint8, len(c.KeyMap))
	for name, key := range c.KeyMap {
		clone.KeyMap[name] = key
	}
	return &clone
}

// Lookup returns the keypad index bound to a host key name.
func (c *Config) Lookup(name string) (uint8, bool) {
	key, ok := c.KeyMap[strings.ToLower(name)]
	return key, ok
}
