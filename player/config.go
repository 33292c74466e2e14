// Copyright (c) 2025 The go-clim Authors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of go-clim.
//
// go-clim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-clim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-clim.  If not, see <https://www.gnu.org/licenses/>.

package player

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the player's file configuration. Command-line flags override
// whatever is set here.
type Config struct {
	// AudioDir is the folder audio sidecars are extracted into.
	AudioDir string `yaml:"audio_dir"`

	// Loop restarts playback from frame 0 when the file ends.
	Loop bool `yaml:"loop"`

	// AudioPlayerCommand overrides the external audio player invocation.
	// The sidecar path is appended as the final argument.
	AudioPlayerCommand []string `yaml:"audio_player_command"`

	// BufferSeconds sets the low-water mark of the frame buffer, in seconds
	// of playback.
	BufferSeconds int `yaml:"buffer_seconds"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		AudioDir:      "clim-audio",
		BufferSeconds: 2,
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // User-provided path is expected
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.BufferSeconds <= 0 {
		cfg.BufferSeconds = DefaultConfig().BufferSeconds
	}
	return cfg, nil
}
