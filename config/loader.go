/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	subfs "bennypowers.dev/subopt/fs"
	"bennypowers.dev/subopt/internal/logger"
)

// ConfigFileName is the base name of the config file without extension.
const ConfigFileName = "subopt"

// ConfigDir is the directory where config files are stored.
const ConfigDir = ".config"

// configExtensions are the supported config file extensions in priority order.
var configExtensions = []string{".yaml", ".yml", ".json"}

// Load searches for .config/subopt.{yaml,yml,json} from rootDir.
// JSON files may contain comments and trailing commas.
// Returns nil if no config found (not an error).
func Load(filesystem subfs.FileSystem, rootDir string) (*Config, error) {
	for _, ext := range configExtensions {
		configPath := filepath.Join(rootDir, ConfigDir, ConfigFileName+ext)
		if !filesystem.Exists(configPath) {
			continue
		}

		data, err := filesystem.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		cfg := Default()
		switch ext {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("%s: %w", configPath, err)
			}
		case ".json":
			if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
				return nil, fmt.Errorf("%s: %w", configPath, err)
			}
		}

		return cfg, nil
	}

	return nil, nil
}

// Find is like Load but returns defaults when no config file exists.
// A config file that cannot be read or decoded is still an error.
func Find(filesystem subfs.FileSystem, rootDir string) (*Config, error) {
	cfg, err := Load(filesystem, rootDir)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg == nil {
		return Default(), nil
	}
	return cfg, nil
}

// LoadOrDefault returns config or defaults if not found.
// A broken config file is reported as a warning and replaced by defaults.
func LoadOrDefault(filesystem subfs.FileSystem, rootDir string) *Config {
	cfg, err := Find(filesystem, rootDir)
	if err != nil {
		logger.Warn("%v; using defaults", err)
		return Default()
	}
	return cfg
}
