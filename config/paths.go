// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for texelcarousel configuration and data files.

package config

import (
	"os"
	"path/filepath"
)

const appDir = "texelcarousel"

func configRoot() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appDir), nil
}

// systemConfigPath must be called with mu held when an override may be set.
func systemConfigPath() (string, error) {
	if overridePath != "" {
		return overridePath, nil
	}
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, systemConfigName), nil
}

// Path returns the file the configuration is read from and saved to.
func Path() (string, error) {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return systemConfigPath()
}

// DataPath returns name under the per-user data directory, which lives
// next to the cache dir since Go has no portable data dir lookup.
func DataPath(name string) (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, appDir, name), nil
}
