package config

import (
	"os"
	"path/filepath"
)

// Extensions of supported config files, in lookup order
var Extensions = []string{"yml", "yaml", "json", "toml"}

// FindLocalConfig finds local config file by walking up directories
func FindLocalConfig(dir string) string {
	for {
		for _, ext := range Extensions {
			path := filepath.Join(dir, ".buildprobe."+ext)

			if _, err := os.Stat(path); err == nil {
				return path
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return ""
}

// FindGlobalConfig finds the global config file in the user config directory.
// APPDATA is preferred when set
func FindGlobalConfig() string {
	base := os.Getenv("APPDATA")
	if base == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return ""
		}
		base = dir
	}

	for _, ext := range Extensions {
		path := filepath.Join(base, "buildprobe", "config."+ext)

		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
