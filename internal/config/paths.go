package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// GetGlobalConfigDir returns the global configuration directory
// (~/.tripwing). A variable so tests can redirect it.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tripwing"), nil
}

// GetDataBasePath returns the data directory holding trips and the memory
// index. Resolution order (first match wins):
// 1. Explicit config via "data.path" (Viper/env/flag)
// 2. XDG_DATA_HOME/tripwing (if XDG_DATA_HOME is set)
// 3. Global fallback: ~/.tripwing/data
func GetDataBasePath() string {
	if path := viper.GetString("data.path"); path != "" {
		return path
	}

	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "tripwing")
	}

	dir, err := GetGlobalConfigDir()
	if err != nil {
		return "./data"
	}
	return filepath.Join(dir, "data")
}

// GetTripsPath returns the directory holding trip JSON files.
func GetTripsPath() string {
	return filepath.Join(GetDataBasePath(), "trips")
}
