// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// DataDir resolves the directory holding the pattern store and scan index.
// It reads the data.dir config key and falls back to
// ~/.local/share/papers.
func DataDir() string {
	dir := viper.GetString("data.dir")
	if dir == "" {
		dir = "~/.local/share/papers"
	}
	return ExpandPath(dir)
}
