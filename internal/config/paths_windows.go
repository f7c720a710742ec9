//go:build windows

package config

import (
	"os"
	"path/filepath"
)

func configSearchPaths() []string {
	return []string{
		filepath.Join(os.Getenv("APPDATA"), "deck", "config.yaml"),
	}
}

func defaultShell() string { return "cmd" }

func defaultDiskPath() string { return `C:\` }
