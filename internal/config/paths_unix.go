//go:build !windows

package config

import (
	"os"
	"path/filepath"
)

func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	return []string{
		filepath.Join(home, ".deck", "config.yaml"),
		"/etc/deck/config.yaml",
	}
}

func defaultShell() string { return "/bin/sh" }

func defaultDiskPath() string { return "/" }
