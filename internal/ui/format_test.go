package ui

import (
	"testing"
	"time"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{4 << 30, "4.0 GiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{-time.Second, "0m 0s"},
		{75 * time.Second, "1m 15s"},
		{4*time.Hour + 12*time.Minute, "4h 12m"},
		{3*24*time.Hour + 4*time.Hour + 12*time.Minute, "3d 4h 12m"},
	}
	for _, tt := range tests {
		if got := formatUptime(tt.in); got != tt.want {
			t.Errorf("formatUptime(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("systemd-journald", 8); got != "systemd…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("sh", 8); got != "sh" {
		t.Errorf("truncate = %q", got)
	}
}

func TestOrNA(t *testing.T) {
	if orNA("") != "N/A" || orNA("root") != "root" {
		t.Error("orNA mismatch")
	}
}
