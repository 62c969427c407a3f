package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestDirExists(t *testing.T) {
	dir := t.TempDir()
	if !dirExists(dir) {
		t.Errorf("Expected dirExists to return true for existing dir")
	}
	if dirExists(dir + "-notfound") {
		t.Errorf("Expected dirExists to return false for non-existent dir")
	}
}

func TestFormatUptime(t *testing.T) {
	cases := []struct {
		dur      time.Duration
		expected string
	}{
		{time.Second * 5, "5 seconds"},
		{time.Second * 65, "1 minute, 5 seconds"},
		{time.Second * 3665, "1 hour, 1 minute, 5 seconds"},
		{time.Second * 3600, "1 hour, 0 minutes, 0 seconds"},
		{time.Second * 60, "1 minute, 0 seconds"},
		{time.Second * 1, "1 second"},
	}
	for _, c := range cases {
		got := formatUptime(c.dur)
		if got != c.expected {
			t.Errorf("formatUptime(%v) = %q, want %q", c.dur, got, c.expected)
		}
	}
}

func TestPlural(t *testing.T) {
	if plural(1) != "" {
		t.Errorf("plural(1) = %q, want \"\"", plural(1))
	}
	if plural(2) != "s" {
		t.Errorf("plural(2) = %q, want \"s\"", plural(2))
	}
	if plural(0) != "s" {
		t.Errorf("plural(0) = %q, want \"s\"", plural(0))
	}
}

func TestGetEnvDuration(t *testing.T) {
	os.Setenv("TEST_DURATION", "2s")
	defer os.Unsetenv("TEST_DURATION")
	if got := getEnvDuration("TEST_DURATION", time.Second); got != 2*time.Second {
		t.Errorf("getEnvDuration = %v, want 2s", got)
	}
	os.Setenv("TEST_DURATION", "notaduration")
	if got := getEnvDuration("TEST_DURATION", 3*time.Second); got != 3*time.Second {
		t.Errorf("getEnvDuration fallback = %v, want 3s", got)
	}
	os.Unsetenv("TEST_DURATION")
	if got := getEnvDuration("TEST_DURATION", 4*time.Second); got != 4*time.Second {
		t.Errorf("getEnvDuration fallback unset = %v, want 4s", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	os.Setenv("TEST_INT", "42")
	defer os.Unsetenv("TEST_INT")
	if got := getEnvInt("TEST_INT", 7); got != 42 {
		t.Errorf("getEnvInt = %d, want 42", got)
	}
	os.Setenv("TEST_INT", "notanint")
	if got := getEnvInt("TEST_INT", 8); got != 8 {
		t.Errorf("getEnvInt fallback = %d, want 8", got)
	}
	os.Unsetenv("TEST_INT")
	if got := getEnvInt("TEST_INT", 9); got != 9 {
		t.Errorf("getEnvInt fallback unset = %d, want 9", got)
	}
}

func TestParseInt(t *testing.T) {
	if got, err := parseInt("123"); got != 123 || err != nil {
		t.Errorf("parseInt(\"123\") = %d, %v; want 123, nil", got, err)
	}
	if _, err := parseInt("notanint"); err == nil {
		t.Errorf("parseInt(\"notanint\") should error")
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	if !getEnvBool("TEST_BOOL", false) {
		t.Errorf("getEnvBool = false, want true")
	}
	t.Setenv("TEST_BOOL", "maybe")
	if getEnvBool("TEST_BOOL", false) {
		t.Errorf("getEnvBool fallback = true, want false")
	}
	t.Setenv("TEST_BOOL", "")
	if !getEnvBool("TEST_BOOL", true) {
		t.Errorf("getEnvBool unset = false, want true")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_STRING", "sqlite")
	if got := getEnv("TEST_STRING", "file"); got != "sqlite" {
		t.Errorf("getEnv = %q, want sqlite", got)
	}
	t.Setenv("TEST_STRING", "")
	if got := getEnv("TEST_STRING", "file"); got != "file" {
		t.Errorf("getEnv fallback = %q, want file", got)
	}
}

func TestStoreConfigFromEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("DATA_DIR", "/tmp/bingo")
	t.Setenv("SQLITE_PATH", "")
	cfg := storeConfigFromEnv(time.Hour)
	if cfg.Driver != "file" || cfg.DataDir != "/tmp/bingo" || cfg.MaxAge != time.Hour {
		t.Errorf("storeConfigFromEnv = %+v", cfg)
	}
	if cfg.SQLitePath != "/tmp/bingo/bingo.db" {
		t.Errorf("SQLitePath = %q, want it under DATA_DIR", cfg.SQLitePath)
	}
}

func TestNewImageService(t *testing.T) {
	t.Setenv("IMAGE_BACKEND", "")
	if _, err := newImageService(context.Background()); err != nil {
		t.Errorf("default backend: %v", err)
	}
	t.Setenv("IMAGE_BACKEND", "gemini")
	t.Setenv("GCP_PROJECT_ID", "")
	if _, err := newImageService(context.Background()); err == nil {
		t.Error("gemini without GCP_PROJECT_ID should fail")
	}
	t.Setenv("IMAGE_BACKEND", "dall-e")
	if _, err := newImageService(context.Background()); err == nil {
		t.Error("unknown backend should fail")
	}
}

func TestSetupLogger(t *testing.T) {
	setupLogger("debug", true)
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("level = %v, want debug", zerolog.GlobalLevel())
	}
	setupLogger("nonsense", false)
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("level = %v, want info fallback", zerolog.GlobalLevel())
	}
}
