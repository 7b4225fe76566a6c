package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENV", "BASE_URL", "STORE_URL", "STORE_TIMEOUT", "SESSION_TTL", "SHARE_VALIDITY_DAYS", "RATE_LIMIT_MAX", "UPLOAD_MAX_BYTES"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if !cfg.IsDev() {
		t.Errorf("IsDev() = false, want true")
	}
	if cfg.ShareValidityDays != 365 {
		t.Errorf("ShareValidityDays = %d, want 365", cfg.ShareValidityDays)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("RequestTimeout = %v, want 15s", cfg.RequestTimeout)
	}
	if cfg.StoreTimeout != 5*time.Second {
		t.Errorf("StoreTimeout = %v, want 5s", cfg.StoreTimeout)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h", cfg.SessionTTL)
	}
	if cfg.UploadMaxBytes != 10<<20 {
		t.Errorf("UploadMaxBytes = %d, want %d", cfg.UploadMaxBytes, 10<<20)
	}
	if cfg.OIDCEnabled() {
		t.Error("OIDCEnabled() = true, want false")
	}
	if cfg.UploadsEnabled() {
		t.Error("UploadsEnabled() = true, want false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BASE_URL", "https://photos.example.com/")
	t.Setenv("STORE_TIMEOUT", "250ms")
	t.Setenv("SHARE_VALIDITY_DAYS", "30")
	t.Setenv("RATE_LIMIT_MAX", "not-a-number")
	t.Setenv("SESSION_TTL", "-1h")

	cfg := Load()

	if cfg.BaseURL != "https://photos.example.com" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", cfg.BaseURL)
	}
	if cfg.StoreTimeout != 250*time.Millisecond {
		t.Errorf("StoreTimeout = %v, want 250ms", cfg.StoreTimeout)
	}
	if cfg.ShareValidityDays != 30 {
		t.Errorf("ShareValidityDays = %d, want 30", cfg.ShareValidityDays)
	}
	if cfg.RateLimitMax != 100 {
		t.Errorf("RateLimitMax = %d, want fallback 100", cfg.RateLimitMax)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want fallback 24h", cfg.SessionTTL)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.level}
			if got := cfg.SlogLevel(); got != tt.want {
				t.Errorf("SlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadSeed(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		seed, err := LoadSeed(filepath.Join(dir, "absent.yaml"))
		if err != nil {
			t.Fatalf("LoadSeed() error = %v", err)
		}
		if seed != nil {
			t.Errorf("LoadSeed() = %+v, want nil", seed)
		}
	})

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "seed.yaml")
		content := `users:
  - name: Demo
    email: demo@framevault.test
    password: demo
    albums:
      - title: Beach day
        event_date: "2024-07-14"
        photos:
          - url: https://example.com/beach.jpg
            caption: Waves
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		seed, err := LoadSeed(path)
		if err != nil {
			t.Fatalf("LoadSeed() error = %v", err)
		}
		demo := seed.UserByEmail("demo@framevault.test")
		if demo == nil {
			t.Fatal("UserByEmail() = nil, want demo user")
		}
		if len(demo.Albums) != 1 || demo.Albums[0].EventDate != "2024-07-14" {
			t.Errorf("Albums = %+v, want one album on 2024-07-14", demo.Albums)
		}
		if len(demo.Albums[0].Photos) != 1 || demo.Albums[0].Photos[0].Caption != "Waves" {
			t.Errorf("Photos = %+v, want one captioned photo", demo.Albums[0].Photos)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("users: [oops"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadSeed(path); err == nil {
			t.Error("LoadSeed() error = nil, want parse error")
		}
	})
}
