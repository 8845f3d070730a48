package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ADDR", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("MAX_BODY_BYTES", "")
	t.Setenv("TEACHER_ZERO_EXPERIENCE_BASE", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("CLASSES_FILE", "")

	cfg := Load()
	if cfg.Addr != ":8080" || cfg.SessionTTL != 2*time.Hour || cfg.MaxBodyBytes != 65536 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TeacherZeroExperienceBase {
		t.Fatal("expected direct teacher formula by default")
	}
	if cfg.ClassesPath() != filepath.Join("data", "classes.csv") {
		t.Fatalf("unexpected classes path %q", cfg.ClassesPath())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("TEACHER_ZERO_EXPERIENCE_BASE", "true")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")
	t.Setenv("STAFF_FILE", "/etc/school/staff.yaml")

	cfg := Load()
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("expected 30m ttl, got %v", cfg.SessionTTL)
	}
	if !cfg.TeacherZeroExperienceBase {
		t.Fatal("expected clamp flag to be set")
	}
	if cfg.RateLimitPerMinute != 60 {
		t.Fatalf("expected fallback rate limit, got %d", cfg.RateLimitPerMinute)
	}
	if cfg.StaffPath() != "/etc/school/staff.yaml" {
		t.Fatalf("expected absolute staff path to be kept, got %q", cfg.StaffPath())
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		SchoolName:         "Lyceum",
		Environment:        "development",
		SessionSecret:      "dev-secret",
		SessionTTL:         time.Hour,
		MaxBodyBytes:       65536,
		RateLimitPerMinute: 60,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	prod := base
	prod.Environment = "production"
	if err := prod.Validate(); err == nil {
		t.Fatal("expected short secret to fail in production")
	}
	prod.SessionSecret = "0123456789abcdef0123456789abcdef"
	prod.AccessCodeHash = "$2a$10$hash"
	if err := prod.Validate(); err != nil {
		t.Fatalf("expected production config to pass, got %v", err)
	}

	noSecret := base
	noSecret.SessionSecret = ""
	if err := noSecret.Validate(); err == nil {
		t.Fatal("expected missing secret to fail")
	}

	small := base
	small.MaxBodyBytes = 10
	if err := small.Validate(); err == nil {
		t.Fatal("expected small body limit to fail")
	}
}

func TestLoadDotEnv(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("SCHOOL_NAME=Ліцей №1\n"), 0o644); err != nil {
		t.Fatalf("write error: %v", err)
	}
	t.Setenv("SCHOOL_NAME", "")
	os.Unsetenv("SCHOOL_NAME")
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Load().SchoolName; got != "Ліцей №1" {
		t.Fatalf("expected name from .env, got %q", got)
	}
}
