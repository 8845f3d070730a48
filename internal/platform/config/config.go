package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                      string
	Environment               string
	SchoolName                string
	DataDir                   string
	ClassesFile               string
	StudentsFile              string
	StaffFile                 string
	OutputDir                 string
	SessionSecret             string
	SessionTTL                time.Duration
	AccessCodeHash            string
	TeacherZeroExperienceBase bool
	PDFFontPath               string
	MaxBodyBytes              int64
	RateLimitPerMinute        int
	MetricsEnabled            bool
}

// LoadDotEnv loads path into the environment when it exists. Variables already
// set are not overridden.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func Load() Config {
	return Config{
		Addr:                      getEnv("APP_ADDR", ":8080"),
		Environment:               getEnv("APP_ENV", "development"),
		SchoolName:                getEnv("SCHOOL_NAME", "Lyceum"),
		DataDir:                   getEnv("DATA_DIR", "data"),
		ClassesFile:               getEnv("CLASSES_FILE", "classes.csv"),
		StudentsFile:              getEnv("STUDENTS_FILE", "students.csv"),
		StaffFile:                 getEnv("STAFF_FILE", "staff.yaml"),
		OutputDir:                 getEnv("OUTPUT_DIR", "out"),
		SessionSecret:             getEnv("SESSION_SECRET", ""),
		SessionTTL:                getEnvDuration("SESSION_TTL", 2*time.Hour),
		AccessCodeHash:            getEnv("ACCESS_CODE_HASH", ""),
		TeacherZeroExperienceBase: getEnvBool("TEACHER_ZERO_EXPERIENCE_BASE", false),
		PDFFontPath:               getEnv("PDF_FONT_PATH", ""),
		MaxBodyBytes:              int64(getEnvInt("MAX_BODY_BYTES", 65536)),
		RateLimitPerMinute:        getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		MetricsEnabled:            getEnvBool("METRICS_ENABLED", true),
	}
}

// ClassesPath and the other path helpers resolve relative file names against DataDir.
func (c Config) ClassesPath() string {
	return c.dataPath(c.ClassesFile)
}

func (c Config) StudentsPath() string {
	return c.dataPath(c.StudentsFile)
}

func (c Config) StaffPath() string {
	return c.dataPath(c.StaffFile)
}

func (c Config) dataPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.SchoolName) == "" {
		return fmt.Errorf("SCHOOL_NAME must not be empty")
	}
	if c.Environment == "production" {
		if len(strings.TrimSpace(c.SessionSecret)) < 32 {
			return fmt.Errorf("SESSION_SECRET must be at least 32 characters in production")
		}
		if strings.TrimSpace(c.AccessCodeHash) == "" {
			return fmt.Errorf("ACCESS_CODE_HASH must be set in production")
		}
	} else if strings.TrimSpace(c.SessionSecret) == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.SessionTTL < time.Minute {
		return fmt.Errorf("SESSION_TTL must be at least 1m")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}
