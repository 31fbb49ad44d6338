package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server       ServerConfig
	Log          LogConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	CORS         CORSConfig
	S3           S3Config
	Upload       UploadConfig
	Notification NotificationConfig
	Export       ExportConfig
	Share        ShareConfig
}

type ServerConfig struct {
	Port          string
	GinMode       string
	Environment   string
	PublicBaseURL string
}

type LogConfig struct {
	Level  string
	Format string // console, json
}

type DatabaseConfig struct {
	Driver     string // sqlite, postgres
	SQLitePath string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string // CloudFront or S3 direct URL
}

// Enabled reports whether uploaded documents and exports are archived to S3.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

type UploadConfig struct {
	MaxBytes         int64
	StageDelayMin    time.Duration
	StageDelayJitter time.Duration
}

type NotificationConfig struct {
	MaxVisible    int
	EntranceDelay time.Duration
	DismissAfter  time.Duration
	ExitDuration  time.Duration
}

type ExportConfig struct {
	CronSpec string // empty disables the scheduled backup
}

type ShareConfig struct {
	Secret string
	Expiry time.Duration
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:          getEnv("SERVER_PORT", "8080"),
			GinMode:       getEnv("GIN_MODE", "debug"),
			Environment:   getEnv("ENVIRONMENT", "development"),
			PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", ""),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "sqlite"),
			SQLitePath: getEnv("SQLITE_PATH", "file::memory:?cache=shared"),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "admin"),
			Password:   getEnv("DB_PASSWORD", "1234"),
			DBName:     getEnv("DB_NAME", "certificates"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:  parseBool(getEnv("REDIS_ENABLED", "false")),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "ap-northeast-2"),
			Bucket:          getEnv("AWS_S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			BaseURL:         getEnv("AWS_S3_BASE_URL", ""),
		},
		Upload: UploadConfig{
			MaxBytes:         int64(parseInt(getEnv("UPLOAD_MAX_BYTES", "10485760"), 10<<20)),
			StageDelayMin:    parseDuration(getEnv("UPLOAD_STAGE_DELAY_MIN", "600ms"), 600*time.Millisecond),
			StageDelayJitter: parseDuration(getEnv("UPLOAD_STAGE_DELAY_JITTER", "400ms"), 400*time.Millisecond),
		},
		Notification: NotificationConfig{
			MaxVisible:    parseInt(getEnv("TOAST_MAX_VISIBLE", "3"), 3),
			EntranceDelay: parseDuration(getEnv("TOAST_ENTRANCE_DELAY", "100ms"), 100*time.Millisecond),
			DismissAfter:  parseDuration(getEnv("TOAST_DISMISS_AFTER", "4s"), 4*time.Second),
			ExitDuration:  parseDuration(getEnv("TOAST_EXIT_DURATION", "300ms"), 300*time.Millisecond),
		},
		Export: ExportConfig{
			CronSpec: getEnv("EXPORT_CRON", "0 2 * * *"),
		},
		Share: ShareConfig{
			Secret: getEnv("SHARE_TOKEN_SECRET", "change-me"),
			Expiry: parseDuration(getEnv("SHARE_TOKEN_EXPIRY", "720h"), 720*time.Hour),
		},
	}

	if config.Log.Level == "" {
		config.Log.Level = "info"
		if config.Server.Environment == "development" {
			config.Log.Level = "debug"
		}
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.SQLitePath
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return n
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
