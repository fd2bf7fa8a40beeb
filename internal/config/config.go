// Package config reads the service settings from the environment, after
// loading a .env file when one is present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	DatabaseURL   string
	Port          string
	UploadDir     string        // 上傳檔案落地目錄
	StaticRoot    string        // 對外提供上傳檔案的 URL 前綴
	MaxUploadSize string        // echo BodyLimit 格式，例如 10M
	AllowOrigins  []string      // CORS
	RedisAddr     string        // 空字串表示不啟用快取
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration // 使用者清單快取存活時間
	LogLevel      zapcore.Level
}

var loadDotenv = godotenv.Load

// Load 讀取 .env（不存在時忽略）後解析環境變數
func Load(envFiles ...string) (Config, error) {
	if err := loadDotenv(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("讀取 .env 失敗: %w", err)
	}
	return FromEnv()
}

// FromEnv parses the process environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Port:          getEnv("PORT", "3001"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		StaticRoot:    getEnv("STATIC_ROOT", "/uploads"),
		MaxUploadSize: getEnv("MAX_UPLOAD_SIZE", "10M"),
		AllowOrigins:  splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("環境變數 DATABASE_URL 未設定")
	}
	if !strings.HasPrefix(cfg.StaticRoot, "/") {
		cfg.StaticRoot = "/" + cfg.StaticRoot
	}

	var err error
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = getEnvDuration("CACHE_TTL", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.LogLevel, err = zapcore.ParseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return Config{}, fmt.Errorf("無效的 LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

// Addr 回傳 echo.Start 使用的監聽位址
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
