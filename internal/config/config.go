package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	MaxUploadMB  int
	LogFile      string

	// StrictSchema: падать сразу, если не нашли колонку заказа/статуса/SKU.
	// false, старое поведение: берём первый алиас и молча идём дальше.
	StrictSchema bool

	SkuBannedPrefix string // токены с этим префиксом считаются мусором выгрузки
	SkuMaxHyphens   int    // больше дефисов: мусор
	SkuMaxLen       int    // длиннее (в рунах): мусор
	TopSKUs         int    // размер "Top N best sellers" по умолчанию
}

// Load читает окружение; .env (если есть) подмешивается, но не перетирает
// уже выставленные переменные.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Host:            getenv("HOST", "127.0.0.1"),
		Port:            getint("PORT", 8082),
		AllowOrigins:    splitList(getenv("ALLOW_ORIGINS", "*")),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		MaxUploadMB:     getint("MAX_UPLOAD_MB", 256),
		LogFile:         getenv("LOG_FILE", "logs/sales-analytics.log"),
		StrictSchema:    getbool("STRICT_SCHEMA", true),
		SkuBannedPrefix: getenv("SKU_BANNED_PREFIX", "vof-"),
		SkuMaxHyphens:   getint("SKU_MAX_HYPHENS", 1),
		SkuMaxLen:       getint("SKU_MAX_LEN", 20),
		TopSKUs:         getint("TOP_SKUS", 10),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return def
	}
	return i
}

func getbool(k string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(k))) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
