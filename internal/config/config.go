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

// Драйверы удалённого хранилища.
const (
	StoreDriverPostgREST = "postgrest"
	StoreDriverPostgres  = "postgres"
)

// Config хранит все параметры запуска приложения.
type Config struct {
	Env      string
	HTTPPort string

	StoreDriver     string
	SupabaseURL     string
	SupabaseAnonKey string
	StoreTimeout    time.Duration
	DatabaseURL     string
	RunMigrations   bool

	// AdminOperatorID пишется в processed_by, если оператор не передал X-Operator-ID.
	AdminOperatorID        string
	RecentWithdrawalsLimit int

	AllowedOrigins  []string
	RateLimitLimit  int64
	RateLimitPeriod time.Duration

	NATSURL     string
	NATSSubject string

	StatsReportSchedule string

	// Warnings - проблемы конфигурации, которые не мешают запуску.
	Warnings []string
}

// Load читает переменные окружения и возвращает готовую конфигурацию.
func Load() (*Config, error) {
	// Загружаем .env только если он существует, иначе используем системные переменные.
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("config: .env не найден, используем переменные окружения: %v", err)
	}
	return FromEnv()
}

// FromEnv собирает конфигурацию из текущего окружения без чтения .env.
func FromEnv() (*Config, error) {
	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Env:                 env,
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		StoreDriver:         strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgREST)),
		SupabaseURL:         firstEnv("SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL"),
		SupabaseAnonKey:     firstEnv("SUPABASE_ANON_KEY", "NEXT_PUBLIC_SUPABASE_ANON_KEY"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		AdminOperatorID:     getEnv("ADMIN_OPERATOR_ID", "current-user-id"),
		NATSURL:             getEnv("NATS_URL", ""),
		NATSSubject:         getEnv("NATS_SUBJECT", "withdrawals.updated"),
		StatsReportSchedule: getEnv("STATS_REPORT_SCHEDULE", ""),
	}

	var err error
	if cfg.StoreTimeout, err = parseDuration("STORE_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.RateLimitPeriod, err = parseDuration("RATE_LIMIT_PERIOD", "1m"); err != nil {
		return nil, err
	}
	if cfg.RateLimitLimit, err = parseInt64("RATE_LIMIT_LIMIT", "120"); err != nil {
		return nil, err
	}
	recent, err := parseInt64("RECENT_WITHDRAWALS_LIMIT", "5")
	if err != nil {
		return nil, err
	}
	cfg.RecentWithdrawalsLimit = int(recent)
	if cfg.RunMigrations, err = strconv.ParseBool(getEnv("RUN_MIGRATIONS", "false")); err != nil {
		return nil, fmt.Errorf("config: не удалось распарсить RUN_MIGRATIONS: %w", err)
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgREST:
		// Отсутствие адреса или ключа не останавливает запуск: запросы упадут позже.
		if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
			cfg.Warnings = append(cfg.Warnings, "SUPABASE_URL или SUPABASE_ANON_KEY не заданы, запросы к хранилищу будут завершаться ошибкой")
		}
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("config: DATABASE_URL обязателен для STORE_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("config: неизвестный STORE_DRIVER %q", cfg.StoreDriver)
	}

	originsStr := getEnv("CORS_ALLOWED_ORIGINS", "")
	if originsStr == "" {
		if env == "production" {
			return nil, fmt.Errorf("config: CORS_ALLOWED_ORIGINS обязателен в production")
		}
		cfg.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	} else {
		for _, origin := range strings.Split(originsStr, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или дефолт.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// firstEnv возвращает первое непустое значение из списка переменных.
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return strings.Trim(value, `"`)
		}
	}
	return ""
}

func parseDuration(key, fallback string) (time.Duration, error) {
	v := getEnv(key, fallback)
	dur, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: не удалось распарсить длительность %s=%q: %w", key, v, err)
	}
	return dur, nil
}

func parseInt64(key, fallback string) (int64, error) {
	v := getEnv(key, fallback)
	num, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: не удалось распарсить число %s=%q: %w", key, v, err)
	}
	return num, nil
}
