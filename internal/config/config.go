package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config содержит конфигурацию приложения
type Config struct {
	RunAddress  string        // Адрес и порт запуска сервиса
	DatabaseURI string        // URI подключения к БД
	JWTSecret   string        // Секретный ключ для JWT
	JWTTokenTTL time.Duration // Время жизни JWT токена
	LogLevel    string        // Уровень логирования

	// Конфигурация цикла начислений
	AccrualWorkers  int    // Количество воркеров цикла начислений
	AccrualCronSpec string // Cron-расписание запуска цикла
	CronEnabled     bool   // Запускать ли встроенный cron (false — только ручной триггер)
}

// Load загружает конфигурацию из переменных окружения и флагов
// Приоритет: env переменные > флаги > дефолтные значения
func Load() (*Config, error) {
	cfg := &Config{
		JWTTokenTTL:     24 * time.Hour,
		LogLevel:        "info",
		AccrualWorkers:  3,
		AccrualCronSpec: "0 0 * * *",
		CronEnabled:     true,
	}

	// Определяем флаги
	flag.StringVar(&cfg.RunAddress, "a", ":8080", "address and port to run server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.Parse()

	// Переменные окружения имеют приоритет над флагами
	if envRunAddr, ok := os.LookupEnv("RUN_ADDRESS"); ok {
		cfg.RunAddress = envRunAddr
	}

	if envDBURI, ok := os.LookupEnv("DATABASE_URI"); ok {
		cfg.DatabaseURI = envDBURI
	}

	// JWT секрет (только из env, не из флагов для безопасности)
	if envJWTSecret, ok := os.LookupEnv("JWT_SECRET"); ok {
		cfg.JWTSecret = envJWTSecret
	} else {
		cfg.JWTSecret = "default-secret-key-change-in-production"
	}

	// Уровень логирования
	if envLogLevel, ok := os.LookupEnv("LOG_LEVEL"); ok {
		cfg.LogLevel = envLogLevel
	}

	// Конфигурация цикла начислений из env
	if envWorkers, ok := os.LookupEnv("ACCRUAL_WORKERS"); ok {
		if workers, err := strconv.Atoi(envWorkers); err == nil && workers > 0 {
			cfg.AccrualWorkers = workers
		}
	}

	if envCronSpec, ok := os.LookupEnv("ACCRUAL_CRON_SPEC"); ok {
		cfg.AccrualCronSpec = envCronSpec
	}

	if envCronEnabled, ok := os.LookupEnv("ACCRUAL_CRON_ENABLED"); ok {
		if enabled, err := strconv.ParseBool(envCronEnabled); err == nil {
			cfg.CronEnabled = enabled
		}
	}

	// Валидация обязательных параметров
	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI is required (use -d flag or DATABASE_URI env)")
	}

	return cfg, nil
}
