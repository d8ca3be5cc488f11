// Пакет config — загрузка и валидация конфигурации сайта посольства
// из переменных окружения (префикс EW_).
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/HumoX-ai/embassy-of-uae/internal/domain/locale"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации сайта.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- Сайт ---

	// Абсолютный URL сайта (canonical, sitemap, Open Graph), без trailing slash
	BaseURL string
	// Язык по умолчанию для redirect без префикса
	DefaultLang locale.Language
	// Учитывать cookie "lang" и Accept-Language при redirect
	LocaleDetect bool
	// Код верификации Google Search Console (meta-тег, опционально)
	GoogleSiteVerification string

	// --- News API ---

	// Базовый URL внешнего API статей (например, http://api:8090/api/v1)
	NewsAPIURL string
	// Таймаут запросов к API
	NewsAPITimeout time.Duration
	// Путь к CA-сертификату для TLS-соединений с API (опционально)
	NewsAPICACertPath string
	// Проверять ответы API по OpenAPI-контракту
	NewsAPIValidate bool
	// Health endpoint API для мониторинга зависимостей
	NewsAPIHealthPath string
	// Размер страницы списка новостей
	NewsPageSize int

	// --- Кэш ---

	// Период ревалидации ответов API
	NewsCacheTTL time.Duration
	// Время жизни списка статей для sitemap.xml
	SitemapCacheTTL time.Duration
	// Максимальное количество записей in-memory кэша
	CacheSize int
	// Адрес Redis (host:port); пусто — только in-memory кэш
	RedisAddr string
	// Пароль Redis
	RedisPassword string
	// Номер базы Redis
	RedisDB int

	// --- topologymetrics ---

	// Включить мониторинг зависимостей
	DephealthEnabled bool
	// Имя группы в метриках
	DephealthGroup string
	// Интервал проверки зависимостей
	DephealthCheckInterval time.Duration

	// --- HTTP Server Timeouts ---

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения, валидирует
// значения и возвращает Config или ошибку.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// EW_PORT — порт HTTP-сервера (по умолчанию 8080)
	cfg.Port, err = getEnvInt("EW_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("EW_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("EW_PORT: значение %d вне допустимого диапазона 1-65535", cfg.Port)
	}

	// EW_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("EW_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("EW_LOG_LEVEL: %w", err)
	}

	// EW_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("EW_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("EW_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- Сайт ---

	// EW_BASE_URL — абсолютный URL сайта
	cfg.BaseURL, err = parseAbsoluteURL(getEnvDefault("EW_BASE_URL", "https://uzembassy.ae"))
	if err != nil {
		return nil, fmt.Errorf("EW_BASE_URL: %w", err)
	}

	// EW_DEFAULT_LANG — язык по умолчанию (uz)
	defaultLang := getEnvDefault("EW_DEFAULT_LANG", locale.Default().String())
	lang, ok := locale.Parse(defaultLang)
	if !ok {
		return nil, fmt.Errorf("EW_DEFAULT_LANG: неподдерживаемый язык %q, допустимые: uz, en", defaultLang)
	}
	cfg.DefaultLang = lang

	// EW_LOCALE_DETECT — учитывать предпочтения браузера (по умолчанию false)
	cfg.LocaleDetect, err = getEnvBool("EW_LOCALE_DETECT", false)
	if err != nil {
		return nil, fmt.Errorf("EW_LOCALE_DETECT: %w", err)
	}

	cfg.GoogleSiteVerification = getEnvDefault("EW_GOOGLE_SITE_VERIFICATION", "")

	// --- News API ---

	// EW_NEWS_API_URL — базовый URL API статей
	cfg.NewsAPIURL, err = parseAbsoluteURL(getEnvDefault("EW_NEWS_API_URL", "http://localhost:8090/api/v1"))
	if err != nil {
		return nil, fmt.Errorf("EW_NEWS_API_URL: %w", err)
	}

	// EW_NEWS_API_TIMEOUT — таймаут запросов (по умолчанию 10s)
	cfg.NewsAPITimeout, err = getEnvDuration("EW_NEWS_API_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("EW_NEWS_API_TIMEOUT: %w", err)
	}

	cfg.NewsAPICACertPath = getEnvDefault("EW_NEWS_API_CA_CERT_PATH", "")

	// EW_NEWS_API_VALIDATE — проверка ответов по OpenAPI (по умолчанию false)
	cfg.NewsAPIValidate, err = getEnvBool("EW_NEWS_API_VALIDATE", false)
	if err != nil {
		return nil, fmt.Errorf("EW_NEWS_API_VALIDATE: %w", err)
	}

	cfg.NewsAPIHealthPath = getEnvDefault("EW_NEWS_API_HEALTH_PATH", "/actuator/health")
	if !strings.HasPrefix(cfg.NewsAPIHealthPath, "/") {
		return nil, fmt.Errorf("EW_NEWS_API_HEALTH_PATH: путь должен начинаться с /: %q", cfg.NewsAPIHealthPath)
	}

	// EW_NEWS_PAGE_SIZE — размер страницы новостей (по умолчанию 12)
	cfg.NewsPageSize, err = getEnvInt("EW_NEWS_PAGE_SIZE", 12)
	if err != nil {
		return nil, fmt.Errorf("EW_NEWS_PAGE_SIZE: %w", err)
	}
	if cfg.NewsPageSize < 1 || cfg.NewsPageSize > 100 {
		return nil, fmt.Errorf("EW_NEWS_PAGE_SIZE: значение %d вне допустимого диапазона 1-100", cfg.NewsPageSize)
	}

	// --- Кэш ---

	// EW_NEWS_CACHE_TTL — период ревалидации (по умолчанию 5m)
	cfg.NewsCacheTTL, err = getEnvDuration("EW_NEWS_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("EW_NEWS_CACHE_TTL: %w", err)
	}

	// EW_SITEMAP_CACHE_TTL — кэш статей для sitemap (по умолчанию 1h)
	cfg.SitemapCacheTTL, err = getEnvDuration("EW_SITEMAP_CACHE_TTL", time.Hour)
	if err != nil {
		return nil, fmt.Errorf("EW_SITEMAP_CACHE_TTL: %w", err)
	}

	// EW_CACHE_SIZE — размер LRU-кэша (по умолчанию 512)
	cfg.CacheSize, err = getEnvInt("EW_CACHE_SIZE", 512)
	if err != nil {
		return nil, fmt.Errorf("EW_CACHE_SIZE: %w", err)
	}
	if cfg.CacheSize < 1 {
		return nil, fmt.Errorf("EW_CACHE_SIZE: значение %d должно быть положительным", cfg.CacheSize)
	}

	cfg.RedisAddr = getEnvDefault("EW_REDIS_ADDR", "")
	cfg.RedisPassword = getEnvDefault("EW_REDIS_PASSWORD", "")
	cfg.RedisDB, err = getEnvInt("EW_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("EW_REDIS_DB: %w", err)
	}
	if cfg.RedisDB < 0 || cfg.RedisDB > 15 {
		return nil, fmt.Errorf("EW_REDIS_DB: значение %d вне допустимого диапазона 0-15", cfg.RedisDB)
	}

	// --- topologymetrics ---

	cfg.DephealthEnabled, err = getEnvBool("EW_DEPHEALTH_ENABLED", true)
	if err != nil {
		return nil, fmt.Errorf("EW_DEPHEALTH_ENABLED: %w", err)
	}
	cfg.DephealthGroup = getEnvDefault("EW_DEPHEALTH_GROUP", "embassy")
	cfg.DephealthCheckInterval, err = getEnvDuration("EW_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("EW_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// --- HTTP Server Timeouts ---

	cfg.HTTPReadTimeout, err = getEnvDuration("EW_HTTP_READ_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("EW_HTTP_READ_TIMEOUT: %w", err)
	}
	cfg.HTTPWriteTimeout, err = getEnvDuration("EW_HTTP_WRITE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("EW_HTTP_WRITE_TIMEOUT: %w", err)
	}
	cfg.HTTPIdleTimeout, err = getEnvDuration("EW_HTTP_IDLE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("EW_HTTP_IDLE_TIMEOUT: %w", err)
	}

	// --- Graceful shutdown ---

	// EW_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("EW_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("EW_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvBool возвращает булево значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное булево значение: %q", val)
	}
	return b, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	if d <= 0 {
		return 0, fmt.Errorf("длительность должна быть положительной: %q", val)
	}
	return d, nil
}

// parseAbsoluteURL проверяет, что URL абсолютный (http/https), и убирает trailing slash.
func parseAbsoluteURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("некорректный URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("ожидается абсолютный http(s) URL, получено %q", raw)
	}
	return strings.TrimRight(raw, "/"), nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
