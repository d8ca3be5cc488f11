// metrics.go — Prometheus HTTP метрики сайта.
// Регистрирует метрики: ew_http_requests_total, ew_http_request_duration_seconds.
// Нормализация путей предотвращает взрывной рост кардинальности.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/HumoX-ai/embassy-of-uae/internal/domain/locale"
	"github.com/HumoX-ai/embassy-of-uae/internal/ui/content"
)

// HTTP метрики сайта
var (
	// httpRequestsTotal — общее количество HTTP-запросов.
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ew_http_requests_total",
			Help: "Общее количество HTTP-запросов к сайту",
		},
		[]string{"method", "path", "status"},
	)

	// httpRequestDuration — гистограмма длительности HTTP-запросов.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ew_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов к сайту в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// MetricsMiddleware возвращает HTTP middleware для сбора Prometheus метрик.
// Записывает количество запросов и длительность для каждого endpoint.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			normalizedPath := normalizePath(r.URL.Path)

			wrapped := newMetricsResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(wrapped.statusCode)

			httpRequestsTotal.WithLabelValues(r.Method, normalizedPath, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, normalizedPath).Observe(duration)
		})
	}
}

// metricsResponseWriter — обёртка для перехвата статус-кода.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newMetricsResponseWriter(w http.ResponseWriter) *metricsResponseWriter {
	return &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *metricsResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Unwrap позволяет http.ResponseController получить доступ к оригинальному ResponseWriter.
func (rw *metricsResponseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// normalizePath приводит путь к шаблону маршрута:
// /uz/news/42 → /{lng}/news/{id}, /en/about → /{lng}/{slug}.
// Неизвестные пути сворачиваются в "other".
func normalizePath(path string) string {
	switch path {
	case "/", "/health/live", "/health/ready", "/metrics",
		"/sitemap.xml", "/robots.txt", "/manifest.webmanifest", "/set-language":
		return path
	}

	if strings.HasPrefix(path, "/static/") {
		return "/static/*"
	}

	if _, ok := locale.HasPrefix(path); !ok {
		return "other"
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	switch {
	case len(segments) == 1:
		return "/{lng}"
	case len(segments) == 2 && segments[1] == "news":
		return "/{lng}/news"
	case len(segments) == 3 && segments[1] == "news" && segments[2] == "rss.xml":
		return "/{lng}/news/rss.xml"
	case len(segments) == 3 && segments[1] == "news":
		return "/{lng}/news/{id}"
	case len(segments) == 2 && content.IsPage(segments[1]):
		return "/{lng}/{slug}"
	}
	return "other"
}
