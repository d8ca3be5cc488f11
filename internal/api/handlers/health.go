// health.go — обработчики health endpoints сайта.
// /health/live — liveness probe (процесс жив)
// /health/ready — readiness probe (API новостей и Redis)
// /metrics — Prometheus метрики
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/HumoX-ai/embassy-of-uae/internal/config"
)

// serviceName — имя сервиса в ответах health.
const serviceName = "embassy-web"

// ReadinessChecker — интерфейс проверки готовности зависимости.
type ReadinessChecker interface {
	// CheckReady возвращает статус ("ok", "degraded", "fail") и сообщение.
	CheckReady() (status, message string)
}

// DependencyHealth — последнее состояние зависимостей из фонового мониторинга.
type DependencyHealth interface {
	Health() map[string]bool
}

// HealthHandler — обработчик health endpoints.
type HealthHandler struct {
	newsChecker  ReadinessChecker
	redisChecker ReadinessChecker
	deps         DependencyHealth
	promHandler  http.Handler
}

// NewHealthHandler создаёт обработчик health endpoints.
// newsChecker — проверка API новостей (nil — "fail").
// redisChecker — проверка Redis (nil — Redis не используется, проверка не выводится).
// deps — мониторинг зависимостей (nil — без раздела dependencies).
func NewHealthHandler(newsChecker, redisChecker ReadinessChecker, deps DependencyHealth) *HealthHandler {
	return &HealthHandler{
		newsChecker:  newsChecker,
		redisChecker: redisChecker,
		deps:         deps,
		promHandler:  promhttp.Handler(),
	}
}

// healthCheckResult — результат проверки одной зависимости.
type healthCheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// healthLiveResponse — ответ liveness probe.
type healthLiveResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Service   string `json:"service"`
}

// healthReadyResponse — ответ readiness probe.
type healthReadyResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Service   string `json:"service"`
	Checks    struct {
		NewsAPI healthCheckResult  `json:"newsApi"`
		Redis   *healthCheckResult `json:"redis,omitempty"`
	} `json:"checks"`
	Dependencies map[string]bool `json:"dependencies,omitempty"`
}

// HealthLive — liveness probe. Возвращает 200 если процесс жив.
func (h *HealthHandler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	resp := healthLiveResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   serviceName,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

// HealthReady — readiness probe. Проверяет API новостей и Redis.
// Возвращает 200 (ok/degraded) или 503 (fail).
// Недоступность API новостей — degraded: информационные страницы продолжают работать.
func (h *HealthHandler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	resp := healthReadyResponse{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   serviceName,
	}

	statuses := make([]string, 0, 2)

	if h.newsChecker != nil {
		status, msg := h.newsChecker.CheckReady()
		resp.Checks.NewsAPI = healthCheckResult{Status: status, Message: msg}
	} else {
		resp.Checks.NewsAPI = healthCheckResult{Status: statusFail, Message: "не инициализирован"}
	}
	statuses = append(statuses, resp.Checks.NewsAPI.Status)

	if h.redisChecker != nil {
		status, msg := h.redisChecker.CheckReady()
		resp.Checks.Redis = &healthCheckResult{Status: status, Message: msg}
		statuses = append(statuses, status)
	}

	if h.deps != nil {
		resp.Dependencies = h.deps.Health()
	}

	resp.Status = overallStatus(statuses...)

	w.Header().Set("Content-Type", "application/json")
	if resp.Status == statusFail {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// GetMetrics — Prometheus метрики.
func (h *HealthHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.promHandler.ServeHTTP(w, r)
}

// Константы статусов health check.
const (
	statusFail     = "fail"
	statusDegraded = "degraded"
)

// overallStatus определяет итоговый статус из статусов зависимостей.
// Если хотя бы одна зависимость fail — итог fail.
// Если хотя бы одна degraded — итог degraded.
// Иначе — ok.
func overallStatus(statuses ...string) string {
	hasDegraded := false
	for _, s := range statuses {
		if s == statusFail {
			return statusFail
		}
		if s == statusDegraded {
			hasDegraded = true
		}
	}
	if hasDegraded {
		return statusDegraded
	}
	return "ok"
}
