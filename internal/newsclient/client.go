// Пакет newsclient — HTTP-клиент внешнего REST API новостей посольства.
// Запрашивает постраничный список статей, отдельную статью и формирует
// URL изображений. Страницы в UI нумеруются с 1, в API — с 0.
package newsclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/HumoX-ai/embassy-of-uae/internal/domain/model"
)

const (
	// MaxPageSize — максимальный размер страницы, запрашиваемый у API.
	MaxPageSize = 100
	// maxBodySize — ограничение размера читаемого ответа API.
	maxBodySize = 8 << 20
	// readyTimeout — таймаут readiness-проверки API.
	readyTimeout = 3 * time.Second
)

// ErrNotFound — статья не найдена (API вернул 404).
var ErrNotFound = errors.New("статья не найдена")

// StatusError — API вернул неожиданный HTTP-статус.
type StatusError struct {
	// Op — операция клиента (list, get)
	Op string
	// StatusCode — HTTP-статус ответа
	StatusCode int
	// Body — начало тела ответа (для диагностики)
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("news API %s: статус %d: %s", e.Op, e.StatusCode, e.Body)
}

// Prometheus-метрики обращений к API новостей.
var (
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ew_news_api_requests_total",
			Help: "Общее количество запросов к API новостей",
		},
		[]string{"operation", "status"},
	)

	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ew_news_api_request_duration_seconds",
			Help:    "Длительность запросов к API новостей в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// Client — HTTP-клиент API новостей.
type Client struct {
	httpClient *http.Client
	baseURL    string
	contract   *Contract
	logger     *slog.Logger
}

// New создаёт клиент API новостей.
// baseURL — базовый URL API (например, http://localhost:8090/api/v1).
// caCertPath — путь к CA-сертификату для TLS (пустая строка — стандартный пул).
// timeout — таймаут HTTP-запросов (EW_NEWS_API_TIMEOUT).
// contract — проверка ответов по OpenAPI-описанию (nil — без проверки).
func New(
	baseURL string,
	caCertPath string,
	timeout time.Duration,
	contract *Contract,
	logger *slog.Logger,
) (*Client, error) {
	httpClient := &http.Client{Timeout: timeout}

	if caCertPath != "" {
		tlsConfig, err := buildTLSConfig(caCertPath)
		if err != nil {
			return nil, fmt.Errorf("загрузка CA-сертификата API новостей: %w", err)
		}
		httpClient.Transport = &http.Transport{
			TLSClientConfig: tlsConfig,
		}
		logger.Info("CA-сертификат API новостей добавлен в пул доверия",
			slog.String("ca_cert", caCertPath),
		)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		contract:   contract,
		logger:     logger.With(slog.String("component", "news_client")),
	}, nil
}

// BaseURL возвращает базовый URL API.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchArticles запрашивает страницу статей.
// page — номер страницы с 1 (значения < 1 считаются 1), size — 1..MaxPageSize.
// GET {base}/article/all?page={page-1}&size={size}
func (c *Client) FetchArticles(ctx context.Context, page, size int) (*model.ArticlePage, error) {
	page, size = NormalizePage(page, size)

	q := url.Values{}
	q.Set("page", strconv.Itoa(page-1))
	q.Set("size", strconv.Itoa(size))
	reqURL := c.baseURL + "/article/all?" + q.Encode()

	body, err := c.get(ctx, "list", reqURL)
	if err != nil {
		return nil, err
	}

	var result model.ArticlePage
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("декодирование страницы статей: %w", err)
	}
	if result.Content == nil {
		result.Content = []model.Article{}
	}

	return &result, nil
}

// FetchArticle запрашивает статью по ID.
// GET {base}/article/{id}. При 404 возвращает ErrNotFound.
func (c *Client) FetchArticle(ctx context.Context, id int64) (*model.Article, error) {
	reqURL := fmt.Sprintf("%s/article/%d", c.baseURL, id)

	body, err := c.get(ctx, "get", reqURL)
	if err != nil {
		return nil, err
	}

	var article model.Article
	if err := json.Unmarshal(body, &article); err != nil {
		return nil, fmt.Errorf("декодирование статьи %d: %w", id, err)
	}

	return &article, nil
}

// ImageURL возвращает URL изображения статьи.
// {base}/article/get-image?articleId={a}&imageId={i}
func (c *Client) ImageURL(articleID int64, imageID string) string {
	q := url.Values{}
	q.Set("articleId", strconv.FormatInt(articleID, 10))
	q.Set("imageId", imageID)
	return c.baseURL + "/article/get-image?" + q.Encode()
}

// PrimaryImageURL возвращает URL первого изображения статьи или "".
func (c *Client) PrimaryImageURL(a *model.Article) string {
	if a == nil || len(a.Images) == 0 || a.Images[0].ID == "" {
		return ""
	}
	return c.ImageURL(a.ID, a.Images[0].ID)
}

// CheckReady проверяет доступность API новостей (запрос одной статьи).
// Реализует handlers.ReadinessChecker. Недоступность API не блокирует
// отдачу страниц, поэтому ошибка даёт "degraded".
func (c *Client) CheckReady() (status, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), readyTimeout)
	defer cancel()

	if _, err := c.FetchArticles(ctx, 1, 1); err != nil {
		return "degraded", err.Error()
	}
	return "ok", ""
}

// NormalizePage приводит номер страницы (с 1) и размер к допустимым значениям.
func NormalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

// get выполняет GET-запрос, проверяет статус и возвращает тело ответа.
func (c *Client) get(ctx context.Context, op, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("создание запроса %s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req) //nolint:gosec // G704: URL из конфигурации
	apiRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		apiRequestsTotal.WithLabelValues(op, "error").Inc()
		return nil, fmt.Errorf("запрос %s к %s: %w", op, c.baseURL, err)
	}
	defer resp.Body.Close()

	apiRequestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("чтение ответа %s: %w", op, err)
	}

	if resp.StatusCode == http.StatusNotFound && op == "get" {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode, Body: truncate(string(body), 256)}
	}

	if c.contract != nil {
		if err := c.contract.ValidateResponse(ctx, req, resp.StatusCode, resp.Header, body); err != nil {
			c.logger.Warn("Ответ API не соответствует контракту",
				slog.String("operation", op),
				slog.String("error", err.Error()),
			)
			return nil, fmt.Errorf("ответ %s: %w", op, err)
		}
	}

	return bytes.TrimSpace(body), nil
}

// truncate обрезает строку до n байт.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// buildTLSConfig создаёт TLS-конфигурацию с кастомным CA-сертификатом.
func buildTLSConfig(caCertPath string) (*tls.Config, error) {
	caCert, err := os.ReadFile(caCertPath)
	if err != nil {
		return nil, fmt.Errorf("чтение CA-сертификата: %w", err)
	}

	caCertPool, err := x509.SystemCertPool()
	if err != nil {
		caCertPool = x509.NewCertPool()
	}
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return nil, fmt.Errorf("CA-сертификат %s не содержит PEM-блоков", caCertPath)
	}

	return &tls.Config{
		RootCAs:    caCertPool,
		MinVersion: tls.VersionTLS12,
	}, nil
}
