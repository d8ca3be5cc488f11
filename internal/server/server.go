// Пакет server — HTTP-сервер сайта посольства с graceful shutdown.
// Без TLS — HTTP за reverse proxy, TLS termination на ingress.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	apierrors "github.com/HumoX-ai/embassy-of-uae/internal/api/errors"
	"github.com/HumoX-ai/embassy-of-uae/internal/api/handlers"
	"github.com/HumoX-ai/embassy-of-uae/internal/api/middleware"
	"github.com/HumoX-ai/embassy-of-uae/internal/config"
	"github.com/HumoX-ai/embassy-of-uae/internal/domain/locale"
	uihandlers "github.com/HumoX-ai/embassy-of-uae/internal/ui/handlers"
	"github.com/HumoX-ai/embassy-of-uae/internal/ui/static"
)

// Handlers — обработчики, подключаемые к маршрутам.
type Handlers struct {
	Health   *handlers.HealthHandler
	SEO      *handlers.SEOHandler
	Renderer *uihandlers.Renderer
	Pages    *uihandlers.PagesHandler
	News     *uihandlers.NewsHandler
}

// Server — HTTP-сервер сайта.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт HTTP-сервер с настроенными маршрутами и middleware.
func New(cfg *config.Config, logger *slog.Logger, h Handlers) *Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      NewRouter(cfg, logger, h),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// NewRouter собирает маршруты сайта.
//
// Служебные пути (/health/*, /metrics, /sitemap.xml, /robots.txt,
// /manifest.webmanifest, /static/*, /set-language) обслуживаются без
// языкового префикса; страницы — под /{lng}.
func NewRouter(cfg *config.Config, logger *slog.Logger, h Handlers) http.Handler {
	router := chi.NewRouter()

	// Глобальные middleware (применяются ко ВСЕМ маршрутам)
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestLogger(logger))
	router.Use(chimiddleware.GetHead)
	router.Use(middleware.LocaleRedirect(cfg.DefaultLang, cfg.LocaleDetect))

	// Health и метрики
	router.Get("/health/live", h.Health.HealthLive)
	router.Get("/health/ready", h.Health.HealthReady)
	router.Get("/metrics", h.Health.GetMetrics)

	// SEO
	router.Get("/sitemap.xml", h.SEO.Sitemap)
	router.Get("/robots.txt", h.SEO.Robots)
	router.Get("/manifest.webmanifest", h.SEO.Manifest)

	// Статика
	router.Handle("/static/*", staticHandler())

	// Переключение языка без JS
	router.Get("/set-language", uihandlers.HandleSetLanguage)
	router.Post("/set-language", uihandlers.HandleSetLanguage)

	// Страницы
	lng := "/" + langParam()
	router.Get(lng, h.News.HandleHome)
	router.Get(lng+"/news", h.News.HandleList)
	router.Get(lng+"/news/rss.xml", h.News.HandleRSS)
	router.Get(lng+"/news/{id}", h.News.HandleDetail)
	router.Get(lng+"/{slug}", h.Pages.HandleContent)

	// Под языковым префиксом — HTML-страница 404, иначе JSON
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := locale.HasPrefix(r.URL.Path); ok {
			h.Renderer.NotFound(w, r)
			return
		}
		apierrors.NotFound(w, "Ресурс не найден")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		apierrors.MethodNotAllowed(w, "Метод не поддерживается")
	})

	return router
}

// langParam — параметр маршрута, совпадающий только с поддерживаемыми языками:
// "{lng:(uz|en)}".
func langParam() string {
	codes := make([]string, 0, len(locale.Supported()))
	for _, l := range locale.Supported() {
		codes = append(codes, l.String())
	}
	return "{lng:(" + strings.Join(codes, "|") + ")}"
}

// staticHandler раздаёт встроенную статику с кэшированием на сутки.
func staticHandler() http.Handler {
	fs := http.StripPrefix("/static/", http.FileServer(static.FileSystem()))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=86400")
		fs.ServeHTTP(w, r)
	})
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	// Канал для ошибок сервера
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
