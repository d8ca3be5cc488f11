// main.go — точка входа сайта посольства (embassy-web).
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/HumoX-ai/embassy-of-uae/internal/api/handlers"
	"github.com/HumoX-ai/embassy-of-uae/internal/config"
	"github.com/HumoX-ai/embassy-of-uae/internal/newsclient"
	"github.com/HumoX-ai/embassy-of-uae/internal/seo"
	"github.com/HumoX-ai/embassy-of-uae/internal/server"
	"github.com/HumoX-ai/embassy-of-uae/internal/service"
	"github.com/HumoX-ai/embassy-of-uae/internal/ui/content"
	uihandlers "github.com/HumoX-ai/embassy-of-uae/internal/ui/handlers"
	"github.com/HumoX-ai/embassy-of-uae/internal/ui/i18n"
)

// serviceID — имя приложения в графе зависимостей topologymetrics.
const serviceID = "embassy-web"

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("embassy-web запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("base_url", cfg.BaseURL),
		slog.String("default_lang", cfg.DefaultLang.String()),
	)

	// 3. Каталоги переводов
	bundle := i18n.Init(logger)
	if err := i18n.LoadFromEmbedFS(bundle, logger); err != nil {
		logger.Error("Ошибка загрузки переводов", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Содержимое информационных страниц
	registry, err := content.Load(logger)
	if err != nil {
		logger.Error("Ошибка загрузки страниц", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 5. OpenAPI-контракт API новостей (опционально, EW_NEWS_API_VALIDATE=true)
	var contract *newsclient.Contract
	if cfg.NewsAPIValidate {
		contract, err = newsclient.NewContract(cfg.NewsAPIURL)
		if err != nil {
			logger.Error("Ошибка загрузки OpenAPI-контракта", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Проверка ответов API по контракту включена",
			slog.String("contract_version", contract.Version()),
		)
	}

	// 6. Клиент API новостей
	newsClient, err := newsclient.New(cfg.NewsAPIURL, cfg.NewsAPICACertPath, cfg.NewsAPITimeout, contract, logger)
	if err != nil {
		logger.Error("Ошибка создания клиента API новостей", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Клиент API новостей создан", slog.String("url", cfg.NewsAPIURL))

	// 7. Кэш: in-memory LRU, при EW_REDIS_ADDR — Redis как общий уровень
	maxTTL := max(cfg.NewsCacheTTL, cfg.SitemapCacheTTL)
	tiers := []service.Cache{service.NewMemoryCache(cfg.CacheSize, maxTTL)}

	var redisChecker handlers.ReadinessChecker
	if cfg.RedisAddr != "" {
		redisCache := service.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
		defer func() {
			if err := redisCache.Close(); err != nil {
				logger.Warn("Ошибка закрытия Redis", slog.String("error", err.Error()))
			}
		}()
		tiers = append(tiers, redisCache)
		redisChecker = redisCache
		logger.Info("Redis-кэш подключён", slog.String("addr", cfg.RedisAddr))
	}

	// 8. Сервис новостей
	newsSvc := service.NewNewsService(
		newsClient,
		service.NewTieredCache(tiers...),
		cfg.NewsCacheTTL,
		cfg.SitemapCacheTTL,
		logger,
	)

	// 9. topologymetrics — мониторинг API новостей (опционально)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var deps handlers.DependencyHealth
	if cfg.DephealthEnabled {
		if os.Getenv("EW_DEPHEALTH_GROUP") == "" {
			logger.Warn("EW_DEPHEALTH_GROUP не задана, используется значение по умолчанию",
				slog.String("default", cfg.DephealthGroup),
			)
		}

		dephealthSvc, dephealthErr := service.NewDephealthService(
			serviceID,
			cfg.DephealthGroup,
			cfg.NewsAPIURL,
			cfg.NewsAPIHealthPath,
			cfg.DephealthCheckInterval,
			logger,
		)
		if dephealthErr != nil {
			logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
				slog.String("error", dephealthErr.Error()),
			)
		} else if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics",
				slog.String("error", startErr.Error()),
			)
		} else {
			defer dephealthSvc.Stop()
			deps = dephealthSvc
			logger.Info("topologymetrics запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
		}
	}

	// 10. Handlers
	site := seo.NewSite(cfg.BaseURL, bundle, cfg.GoogleSiteVerification)
	renderer := uihandlers.NewRenderer(site, bundle, logger)

	h := server.Handlers{
		Health:   handlers.NewHealthHandler(newsClient, redisChecker, deps),
		SEO:      handlers.NewSEOHandler(site, newsSvc, logger),
		Renderer: renderer,
		Pages:    uihandlers.NewPagesHandler(renderer, registry, logger),
		News:     uihandlers.NewNewsHandler(renderer, newsSvc, cfg.NewsPageSize, logger),
	}

	// 11. HTTP-сервер
	srv := server.New(cfg, logger, h)

	// 12. Запуск сервера (блокирующий вызов с graceful shutdown)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("embassy-web остановлен")
}
