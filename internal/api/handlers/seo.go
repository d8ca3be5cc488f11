// seo.go — обработчики служебных файлов для поисковых систем:
// /sitemap.xml, /robots.txt, /manifest.webmanifest.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	apierrors "github.com/HumoX-ai/embassy-of-uae/internal/api/errors"
	"github.com/HumoX-ai/embassy-of-uae/internal/domain/model"
	"github.com/HumoX-ai/embassy-of-uae/internal/seo"
	"github.com/HumoX-ai/embassy-of-uae/internal/ui/content"
)

// SitemapSource — источник статей для sitemap (service.NewsService).
type SitemapSource interface {
	SitemapArticles(ctx context.Context) ([]model.Article, error)
}

// SEOHandler — обработчик sitemap, robots и manifest.
type SEOHandler struct {
	site   *seo.Site
	news   SitemapSource
	paths  []string
	now    func() time.Time
	logger *slog.Logger
}

// NewSEOHandler создаёт обработчик SEO-файлов.
// news — источник статей (nil — sitemap только со статическими страницами).
func NewSEOHandler(site *seo.Site, news SitemapSource, logger *slog.Logger) *SEOHandler {
	return &SEOHandler{
		site:   site,
		news:   news,
		paths:  seo.StaticPaths(content.Slugs),
		now:    time.Now,
		logger: logger.With(slog.String("component", "seo_handler")),
	}
}

// Sitemap — GET /sitemap.xml.
// Ошибка загрузки статей не прерывает ответ: отдаются только статические страницы.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	var articles []model.Article
	if h.news != nil {
		var err error
		articles, err = h.news.SitemapArticles(r.Context())
		if err != nil {
			h.logger.Warn("Статьи для sitemap недоступны, только статические страницы",
				slog.String("error", err.Error()),
			)
			articles = nil
		}
	}

	var buf bytes.Buffer
	if err := h.site.WriteSitemap(&buf, h.paths, articles, h.now()); err != nil {
		h.logger.Error("Ошибка формирования sitemap", slog.String("error", err.Error()))
		apierrors.InternalError(w, "Не удалось сформировать sitemap")
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// Robots — GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(h.site.Robots()))
}

// Manifest — GET /manifest.webmanifest.
func (h *SEOHandler) Manifest(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/manifest+json")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(h.site.Manifest())
}
