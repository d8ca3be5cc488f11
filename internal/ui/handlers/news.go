// news.go — главная страница, лента новостей, страница статьи и RSS.
package handlers

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/HumoX-ai/embassy-of-uae/internal/api/errors"
	"github.com/HumoX-ai/embassy-of-uae/internal/domain/locale"
	"github.com/HumoX-ai/embassy-of-uae/internal/domain/model"
	"github.com/HumoX-ai/embassy-of-uae/internal/newsclient"
	"github.com/HumoX-ai/embassy-of-uae/internal/seo"
	"github.com/HumoX-ai/embassy-of-uae/internal/ui/i18n"
	"github.com/HumoX-ai/embassy-of-uae/internal/ui/pages"
	"github.com/HumoX-ai/embassy-of-uae/internal/ui/pagination"
)

const (
	// homeNewsCount — главная новость и три следующие.
	homeNewsCount = 4
	// relatedNewsCount — новости в боковой колонке статьи.
	relatedNewsCount = 3
	// rssItemsCount — статьи в RSS-ленте.
	rssItemsCount = 20
)

// NewsSource — источник новостей (service.NewsService).
type NewsSource interface {
	List(ctx context.Context, page, size int) (*model.ArticlePage, error)
	Get(ctx context.Context, id int64) (*model.Article, error)
	Latest(ctx context.Context, n int, lang locale.Language) ([]model.NewsItem, error)
	Related(ctx context.Context, id int64, n int, lang locale.Language) ([]model.NewsItem, error)
	ToNewsItem(a *model.Article, lang locale.Language) model.NewsItem
	ToNewsItems(articles []model.Article, lang locale.Language) []model.NewsItem
}

// NewsHandler — страницы новостей.
type NewsHandler struct {
	*Renderer
	news     NewsSource
	pageSize int
}

// NewNewsHandler создаёт NewsHandler.
// pageSize — количество новостей на странице ленты (EW_NEWS_PAGE_SIZE).
func NewNewsHandler(rn *Renderer, news NewsSource, pageSize int, logger *slog.Logger) *NewsHandler {
	r := *rn
	r.logger = logger.With(slog.String("component", "ui.news"))
	return &NewsHandler{Renderer: &r, news: news, pageSize: pageSize}
}

// HandleHome обрабатывает GET /{lng} — главная с последними новостями.
// Недоступность API не мешает показать страницу.
func (h *NewsHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	lang := i18n.LangFromContext(r.Context())

	data := pages.HomeData{
		Layout: h.layout(r, lang, seo.Page{
			Description: h.tr.Translate(lang, "meta.home.description"),
			Keywords:    seo.SplitKeywords(h.tr.Translate(lang, "meta.home.keywords")),
		}),
	}

	items, err := h.news.Latest(r.Context(), homeNewsCount, lang)
	switch {
	case err != nil:
		h.logger.Warn("Новости для главной недоступны", slog.String("error", err.Error()))
		data.Failed = true
	case len(items) > 0:
		data.Featured = &items[0]
		data.Items = items[1:]
	}

	h.render(w, r, http.StatusOK, "home", pages.Home(data))
}

// HandleList обрабатывает GET /{lng}/news?page=N.
// Некорректный номер страницы — 1, номер больше числа страниц — последняя.
func (h *NewsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	lang := i18n.LangFromContext(r.Context())
	page := parsePage(r.URL.Query().Get("page"))

	data := pages.NewsListData{
		Layout: h.layout(r, lang, seo.Page{
			Path:        seo.NewsPath,
			Title:       h.tr.Translate(lang, "meta.news.title"),
			Description: h.tr.Translate(lang, "meta.news.description"),
			Keywords:    seo.SplitKeywords(h.tr.Translate(lang, "meta.news.keywords")),
		}),
	}

	result, err := h.news.List(r.Context(), page, h.pageSize)
	if err == nil && result.TotalPages > 0 && page > result.TotalPages {
		page = result.TotalPages
		result, err = h.news.List(r.Context(), page, h.pageSize)
	}

	if err != nil {
		h.logger.Warn("Лента новостей недоступна",
			slog.Int("page", page),
			slog.String("error", err.Error()),
		)
		data.Failed = true
	} else {
		data.Items = h.news.ToNewsItems(result.Content, lang)
		data.Pagination = pagination.Build(page, result.TotalPages)
	}

	h.render(w, r, http.StatusOK, "news_list", pages.NewsList(data))
}

// HandleDetail обрабатывает GET /{lng}/news/{id}.
// Нечисловой id и любая ошибка загрузки статьи — страница 404.
func (h *NewsHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	lang := i18n.LangFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		h.NotFound(w, r)
		return
	}

	article, err := h.news.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, newsclient.ErrNotFound) {
			h.logger.Debug("Статья не найдена", slog.Int64("id", id))
		} else {
			h.logger.Error("Ошибка загрузки статьи",
				slog.Int64("id", id),
				slog.String("error", err.Error()),
			)
		}
		h.NotFound(w, r)
		return
	}

	item := h.news.ToNewsItem(article, lang)
	path := seo.NewsPath + "/" + item.ID

	related, err := h.news.Related(r.Context(), id, relatedNewsCount, lang)
	if err != nil {
		h.logger.Warn("Похожие новости недоступны",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
	}

	schema := h.site.NewsArticleSchema(lang, seo.ArticleInfo{
		Path:        path,
		Title:       item.Title,
		Description: item.Excerpt,
		Image:       item.Image,
		Author:      item.Author,
		Published:   article.CreatedAt.Time,
		Modified:    article.UpdatedAt.Time,
	})

	data := pages.NewsDetailData{
		Layout: h.layout(r, lang, seo.Page{
			Path:        path,
			Title:       item.Title,
			Description: item.Excerpt,
			Type:        "article",
			Image:       item.Image,
			ImageAlt:    item.Title,
			Published:   article.CreatedAt.Time,
			Modified:    article.UpdatedAt.Time,
			Author:      item.Author,
		}, schema),
		Item:    item,
		Related: related,
	}

	h.render(w, r, http.StatusOK, "news_detail", pages.NewsDetail(data))
}

// HandleRSS обрабатывает GET /{lng}/news/rss.xml — RSS 2.0 с последними статьями.
func (h *NewsHandler) HandleRSS(w http.ResponseWriter, r *http.Request) {
	lang := i18n.LangFromContext(r.Context())

	items, err := h.news.Latest(r.Context(), rssItemsCount, lang)
	if err != nil {
		h.logger.Warn("Статьи для RSS недоступны", slog.String("error", err.Error()))
		apierrors.UpstreamError(w, "API новостей недоступен")
		return
	}

	var buf bytes.Buffer
	if err := h.site.WriteRSS(&buf, lang, items, h.now()); err != nil {
		h.logger.Error("Ошибка формирования RSS", slog.String("error", err.Error()))
		apierrors.InternalError(w, "Не удалось сформировать RSS")
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// parsePage разбирает номер страницы; пустое, нечисловое или < 1 значение — 1.
func parsePage(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
