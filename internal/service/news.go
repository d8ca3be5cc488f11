// news.go — NewsService: чтение новостей через API с кэшированием ответов
// на время ревалидации и преобразование статей в NewsItem для страниц.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/HumoX-ai/embassy-of-uae/internal/domain/locale"
	"github.com/HumoX-ai/embassy-of-uae/internal/domain/model"
	"github.com/HumoX-ai/embassy-of-uae/internal/newsclient"
)

const (
	// PlaceholderImage — изображение новости без вложений.
	PlaceholderImage = "/static/img/placeholder-news.svg"
	// SitemapPageSize — количество статей, попадающих в sitemap.xml.
	SitemapPageSize = 100
)

// readTimeFormats — подпись времени чтения, если API её не прислал.
var readTimeFormats = map[locale.Language]string{
	locale.Uzbek:   "%d daqiqa o‘qish",
	locale.English: "%d min read",
}

// ArticleSource — источник статей (newsclient.Client).
type ArticleSource interface {
	FetchArticles(ctx context.Context, page, size int) (*model.ArticlePage, error)
	FetchArticle(ctx context.Context, id int64) (*model.Article, error)
	PrimaryImageURL(a *model.Article) string
}

// NewsService — сервис новостей с кэшем.
type NewsService struct {
	source     ArticleSource
	cache      Cache
	ttl        time.Duration
	sitemapTTL time.Duration
	group      singleflight.Group
	logger     *slog.Logger
}

// NewNewsService создаёт сервис новостей.
// cache — кэш ответов (nil — без кэширования).
// ttl — период ревалидации списков и статей (EW_NEWS_CACHE_TTL).
// sitemapTTL — время жизни списка статей для sitemap (EW_SITEMAP_CACHE_TTL).
func NewNewsService(
	source ArticleSource,
	cache Cache,
	ttl time.Duration,
	sitemapTTL time.Duration,
	logger *slog.Logger,
) *NewsService {
	if cache == nil {
		cache = NewTieredCache()
	}
	return &NewsService{
		source:     source,
		cache:      cache,
		ttl:        ttl,
		sitemapTTL: sitemapTTL,
		logger:     logger.With(slog.String("component", "news_service")),
	}
}

// List возвращает страницу статей (page с 1).
func (s *NewsService) List(ctx context.Context, page, size int) (*model.ArticlePage, error) {
	page, size = newsclient.NormalizePage(page, size)
	key := fmt.Sprintf("list:%d:%d", page, size)

	return cached(ctx, s, key, s.ttl, func(ctx context.Context) (*model.ArticlePage, error) {
		return s.source.FetchArticles(ctx, page, size)
	})
}

// Get возвращает статью по ID. Отсутствующая статья — newsclient.ErrNotFound
// (такой результат не кэшируется).
func (s *NewsService) Get(ctx context.Context, id int64) (*model.Article, error) {
	key := "article:" + strconv.FormatInt(id, 10)

	return cached(ctx, s, key, s.ttl, func(ctx context.Context) (*model.Article, error) {
		return s.source.FetchArticle(ctx, id)
	})
}

// Latest возвращает n последних статей в виде NewsItem.
func (s *NewsService) Latest(ctx context.Context, n int, lang locale.Language) ([]model.NewsItem, error) {
	page, err := s.List(ctx, 1, n)
	if err != nil {
		return nil, err
	}
	return s.ToNewsItems(page.Content, lang), nil
}

// Related возвращает до n последних статей, кроме статьи id.
func (s *NewsService) Related(ctx context.Context, id int64, n int, lang locale.Language) ([]model.NewsItem, error) {
	page, err := s.List(ctx, 1, n+1)
	if err != nil {
		return nil, err
	}

	related := make([]model.Article, 0, n)
	for _, a := range page.Content {
		if a.ID == id {
			continue
		}
		related = append(related, a)
		if len(related) == n {
			break
		}
	}
	return s.ToNewsItems(related, lang), nil
}

// SitemapArticles возвращает статьи для sitemap.xml (первые SitemapPageSize).
func (s *NewsService) SitemapArticles(ctx context.Context) ([]model.Article, error) {
	page, err := cached(ctx, s, "sitemap", s.sitemapTTL, func(ctx context.Context) (*model.ArticlePage, error) {
		return s.source.FetchArticles(ctx, 1, SitemapPageSize)
	})
	if err != nil {
		return nil, err
	}
	return page.Content, nil
}

// ToNewsItem преобразует статью в NewsItem.
// Пустые выдержка и время чтения вычисляются по HTML-содержимому,
// изображение — первое вложение, затем первое <img> в тексте, затем заглушка.
func (s *NewsService) ToNewsItem(a *model.Article, lang locale.Language) model.NewsItem {
	item := model.NewsItem{
		ID:       strconv.FormatInt(a.ID, 10),
		Title:    a.Title,
		Excerpt:  strings.TrimSpace(a.Excerpt),
		Content:  a.Content,
		Image:    s.source.PrimaryImageURL(a),
		Date:     a.CreatedAt.Time,
		Category: a.Category,
		Author:   a.Author,
		ReadTime: strings.TrimSpace(a.ReadTime),
	}

	if item.Image == "" {
		item.Image = FirstImage(a.Content)
	}
	if item.Image == "" {
		item.Image = PlaceholderImage
	}
	if item.Excerpt == "" {
		item.Excerpt = Excerpt(a.Content, excerptLength)
	}
	if item.ReadTime == "" {
		format, ok := readTimeFormats[lang]
		if !ok {
			format = readTimeFormats[locale.Default()]
		}
		item.ReadTime = fmt.Sprintf(format, ReadingMinutes(a.Content))
	}
	return item
}

// ToNewsItems преобразует список статей.
func (s *NewsService) ToNewsItems(articles []model.Article, lang locale.Language) []model.NewsItem {
	items := make([]model.NewsItem, 0, len(articles))
	for i := range articles {
		items = append(items, s.ToNewsItem(&articles[i], lang))
	}
	return items
}

// cached возвращает значение из кэша или загружает его через fetch.
// Параллельные промахи по одному ключу объединяются в один запрос к API;
// отменённый запрос перестаёт ждать, не прерывая загрузку для остальных.
func cached[T any](
	ctx context.Context,
	s *NewsService,
	key string,
	ttl time.Duration,
	fetch func(ctx context.Context) (*T, error),
) (*T, error) {
	if data, _, ok := s.cache.Get(ctx, key); ok {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			return &v, nil
		}
		s.logger.Warn("Повреждённая запись кэша, повторная загрузка",
			slog.String("key", key),
		)
	}

	// Загрузка отвязана от отмены запроса; длительность ограничена таймаутом клиента API.
	ch := s.group.DoChan(key, func() (any, error) {
		fctx := context.WithoutCancel(ctx)
		v, err := fetch(fctx)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(v)
		if err != nil {
			s.logger.Warn("Не удалось сериализовать ответ для кэша",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			return v, nil
		}
		s.cache.Set(fctx, key, data, ttl)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*T), nil
	}
}
