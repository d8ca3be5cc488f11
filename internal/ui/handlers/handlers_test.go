package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/HumoX-ai/embassy-of-uae/internal/domain/locale"
	"github.com/HumoX-ai/embassy-of-uae/internal/domain/model"
	"github.com/HumoX-ai/embassy-of-uae/internal/newsclient"
	"github.com/HumoX-ai/embassy-of-uae/internal/seo"
	"github.com/HumoX-ai/embassy-of-uae/internal/ui/content"
	"github.com/HumoX-ai/embassy-of-uae/internal/ui/i18n"
)

func TestMain(m *testing.M) {
	if err := i18n.LoadFromEmbedFS(i18n.Init(nil), testLogger()); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubNews — заглушка источника новостей.
type stubNews struct {
	articles   []model.Article
	totalPages int
	err        error
	getErr     error

	listCalls []int
}

func (s *stubNews) List(_ context.Context, page, _ int) (*model.ArticlePage, error) {
	s.listCalls = append(s.listCalls, page)
	if s.err != nil {
		return nil, s.err
	}
	return &model.ArticlePage{Content: s.articles, TotalPages: s.totalPages, Number: page - 1}, nil
}

func (s *stubNews) Get(_ context.Context, id int64) (*model.Article, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	for i := range s.articles {
		if s.articles[i].ID == id {
			return &s.articles[i], nil
		}
	}
	return nil, newsclient.ErrNotFound
}

func (s *stubNews) Latest(_ context.Context, n int, lang locale.Language) ([]model.NewsItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	articles := s.articles
	if len(articles) > n {
		articles = articles[:n]
	}
	return s.ToNewsItems(articles, lang), nil
}

func (s *stubNews) Related(_ context.Context, id int64, n int, lang locale.Language) ([]model.NewsItem, error) {
	var related []model.Article
	for _, a := range s.articles {
		if a.ID != id && len(related) < n {
			related = append(related, a)
		}
	}
	return s.ToNewsItems(related, lang), nil
}

func (s *stubNews) ToNewsItem(a *model.Article, _ locale.Language) model.NewsItem {
	return model.NewsItem{
		ID:       strconv.FormatInt(a.ID, 10),
		Title:    a.Title,
		Excerpt:  a.Excerpt,
		Content:  a.Content,
		Image:    "/static/img/placeholder-news.svg",
		Date:     a.CreatedAt.Time,
		Author:   a.Author,
		ReadTime: "1 min read",
	}
}

func (s *stubNews) ToNewsItems(articles []model.Article, lang locale.Language) []model.NewsItem {
	items := make([]model.NewsItem, 0, len(articles))
	for i := range articles {
		items = append(items, s.ToNewsItem(&articles[i], lang))
	}
	return items
}

func testArticles(n int) []model.Article {
	articles := make([]model.Article, 0, n)
	for i := 1; i <= n; i++ {
		articles = append(articles, model.Article{
			ID:        int64(i),
			Title:     "Article " + strconv.Itoa(i),
			Excerpt:   "Excerpt " + strconv.Itoa(i),
			Content:   "<p>Content " + strconv.Itoa(i) + "</p>",
			Author:    "Press Service",
			CreatedAt: model.Timestamp{Time: time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)},
			UpdatedAt: model.Timestamp{Time: time.Date(2025, 3, 6, 10, 0, 0, 0, time.UTC)},
		})
	}
	return articles
}

func newTestRenderer() *Renderer {
	rn := NewRenderer(seo.NewSite("https://uzembassy.ae", i18n.GetBundle(), ""), i18n.GetBundle(), testLogger())
	rn.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return rn
}

// newTestRouter собирает маршруты страниц так же, как сервер.
func newTestRouter(t *testing.T, news NewsSource) http.Handler {
	t.Helper()
	registry, err := content.Load(nil)
	if err != nil {
		t.Fatalf("content.Load: %v", err)
	}
	rn := newTestRenderer()
	nh := NewNewsHandler(rn, news, 12, testLogger())
	ph := NewPagesHandler(rn, registry, testLogger())

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			lang, _ := locale.HasPrefix(req.URL.Path)
			next.ServeHTTP(w, req.WithContext(i18n.WithLang(req.Context(), lang)))
		})
	})
	r.Get("/{lng}", nh.HandleHome)
	r.Get("/{lng}/news", nh.HandleList)
	r.Get("/{lng}/news/rss.xml", nh.HandleRSS)
	r.Get("/{lng}/news/{id}", nh.HandleDetail)
	r.Get("/{lng}/{slug}", ph.HandleContent)
	r.NotFound(rn.NotFound)
	return r
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func assertBody(t *testing.T, rec *httptest.ResponseRecorder, wants ...string) {
	t.Helper()
	body := rec.Body.String()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("ответ не содержит %q", want)
		}
	}
}

func TestHandleHome(t *testing.T) {
	h := newTestRouter(t, &stubNews{articles: testArticles(4), totalPages: 1})

	rec := get(t, h, "/en")
	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	assertBody(t, rec,
		"news-card-featured",
		`href="/en/news/1"`,
		`href="/en/news/4"`,
		"<title>Embassy of Uzbekistan in UAE | Official Website</title>",
		"© 2025",
	)
}

func TestHandleHome_APIDown(t *testing.T) {
	h := newTestRouter(t, &stubNews{err: errors.New("connection refused")})

	rec := get(t, h, "/uz")
	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200", rec.Code)
	}
	assertBody(t, rec, `<html lang="uz"`, "Yangiliklarni yuklab bo&#39;lmadi")
}

func TestHandleList(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		total     int
		wantCalls []int
		wants     []string
	}{
		{"первая страница", "/en/news", 3, []int{1}, []string{"Page 1 of 3", `rel="next" href="/en/news?page=2"`}},
		{"некорректный номер", "/en/news?page=abc", 3, []int{1}, []string{"Page 1 of 3"}},
		{"отрицательный номер", "/en/news?page=-2", 3, []int{1}, []string{"Page 1 of 3"}},
		{"номер больше числа страниц", "/en/news?page=9", 3, []int{9, 3}, []string{"Page 3 of 3", `rel="prev" href="/en/news?page=2"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			news := &stubNews{articles: testArticles(2), totalPages: tt.total}
			rec := get(t, newTestRouter(t, news), tt.target)

			if rec.Code != http.StatusOK {
				t.Fatalf("статус = %d, ожидается 200", rec.Code)
			}
			assertBody(t, rec, tt.wants...)
			if len(news.listCalls) != len(tt.wantCalls) {
				t.Fatalf("вызовы List = %v, ожидается %v", news.listCalls, tt.wantCalls)
			}
			for i := range tt.wantCalls {
				if news.listCalls[i] != tt.wantCalls[i] {
					t.Errorf("вызовы List = %v, ожидается %v", news.listCalls, tt.wantCalls)
				}
			}
		})
	}
}

func TestHandleList_APIDown(t *testing.T) {
	rec := get(t, newTestRouter(t, &stubNews{err: errors.New("timeout")}), "/en/news")

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200", rec.Code)
	}
	assertBody(t, rec, "Failed to load news")
	if strings.Contains(rec.Body.String(), `class="pagination"`) {
		t.Error("пагинация не должна выводиться при ошибке API")
	}
}

func TestHandleDetail(t *testing.T) {
	h := newTestRouter(t, &stubNews{articles: testArticles(5), totalPages: 1})

	rec := get(t, h, "/en/news/2")
	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200", rec.Code)
	}
	assertBody(t, rec,
		"<title>Article 2 | Embassy of Uzbekistan in UAE</title>",
		"<p>Content 2</p>",
		"By Press Service",
		"March 5, 2025",
		`<link rel="canonical" href="https://uzembassy.ae/en/news/2">`,
		`<meta property="og:type" content="article">`,
		`<meta property="article:published_time" content="2025-03-05T10:00:00Z">`,
		`"@type":"NewsArticle"`,
		`href="/en/news/1"`,
		`href="/en/news/3"`,
	)
	if strings.Count(rec.Body.String(), `class="related-card"`) != relatedNewsCount {
		t.Errorf("ожидается %d похожих новостей", relatedNewsCount)
	}
}

func TestHandleDetail_NotFound(t *testing.T) {
	tests := []struct {
		name   string
		news   *stubNews
		target string
	}{
		{"нечисловой id", &stubNews{articles: testArticles(1)}, "/en/news/abc"},
		{"нулевой id", &stubNews{articles: testArticles(1)}, "/en/news/0"},
		{"нет статьи", &stubNews{articles: testArticles(1)}, "/en/news/42"},
		{"API недоступен", &stubNews{getErr: errors.New("connection refused")}, "/en/news/1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, newTestRouter(t, tt.news), tt.target)
			if rec.Code != http.StatusNotFound {
				t.Fatalf("статус = %d, ожидается 404", rec.Code)
			}
			assertBody(t, rec, "Page not found", `content="noindex, follow"`)
		})
	}
}

func TestHandleContent(t *testing.T) {
	h := newTestRouter(t, &stubNews{})

	rec := get(t, h, "/en/about")
	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200", rec.Code)
	}
	assertBody(t, rec,
		"<title>About Us | Embassy of Uzbekistan in UAE</title>",
		`hreflang="uz" href="https://uzembassy.ae/uz/about"`,
	)

	rec = get(t, h, "/en/president")
	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200", rec.Code)
	}
	assertBody(t, rec,
		`<meta property="og:image" content="https://upload.wikimedia.org/wikipedia/commons/5/54/Shavkat_Mirziyoyev_official_portrait.jpg">`,
		`<figure class="page-portrait">`,
	)

	for _, target := range []string{"/en/unknown", "/uz/admin", "/en/news/1/extra"} {
		if rec := get(t, h, target); rec.Code != http.StatusNotFound {
			t.Errorf("%s: статус = %d, ожидается 404", target, rec.Code)
		}
	}
}

func TestHandleRSS(t *testing.T) {
	rec := get(t, newTestRouter(t, &stubNews{articles: testArticles(3)}), "/en/news/rss.xml")

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/rss+xml") {
		t.Errorf("Content-Type = %q", ct)
	}
	assertBody(t, rec, "<rss", "https://uzembassy.ae/en/news/3")

	rec = get(t, newTestRouter(t, &stubNews{err: errors.New("timeout")}), "/en/news/rss.xml")
	if rec.Code != http.StatusBadGateway {
		t.Errorf("статус при ошибке API = %d, ожидается 502", rec.Code)
	}
}

func TestRender_ErrorDoesNotLeakPartialPage(t *testing.T) {
	rn := newTestRenderer()
	failing := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, "<html><body>частичная страница")
		return errors.New("template failed")
	})

	rec := httptest.NewRecorder()
	rn.render(rec, httptest.NewRequest(http.MethodGet, "/uz/about", nil), http.StatusOK, "about", failing)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("статус = %d, ожидается 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "частичная страница") {
		t.Errorf("ответ содержит недорисованную страницу: %q", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, ожидается text/plain от http.Error", ct)
	}
}

func TestRender_Success(t *testing.T) {
	rn := newTestRenderer()
	ok := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>страница</p>")
		return err
	})

	rec := httptest.NewRecorder()
	rn.render(rec, httptest.NewRequest(http.MethodGet, "/uz/missing", nil), http.StatusNotFound, "notfound", ok)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("статус = %d, ожидается 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	assertBody(t, rec, "<p>страница</p>")
}

func TestParsePage(t *testing.T) {
	tests := map[string]int{"": 1, "abc": 1, "0": 1, "-3": 1, "1": 1, "7": 7, "2.5": 1}
	for in, want := range tests {
		if got := parsePage(in); got != want {
			t.Errorf("parsePage(%q) = %d, ожидается %d", in, got, want)
		}
	}
}
