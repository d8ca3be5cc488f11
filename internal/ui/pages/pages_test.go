package pages

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/HumoX-ai/embassy-of-uae/internal/domain/locale"
	"github.com/HumoX-ai/embassy-of-uae/internal/domain/model"
	"github.com/HumoX-ai/embassy-of-uae/internal/seo"
	"github.com/HumoX-ai/embassy-of-uae/internal/ui/content"
	"github.com/HumoX-ai/embassy-of-uae/internal/ui/i18n"
	"github.com/HumoX-ai/embassy-of-uae/internal/ui/pagination"
)

func TestMain(m *testing.M) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := i18n.LoadFromEmbedFS(i18n.Init(logger), logger); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// testLayout возвращает каркас страницы path на языке lang.
func testLayout(lang locale.Language, path string, page seo.Page) Layout {
	site := seo.NewSite("https://uzembassy.ae", i18n.GetBundle(), "")
	return Layout{
		Lang:       lang,
		Path:       path,
		Meta:       site.Metadata(lang, page),
		Schemas:    []any{site.OrganizationSchema(), site.WebSiteSchema(lang)},
		Menu:       content.Menu(),
		QuickLinks: content.QuickLinks(),
		Year:       2025,
	}
}

func render(t *testing.T, c interface {
	Render(ctx context.Context, w io.Writer) error
}) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func assertContains(t *testing.T, html string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(html, want) {
			t.Errorf("HTML не содержит %q", want)
		}
	}
}

func testItem(id string) model.NewsItem {
	return model.NewsItem{
		ID:       id,
		Title:    "Visit <" + id + ">",
		Excerpt:  "Excerpt " + id,
		Content:  "<p>Body <strong>" + id + "</strong></p>",
		Image:    "/static/img/placeholder-news.svg",
		Date:     time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Category: "Diplomacy",
		Author:   "Press Service",
		ReadTime: "2 min read",
	}
}

func TestHome_PerLanguage(t *testing.T) {
	tests := []struct {
		lang  locale.Language
		wants []string
	}{
		{locale.English, []string{`<html lang="en"`, "Latest News", "View all news", "March 5, 2025", `href="/en/news/1"`, "Quick Links", "© 2025"}},
		{locale.Uzbek, []string{`<html lang="uz"`, "So&#39;nggi yangiliklar", "Barcha yangiliklar", "5-mart, 2025", `href="/uz/news/1"`}},
	}

	for _, tt := range tests {
		t.Run(tt.lang.String(), func(t *testing.T) {
			featured := testItem("1")
			html := render(t, Home(HomeData{
				Layout:   testLayout(tt.lang, "/"+tt.lang.String(), seo.Page{}),
				Featured: &featured,
				Items:    []model.NewsItem{testItem("2"), testItem("3")},
			}))
			assertContains(t, html, tt.wants...)
			assertContains(t, html, `href="/`+tt.lang.String()+`/news/3"`, "Visit &lt;2&gt;")
		})
	}
}

func TestHome_States(t *testing.T) {
	empty := render(t, Home(HomeData{Layout: testLayout(locale.English, "/en", seo.Page{})}))
	assertContains(t, empty, "No news available at the moment")

	failed := render(t, Home(HomeData{Layout: testLayout(locale.English, "/en", seo.Page{}), Failed: true}))
	assertContains(t, failed, "Failed to load news")
}

func TestLayout_Head(t *testing.T) {
	html := render(t, Home(HomeData{Layout: testLayout(locale.English, "/en/about", seo.Page{
		Path:        "/about",
		Title:       "About Us",
		Description: "About the embassy",
	})}))

	assertContains(t, html,
		"<title>About Us | Embassy of Uzbekistan in UAE</title>",
		`<link rel="canonical" href="https://uzembassy.ae/en/about">`,
		`hreflang="uz" href="https://uzembassy.ae/uz/about"`,
		`hreflang="x-default"`,
		`<meta property="og:locale" content="en_US">`,
		`<meta property="og:locale:alternate" content="uz_UZ">`,
		`<meta name="twitter:card" content="summary_large_image">`,
		`<script type="application/ld+json">`,
		`"@type":"Organization"`,
		`"@type":"WebSite"`,
		`<option value="en" selected>English</option>`,
		`name="path" value="/en/about"`,
	)

	// Активный пункт меню — группа "Embassy" со страницей about
	if !strings.Contains(html, `nav-item has-children active`) {
		t.Error("не отмечен активный пункт меню")
	}
}

func TestNewsList(t *testing.T) {
	html := render(t, NewsList(NewsListData{
		Layout:     testLayout(locale.English, "/en/news", seo.Page{Path: "/news", Title: "Latest News"}),
		Items:      []model.NewsItem{testItem("7"), testItem("8")},
		Pagination: pagination.Build(2, 5),
	}))

	assertContains(t, html,
		"News and Announcements",
		`href="/en/news/7"`,
		`href="/en/news?page=1"`,
		`rel="next" href="/en/news?page=3"`,
		`aria-current="page">2</span>`,
		"…",
		"Page 2 of 5",
	)
}

func TestNewsList_NoPaginationForSinglePage(t *testing.T) {
	html := render(t, NewsList(NewsListData{
		Layout:     testLayout(locale.English, "/en/news", seo.Page{}),
		Items:      []model.NewsItem{testItem("7")},
		Pagination: pagination.Build(1, 1),
	}))
	if strings.Contains(html, `class="pagination"`) {
		t.Error("пагинация не должна выводиться для одной страницы")
	}
}

func TestNewsList_Failed(t *testing.T) {
	html := render(t, NewsList(NewsListData{
		Layout: testLayout(locale.Uzbek, "/uz/news", seo.Page{}),
		Failed: true,
	}))
	assertContains(t, html, "Yangiliklarni yuklab bo&#39;lmadi")
}

func TestNewsDetail(t *testing.T) {
	html := render(t, NewsDetail(NewsDetailData{
		Layout:  testLayout(locale.English, "/en/news/5", seo.Page{Path: "/news/5", Title: "Visit", Type: "article"}),
		Item:    testItem("5"),
		Related: []model.NewsItem{testItem("4")},
	}))

	assertContains(t, html,
		"<p>Body <strong>5</strong></p>",
		"By Press Service",
		"March 5, 2025",
		"2 min read",
		"Related News",
		`href="/en/news/4"`,
		`data-share-url="https://uzembassy.ae/en/news/5"`,
		`data-share-title="Visit &lt;5&gt;"`,
		`data-share-text="Excerpt 5"`,
		`<meta property="og:type" content="article">`,
	)
}

func TestContent_AllPages(t *testing.T) {
	reg, err := content.Load(nil)
	if err != nil {
		t.Fatalf("content.Load: %v", err)
	}

	for _, lang := range locale.Supported() {
		for _, slug := range content.Slugs {
			page, _ := reg.Get(lang, slug)
			html := render(t, Content(ContentData{
				Layout: testLayout(lang, "/"+lang.String()+"/"+slug, seo.Page{Path: "/" + slug, Title: page.HeadTitle()}),
				Page:   page,
			}))
			if !strings.Contains(html, "<h1>") {
				t.Errorf("%s/%s: нет заголовка", lang, slug)
			}
		}
	}
}

func TestContent_Holidays(t *testing.T) {
	reg, err := content.Load(nil)
	if err != nil {
		t.Fatalf("content.Load: %v", err)
	}
	page, _ := reg.Get(locale.English, "national-holidays")
	html := render(t, Content(ContentData{
		Layout: testLayout(locale.English, "/en/national-holidays", seo.Page{}),
		Page:   page,
	}))
	assertContains(t, html, "Navruz", "21 March", "Independence Day", `class="info-card"`)
}

func TestContent_Images(t *testing.T) {
	reg, err := content.Load(nil)
	if err != nil {
		t.Fatalf("content.Load: %v", err)
	}

	president, _ := reg.Get(locale.English, "president")
	html := render(t, Content(ContentData{
		Layout: testLayout(locale.English, "/en/president", seo.Page{}),
		Page:   president,
	}))
	assertContains(t, html,
		`<figure class="page-portrait">`,
		`src="https://upload.wikimedia.org/wikipedia/commons/5/54/Shavkat_Mirziyoyev_official_portrait.jpg"`,
		`alt="Shavkat Mirziyoyev"`,
		"Shavkat Mirziyoyev was born on July 24, 1957",
		"Mekhnat Shukhrati",
	)
	if n := strings.Count(html, "<p>"); n < 18 {
		t.Errorf("абзацев биографии %d, ожидается не меньше 18", n)
	}

	symbols, _ := reg.Get(locale.Uzbek, "state-symbols")
	html = render(t, Content(ContentData{
		Layout: testLayout(locale.Uzbek, "/uz/state-symbols", seo.Page{}),
		Page:   symbols,
	}))
	assertContains(t, html,
		`<figure class="section-image">`,
		`src="/static/img/emblem.svg"`,
		`src="/static/img/flag.svg"`,
	)
}

func TestNotFound(t *testing.T) {
	html := render(t, NotFound(NotFoundData{
		Layout: testLayout(locale.English, "/en/missing", seo.Page{Title: "Page not found", NoIndex: true}),
	}))
	assertContains(t, html, "Page not found", `href="/en"`, `content="noindex, follow"`)
}

func TestDict(t *testing.T) {
	if _, err := dict("a"); err == nil {
		t.Error("ожидается ошибка для нечётного числа аргументов")
	}
	if _, err := dict(1, 2); err == nil {
		t.Error("ожидается ошибка для нестрокового ключа")
	}
	m, err := dict("a", 1, "b", "x")
	if err != nil || m["a"] != 1 || m["b"] != "x" {
		t.Errorf("dict = %v, %v", m, err)
	}
}
