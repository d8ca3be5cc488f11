// Пакет pages — HTML-страницы сайта.
// Шаблоны html/template встроены через go:embed и отдаются как templ.Component
// (templ.FromGoHTML); обработчики рендерят их через Render(ctx, w).
package pages

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"time"

	"github.com/a-h/templ"

	"github.com/HumoX-ai/embassy-of-uae/internal/domain/locale"
	"github.com/HumoX-ai/embassy-of-uae/internal/domain/model"
	"github.com/HumoX-ai/embassy-of-uae/internal/seo"
	"github.com/HumoX-ai/embassy-of-uae/internal/ui/content"
	"github.com/HumoX-ai/embassy-of-uae/internal/ui/i18n"
	"github.com/HumoX-ai/embassy-of-uae/internal/ui/pagination"
)

//go:embed templates/*.html
var templateFS embed.FS

// baseTemplates — общий каркас и фрагменты, подключаемые каждой страницей.
var baseTemplates = []string{"templates/layout.html", "templates/partials.html"}

// pageTemplates — файл шаблона каждой страницы.
var pageTemplates = map[string]string{
	"home":        "templates/home.html",
	"news_list":   "templates/news_list.html",
	"news_detail": "templates/news_detail.html",
	"content":     "templates/page.html",
	"not_found":   "templates/not_found.html",
}

// templates — разобранные наборы шаблонов по имени страницы.
var templates = mustParse(templateFS)

// Layout — общие данные каркаса страницы.
type Layout struct {
	Lang locale.Language
	// Path — путь текущего запроса (/uz/about), для активного пункта меню и смены языка
	Path string
	Meta seo.Metadata
	// Schemas — JSON-LD объекты для <head>
	Schemas    []any
	Menu       []content.MenuItem
	QuickLinks []content.MenuItem
	Year       int
}

// HomeData — данные главной страницы.
type HomeData struct {
	Layout
	Featured *model.NewsItem
	Items    []model.NewsItem
	Failed   bool
}

// NewsListData — данные ленты новостей.
type NewsListData struct {
	Layout
	Items      []model.NewsItem
	Pagination pagination.Pagination
	Failed     bool
}

// NewsDetailData — данные страницы новости.
type NewsDetailData struct {
	Layout
	Item    model.NewsItem
	Related []model.NewsItem
}

// ContentData — данные информационной страницы.
type ContentData struct {
	Layout
	Page *content.Page
}

// NotFoundData — данные страницы 404.
type NotFoundData struct {
	Layout
}

// Home — главная страница.
func Home(data HomeData) templ.Component {
	return component("home", data)
}

// NewsList — лента новостей.
func NewsList(data NewsListData) templ.Component {
	return component("news_list", data)
}

// NewsDetail — страница новости.
func NewsDetail(data NewsDetailData) templ.Component {
	return component("news_detail", data)
}

// Content — информационная страница.
func Content(data ContentData) templ.Component {
	return component("content", data)
}

// NotFound — страница 404.
func NotFound(data NotFoundData) templ.Component {
	return component("not_found", data)
}

// component возвращает компонент страницы name, начиная с шаблона "layout".
func component(name string, data any) templ.Component {
	return templ.FromGoHTML(templates[name].Lookup("layout"), data)
}

// mustParse разбирает каркас и шаблоны всех страниц.
// Ошибка разбора встроенных шаблонов — ошибка сборки, поэтому panic.
func mustParse(fsys fs.FS) map[string]*template.Template {
	base := template.Must(template.New("base").Funcs(funcMap()).ParseFS(fsys, baseTemplates...))

	sets := make(map[string]*template.Template, len(pageTemplates))
	for name, file := range pageTemplates {
		set := template.Must(base.Clone())
		sets[name] = template.Must(set.ParseFS(fsys, file))
	}
	return sets
}

// funcMap — функции шаблонов.
func funcMap() template.FuncMap {
	return template.FuncMap{
		"t":         translate,
		"tf":        translatef,
		"date":      formatDate,
		"isoDate":   isoDate,
		"langURL":   langURL,
		"swapLang":  locale.SwapPrefix,
		"languages": locale.Supported,
		"safeHTML":  safeHTML,
		"dict":      dict,
	}
}

// translate возвращает перевод ключа (без инициализированного каталога — сам ключ).
func translate(lang locale.Language, key string) string {
	if b := i18n.GetBundle(); b != nil {
		return b.Translate(lang, key)
	}
	return key
}

// translatef возвращает перевод ключа с аргументами.
func translatef(lang locale.Language, key string, args ...any) string {
	if b := i18n.GetBundle(); b != nil {
		return b.Translatef(lang, key, args...)
	}
	return key
}

// formatDate форматирует дату для языка: "March 5, 2025" / "5-mart, 2025".
func formatDate(lang locale.Language, t time.Time) string {
	if b := i18n.GetBundle(); b != nil {
		return b.FormatDate(lang, t)
	}
	return t.Format("2006-01-02")
}

// isoDate — значение атрибута datetime.
func isoDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// langURL возвращает путь страницы с языковым префиксом.
func langURL(lang locale.Language, path string) string {
	return "/" + lang.String() + path
}

// safeHTML помечает HTML статьи как доверенный: содержимое приходит
// из API новостей посольства.
func safeHTML(s string) template.HTML {
	return template.HTML(s) //nolint:gosec // HTML статей из собственного API
}

// dict собирает map из пар ключ-значение для передачи в вложенный шаблон.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: нечётное количество аргументов")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: ключ %v не строка", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}
