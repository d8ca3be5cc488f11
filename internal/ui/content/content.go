// Пакет content — содержимое информационных страниц сайта на каждом языке.
// Страницы хранятся в JSON (data/{lang}.json), встроенных через go:embed,
// и загружаются один раз при старте.
package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/HumoX-ai/embassy-of-uae/internal/domain/locale"
)

//go:embed data/*.json
var dataFS embed.FS

// Slugs — информационные страницы сайта в порядке sitemap.
var Slugs = []string{
	"about",
	"ambassador-message",
	"biometric-passport-issuance",
	"birth-certificate-paternity",
	"contact",
	"info-for-foreigners",
	"national-holidays",
	"parliament",
	"permanent-consular-registration",
	"president",
	"return-certificate-procedure",
	"state-symbols",
	"temporary-consular-registration",
	"tourism-potential",
	"uzbek-culture",
	"uzbekistan",
}

// Link — внешняя или внутренняя ссылка в разделе страницы.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Card — карточка раздела (например, праздник с датой).
type Card struct {
	Title string `json:"title"`
	Date  string `json:"date,omitempty"`
	Text  string `json:"text"`
}

// Image — иллюстрация страницы или раздела: портрет, герб, фотография.
// Src — путь /static/... или абсолютный URL.
type Image struct {
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Caption string `json:"caption,omitempty"`
}

// Section — раздел страницы.
type Section struct {
	Heading    string   `json:"heading,omitempty"`
	Image      *Image   `json:"image,omitempty"`
	Paragraphs []string `json:"paragraphs,omitempty"`
	List       []string `json:"list,omitempty"`
	Ordered    bool     `json:"ordered,omitempty"`
	Cards      []Card   `json:"cards,omitempty"`
	Links      []Link   `json:"links,omitempty"`
	Note       string   `json:"note,omitempty"`
}

// Page — информационная страница на одном языке.
type Page struct {
	Slug string `json:"-"`
	// Title — заголовок страницы (h1)
	Title string `json:"title"`
	// Subtitle — подзаголовок под h1
	Subtitle string `json:"subtitle,omitempty"`
	// MetaTitle — <title>, без названия сайта (по умолчанию Title)
	MetaTitle string `json:"metaTitle,omitempty"`
	// Description — meta description и Open Graph
	Description string `json:"description"`
	// Keywords — ключевые слова страницы
	Keywords []string `json:"keywords,omitempty"`
	// Intro — вводный абзац
	Intro string `json:"intro,omitempty"`
	// Image — главная иллюстрация рядом с текстом (портрет)
	Image    *Image    `json:"image,omitempty"`
	Sections []Section `json:"sections"`
}

// HeadTitle возвращает заголовок для <title>.
func (p *Page) HeadTitle() string {
	if p.MetaTitle != "" {
		return p.MetaTitle
	}
	return p.Title
}

// Registry — загруженные страницы всех языков.
type Registry struct {
	pages map[locale.Language]map[string]*Page
}

// Load загружает содержимое всех поддерживаемых языков из встроенных файлов.
// Каждая страница из Slugs обязана присутствовать на каждом языке.
func Load(logger *slog.Logger) (*Registry, error) {
	r := &Registry{pages: make(map[locale.Language]map[string]*Page)}

	for _, lang := range locale.Supported() {
		path := fmt.Sprintf("data/%s.json", lang)
		data, err := dataFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("content: не удалось прочитать %s: %w", path, err)
		}
		if err := r.add(lang, data); err != nil {
			return nil, err
		}
	}

	if logger != nil {
		logger.Info("Содержимое страниц загружено",
			slog.Int("pages", len(Slugs)),
			slog.Int("languages", len(r.pages)),
		)
	}
	return r, nil
}

// add разбирает JSON-файл языка и проверяет полноту.
func (r *Registry) add(lang locale.Language, data []byte) error {
	var pages map[string]*Page
	if err := json.Unmarshal(data, &pages); err != nil {
		return fmt.Errorf("content: ошибка парсинга %s: %w", lang, err)
	}

	for _, slug := range Slugs {
		p, ok := pages[slug]
		if !ok || p == nil {
			return fmt.Errorf("content: страница %q отсутствует для языка %s", slug, lang)
		}
		if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Description) == "" {
			return fmt.Errorf("content: у страницы %q (%s) пустой заголовок или описание", slug, lang)
		}
		if err := checkImage(p.Image); err != nil {
			return fmt.Errorf("content: страница %q (%s): %w", slug, lang, err)
		}
		for i := range p.Sections {
			if err := checkImage(p.Sections[i].Image); err != nil {
				return fmt.Errorf("content: страница %q (%s), раздел %d: %w", slug, lang, i, err)
			}
		}
		p.Slug = slug
	}
	for slug := range pages {
		if !IsPage(slug) {
			return fmt.Errorf("content: неизвестная страница %q для языка %s", slug, lang)
		}
	}

	r.pages[lang] = pages
	return nil
}

// checkImage проверяет, что у иллюстрации есть адрес и альтернативный текст.
func checkImage(img *Image) error {
	if img == nil {
		return nil
	}
	if strings.TrimSpace(img.Alt) == "" {
		return fmt.Errorf("у изображения %q пустой alt", img.Src)
	}
	if !strings.HasPrefix(img.Src, "/static/") && !strings.HasPrefix(img.Src, "https://") {
		return fmt.Errorf("недопустимый адрес изображения %q", img.Src)
	}
	return nil
}

// Get возвращает страницу slug на языке lang.
func (r *Registry) Get(lang locale.Language, slug string) (*Page, bool) {
	p, ok := r.pages[lang][slug]
	return p, ok
}

// IsPage проверяет, что slug — известная информационная страница.
func IsPage(slug string) bool {
	for _, s := range Slugs {
		if s == slug {
			return true
		}
	}
	return false
}
