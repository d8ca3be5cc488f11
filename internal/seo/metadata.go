// Пакет seo — метаданные страниц (title, canonical, hreflang, Open Graph, Twitter),
// JSON-LD, sitemap.xml, robots.txt, web manifest и RSS-лента новостей.
package seo

import (
	"strings"
	"time"

	"github.com/HumoX-ai/embassy-of-uae/internal/domain/locale"
)

// Размер изображений Open Graph.
const (
	OGImageWidth  = 1200
	OGImageHeight = 630
)

// baseKeywords — ключевые слова всех страниц.
var baseKeywords = []string{"Uzbekistan Embassy", "UAE", "Embassy Services"}

// Translator — источник переводов (i18n.Bundle).
type Translator interface {
	Translate(lang locale.Language, key string) string
}

// Site — параметры сайта, общие для всех SEO-артефактов.
type Site struct {
	baseURL      string
	tr           Translator
	verification string
}

// NewSite создаёт SEO-контекст сайта.
// baseURL — абсолютный адрес без завершающего "/" (EW_BASE_URL).
// verification — код подтверждения Google Search Console (может быть пустым).
func NewSite(baseURL string, tr Translator, verification string) *Site {
	return &Site{
		baseURL:      strings.TrimRight(baseURL, "/"),
		tr:           tr,
		verification: verification,
	}
}

// BaseURL возвращает абсолютный адрес сайта.
func (s *Site) BaseURL() string {
	return s.baseURL
}

// URL превращает путь сайта в абсолютный адрес. Абсолютные URL возвращаются как есть.
func (s *Site) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.baseURL + path
}

// PageURL возвращает абсолютный адрес страницы на языке lang.
// path — путь без языкового префикса ("" для главной, "/about", "/news/5").
func (s *Site) PageURL(lang locale.Language, path string) string {
	return s.baseURL + "/" + lang.String() + path
}

// Name возвращает короткое название сайта на языке lang.
func (s *Site) Name(lang locale.Language) string {
	return s.tr.Translate(lang, "site.name_short")
}

// Page — описание страницы для построения метаданных.
type Page struct {
	// Path — путь без языкового префикса
	Path string
	// Title — заголовок страницы; пустой — заголовок главной без шаблона
	Title       string
	Description string
	Keywords    []string
	// Type — тип Open Graph: "website" (по умолчанию) или "article"
	Type      string
	Image     string
	ImageAlt  string
	Published time.Time
	Modified  time.Time
	Author    string
	// NoIndex — запрет индексации (страница 404)
	NoIndex bool
}

// Alternate — языковая версия страницы (link rel="alternate" hreflang).
type Alternate struct {
	HrefLang string
	URL      string
}

// Image — изображение Open Graph.
type Image struct {
	URL    string
	Alt    string
	Width  int
	Height int
}

// OpenGraph — свойства og:*.
type OpenGraph struct {
	Title            string
	Description      string
	URL              string
	SiteName         string
	Locale           string
	AlternateLocales []string
	Type             string
	Images           []Image
	PublishedTime    string
	ModifiedTime     string
	Author           string
}

// Twitter — свойства twitter:*.
type Twitter struct {
	Card        string
	Title       string
	Description string
	Images      []string
}

// Metadata — метаданные страницы для <head>.
type Metadata struct {
	Lang                   locale.Language
	Title                  string
	Description            string
	Keywords               string
	Canonical              string
	Alternates             []Alternate
	Robots                 string
	GoogleSiteVerification string
	OG                     OpenGraph
	Twitter                Twitter
}

// Metadata строит метаданные страницы p на языке lang.
// Заголовок формируется по шаблону "{страница} | {сайт}".
func (s *Site) Metadata(lang locale.Language, p Page) Metadata {
	title := s.tr.Translate(lang, "meta.home.title")
	if p.Title != "" {
		title = p.Title + " | " + s.Name(lang)
	}
	description := p.Description
	if description == "" {
		description = s.tr.Translate(lang, "site.description")
	}
	ogType := p.Type
	if ogType == "" {
		ogType = "website"
	}

	canonical := s.PageURL(lang, p.Path)

	m := Metadata{
		Lang:                   lang,
		Title:                  title,
		Description:            description,
		Keywords:               strings.Join(mergeKeywords(baseKeywords, p.Keywords), ", "),
		Canonical:              canonical,
		Alternates:             s.alternates(p.Path),
		Robots:                 "index, follow, max-image-preview:large",
		GoogleSiteVerification: s.verification,
		OG: OpenGraph{
			Title:       title,
			Description: description,
			URL:         canonical,
			SiteName:    s.Name(lang),
			Locale:      lang.OGLocale(),
			Type:        ogType,
			Author:      p.Author,
		},
		Twitter: Twitter{
			Card:        "summary_large_image",
			Title:       title,
			Description: description,
		},
	}

	for _, l := range locale.Supported() {
		if l != lang {
			m.OG.AlternateLocales = append(m.OG.AlternateLocales, l.OGLocale())
		}
	}

	if p.Image != "" {
		img := s.URL(p.Image)
		alt := p.ImageAlt
		if alt == "" {
			alt = p.Title
		}
		m.OG.Images = []Image{{URL: img, Alt: alt, Width: OGImageWidth, Height: OGImageHeight}}
		m.Twitter.Images = []string{img}
	}
	if !p.Published.IsZero() {
		m.OG.PublishedTime = p.Published.UTC().Format(time.RFC3339)
	}
	if !p.Modified.IsZero() {
		m.OG.ModifiedTime = p.Modified.UTC().Format(time.RFC3339)
	}
	if p.NoIndex {
		m.Robots = "noindex, follow"
	}
	return m
}

// alternates возвращает ссылки на все языковые версии и x-default.
func (s *Site) alternates(path string) []Alternate {
	alts := make([]Alternate, 0, len(locale.Supported())+1)
	for _, l := range locale.Supported() {
		alts = append(alts, Alternate{HrefLang: l.String(), URL: s.PageURL(l, path)})
	}
	return append(alts, Alternate{HrefLang: "x-default", URL: s.PageURL(locale.Default(), path)})
}

// mergeKeywords объединяет списки без повторов (без учёта регистра).
func mergeKeywords(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, k := range list {
			k = strings.TrimSpace(k)
			key := strings.ToLower(k)
			if k == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}

// SplitKeywords разбирает строку ключевых слов через запятую.
func SplitKeywords(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
