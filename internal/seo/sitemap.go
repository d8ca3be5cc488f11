// sitemap.go — sitemap.xml: статические страницы × языки и новости × языки
// с альтернативными языковыми версиями (xhtml:link).
package seo

import (
	"encoding/xml"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/HumoX-ai/embassy-of-uae/internal/domain/locale"
	"github.com/HumoX-ai/embassy-of-uae/internal/domain/model"
)

// Частота изменений страниц.
const (
	ChangeDaily   = "daily"
	ChangeWeekly  = "weekly"
	ChangeMonthly = "monthly"
)

// Пространства имён sitemap.
const (
	sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"
	xhtmlNS   = "http://www.w3.org/1999/xhtml"
)

// NewsPath — путь ленты новостей без языкового префикса.
const NewsPath = "/news"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string      `xml:"loc"`
	LastMod    string      `xml:"lastmod,omitempty"`
	ChangeFreq string      `xml:"changefreq,omitempty"`
	Priority   string      `xml:"priority,omitempty"`
	Alternates []xhtmlLink `xml:"xhtml:link"`
}

type xhtmlLink struct {
	Rel      string `xml:"rel,attr"`
	HrefLang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// StaticPaths возвращает пути статических страниц без языкового префикса:
// главная, лента новостей и информационные страницы в алфавитном порядке.
func StaticPaths(slugs []string) []string {
	paths := make([]string, 0, len(slugs)+1)
	paths = append(paths, NewsPath)
	for _, slug := range slugs {
		paths = append(paths, "/"+slug)
	}
	sort.Strings(paths)
	return append([]string{""}, paths...)
}

// WriteSitemap записывает sitemap.xml.
// staticPaths — результат StaticPaths, articles — статьи из API (может быть пустым).
// now — lastmod статических страниц и статей без updatedAt.
func (s *Site) WriteSitemap(w io.Writer, staticPaths []string, articles []model.Article, now time.Time) error {
	langs := locale.Supported()
	set := urlSet{
		XMLNS: sitemapNS,
		XHTML: xhtmlNS,
		URLs:  make([]sitemapURL, 0, (len(staticPaths)+len(articles))*len(langs)),
	}

	for _, lang := range langs {
		for _, path := range staticPaths {
			changeFreq := ChangeWeekly
			if path == NewsPath {
				changeFreq = ChangeDaily
			}
			priority := 0.8
			if path == "" {
				priority = 1.0
			}
			set.URLs = append(set.URLs, s.sitemapEntry(lang, path, now, changeFreq, priority))
		}
	}

	for _, lang := range langs {
		for i := range articles {
			a := &articles[i]
			lastMod := a.UpdatedAt.Time
			if lastMod.IsZero() {
				lastMod = now
			}
			path := NewsPath + "/" + strconv.FormatInt(a.ID, 10)
			set.URLs = append(set.URLs, s.sitemapEntry(lang, path, lastMod, ChangeMonthly, 0.6))
		}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return err
	}
	return enc.Flush()
}

// sitemapEntry строит запись страницы path на языке lang.
func (s *Site) sitemapEntry(lang locale.Language, path string, lastMod time.Time, changeFreq string, priority float64) sitemapURL {
	entry := sitemapURL{
		Loc:        s.PageURL(lang, path),
		LastMod:    lastMod.UTC().Format(time.RFC3339),
		ChangeFreq: changeFreq,
		Priority:   strconv.FormatFloat(priority, 'f', 1, 64),
	}
	for _, l := range locale.Supported() {
		entry.Alternates = append(entry.Alternates, xhtmlLink{
			Rel:      "alternate",
			HrefLang: l.String(),
			Href:     s.PageURL(l, path),
		})
	}
	return entry
}
