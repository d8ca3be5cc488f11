// rss.go — RSS 2.0 лента последних новостей на одном языке.
package seo

import (
	"encoding/xml"
	"io"
	"time"

	"github.com/HumoX-ai/embassy-of-uae/internal/domain/locale"
	"github.com/HumoX-ai/embassy-of-uae/internal/domain/model"
)

// RSSPath — путь ленты без языкового префикса.
const RSSPath = NewsPath + "/rss.xml"

const atomNS = "http://www.w3.org/2005/Atom"

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Atom    string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate"`
	AtomLink      atomLink  `xml:"atom:link"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	GUID        rssGUID `xml:"guid"`
	PubDate     string  `xml:"pubDate,omitempty"`
	Description string  `xml:"description,omitempty"`
	Category    string  `xml:"category,omitempty"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// WriteRSS записывает RSS-ленту новостей items на языке lang.
func (s *Site) WriteRSS(w io.Writer, lang locale.Language, items []model.NewsItem, now time.Time) error {
	feed := rssFeed{
		Version: "2.0",
		Atom:    atomNS,
		Channel: rssChannel{
			Title:         s.tr.Translate(lang, "news.title") + " | " + s.Name(lang),
			Link:          s.PageURL(lang, NewsPath),
			Description:   s.tr.Translate(lang, "news.rss_description"),
			Language:      lang.String(),
			LastBuildDate: now.UTC().Format(time.RFC1123Z),
			AtomLink: atomLink{
				Href: s.PageURL(lang, RSSPath),
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Items: make([]rssItem, 0, len(items)),
		},
	}

	for _, it := range items {
		link := s.PageURL(lang, NewsPath+"/"+it.ID)
		item := rssItem{
			Title:       it.Title,
			Link:        link,
			GUID:        rssGUID{IsPermaLink: true, Value: link},
			Description: it.Excerpt,
			Category:    it.Category,
		}
		if !it.Date.IsZero() {
			item.PubDate = it.Date.UTC().Format(time.RFC1123Z)
		}
		feed.Channel.Items = append(feed.Channel.Items, item)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(feed); err != nil {
		return err
	}
	return enc.Flush()
}
