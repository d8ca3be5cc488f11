// schema.go — структурированные данные schema.org (JSON-LD).
// Значения выводятся в <script type="application/ld+json">; html/template
// сериализует их в JSON с экранированием для контекста script.
package seo

import (
	"time"

	"github.com/HumoX-ai/embassy-of-uae/internal/domain/locale"
)

const schemaContext = "https://schema.org"

// LogoPath — логотип организации.
const LogoPath = "/static/img/emblem.svg"

// Organization — schema.org/Organization.
type Organization struct {
	Context       string        `json:"@context"`
	Type          string        `json:"@type"`
	Name          string        `json:"name"`
	AlternateName string        `json:"alternateName,omitempty"`
	URL           string        `json:"url"`
	Logo          string        `json:"logo"`
	Email         string        `json:"email,omitempty"`
	ContactPoint  ContactPoint  `json:"contactPoint"`
	Address       PostalAddress `json:"address"`
}

// ContactPoint — schema.org/ContactPoint.
type ContactPoint struct {
	Type              string   `json:"@type"`
	ContactType       string   `json:"contactType"`
	Telephone         string   `json:"telephone,omitempty"`
	Email             string   `json:"email,omitempty"`
	AvailableLanguage []string `json:"availableLanguage"`
}

// PostalAddress — schema.org/PostalAddress.
type PostalAddress struct {
	Type            string `json:"@type"`
	AddressCountry  string `json:"addressCountry"`
	AddressLocality string `json:"addressLocality"`
}

// WebSite — schema.org/WebSite.
type WebSite struct {
	Context    string `json:"@context"`
	Type       string `json:"@type"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	InLanguage string `json:"inLanguage"`
}

// NewsArticle — schema.org/NewsArticle для страницы новости.
type NewsArticle struct {
	Context          string    `json:"@context"`
	Type             string    `json:"@type"`
	Headline         string    `json:"headline"`
	Description      string    `json:"description,omitempty"`
	Image            []string  `json:"image,omitempty"`
	DatePublished    string    `json:"datePublished,omitempty"`
	DateModified     string    `json:"dateModified,omitempty"`
	InLanguage       string    `json:"inLanguage"`
	MainEntityOfPage string    `json:"mainEntityOfPage"`
	Author           *Person   `json:"author,omitempty"`
	Publisher        Publisher `json:"publisher"`
}

// Person — автор статьи.
type Person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// Publisher — издатель статьи.
type Publisher struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// OrganizationSchema возвращает описание посольства.
func (s *Site) OrganizationSchema() Organization {
	languages := make([]string, 0, len(locale.Supported()))
	for _, l := range locale.Supported() {
		languages = append(languages, l.Tag().String())
	}

	return Organization{
		Context:       schemaContext,
		Type:          "Organization",
		Name:          s.tr.Translate(locale.English, "site.name"),
		AlternateName: s.tr.Translate(locale.Uzbek, "site.name"),
		URL:           s.baseURL,
		Logo:          s.URL(LogoPath),
		ContactPoint: ContactPoint{
			Type:              "ContactPoint",
			ContactType:       "customer service",
			Email:             s.tr.Translate(locale.English, "footer.email"),
			AvailableLanguage: languages,
		},
		Address: PostalAddress{
			Type:            "PostalAddress",
			AddressCountry:  "AE",
			AddressLocality: "Abu Dhabi",
		},
	}
}

// WebSiteSchema возвращает описание сайта на языке lang.
func (s *Site) WebSiteSchema(lang locale.Language) WebSite {
	return WebSite{
		Context:    schemaContext,
		Type:       "WebSite",
		Name:       s.Name(lang),
		URL:        s.PageURL(lang, ""),
		InLanguage: lang.String(),
	}
}

// ArticleInfo — данные новости для NewsArticle.
type ArticleInfo struct {
	Path        string
	Title       string
	Description string
	Image       string
	Author      string
	Published   time.Time
	Modified    time.Time
}

// NewsArticleSchema возвращает описание новости на языке lang.
func (s *Site) NewsArticleSchema(lang locale.Language, a ArticleInfo) NewsArticle {
	na := NewsArticle{
		Context:          schemaContext,
		Type:             "NewsArticle",
		Headline:         a.Title,
		Description:      a.Description,
		InLanguage:       lang.String(),
		MainEntityOfPage: s.PageURL(lang, a.Path),
		Publisher: Publisher{
			Type: "Organization",
			Name: s.Name(lang),
			Logo: s.URL(LogoPath),
		},
	}
	if a.Image != "" {
		na.Image = []string{s.URL(a.Image)}
	}
	if !a.Published.IsZero() {
		na.DatePublished = a.Published.UTC().Format(time.RFC3339)
	}
	if !a.Modified.IsZero() {
		na.DateModified = a.Modified.UTC().Format(time.RFC3339)
	}
	if a.Author != "" {
		na.Author = &Person{Type: "Person", Name: a.Author}
	}
	return na
}
