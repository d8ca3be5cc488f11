// manifest.go — web app manifest (/manifest.webmanifest).
package seo

import (
	"github.com/HumoX-ai/embassy-of-uae/internal/domain/locale"
)

// Цвета приложения.
const (
	manifestBackground = "#ffffff"
	manifestTheme      = "#1e40af"
)

// manifestShortName — название на домашнем экране.
const manifestShortName = "UZ Embassy UAE"

// Manifest — web app manifest.
type Manifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Lang            string         `json:"lang"`
	Icons           []ManifestIcon `json:"icons"`
}

// ManifestIcon — иконка приложения.
type ManifestIcon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type"`
	Purpose string `json:"purpose,omitempty"`
}

// Manifest возвращает manifest сайта (на английском, стартовая страница /en).
func (s *Site) Manifest() Manifest {
	return Manifest{
		Name:            s.Name(locale.English),
		ShortName:       manifestShortName,
		Description:     s.tr.Translate(locale.English, "site.description"),
		StartURL:        "/" + locale.English.String(),
		Display:         "standalone",
		BackgroundColor: manifestBackground,
		ThemeColor:      manifestTheme,
		Lang:            locale.English.String(),
		Icons: []ManifestIcon{
			{Src: LogoPath, Sizes: "any", Type: "image/svg+xml", Purpose: "any"},
		},
	}
}
