// menu.go — структура навигационного меню (шапка, мобильное меню, футер).
package content

import (
	"strings"

	"github.com/HumoX-ai/embassy-of-uae/internal/domain/locale"
)

// MenuItem — пункт меню. Href пустой у групп с подпунктами.
// Внутренние ссылки задаются без языкового префикса ("/about"),
// внешние — абсолютным URL.
type MenuItem struct {
	// LabelKey — ключ i18n-каталога
	LabelKey string
	Href     string
	Children []MenuItem
}

// menu — полное меню сайта.
var menu = []MenuItem{
	{LabelKey: "nav.home", Href: "/"},
	{LabelKey: "nav.president", Children: []MenuItem{
		{LabelKey: "nav.president_title", Href: "/president"},
		{LabelKey: "nav.president_news", Href: "https://president.uz/en"},
	}},
	{LabelKey: "nav.uzbekistan", Children: []MenuItem{
		{LabelKey: "nav.general_info", Href: "/uzbekistan"},
		{LabelKey: "nav.parliament", Href: "/parliament"},
		{LabelKey: "nav.state_symbols", Href: "/state-symbols"},
		{LabelKey: "nav.national_holidays", Href: "/national-holidays"},
		{LabelKey: "nav.uzbek_culture", Href: "/uzbek-culture"},
		{LabelKey: "nav.tourism_potential", Href: "/tourism-potential"},
	}},
	{LabelKey: "nav.investment", Children: []MenuItem{
		{LabelKey: "nav.invest_in_uzbekistan", Href: "https://invest.gov.uz/uzipa/?lang=en"},
		{LabelKey: "nav.investment_potential", Href: "https://invest.gov.uz/investor-taxonomy/potential/"},
	}},
	{LabelKey: "nav.embassy", Children: []MenuItem{
		{LabelKey: "nav.ambassador_message", Href: "/ambassador-message"},
		{LabelKey: "nav.about_embassy", Href: "/about"},
		{LabelKey: "nav.contact", Href: "/contact"},
	}},
	{LabelKey: "nav.consular", Children: []MenuItem{
		{LabelKey: "nav.info_for_foreigners", Href: "/info-for-foreigners"},
		{LabelKey: "nav.return_certificate", Href: "/return-certificate-procedure"},
		{LabelKey: "nav.temporary_registration", Href: "/temporary-consular-registration"},
		{LabelKey: "nav.permanent_registration", Href: "/permanent-consular-registration"},
		{LabelKey: "nav.biometric_passport", Href: "/biometric-passport-issuance"},
		{LabelKey: "nav.birth_certificate", Href: "/birth-certificate-paternity"},
		{LabelKey: "nav.evisa", Href: "https://e-visa.gov.uz/main"},
	}},
	{LabelKey: "nav.news", Href: "/news"},
	{LabelKey: "nav.tourism", Children: []MenuItem{
		{LabelKey: "nav.welcome_to_uzbekistan", Href: "https://uzbekistan.travel/en/"},
	}},
}

// quickLinks — ссылки в футере.
var quickLinks = []MenuItem{
	{LabelKey: "nav.about_embassy", Href: "/about"},
	{LabelKey: "nav.news", Href: "/news"},
	{LabelKey: "nav.consular", Href: "/info-for-foreigners"},
	{LabelKey: "nav.contact", Href: "/contact"},
}

// Menu возвращает меню сайта.
func Menu() []MenuItem {
	return menu
}

// QuickLinks возвращает ссылки футера.
func QuickLinks() []MenuItem {
	return quickLinks
}

// IsExternal сообщает, ведёт ли пункт на внешний сайт.
func (m MenuItem) IsExternal() bool {
	return strings.HasPrefix(m.Href, "http://") || strings.HasPrefix(m.Href, "https://")
}

// URL возвращает адрес пункта с языковым префиксом для внутренних ссылок.
func (m MenuItem) URL(lang locale.Language) string {
	if m.Href == "" || m.IsExternal() {
		return m.Href
	}
	if m.Href == "/" {
		return "/" + lang.String()
	}
	return "/" + lang.String() + m.Href
}

// Active сообщает, соответствует ли пункт (или один из подпунктов) текущему пути.
func (m MenuItem) Active(lang locale.Language, path string) bool {
	if m.Href != "" && !m.IsExternal() {
		u := m.URL(lang)
		if path == u || (m.Href != "/" && strings.HasPrefix(path, u+"/")) {
			return true
		}
	}
	for _, c := range m.Children {
		if c.Active(lang, path) {
			return true
		}
	}
	return false
}
