// language.go — серверное переключение языка (запасной вариант без JS).
package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/HumoX-ai/embassy-of-uae/internal/domain/locale"
	"github.com/HumoX-ai/embassy-of-uae/internal/ui/i18n"
)

// HandleSetLanguage обрабатывает GET/POST /set-language?lang=en&path=/uz/about.
// Устанавливает cookie "lang" и перенаправляет (303) на тот же путь
// с новым языковым префиксом. Неизвестный язык — язык по умолчанию,
// нелокальный path — главная.
func HandleSetLanguage(w http.ResponseWriter, r *http.Request) {
	lang := locale.MustParse(r.FormValue("lang"), locale.Default())

	i18n.SetLanguageCookie(w, lang)
	http.Redirect(w, r, switchTarget(r.FormValue("path"), lang), http.StatusSeeOther)
}

// switchTarget возвращает путь path на языке lang с сохранением query.
func switchTarget(path string, lang locale.Language) string {
	if !isLocalPath(path) {
		return "/" + lang.String()
	}
	u, err := url.Parse(path)
	if err != nil {
		return "/" + lang.String()
	}

	target := "/" + lang.String() + strings.TrimSuffix(u.Path, "/")
	if _, ok := locale.HasPrefix(u.Path); ok {
		target = locale.SwapPrefix(u.Path, lang)
	}
	if u.RawQuery != "" {
		target += "?" + u.RawQuery
	}
	return target
}

// isLocalPath — путь внутри сайта: начинается с "/", но не "//" и не "/\".
func isLocalPath(path string) bool {
	if path == "" || path[0] != '/' {
		return false
	}
	return !strings.HasPrefix(path, "//") && !strings.HasPrefix(path, "/\\")
}
