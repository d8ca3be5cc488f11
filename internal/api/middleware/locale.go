// locale.go — middleware языкового префикса.
// Страницы сайта живут под /{lng}/...; запросы без поддерживаемого префикса
// перенаправляются (307) на язык по умолчанию с сохранением query.
package middleware

import (
	"net/http"
	"strings"

	"github.com/HumoX-ai/embassy-of-uae/internal/domain/locale"
	"github.com/HumoX-ai/embassy-of-uae/internal/ui/i18n"
)

// localeBypassPrefixes — пути, которые не являются страницами и не получают префикс.
var localeBypassPrefixes = []string{
	"/static/",
	"/health/",
	"/api/",
}

// localeBypassPaths — служебные пути, обслуживаемые без префикса.
var localeBypassPaths = []string{
	"/metrics",
	"/sitemap.xml",
	"/robots.txt",
	"/manifest.webmanifest",
	"/set-language",
}

// LocaleRedirect возвращает middleware языкового префикса.
// defaultLang — язык перенаправления (EW_DEFAULT_LANG).
// detect — выбирать язык перенаправления по cookie и Accept-Language (EW_LOCALE_DETECT).
func LocaleRedirect(defaultLang locale.Language, detect bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path

			// Префикс проверяется первым: /en/news/rss.xml — страница языка, а не файл
			if lang, ok := locale.HasPrefix(path); ok {
				next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
				return
			}

			if skipLocale(path) {
				next.ServeHTTP(w, r)
				return
			}

			target := defaultLang
			if detect {
				target = i18n.DetectLanguage(r, defaultLang)
			}

			// В Location путь идёт в исходном кодировании
			http.Redirect(w, r, redirectTarget(target, r.URL.EscapedPath(), r.URL.RawQuery), http.StatusTemporaryRedirect)
		})
	}
}

// skipLocale сообщает, что путь не является страницей сайта.
func skipLocale(path string) bool {
	for _, p := range localeBypassPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	for _, p := range localeBypassPaths {
		if path == p {
			return true
		}
	}

	// Файлы: последний сегмент содержит точку (/favicon.ico, /logo.png)
	last := path[strings.LastIndexByte(path, '/')+1:]
	return strings.Contains(last, ".")
}

// redirectTarget строит адрес /{lng}{path}?{query}; path передаётся в экранированном виде.
func redirectTarget(lang locale.Language, path, rawQuery string) string {
	target := "/" + lang.String()
	if path != "/" && path != "" {
		if !strings.HasPrefix(path, "/") {
			target += "/"
		}
		target += path
	}
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	return target
}
