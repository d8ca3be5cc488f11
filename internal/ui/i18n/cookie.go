// cookie.go — выбор языка пользователя по cookie и Accept-Language.
// Используется redirect-middleware при EW_LOCALE_DETECT=true
// и обработчиком /set-language.
package i18n

import (
	"net/http"
	"time"

	"github.com/HumoX-ai/embassy-of-uae/internal/domain/locale"
)

// LangCookieName — имя cookie для хранения выбранного языка.
const LangCookieName = "lang"

// langCookieMaxAge — срок хранения выбранного языка (1 год).
const langCookieMaxAge = 365 * 24 * time.Hour

// DetectLanguage определяет предпочтительный язык запроса.
// Приоритет: cookie "lang" → Accept-Language → fallback.
func DetectLanguage(r *http.Request, fallback locale.Language) locale.Language {
	// 1. Cookie "lang" (пользователь явно выбрал язык)
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if lang, ok := locale.Parse(cookie.Value); ok {
			return lang
		}
	}

	// 2. Accept-Language заголовок
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return locale.Match(accept)
	}

	// 3. Default
	return fallback
}

// SetLanguageCookie сохраняет выбранный язык в cookie на 1 год.
func SetLanguageCookie(w http.ResponseWriter, lang locale.Language) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    lang.String(),
		Path:     "/",
		MaxAge:   int(langCookieMaxAge.Seconds()),
		HttpOnly: false, // JS переключателя языка читает и пишет cookie
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(langCookieMaxAge),
	})
}
