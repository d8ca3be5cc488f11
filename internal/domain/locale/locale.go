// Пакет locale — список поддерживаемых языков сайта (uz, en).
// Язык определяется префиксом пути: /uz/..., /en/...
// Язык по умолчанию — узбекский.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Language — код поддерживаемого языка интерфейса.
type Language string

const (
	// Uzbek — узбекский (язык по умолчанию).
	Uzbek Language = "uz"
	// English — английский.
	English Language = "en"
)

// supported — allow-list языков в порядке отображения в переключателе.
var supported = []Language{Uzbek, English}

// matcher — языковой matcher для Accept-Language.
// Первый тег — fallback при отсутствии совпадений.
var matcher = language.NewMatcher([]language.Tag{
	language.Uzbek,
	language.English,
})

// Supported возвращает копию списка поддерживаемых языков.
func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// Default возвращает язык по умолчанию.
func Default() Language {
	return Uzbek
}

// Parse разбирает код языка (регистр не важен).
// Возвращает (язык, true) только для языков из allow-list.
func Parse(s string) (Language, bool) {
	code := Language(strings.ToLower(strings.TrimSpace(s)))
	for _, l := range supported {
		if l == code {
			return l, true
		}
	}
	return "", false
}

// MustParse разбирает код языка, при неизвестном коде возвращает fallback.
func MustParse(s string, fallback Language) Language {
	if l, ok := Parse(s); ok {
		return l
	}
	return fallback
}

// Match определяет лучший поддерживаемый язык по заголовку Accept-Language.
// Если совпадений нет — возвращает язык по умолчанию.
func Match(acceptLanguage string) Language {
	if strings.TrimSpace(acceptLanguage) == "" {
		return Default()
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default()
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default()
	}
	return supported[idx]
}

// String возвращает код языка.
func (l Language) String() string {
	return string(l)
}

// Tag возвращает BCP 47 тег языка.
func (l Language) Tag() language.Tag {
	switch l {
	case English:
		return language.English
	default:
		return language.Uzbek
	}
}

// OGLocale возвращает локаль в формате Open Graph (uz_UZ, en_US).
func (l Language) OGLocale() string {
	switch l {
	case English:
		return "en_US"
	default:
		return "uz_UZ"
	}
}

// Label возвращает название языка на самом этом языке.
func (l Language) Label() string {
	switch l {
	case English:
		return "English"
	default:
		return "Oʻzbekcha"
	}
}

// SwapPrefix заменяет первый сегмент пути на код языка.
// "/uz/news/5" + en → "/en/news/5"; "/" или "" → "/en".
func SwapPrefix(path string, l Language) string {
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return "/" + l.String()
	}
	segments := strings.SplitN(trimmed, "/", 2)
	if len(segments) == 1 {
		return "/" + l.String()
	}
	return "/" + l.String() + "/" + segments[1]
}

// HasPrefix проверяет, начинается ли путь с префикса поддерживаемого языка.
// Возвращает язык и true для "/uz", "/uz/..." и т.п.
func HasPrefix(path string) (Language, bool) {
	for _, l := range supported {
		p := "/" + l.String()
		if path == p || strings.HasPrefix(path, p+"/") {
			return l, true
		}
	}
	return "", false
}
