// htmltext.go — анализ HTML-содержимого статей (goquery):
// извлечение текста, выдержки, первого изображения и оценка времени чтения.
package service

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	// wordsPerMinute — скорость чтения для оценки времени.
	wordsPerMinute = 200
	// excerptLength — длина автоматической выдержки в символах.
	excerptLength = 160
)

// blockSelector — элементы, после которых в тексте нужен разделитель.
const blockSelector = "p, div, br, li, h1, h2, h3, h4, h5, h6, tr, td, blockquote, figcaption"

// parseHTML разбирает фрагмент HTML. Для пустой строки возвращает nil.
func parseHTML(fragment string) *goquery.Document {
	if strings.TrimSpace(fragment) == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil
	}
	return doc
}

// PlainText возвращает текст HTML-фрагмента с нормализованными пробелами.
// Содержимое script и style отбрасывается.
func PlainText(fragment string) string {
	doc := parseHTML(fragment)
	if doc == nil {
		return ""
	}
	doc.Find("script, style, noscript").Remove()
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Excerpt возвращает первые maxRunes символов текста фрагмента.
// Обрезка выполняется по границе слова с добавлением многоточия.
func Excerpt(fragment string, maxRunes int) string {
	text := PlainText(fragment)
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:maxRunes])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// ReadingMinutes оценивает время чтения фрагмента в минутах (минимум 1).
func ReadingMinutes(fragment string) int {
	words := len(strings.Fields(PlainText(fragment)))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// FirstImage возвращает src первого изображения с абсолютным http(s) URL или "".
func FirstImage(fragment string) string {
	doc := parseHTML(fragment)
	if doc == nil {
		return ""
	}
	var src string
	doc.Find("img[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		candidate, _ := s.Attr("src")
		u, err := url.Parse(strings.TrimSpace(candidate))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return true
		}
		src = u.String()
		return false
	})
	return src
}
