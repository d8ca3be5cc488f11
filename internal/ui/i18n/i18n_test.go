package i18n

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/HumoX-ai/embassy-of-uae/internal/domain/locale"
)

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// loadedBundle возвращает Bundle со встроенными каталогами.
func loadedBundle(t *testing.T) *Bundle {
	t.Helper()
	b := NewBundle(testLogger())
	if err := LoadFromEmbedFS(b, testLogger()); err != nil {
		t.Fatalf("LoadFromEmbedFS() вернул ошибку: %v", err)
	}
	return b
}

func TestTranslate(t *testing.T) {
	b := NewBundle(nil)
	if err := b.LoadMessages(locale.Uzbek, []byte(`{"greeting": "Salom", "only_uz": "Faqat"}`)); err != nil {
		t.Fatal(err)
	}
	if err := b.LoadMessages(locale.English, []byte(`{"greeting": "Hello"}`)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		lang locale.Language
		key  string
		want string
	}{
		{"узбекский", locale.Uzbek, "greeting", "Salom"},
		{"английский", locale.English, "greeting", "Hello"},
		{"fallback на язык по умолчанию", locale.English, "only_uz", "Faqat"},
		{"неизвестный ключ", locale.English, "missing", "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Translate(tt.lang, tt.key); got != tt.want {
				t.Errorf("Translate(%s, %q) = %q, ожидается %q", tt.lang, tt.key, got, tt.want)
			}
		})
	}
}

func TestLoadMessages_InvalidJSON(t *testing.T) {
	b := NewBundle(nil)
	if err := b.LoadMessages(locale.Uzbek, []byte(`{"a":`)); err == nil {
		t.Error("ожидалась ошибка парсинга")
	}
}

// TestCatalogsHaveSameKeys проверяет, что каталоги uz и en содержат одинаковые ключи.
func TestCatalogsHaveSameKeys(t *testing.T) {
	b := loadedBundle(t)

	uz := b.Keys(locale.Uzbek)
	en := b.Keys(locale.English)
	sort.Strings(uz)
	sort.Strings(en)

	inUz := make(map[string]bool, len(uz))
	for _, k := range uz {
		inUz[k] = true
	}
	for _, k := range en {
		if !inUz[k] {
			t.Errorf("ключ %q есть в en, но отсутствует в uz", k)
		}
		delete(inUz, k)
	}
	for k := range inUz {
		t.Errorf("ключ %q есть в uz, но отсутствует в en", k)
	}
}

func TestTranslatedStringsPerLanguage(t *testing.T) {
	b := loadedBundle(t)

	if got := b.Translate(locale.Uzbek, "news.empty"); got != "Hozircha yangiliklar mavjud emas" {
		t.Errorf("uz news.empty = %q", got)
	}
	if got := b.Translate(locale.English, "news.empty"); got != "No news available at the moment" {
		t.Errorf("en news.empty = %q", got)
	}
	if got := b.Translate(locale.Uzbek, "news.related"); got != "O'xshash yangiliklar" {
		t.Errorf("uz news.related = %q", got)
	}
	if got := b.Translatef(locale.English, "news.page_of", 2, 5); got != "Page 2 of 5" {
		t.Errorf("en news.page_of = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	b := loadedBundle(t)
	d := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)

	if got := b.FormatDate(locale.English, d); got != "March 5, 2025" {
		t.Errorf("FormatDate(en) = %q, ожидается %q", got, "March 5, 2025")
	}
	if got := b.FormatDate(locale.Uzbek, d); got != "5-mart, 2025" {
		t.Errorf("FormatDate(uz) = %q, ожидается %q", got, "5-mart, 2025")
	}
	if got := b.FormatDate(locale.English, time.Time{}); got != "" {
		t.Errorf("FormatDate(zero) = %q, ожидается пустая строка", got)
	}
}

func TestContextLanguage(t *testing.T) {
	ctx := context.Background()
	if got := LangFromContext(ctx); got != locale.Uzbek {
		t.Errorf("LangFromContext(пустой) = %q, ожидается uz", got)
	}

	ctx = WithLang(ctx, locale.English)
	if got := LangFromContext(ctx); got != locale.English {
		t.Errorf("LangFromContext() = %q, ожидается en", got)
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		accept string
		want   locale.Language
	}{
		{"cookie приоритетнее заголовка", "en", "uz", locale.English},
		{"некорректная cookie", "ru", "en-GB", locale.English},
		{"только Accept-Language", "", "en-US,en;q=0.9", locale.English},
		{"ничего — fallback", "", "", locale.Uzbek},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: LangCookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				r.Header.Set("Accept-Language", tt.accept)
			}
			if got := DetectLanguage(r, locale.Uzbek); got != tt.want {
				t.Errorf("DetectLanguage() = %q, ожидается %q", got, tt.want)
			}
		})
	}
}

func TestSetLanguageCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetLanguageCookie(rec, locale.English)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, ожидается 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != LangCookieName || c.Value != "en" || c.Path != "/" {
		t.Errorf("cookie = %+v", c)
	}
	if c.MaxAge != 365*24*60*60 {
		t.Errorf("MaxAge = %d, ожидается 1 год", c.MaxAge)
	}
}
