package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HumoX-ai/embassy-of-uae/internal/domain/locale"
	"github.com/HumoX-ai/embassy-of-uae/internal/ui/i18n"
)

// langEcho — обработчик, возвращающий язык из контекста.
var langEcho = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(i18n.LangFromContext(r.Context()).String()))
})

func TestLocaleRedirect(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		wantStatus   int
		wantLocation string
		wantBody     string
	}{
		{"корень", "/", http.StatusTemporaryRedirect, "/uz", ""},
		{"страница без префикса", "/about", http.StatusTemporaryRedirect, "/uz/about", ""},
		{"query сохраняется", "/news?page=2", http.StatusTemporaryRedirect, "/uz/news?page=2", ""},
		{"неизвестный префикс не удаляется", "/fr/about", http.StatusTemporaryRedirect, "/uz/fr/about", ""},
		{"uzbekistan не префикс uz", "/uzbekistan", http.StatusTemporaryRedirect, "/uz/uzbekistan", ""},
		{"экранированный слэш сохраняется", "/a%2Fb", http.StatusTemporaryRedirect, "/uz/a%2Fb", ""},
		{"экранированный пробел и query", "/news%20x?page=2", http.StatusTemporaryRedirect, "/uz/news%20x?page=2", ""},
		{"экранированный вопрос не становится query", "/%3Fq", http.StatusTemporaryRedirect, "/uz/%3Fq", ""},
		{"uz", "/uz", http.StatusOK, "", "uz"},
		{"en страница", "/en/about", http.StatusOK, "", "en"},
		{"en новость", "/en/news/42", http.StatusOK, "", "en"},
		{"en RSS", "/en/news/rss.xml", http.StatusOK, "", "en"},
		{"статика", "/static/css/site.css", http.StatusOK, "", "uz"},
		{"health", "/health/live", http.StatusOK, "", "uz"},
		{"metrics", "/metrics", http.StatusOK, "", "uz"},
		{"sitemap", "/sitemap.xml", http.StatusOK, "", "uz"},
		{"robots", "/robots.txt", http.StatusOK, "", "uz"},
		{"manifest", "/manifest.webmanifest", http.StatusOK, "", "uz"},
		{"set-language", "/set-language", http.StatusOK, "", "uz"},
		{"api", "/api/anything", http.StatusOK, "", "uz"},
		{"файл с точкой", "/favicon.ico", http.StatusOK, "", "uz"},
	}

	handler := LocaleRedirect(locale.Uzbek, false)(langEcho)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("статус = %d, ожидается %d", rec.Code, tt.wantStatus)
			}
			if tt.wantLocation != "" {
				if loc := rec.Header().Get("Location"); loc != tt.wantLocation {
					t.Errorf("Location = %q, ожидается %q", loc, tt.wantLocation)
				}
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("язык в контексте = %q, ожидается %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestLocaleRedirect_Detect(t *testing.T) {
	tests := []struct {
		name         string
		cookie       string
		accept       string
		detect       bool
		wantLocation string
	}{
		{"без определения Accept-Language игнорируется", "", "en-US,en;q=0.9", false, "/uz/about"},
		{"Accept-Language", "", "en-US,en;q=0.9", true, "/en/about"},
		{"cookie важнее Accept-Language", "uz", "en", true, "/uz/about"},
		{"cookie en", "en", "", true, "/en/about"},
		{"неподдерживаемый язык", "", "fr-FR", true, "/uz/about"},
		{"пусто", "", "", true, "/uz/about"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := LocaleRedirect(locale.Uzbek, tt.detect)(langEcho)

			req := httptest.NewRequest(http.MethodGet, "/about", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: i18n.LangCookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusTemporaryRedirect {
				t.Fatalf("статус = %d, ожидается 307", rec.Code)
			}
			if loc := rec.Header().Get("Location"); loc != tt.wantLocation {
				t.Errorf("Location = %q, ожидается %q", loc, tt.wantLocation)
			}
		})
	}
}

func TestLocaleRedirect_DefaultEnglish(t *testing.T) {
	handler := LocaleRedirect(locale.English, false)(langEcho)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/en" {
		t.Errorf("Location = %q, ожидается /en", loc)
	}
}
