package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "/"},
		{"/health/live", "/health/live"},
		{"/metrics", "/metrics"},
		{"/sitemap.xml", "/sitemap.xml"},
		{"/static/css/site.css", "/static/*"},
		{"/uz", "/{lng}"},
		{"/en/", "/{lng}"},
		{"/en/news", "/{lng}/news"},
		{"/uz/news/123", "/{lng}/news/{id}"},
		{"/uz/news/rss.xml", "/{lng}/news/rss.xml"},
		{"/en/about", "/{lng}/{slug}"},
		{"/en/national-holidays", "/{lng}/{slug}"},
		{"/en/unknown-page", "other"},
		{"/fr/about", "other"},
		{"/wp-login.php", "other"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, ожидается %q", tt.path, got, tt.want)
		}
	}
}

func TestMetricsMiddleware_Status(t *testing.T) {
	handler := MetricsMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uz", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("статус = %d, ожидается %d", rec.Code, http.StatusTeapot)
	}
}

func TestMetricsResponseWriter_Unwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newMetricsResponseWriter(rec)
	if rw.Unwrap() != rec {
		t.Error("Unwrap должен возвращать исходный ResponseWriter")
	}
}
