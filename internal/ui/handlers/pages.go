// Пакет handlers — HTTP-обработчики страниц сайта.
package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/HumoX-ai/embassy-of-uae/internal/domain/locale"
	"github.com/HumoX-ai/embassy-of-uae/internal/seo"
	"github.com/HumoX-ai/embassy-of-uae/internal/ui/content"
	"github.com/HumoX-ai/embassy-of-uae/internal/ui/i18n"
	"github.com/HumoX-ai/embassy-of-uae/internal/ui/pages"
)

// Renderer — общая часть обработчиков страниц: каркас, метаданные и рендеринг.
type Renderer struct {
	site   *seo.Site
	tr     seo.Translator
	now    func() time.Time
	logger *slog.Logger
}

// NewRenderer создаёт Renderer.
func NewRenderer(site *seo.Site, tr seo.Translator, logger *slog.Logger) *Renderer {
	return &Renderer{
		site:   site,
		tr:     tr,
		now:    time.Now,
		logger: logger.With(slog.String("component", "ui")),
	}
}

// layout собирает каркас страницы для запроса r.
// schemas добавляются к JSON-LD Organization и WebSite.
func (rn *Renderer) layout(r *http.Request, lang locale.Language, page seo.Page, schemas ...any) pages.Layout {
	all := make([]any, 0, 2+len(schemas))
	all = append(all, rn.site.OrganizationSchema(), rn.site.WebSiteSchema(lang))
	all = append(all, schemas...)

	return pages.Layout{
		Lang:       lang,
		Path:       r.URL.Path,
		Meta:       rn.site.Metadata(lang, page),
		Schemas:    all,
		Menu:       content.Menu(),
		QuickLinks: content.QuickLinks(),
		Year:       rn.now().Year(),
	}
}

// render записывает страницу с кодом status.
func (rn *Renderer) render(w http.ResponseWriter, r *http.Request, status int, name string, c templ.Component) {
	// Страница собирается целиком до отправки заголовков: при ошибке клиент получает 500, а не обрывок
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		rn.logger.Error("Ошибка рендеринга страницы",
			slog.String("page", name),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Ошибка рендеринга страницы", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// NotFound отображает страницу 404 на языке запроса.
func (rn *Renderer) NotFound(w http.ResponseWriter, r *http.Request) {
	lang := i18n.LangFromContext(r.Context())
	data := pages.NotFoundData{
		Layout: rn.layout(r, lang, seo.Page{
			Path:    "",
			Title:   rn.tr.Translate(lang, "notfound.title"),
			NoIndex: true,
		}),
	}
	rn.render(w, r, http.StatusNotFound, "not_found", pages.NotFound(data))
}

// PagesHandler — информационные страницы (about, contact, ...).
type PagesHandler struct {
	*Renderer
	registry *content.Registry
}

// NewPagesHandler создаёт PagesHandler.
func NewPagesHandler(rn *Renderer, registry *content.Registry, logger *slog.Logger) *PagesHandler {
	r := *rn
	r.logger = logger.With(slog.String("component", "ui.pages"))
	return &PagesHandler{Renderer: &r, registry: registry}
}

// HandleContent обрабатывает GET /{lng}/{slug}. Неизвестная страница — 404.
func (h *PagesHandler) HandleContent(w http.ResponseWriter, r *http.Request) {
	lang := i18n.LangFromContext(r.Context())
	slug := chi.URLParam(r, "slug")

	page, ok := h.registry.Get(lang, slug)
	if !ok {
		h.NotFound(w, r)
		return
	}

	meta := seo.Page{
		Path:        "/" + slug,
		Title:       page.HeadTitle(),
		Description: page.Description,
		Keywords:    page.Keywords,
	}
	if page.Image != nil {
		meta.Image = page.Image.Src
		meta.ImageAlt = page.Image.Alt
	}

	data := pages.ContentData{
		Layout: h.layout(r, lang, meta),
		Page:   page,
	}
	h.render(w, r, http.StatusOK, "content", pages.Content(data))
}
