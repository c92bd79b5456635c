package seo

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"paragon-site/internal/content"
	"paragon-site/internal/logger"
)

// Handlers serve sitemap.xml, robots.txt e llms.txt a partir do conteúdo
// carregado. robots e llms são gerados uma vez; o sitemap usa a data do dia.
type Handlers struct {
	site   *content.Site
	now    func() time.Time
	log    *logger.Logger
	robots string
	llms   string
}

func NewHandlers(site *content.Site, log *logger.Logger, now func() time.Time) *Handlers {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Handlers{
		site:   site,
		now:    now,
		log:    log,
		robots: Robots(site.Business.URL),
		llms:   LLMs(site),
	}
}

func (h *Handlers) Sitemap(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if _, err := Sitemap(h.site, h.now()).WriteTo(&buf); err != nil {
		h.log.Error("sitemap encode failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *Handlers) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, h.robots)
}

func (h *Handlers) LLMs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = io.WriteString(w, h.llms)
}
