// Package server monta as rotas HTTP do site.
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"paragon-site/internal/logger"
	"paragon-site/internal/metrics"
	"paragon-site/internal/schema"
	"paragon-site/internal/seo"
	"paragon-site/middleware/ratelimit"
)

// Options reúne as dependências já construídas pelo main.
type Options struct {
	// Leads é a cadeia completa do POST /api/leads (lead.Handler.Chain).
	Leads   http.Handler
	Graph   schema.Graph
	SEO     *seo.Handlers
	Metrics *metrics.Metrics
	Log     *logger.Logger

	ConcurrencyMax     int
	ConcurrencyTimeout time.Duration
}

// New devolve o handler raiz: logging → recover → concorrência → mux.
func New(opts Options) http.Handler {
	if opts.Log == nil {
		opts.Log = logger.Discard()
	}

	mux := http.NewServeMux()
	if opts.Leads != nil {
		mux.Handle("POST /api/leads", opts.Leads)
	}
	if opts.Graph != nil {
		mux.Handle("GET /jsonld/{page...}", jsonLDHandler(opts.Graph))
	}
	if opts.SEO != nil {
		mux.HandleFunc("GET /sitemap.xml", opts.SEO.Sitemap)
		mux.HandleFunc("GET /robots.txt", opts.SEO.Robots)
		mux.HandleFunc("GET /llms.txt", opts.SEO.LLMs)
	}
	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics.Handler())
	}
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok\n")
	})

	h := http.Handler(mux)
	h = ratelimit.ConcurrencyMiddleware(ratelimit.ConcurrencyOptions{
		Max:            opts.ConcurrencyMax,
		RejectStatus:   http.StatusServiceUnavailable,
		AcquireTimeout: opts.ConcurrencyTimeout,
	})(h)
	h = recoverMiddleware(opts.Log)(h)
	h = requestLog(opts.Log, opts.Metrics)(h)
	return h
}

// jsonLDHandler serve os documentos de uma página como array JSON.
// "/jsonld/" sem página devolve a home.
func jsonLDHandler(gr schema.Graph) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.PathValue("page")
		if page == "" {
			page = schema.PageHome
		}
		docs, ok := gr[page]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/ld+json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		_ = enc.Encode(docs)
	})
}
