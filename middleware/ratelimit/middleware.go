package ratelimit

import (
	"net/http"
	"strings"
	"time"

	"paragon-site/middleware/ratelimit/application"
	"paragon-site/middleware/ratelimit/domain"
)

const DefaultRejectMessage = "Too many requests. Please try again later."

type KeyFunc func(r *http.Request) string

type Options struct {
	Ledger        domain.Ledger
	Limit         domain.Limit
	Stats         domain.StatsStore
	KeyFn         KeyFunc
	RejectStatus  int
	RetryAfter    time.Duration
	RejectMessage string
}

type rejectBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ClientIP identifica o cliente: primeiro IP do X-Forwarded-For, depois
// X-Real-IP, senão "unknown". Todos os clientes sem header dividem a mesma quota.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return "unknown"
}

func Middleware(opts Options) func(next http.Handler) http.Handler {
	if opts.RejectStatus == 0 {
		opts.RejectStatus = http.StatusTooManyRequests
	}
	if opts.RejectMessage == "" {
		opts.RejectMessage = DefaultRejectMessage
	}
	if opts.KeyFn == nil {
		opts.KeyFn = ClientIP
	}

	svc := application.Service{
		Ledger:     opts.Ledger,
		Limit:      opts.Limit,
		RetryAfter: opts.RetryAfter,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := opts.KeyFn(r)

			dec := svc.Decide(domain.Key(key))
			if opts.Stats != nil {
				_ = opts.Stats.Record(r.Context(), domain.StatsEvent{
					Key:       domain.Key(key),
					Allowed:   dec.Allowed,
					Remaining: dec.Remaining,
					Method:    r.Method,
					Path:      r.URL.Path,
					At:        time.Now(),
				})
			}

			w.Header().Set("X-RateLimit-Limit", formatInt(dec.Limit))
			if !dec.Allowed {
				w.Header().Set("Retry-After", formatInt(retryAfterSeconds(dec.RetryAfter)))
				w.Header().Set("X-RateLimit-Remaining", "0")
				writeJSON(w, opts.RejectStatus, rejectBody{Success: false, Error: opts.RejectMessage})
				return
			}

			w.Header().Set("X-RateLimit-Remaining", formatInt(dec.Remaining))
			next.ServeHTTP(w, r)
		})
	}
}
