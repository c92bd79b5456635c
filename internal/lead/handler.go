package lead

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"paragon-site/internal/logger"
)

const failedMessage = "Failed to submit lead"

type successBody struct {
	Success bool `json:"success"`
}

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type validationBody struct {
	Success bool                `json:"success"`
	Errors  map[string][]string `json:"errors"`
}

// Handler atende POST /api/leads. Deve ser montado atrás de DecodeMiddleware
// (e do rate limit); sem campos no contexto ele mesmo decodifica o corpo.
type Handler struct {
	notifier  Notifier
	log       *logger.Logger
	obs       Observer
	validator *Validator
	sanitizer *Sanitizer
}

type Option func(*Handler)

func WithLogger(l *logger.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(h *Handler) {
		if o != nil {
			h.obs = o
		}
	}
}

func NewHandler(n Notifier, opts ...Option) *Handler {
	if n == nil {
		n = nopNotifier{}
	}
	h := &Handler{
		notifier:  n,
		log:       logger.Discard(),
		obs:       nopObserver{},
		validator: NewValidator(),
		sanitizer: NewSanitizer(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f, ok := FieldsFrom(r.Context())
	if !ok {
		var err error
		if f, err = Decode(r); err != nil {
			h.obs.ObserveLead(OutcomeMalformed)
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
			return
		}
	}

	// valida já limpo: um nome só de markup vira "" e cai no required.
	l := h.sanitizer.Lead(FromFields(f))
	if errs := h.validator.Validate(l); errs != nil {
		h.obs.ObserveLead(OutcomeInvalid)
		writeJSON(w, http.StatusBadRequest, validationBody{Errors: errs})
		return
	}

	h.notifier.Notify(r.Context(), l)
	h.obs.ObserveLead(OutcomeAccepted)
	h.log.Info("lead accepted", "source_page", l.SourcePage, "has_phone", l.Phone != "")

	writeJSON(w, http.StatusCreated, successBody{Success: true})
}

// Recover converte qualquer pânico da cadeia em 500 genérico.
func (h *Handler) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				h.log.ErrorContext(r.Context(), "lead submission error", "panic", rec, "stack", string(debug.Stack()))
				h.obs.ObserveLead(OutcomeFailed)
				writeJSON(w, http.StatusInternalServerError, errorBody{Error: failedMessage})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// Chain monta Recover → DecodeMiddleware → limiter → Handler. limiter pode
// ser nil.
func (h *Handler) Chain(limiter func(http.Handler) http.Handler) http.Handler {
	var next http.Handler = h
	if limiter != nil {
		next = limiter(next)
	}
	return h.Recover(h.DecodeMiddleware(next))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
