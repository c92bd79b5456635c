package lead_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"paragon-site/internal/lead"
	"paragon-site/internal/lead/mock"
	"paragon-site/middleware/ratelimit"
	"paragon-site/middleware/ratelimit/infra"
)

func jsonRequest(t *testing.T, ip string, body map[string]any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(string(raw)))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("X-Forwarded-For", ip)
	return r
}

func newChain(n lead.Notifier, opts ...lead.Option) (http.Handler, *infra.Store) {
	store := infra.NewStore()
	h := lead.NewHandler(n, opts...)
	return h.Chain(ratelimit.Middleware(ratelimit.Options{Ledger: store})), store
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestLead_AcceptedIsForwarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := mock.NewMockNotifier(ctrl)
	n.EXPECT().Notify(gomock.Any(), lead.Lead{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "651-555-0100",
		Interest: "Inground pool",
		Timeline: "Next spring",
		Message:  "We have a big yard & a dog.\n---\nInterest: Inground pool\nTimeline: Next spring",
	}).Times(1)

	h, _ := newChain(n)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, jsonRequest(t, "1.1.1.1", map[string]any{
		"name":     "<b>Jane Doe</b>",
		"email":    "jane@example.com",
		"phone":    "651-555-0100",
		"interest": "Inground pool",
		"timeline": "Next spring",
		"message":  "We have a big yard & a dog.",
		"extra":    42,
	}))

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, map[string]any{"success": true}, decodeBody(t, w))
	require.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
}

func TestLead_FormEncoded(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := mock.NewMockNotifier(ctrl)
	n.EXPECT().Notify(gomock.Any(), gomock.Any()).Do(func(_ context.Context, l lead.Lead) {
		require.Equal(t, "Sam", l.Name)
		require.Equal(t, "/services", l.SourcePage)
	})

	h, _ := newChain(n)
	form := url.Values{"name": {"Sam"}, "email": {"sam@example.com"}, "sourcePage": {"/services"}}
	r := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
}

func TestLead_EmptyNameIs400(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := mock.NewMockNotifier(ctrl)
	obs := mock.NewMockObserver(ctrl)
	obs.EXPECT().ObserveLead(lead.OutcomeInvalid)

	h, _ := newChain(n, lead.WithObserver(obs))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, jsonRequest(t, "2.2.2.2", map[string]any{"name": "", "email": "a@b.co"}))

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"success":false,"errors":{"name":["Name is required"]}}`, w.Body.String())
}

func TestLead_MarkupOnlyNameIs400(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := mock.NewMockNotifier(ctrl) // nenhuma chamada esperada

	h, _ := newChain(n)
	for _, name := range []string{"<b></b>", "&lt;b&gt;&lt;/b&gt;", "  <i> </i> "} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, jsonRequest(t, "2.2.2.3", map[string]any{"name": name, "email": "x@example.com"}))

		require.Equal(t, http.StatusBadRequest, w.Code, "name %q", name)
		require.JSONEq(t, `{"success":false,"errors":{"name":["Name is required"]}}`, w.Body.String())
	}
}

func TestLead_EncodedMarkupIsNotForwarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := mock.NewMockNotifier(ctrl)
	n.EXPECT().Notify(gomock.Any(), gomock.Any()).Do(func(_ context.Context, l lead.Lead) {
		require.NotContains(t, l.Message, "<")
		require.Equal(t, "Jane", l.Name)
	})

	h, _ := newChain(n)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, jsonRequest(t, "2.2.2.4", map[string]any{
		"name":    "Jane",
		"email":   "jane@example.com",
		"message": "&lt;script&gt;alert(1)&lt;/script&gt;",
	}))
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestLead_HoneypotAnyTruthyValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := mock.NewMockNotifier(ctrl) // nenhuma chamada esperada

	h, store := newChain(n)
	for _, v := range []any{true, 1, map[string]any{}, []any{}} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, jsonRequest(t, "3.3.3.4", map[string]any{
			"name":     "Bot",
			"email":    "bot@example.com",
			"_website": v,
		}))
		require.Equal(t, http.StatusCreated, w.Code, "_website=%v", v)
		require.JSONEq(t, `{"success":true}`, w.Body.String())
	}
	require.Zero(t, store.Count("3.3.3.4"))
}

func TestLead_HoneypotFalsyValueIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := mock.NewMockNotifier(ctrl)
	n.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(3)

	h, _ := newChain(n)
	for _, v := range []any{false, 0, nil} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, jsonRequest(t, "3.3.3.5", map[string]any{
			"name":     "Jane",
			"email":    "jane@example.com",
			"_website": v,
		}))
		require.Equal(t, http.StatusCreated, w.Code, "_website=%v", v)
	}
}

func TestLead_HoneypotFakesSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := mock.NewMockNotifier(ctrl) // nenhuma chamada esperada

	h, store := newChain(n)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, jsonRequest(t, "3.3.3.3", map[string]any{
		"name":     "Bot",
		"email":    "bot@example.com",
		"_website": "http://spam.example",
	}))

	require.Equal(t, http.StatusCreated, w.Code)
	require.JSONEq(t, `{"success":true}`, w.Body.String())
	require.Zero(t, store.Count("3.3.3.3"), "honeypot must not use quota")
}

func TestLead_SixthRequestIs429(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := mock.NewMockNotifier(ctrl)
	n.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(5)

	h, _ := newChain(n)
	body := map[string]any{"name": "Jane", "email": "jane@example.com"}
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, jsonRequest(t, "4.4.4.4", body))
		require.Equal(t, http.StatusCreated, w.Code, "request %d", i+1)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, jsonRequest(t, "4.4.4.4", body))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	require.Equal(t, "3600", w.Header().Get("Retry-After"))
	require.JSONEq(t, `{"success":false,"error":"Too many requests. Please try again later."}`, w.Body.String())

	// outro IP continua liberado
	w = httptest.NewRecorder()
	n.EXPECT().Notify(gomock.Any(), gomock.Any())
	h.ServeHTTP(w, jsonRequest(t, "5.5.5.5", body))
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestLead_MalformedJSONIs400(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, store := newChain(mock.NewMockNotifier(ctrl))

	r := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader("{not json"))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("X-Forwarded-For", "6.6.6.6")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, false, decodeBody(t, w)["success"])
	require.Zero(t, store.Count("6.6.6.6"))
}

type panicNotifier struct{}

func (panicNotifier) Notify(context.Context, lead.Lead) { panic("boom") }

func TestLead_PanicIs500(t *testing.T) {
	h, _ := newChain(panicNotifier{})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, jsonRequest(t, "7.7.7.7", map[string]any{"name": "Jane", "email": "jane@example.com"}))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"success":false,"error":"Failed to submit lead"}`, w.Body.String())
}

func TestHandler_WithoutDecodeMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := mock.NewMockNotifier(ctrl)
	n.EXPECT().Notify(gomock.Any(), gomock.Any())

	h := lead.NewHandler(n)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, jsonRequest(t, "8.8.8.8", map[string]any{"name": "Jane", "email": "jane@example.com"}))
	require.Equal(t, http.StatusCreated, w.Code)
}
