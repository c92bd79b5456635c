package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"paragon-site/internal/lead"
)

type recordingObserver struct {
	mu      sync.Mutex
	results []Result
}

func (o *recordingObserver) ObserveWebhook(r Result, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results = append(o.results, r)
}

func (o *recordingObserver) all() []Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Result(nil), o.results...)
}

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 15, 9, 26, 535_000_000, time.FixedZone("CST", -6*3600))
}

func TestNotify_PostsPayload(t *testing.T) {
	var (
		mu   sync.Mutex
		got  map[string]any
		hdrs http.Header
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		hdrs = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	c := New(srv.URL, WithClock(fixedClock), WithObserver(obs))
	require.True(t, c.Enabled())

	ctx, cancel := context.WithCancel(context.Background())
	c.Notify(ctx, lead.Lead{Name: "Jane", Email: "jane@example.com", Message: "Hi", SourcePage: "/contact"})
	cancel() // o envio não depende do contexto do request
	c.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, "application/json", hdrs.Get("Content-Type"))
	require.Equal(t, "Jane", got["name"])
	require.Equal(t, "jane@example.com", got["email"])
	require.Equal(t, "/contact", got["sourcePage"])
	require.Equal(t, DefaultSource, got["source"])
	require.Equal(t, "2026-03-14T21:09:26.535Z", got["timestamp"])
	require.NotContains(t, got, "phone")
	_, err := uuid.Parse(got["id"].(string))
	require.NoError(t, err)
	require.Equal(t, []Result{ResultDelivered}, obs.all())
}

func TestNotify_DisabledWithoutURL(t *testing.T) {
	obs := &recordingObserver{}
	c := New("", WithObserver(obs))
	require.False(t, c.Enabled())

	c.Notify(context.Background(), lead.Lead{Name: "Jane"})
	c.Wait()
	require.Empty(t, obs.all())
}

func TestNotify_FailureIsOnlyObserved(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	c := New(srv.URL, WithObserver(obs))
	c.Notify(context.Background(), lead.Lead{Name: "Jane"})
	c.Wait()

	require.Equal(t, []Result{ResultFailed}, obs.all())
}

func TestSend_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, WithSource("test-suite"))
	err := c.Send(context.Background(), c.payload(lead.Lead{Name: "Jane"}))
	require.True(t, errors.Is(err, ErrUnexpectedStatus))
}

func TestSend_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := New(srv.URL, WithTimeout(50*time.Millisecond))
	err := c.Send(context.Background(), c.payload(lead.Lead{Name: "Jane"}))
	require.Error(t, err)
	require.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestSend_Throttled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	// 1 envio por minuto, burst 1: o segundo não cabe no timeout.
	c := New(srv.URL, WithRate(1.0/60, 1), WithTimeout(100*time.Millisecond))
	require.NoError(t, c.Send(context.Background(), c.payload(lead.Lead{Name: "a"})))

	err := c.Send(context.Background(), c.payload(lead.Lead{Name: "b"}))
	require.True(t, errors.Is(err, ErrThrottled), "got %v", err)
}

func TestPayload_Source(t *testing.T) {
	c := New("http://example.invalid", WithSource("landing-page"), WithClock(fixedClock))
	p := c.payload(lead.Lead{Name: "Jane"})
	require.Equal(t, "landing-page", p.Source)
	require.Equal(t, "Jane", p.Name)

	c = New("http://example.invalid", WithSource(""))
	require.Equal(t, DefaultSource, c.payload(lead.Lead{}).Source)
}
