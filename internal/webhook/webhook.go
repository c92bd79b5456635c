// Package webhook encaminha leads aceitos para um webhook externo (n8n).
// O envio é assíncrono: Notify retorna na hora e falhas só são logadas.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"paragon-site/internal/lead"
	"paragon-site/internal/logger"
)

const (
	DefaultSource  = "paragon-pools-website"
	DefaultTimeout = 10 * time.Second

	// TimestampLayout é ISO-8601 UTC com milissegundos.
	TimestampLayout = "2006-01-02T15:04:05.000Z"
)

var (
	ErrUnexpectedStatus = errors.New("webhook: unexpected status")
	ErrThrottled        = errors.New("webhook: outbound rate exceeded")
)

// Payload é o corpo enviado: os campos do lead mais id, source e timestamp.
type Payload struct {
	lead.Lead
	ID        string `json:"id"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

// Result é o desfecho de um envio, para métricas.
type Result string

const (
	ResultDelivered Result = "delivered"
	ResultFailed    Result = "failed"
	ResultThrottled Result = "throttled"
)

// Observer recebe o resultado e a duração de cada envio.
type Observer interface {
	ObserveWebhook(r Result, d time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveWebhook(Result, time.Duration) {}

// Client envia leads por POST JSON. Um Client sem URL não faz nada.
type Client struct {
	url     string
	source  string
	timeout time.Duration
	http    *http.Client
	limiter *rate.Limiter
	log     *logger.Logger
	obs     Observer
	now     func() time.Time
	newID   func() string

	wg sync.WaitGroup
}

type Option func(*Client)

func WithSource(s string) Option {
	return func(c *Client) {
		if s != "" {
			c.source = s
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRate limita os envios por segundo. rps <= 0 desliga o limite.
func WithRate(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.obs = o
		}
	}
}

// WithClock troca a fonte de tempo do timestamp (testes).
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

func New(url string, opts ...Option) *Client {
	c := &Client{
		url:     url,
		source:  DefaultSource,
		timeout: DefaultTimeout,
		http:    &http.Client{},
		limiter: rate.NewLimiter(rate.Limit(2), 5),
		log:     logger.Discard(),
		obs:     nopObserver{},
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled indica se há URL configurada.
func (c *Client) Enabled() bool { return c.url != "" }

// Notify dispara o envio em background e retorna imediatamente. O envio usa
// um contexto próprio com timeout; o cancelamento do request não o interrompe.
func (c *Client) Notify(ctx context.Context, l lead.Lead) {
	if !c.Enabled() {
		return
	}
	p := c.payload(l)
	sendCtx := context.WithoutCancel(ctx)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		start := c.now()
		res := ResultDelivered
		if err := c.Send(sendCtx, p); err != nil {
			res = ResultFailed
			if errors.Is(err, ErrThrottled) {
				res = ResultThrottled
			}
			c.log.Error("n8n webhook error", "lead_id", p.ID, "error", err)
		} else {
			c.log.Debug("n8n webhook delivered", "lead_id", p.ID)
		}
		c.obs.ObserveWebhook(res, c.now().Sub(start))
	}()
}

// Wait bloqueia até todos os envios em andamento terminarem.
func (c *Client) Wait() { c.wg.Wait() }

func (c *Client) payload(l lead.Lead) Payload {
	return Payload{
		Lead:      l,
		ID:        c.newID(),
		Source:    c.source,
		Timestamp: c.now().UTC().Format(TimestampLayout),
	}
}

// Send faz o POST de forma síncrona, respeitando o rate limit de saída e o
// timeout do Client.
func (c *Client) Send(ctx context.Context, p Payload) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrThrottled, err)
		}
	}

	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("webhook: encode: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: post: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}
