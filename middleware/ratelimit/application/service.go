package application

import (
	"time"

	"paragon-site/middleware/ratelimit/domain"
)

// Service aplica um Limit fixo sobre um Ledger.
//
// RetryAfter, quando > 0, sobrescreve o tempo calculado pelo ledger.
type Service struct {
	Ledger     domain.Ledger
	Limit      domain.Limit
	RetryAfter time.Duration
}

func (s Service) Decide(key domain.Key) domain.Decision {
	lim := s.Limit.WithDefaults()
	if s.Ledger == nil {
		return domain.Decision{Allowed: true, Limit: lim.MaxRequests, Remaining: lim.MaxRequests}
	}

	res := s.Ledger.CheckAndRecord(key, lim)
	dec := domain.Decision{
		Allowed:   res.Allowed,
		Limit:     lim.MaxRequests,
		Remaining: res.Remaining,
	}
	if res.Allowed {
		return dec
	}

	dec.Remaining = 0
	switch {
	case s.RetryAfter > 0:
		dec.RetryAfter = s.RetryAfter
	case res.RetryAfter > 0:
		dec.RetryAfter = res.RetryAfter
	default:
		dec.RetryAfter = lim.Window
	}
	return dec
}
