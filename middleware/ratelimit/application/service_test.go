package application

import (
	"testing"
	"time"

	"paragon-site/middleware/ratelimit/domain"
)

type fakeLedger struct {
	res   domain.Result
	calls int
	seen  domain.Limit
}

func (f *fakeLedger) CheckAndRecord(_ domain.Key, limit domain.Limit) domain.Result {
	f.calls++
	f.seen = limit
	return f.res
}

func TestService_Decide_AllowsWhenNoLedger(t *testing.T) {
	svc := Service{}
	dec := svc.Decide("k")
	if !dec.Allowed {
		t.Fatalf("expected allowed")
	}
	if dec.Limit != domain.DefaultMaxRequests {
		t.Fatalf("expected default limit %d, got %d", domain.DefaultMaxRequests, dec.Limit)
	}
	if dec.RetryAfter != 0 {
		t.Fatalf("expected RetryAfter=0 when allowed, got %s", dec.RetryAfter)
	}
}

func TestService_Decide_PassesDefaultsToLedger(t *testing.T) {
	led := &fakeLedger{res: domain.Result{Allowed: true, Remaining: 4}}
	svc := Service{Ledger: led}

	dec := svc.Decide("k")
	if !dec.Allowed || dec.Remaining != 4 {
		t.Fatalf("expected allowed with 4 remaining, got %+v", dec)
	}
	if led.seen.MaxRequests != 5 || led.seen.Window != time.Hour {
		t.Fatalf("expected 5/1h default limit, got %+v", led.seen)
	}
}

func TestService_Decide_BlocksWithLedgerRetryAfter(t *testing.T) {
	led := &fakeLedger{res: domain.Result{Allowed: false, RetryAfter: 90 * time.Second}}
	svc := Service{Ledger: led}

	dec := svc.Decide("k")
	if dec.Allowed {
		t.Fatalf("expected blocked")
	}
	if dec.Remaining != 0 {
		t.Fatalf("expected remaining 0, got %d", dec.Remaining)
	}
	if dec.RetryAfter != 90*time.Second {
		t.Fatalf("expected RetryAfter=90s, got %s", dec.RetryAfter)
	}
}

func TestService_Decide_ConfiguredRetryAfterWins(t *testing.T) {
	led := &fakeLedger{res: domain.Result{Allowed: false, RetryAfter: 90 * time.Second}}
	svc := Service{Ledger: led, RetryAfter: time.Hour}

	dec := svc.Decide("k")
	if dec.RetryAfter != time.Hour {
		t.Fatalf("expected RetryAfter=1h, got %s", dec.RetryAfter)
	}
}

func TestService_Decide_FallsBackToWindow(t *testing.T) {
	led := &fakeLedger{res: domain.Result{Allowed: false}}
	svc := Service{Ledger: led, Limit: domain.Limit{MaxRequests: 2, Window: 10 * time.Minute}}

	dec := svc.Decide("k")
	if dec.RetryAfter != 10*time.Minute {
		t.Fatalf("expected RetryAfter to fall back to the window, got %s", dec.RetryAfter)
	}
	if dec.Limit != 2 {
		t.Fatalf("expected limit 2, got %d", dec.Limit)
	}
}
