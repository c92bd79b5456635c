package infra

import (
	"sync"
	"time"

	"paragon-site/middleware/ratelimit/domain"
)

// DefaultSweepEvery é o intervalo mínimo entre duas varreduras completas.
const DefaultSweepEvery = time.Minute

// Store é um ledger de janela deslizante em memória: para cada chave guarda os
// timestamps aceitos, em ordem crescente.
//
// O estado é por processo. Com N instâncias o limite efetivo vira
// MaxRequests × N; isso é aceito para o formulário de leads.
type Store struct {
	mu         sync.Mutex
	entries    map[domain.Key]*ledgerEntry
	now        func() time.Time
	sweepEvery time.Duration
	lastSweep  time.Time
}

type ledgerEntry struct {
	stamps []time.Time
	// janela usada na última consulta da chave; a varredura usa a mesma.
	window time.Duration
}

type StoreOption func(*Store)

// WithSweepEvery define o intervalo da varredura. <= 0 desliga a varredura
// preguiçosa (o janitor também não sobe).
func WithSweepEvery(d time.Duration) StoreOption {
	return func(s *Store) { s.sweepEvery = d }
}

// WithClock troca a fonte de tempo (testes).
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		entries:    make(map[domain.Key]*ledgerEntry),
		now:        time.Now,
		sweepEvery: DefaultSweepEvery,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lastSweep = s.now()
	return s
}

func (s *Store) SweepEvery() time.Duration { return s.sweepEvery }

// CheckAndRecord implementa domain.Ledger.
func (s *Store) CheckAndRecord(key domain.Key, limit domain.Limit) domain.Result {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.maybeSweepLocked(now)

	ent, ok := s.entries[key]
	if !ok {
		ent = &ledgerEntry{}
	}
	ent.window = limit.Window
	ent.stamps = prune(ent.stamps, now.Add(-limit.Window))

	if len(ent.stamps) >= limit.MaxRequests {
		if len(ent.stamps) == 0 {
			delete(s.entries, key)
		} else {
			s.entries[key] = ent
		}
		return domain.Result{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: retryAfter(ent.stamps, limit, now),
		}
	}

	ent.stamps = append(ent.stamps, now)
	s.entries[key] = ent
	return domain.Result{
		Allowed:   true,
		Remaining: limit.MaxRequests - len(ent.stamps),
	}
}

// Count devolve quantos timestamps ainda contam para a chave, sem registrar nada.
func (s *Store) Count(key domain.Key) int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	if !ok {
		return 0
	}
	n := 0
	cutoff := now.Add(-ent.window)
	for _, t := range ent.stamps {
		if t.After(cutoff) {
			n++
		}
	}
	return n
}

// Len devolve o número de chaves no ledger.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep varre todas as chaves agora, independente do intervalo, e devolve
// quantas foram removidas.
func (s *Store) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(now)
}

func (s *Store) maybeSweepLocked(now time.Time) {
	if s.sweepEvery <= 0 {
		return
	}
	if now.Sub(s.lastSweep) < s.sweepEvery {
		return
	}
	s.sweepLocked(now)
}

func (s *Store) sweepLocked(now time.Time) int {
	removed := 0
	for k, ent := range s.entries {
		ent.stamps = prune(ent.stamps, now.Add(-ent.window))
		if len(ent.stamps) == 0 {
			delete(s.entries, k)
			removed++
		}
	}
	s.lastSweep = now
	return removed
}

// StartJanitor sobe uma goroutine que varre o ledger a cada SweepEvery, para
// que um processo sem tráfego também libere memória. Pare cancelando o contexto.
func (s *Store) StartJanitor(ctx DoneContext) {
	if s.sweepEvery <= 0 {
		return
	}

	t := time.NewTicker(s.sweepEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Sweep()
			}
		}
	}()
}

// DoneContext é o mínimo necessário para aceitar context.Context sem importar context aqui.
type DoneContext interface {
	Done() <-chan struct{}
}

// prune mantém só timestamps estritamente depois de cutoff, reaproveitando o slice.
func prune(stamps []time.Time, cutoff time.Time) []time.Time {
	kept := stamps[:0]
	for _, t := range stamps {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// retryAfter calcula quando a chave volta a ter uma vaga: o timestamp que
// precisa sair da janela é o len-MaxRequests (o mais antigo no caso normal).
func retryAfter(stamps []time.Time, limit domain.Limit, now time.Time) time.Duration {
	if limit.MaxRequests <= 0 || len(stamps) == 0 {
		return limit.Window
	}
	idx := len(stamps) - limit.MaxRequests
	d := stamps[idx].Add(limit.Window).Sub(now)
	if d <= 0 {
		return 0
	}
	return d
}
