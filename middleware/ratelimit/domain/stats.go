package domain

import (
	"context"
	"time"
)

// StatsEvent representa uma decisão do rate limit.
//
// Cuidado com cardinalidade: Key é um IP de cliente, então só deve ser
// persistida quando o store tiver TTL.
type StatsEvent struct {
	Key       Key
	Allowed   bool
	Remaining int

	Method string
	Path   string

	At time.Time
}

// StatsStore persiste estatísticas do rate limit.
//
// O middleware trata erro como best-effort: nunca derruba o request.
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}
