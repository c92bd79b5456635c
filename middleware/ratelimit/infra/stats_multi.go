package infra

import (
	"context"
	"errors"

	"paragon-site/middleware/ratelimit/domain"
)

type multiStats []domain.StatsStore

// MultiStats repassa cada evento para todos os stores não-nil.
// Um erro em um store não impede os demais; os erros voltam juntos.
func MultiStats(stores ...domain.StatsStore) domain.StatsStore {
	out := make(multiStats, 0, len(stores))
	for _, s := range stores {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (m multiStats) Record(ctx context.Context, ev domain.StatsEvent) error {
	var errs []error
	for _, s := range m {
		if err := s.Record(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
