package domain

import "context"

// SlotPool limita quantos requests o servidor atende ao mesmo tempo.
//
// Acquire bloqueia até conseguir uma vaga ou até o ctx encerrar. O release
// devolvido pode ser chamado mais de uma vez; só a primeira chamada libera.
type SlotPool interface {
	Acquire(ctx context.Context) (release func(), ok bool)
}
