package domain

// Camada de domínio do rate limit (janela deslizante por chave).

import "time"

type Key string

const (
	DefaultMaxRequests = 5
	DefaultWindow      = time.Hour
)

// Limit descreve quantas requisições uma chave pode fazer dentro da janela.
type Limit struct {
	MaxRequests int
	Window      time.Duration
}

// WithDefaults preenche campos zerados com 5 requisições por hora.
func (l Limit) WithDefaults() Limit {
	if l.MaxRequests <= 0 {
		l.MaxRequests = DefaultMaxRequests
	}
	if l.Window <= 0 {
		l.Window = DefaultWindow
	}
	return l
}

// Result é a resposta do ledger para uma tentativa.
type Result struct {
	Allowed   bool
	Remaining int
	// RetryAfter é o tempo até o timestamp mais antigo sair da janela.
	// Só é preenchido quando Allowed=false.
	RetryAfter time.Duration
}

// Ledger guarda os timestamps aceitos por chave.
//
// CheckAndRecord descarta timestamps fora da janela e, se ainda houver quota,
// registra o instante atual. Uma tentativa rejeitada não é registrada.
type Ledger interface {
	CheckAndRecord(key Key, limit Limit) Result
}

type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// RetryAfter é o valor a ser retornado em Retry-After quando bloquear.
	RetryAfter time.Duration
}
