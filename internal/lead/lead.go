// Package lead implementa o endpoint de captura de leads do formulário de
// contato: decodificação do corpo, honeypot, validação, sanitização e
// encaminhamento para o webhook.
package lead

//go:generate mockgen -source=lead.go -destination=mock/notifier_mock.go -package=mock

import "context"

// Lead são os campos aceitos do formulário.
type Lead struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone,omitempty"`
	Interest   string `json:"interest,omitempty"`
	Timeline   string `json:"timeline,omitempty"`
	Message    string `json:"message,omitempty"`
	SourcePage string `json:"sourcePage,omitempty"`
}

// Notifier encaminha um lead aceito. Deve retornar imediatamente; falhas de
// entrega são responsabilidade da implementação.
type Notifier interface {
	Notify(ctx context.Context, l Lead)
}

// Outcome é o resultado de uma submissão, usado em métricas.
type Outcome string

const (
	OutcomeAccepted  Outcome = "accepted"
	OutcomeInvalid   Outcome = "invalid"
	OutcomeHoneypot  Outcome = "honeypot"
	OutcomeMalformed Outcome = "malformed"
	OutcomeFailed    Outcome = "failed"
)

// Observer recebe o resultado de cada submissão.
type Observer interface {
	ObserveLead(o Outcome)
}

type nopObserver struct{}

func (nopObserver) ObserveLead(Outcome) {}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Lead) {}
