// Package ratelimit fornece os middlewares HTTP (net/http) que protegem o
// formulário de leads: rate limit de janela deslizante por IP e limite de
// concorrência.
//
// Camadas:
//
//   - domain: contratos e tipos (Ledger, Limit, Decision, StatsStore, SlotPool)
//   - application: casos de uso (Decide, Acquire) sem net/http
//   - infra: ledger em memória, semáforo e stores de estatísticas
//   - ratelimit (este pacote): middlewares, extração do IP e tradução para status/headers
//
// Fluxo no POST /api/leads:
//
//   1) Extrai o IP do cliente (X-Forwarded-For, X-Real-IP ou "unknown")
//   2) Chama a camada application para obter a decisão
//   3) Se bloqueado, responde 429 com Retry-After e X-RateLimit-Remaining: 0
//   4) Se permitido, seta X-RateLimit-Remaining e chama o próximo handler
//
// A configuração vem de LEAD_RATE_MAX, LEAD_RATE_WINDOW e LEAD_RATE_SWEEP_EVERY
// (ver internal/config).
package ratelimit
