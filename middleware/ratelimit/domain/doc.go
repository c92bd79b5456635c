// Package domain define contratos e tipos de domínio para o rate limit de leads
// e para o limite de concorrência.
//
// Este pacote não depende de net/http nem de implementações concretas, para que
// o ledger possa ser trocado (memória, testes) sem tocar no middleware.
package domain
