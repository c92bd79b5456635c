// Package application contém os casos de uso do rate limit de leads e do
// limite de concorrência.
//
// Depende apenas do pacote domain e não conhece net/http.
// Ex.: Service.Decide(key) consulta o ledger e devolve uma Decision
// (allow/deny + restante + retry-after).
package application
