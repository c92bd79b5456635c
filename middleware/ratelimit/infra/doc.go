// Package infra contém implementações concretas para os contratos do pacote domain.
//
//   - Store: ledger de janela deslizante em memória, com varredura periódica
//   - ChanPool: semáforo para limite de concorrência
//   - MemoryStatsStore / RedisStatsStore / PrometheusStatsStore: estatísticas best-effort
package infra
