package main

import (
	"encoding/json"
	"net/http"
	"os"
	"sync/atomic"

	"paragon-site/internal/logger"
	"paragon-site/internal/webhook"
)

// Receptor falso do n8n para validar o encaminhamento de leads localmente:
//
//	go run ./teste-validacao/webhook-receiver
//	N8N_WEBHOOK_URL=http://localhost:8081/lead go run ./cmd/site
func main() {
	log := logger.NewLogger("info")
	addr := ":8081"
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		addr = v
	}

	var received atomic.Int64
	http.HandleFunc("POST /lead", func(w http.ResponseWriter, r *http.Request) {
		var p webhook.Payload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			log.Warn("payload inválido", "error", err)
			http.Error(w, "bad payload", http.StatusBadRequest)
			return
		}
		n := received.Add(1)
		log.Info("lead recebido",
			"n", n,
			"id", p.ID,
			"source", p.Source,
			"timestamp", p.Timestamp,
			"name", p.Name,
			"email", p.Email,
			"source_page", p.SourcePage,
		)
		w.WriteHeader(http.StatusOK)
	})

	log.Info("receptor rodando", "addr", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Error("erro ao subir o servidor", "error", err)
		os.Exit(1)
	}
}
