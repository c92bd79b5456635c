package seo

import (
	"strings"
)

// AICrawlers são os agentes de IA liberados explicitamente, além de "*".
var AICrawlers = []string{
	"GPTBot",
	"ChatGPT-User",
	"Google-Extended",
	"CCBot",
	"PerplexityBot",
	"anthropic-ai",
	"Claude-Web",
	"Applebot-Extended",
	"cohere-ai",
}

// Robots gera o robots.txt: todo agente pode indexar o site, menos /api/.
func Robots(baseURL string) string {
	var b strings.Builder
	agents := append([]string{"*"}, AICrawlers...)
	for _, ua := range agents {
		b.WriteString("User-Agent: " + ua + "\n")
		b.WriteString("Allow: /\n")
		b.WriteString("Disallow: /api/\n\n")
	}
	b.WriteString("Sitemap: " + strings.TrimRight(baseURL, "/") + "/sitemap.xml\n")
	return b.String()
}
