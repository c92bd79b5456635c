package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"paragon-site/internal/content"
	"paragon-site/internal/logger"
	"paragon-site/internal/schema"
)

// Imprime o JSON-LD de uma página para o build estático embutir no HTML.
//
//	jsonld -page services
//	jsonld -page blog/how-to-winterize-pool-minnesota -content ./site.yaml
//	jsonld -list
func main() {
	var (
		page    = flag.String("page", schema.PageHome, "página (ex.: home, services, blog/<slug>)")
		file    = flag.String("content", os.Getenv("SITE_CONTENT_FILE"), "arquivo YAML de conteúdo (vazio usa o embutido)")
		list    = flag.Bool("list", false, "lista as páginas disponíveis")
		compact = flag.Bool("compact", false, "JSON sem indentação")
		script  = flag.Bool("script", false, `envolve cada documento em <script type="application/ld+json">`)
	)
	flag.Parse()

	log := logger.NewLogger(os.Getenv("LOG_LEVEL"))
	if err := run(os.Stdout, *file, *page, *list, *compact, *script); err != nil {
		log.Error("jsonld failed", "error", err)
		os.Exit(1)
	}
}

func run(w io.Writer, file, page string, list, compact, script bool) error {
	site, err := content.LoadFile(file)
	if err != nil {
		return err
	}
	graph, err := schema.Pages(site)
	if err != nil {
		return err
	}

	if list {
		for _, name := range graph.Names() {
			fmt.Fprintln(w, name)
		}
		return nil
	}

	docs, ok := graph[page]
	if !ok {
		return fmt.Errorf("unknown page %q (use -list)", page)
	}

	if !script {
		return encode(w, docs, compact)
	}
	for _, d := range docs {
		fmt.Fprintln(w, `<script type="application/ld+json">`)
		if err := encode(w, d, compact); err != nil {
			return err
		}
		fmt.Fprintln(w, `</script>`)
	}
	return nil
}

func encode(w io.Writer, v any, compact bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
