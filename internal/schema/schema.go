// Package schema gera objetos JSON-LD (vocabulário schema.org) a partir do
// conteúdo do site. Todos os geradores são puros: não fazem I/O e não alteram
// a entrada. Membros opcionais só aparecem quando o dado existe.
package schema

import (
	"strings"

	"paragon-site/internal/content"
)

const (
	Context = "https://schema.org"

	// BusinessType é o @type usado para a empresa em todos os documentos.
	BusinessType = "HomeAndConstructionBusiness"

	bestRating  = 5
	worstRating = 1
)

// Object é um documento JSON-LD pronto para encoding/json.
type Object = map[string]any

// Generator carrega o perfil da empresa usado como provider/publisher nos
// documentos gerados.
type Generator struct {
	business content.Business
	owner    content.Person
}

func New(b content.Business, owner content.Person) *Generator {
	return &Generator{business: b, owner: owner}
}

// BaseURL é a URL canônica do site, sem barra final.
func (g *Generator) BaseURL() string {
	return strings.TrimRight(g.business.URL, "/")
}

// absURL resolve caminhos relativos contra a URL do site.
func (g *Generator) absURL(p string) string {
	if p == "" || strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return g.BaseURL() + p
}

func (g *Generator) state() Object {
	return Object{"@type": "State", "name": g.business.State}
}

// businessRef é a referência curta à empresa usada dentro de outros documentos.
func (g *Generator) businessRef() Object {
	return Object{
		"@type": BusinessType,
		"name":  g.business.Name,
		"url":   g.business.URL,
	}
}

// setIf anexa key somente quando v não é vazio.
func setIf(o Object, key, v string) {
	if v != "" {
		o[key] = v
	}
}

func setListIf(o Object, key string, v []string) {
	if len(v) > 0 {
		o[key] = append([]string(nil), v...)
	}
}
