package schema

import (
	"errors"
	"fmt"
)

// ErrMissingField indica um campo obrigatório ausente na entrada de um gerador.
var ErrMissingField = errors.New("schema: missing required field")

// ArticleInput são os dados de um post. DateModified e Image são opcionais.
type ArticleInput struct {
	Title         string
	Description   string
	Author        string
	DatePublished string
	DateModified  string
	URL           string
	Image         string
}

func (in ArticleInput) validate() error {
	required := []struct{ name, v string }{
		{"title", in.Title},
		{"description", in.Description},
		{"author", in.Author},
		{"datePublished", in.DatePublished},
		{"url", in.URL},
	}
	for _, f := range required {
		if f.v == "" {
			return fmt.Errorf("%w: article %s", ErrMissingField, f.name)
		}
	}
	return nil
}

// Article gera o documento de um post do blog.
func (g *Generator) Article(in ArticleInput) (Object, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	publisher := Object{
		"@type": "Organization",
		"name":  g.business.Name,
		"url":   g.business.URL,
	}
	if g.business.Image != "" {
		publisher["logo"] = Object{"@type": "ImageObject", "url": g.absURL(g.business.Image)}
	}
	o := Object{
		"@context":      Context,
		"@type":         "Article",
		"headline":      in.Title,
		"description":   in.Description,
		"author":        Object{"@type": "Person", "name": in.Author},
		"publisher":     publisher,
		"datePublished": in.DatePublished,
		"mainEntityOfPage": Object{
			"@type": "WebPage",
			"@id":   in.URL,
		},
		"url": in.URL,
	}
	setIf(o, "dateModified", in.DateModified)
	if in.Image != "" {
		o["image"] = Object{"@type": "ImageObject", "url": in.Image}
	}
	return o, nil
}

// MustArticle é como Article mas entra em pânico com entrada inválida.
func (g *Generator) MustArticle(in ArticleInput) Object {
	o, err := g.Article(in)
	if err != nil {
		panic(err)
	}
	return o
}

// PersonInput descreve uma pessoa (a página do proprietário).
type PersonInput struct {
	Name        string
	JobTitle    string
	Description string
	URL         string
	Image       string
	KnowsAbout  []string
}

// Person gera a pessoa vinculada à empresa via worksFor.
func (g *Generator) Person(in PersonInput) Object {
	o := Object{
		"@context": Context,
		"@type":    "Person",
		"name":     in.Name,
		"worksFor": g.businessRef(),
	}
	setIf(o, "jobTitle", in.JobTitle)
	setIf(o, "description", in.Description)
	setIf(o, "url", in.URL)
	setIf(o, "image", in.Image)
	setListIf(o, "knowsAbout", in.KnowsAbout)
	return o
}

// Product gera um pacote à venda. offers só aparece quando price != nil.
func (g *Generator) Product(name, description, url string, price *float64) Object {
	o := Object{
		"@context": Context,
		"@type":    "Product",
		"name":     name,
		"brand":    Object{"@type": "Brand", "name": g.business.Name},
	}
	setIf(o, "description", description)
	setIf(o, "url", url)
	if price != nil {
		offer := Object{
			"@type":         "Offer",
			"price":         *price,
			"priceCurrency": "USD",
			"availability":  "https://schema.org/InStock",
			"seller":        g.businessRef(),
		}
		setIf(offer, "url", url)
		o["offers"] = offer
	}
	return o
}
