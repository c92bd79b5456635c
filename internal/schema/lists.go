package schema

import "paragon-site/internal/content"

// Crumb é um item de breadcrumb; Path é relativo à raiz do site.
type Crumb struct {
	Name string
	Path string
}

// Step é um passo de um HowTo.
type Step struct {
	Name string
	Text string
}

// Breadcrumb gera a BreadcrumbList com "Home" implícito na posição 1 seguido
// dos itens na ordem recebida.
func (g *Generator) Breadcrumb(items ...Crumb) Object {
	all := make([]Crumb, 0, len(items)+1)
	all = append(all, Crumb{Name: "Home", Path: "/"})
	all = append(all, items...)

	elems := make([]Object, 0, len(all))
	for i, c := range all {
		elems = append(elems, Object{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     c.Name,
			"item":     g.BaseURL() + c.Path,
		})
	}
	return Object{
		"@context":        Context,
		"@type":           "BreadcrumbList",
		"itemListElement": elems,
	}
}

// FAQPage mapeia perguntas e respostas 1:1, sem deduplicar.
func FAQPage(faqs []content.FAQ) Object {
	qs := make([]Object, 0, len(faqs))
	for _, f := range faqs {
		qs = append(qs, Object{
			"@type": "Question",
			"name":  f.Question,
			"acceptedAnswer": Object{
				"@type": "Answer",
				"text":  f.Answer,
			},
		})
	}
	return Object{
		"@context":   Context,
		"@type":      "FAQPage",
		"mainEntity": qs,
	}
}

// HowTo gera os passos numerados a partir de 1.
func HowTo(name, description string, steps []Step) Object {
	list := make([]Object, 0, len(steps))
	for i, s := range steps {
		list = append(list, Object{
			"@type":    "HowToStep",
			"position": i + 1,
			"name":     s.Name,
			"text":     s.Text,
		})
	}
	o := Object{
		"@context": Context,
		"@type":    "HowTo",
		"name":     name,
		"step":     list,
	}
	setIf(o, "description", description)
	return o
}

// Review gera os depoimentos da empresa. aggregateRating considera só os
// depoimentos com nota e é omitido quando nenhum tem.
func (g *Generator) Review(reviews []content.Review) Object {
	list := make([]Object, 0, len(reviews))
	var sum, rated int
	for _, r := range reviews {
		rv := Object{
			"@type":      "Review",
			"author":     Object{"@type": "Person", "name": r.Author},
			"reviewBody": r.Text,
		}
		if r.Rating != nil {
			rv["reviewRating"] = Object{
				"@type":       "Rating",
				"ratingValue": *r.Rating,
				"bestRating":  bestRating,
			}
			sum += *r.Rating
			rated++
		}
		setIf(rv, "datePublished", r.Date)
		list = append(list, rv)
	}

	o := Object{
		"@context": Context,
		"@type":    BusinessType,
		"name":     g.business.Name,
		"review":   list,
	}
	if rated > 0 {
		o["aggregateRating"] = Object{
			"@type":       "AggregateRating",
			"ratingValue": float64(sum) / float64(rated),
			"reviewCount": rated,
			"bestRating":  bestRating,
			"worstRating": worstRating,
		}
	}
	return o
}
