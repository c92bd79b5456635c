package schema

import (
	"fmt"
	"sort"
	"strings"

	"paragon-site/internal/content"
)

// Páginas com documentos JSON-LD. Posts usam "blog/<slug>".
const (
	PageHome         = "home"
	PageServices     = "services"
	PagePackages     = "packages"
	PageTestimonials = "testimonials"
	PageContact      = "contact"
	PageAbout        = "about"
	PageBlog         = "blog"
)

// Graph é o conjunto de documentos JSON-LD de cada página, indexado pelo
// caminho da página sem a barra inicial.
type Graph map[string][]Object

// Names lista as páginas em ordem alfabética.
func (gr Graph) Names() []string {
	names := make([]string, 0, len(gr))
	for k := range gr {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Pages monta os documentos de todas as páginas do site.
func Pages(site *content.Site) (Graph, error) {
	g := New(site.Business, site.Owner)
	base := g.BaseURL()

	gr := Graph{
		PageHome: {g.LocalBusiness(), g.Website()},
		PageContact: {
			g.ContactPoint(),
			g.Breadcrumb(Crumb{"Contact", "/contact"}),
		},
		PageAbout: {
			g.LocalBusiness(),
			g.Breadcrumb(Crumb{"About", "/about"}),
		},
		PageTestimonials: {
			g.Review(site.Reviews),
			g.Breadcrumb(Crumb{"Testimonials", "/testimonials"}),
		},
		PageBlog: {g.Breadcrumb(Crumb{"Blog", "/blog"})},
	}

	services := []Object{FAQPage(site.FAQs)}
	for _, s := range site.Services {
		services = append(services, g.Service(s.Title, s.Description, base+"/services"))
	}
	if len(site.Process) > 0 {
		steps := make([]Step, 0, len(site.Process))
		for _, p := range site.Process {
			steps = append(steps, Step{Name: p.Title, Text: p.Description})
		}
		services = append(services, HowTo(
			fmt.Sprintf("How %s Builds Your Pool", site.Business.Name),
			fmt.Sprintf("Our %d-step process from consultation to enjoying your new pool.", len(steps)),
			steps,
		))
	}
	services = append(services, g.Breadcrumb(Crumb{"Services", "/services"}))
	gr[PageServices] = services

	packages := make([]Object, 0, len(site.Packages)+1)
	for _, p := range site.Packages {
		packages = append(packages, g.Product(p.Name, p.Description, base+"/packages", p.Price))
	}
	gr[PagePackages] = append(packages, g.Breadcrumb(Crumb{"Packages", "/packages"}))

	if site.Owner.Name != "" && site.Owner.Path != "" {
		key := trimSlash(site.Owner.Path)
		gr[key] = []Object{
			g.Person(PersonInput{
				Name:        site.Owner.Name,
				JobTitle:    site.Owner.JobTitle,
				Description: site.Owner.Description,
				URL:         g.absURL(site.Owner.Path),
				Image:       g.absURL(site.Owner.Image),
				KnowsAbout:  site.Owner.Expertise,
			}),
			g.Breadcrumb(Crumb{"About", "/about"}, Crumb{site.Owner.Name, site.Owner.Path}),
		}
	}

	for _, p := range site.Posts {
		path := "/blog/" + p.Slug
		art, err := g.Article(ArticleInput{
			Title:         p.Title,
			Description:   p.Description,
			Author:        p.Author,
			DatePublished: p.DatePublished,
			DateModified:  p.DateModified,
			URL:           base + path,
			Image:         g.absURL(p.Image),
		})
		if err != nil {
			return nil, fmt.Errorf("post %s: %w", p.Slug, err)
		}
		gr[trimSlash(path)] = []Object{
			art,
			g.Breadcrumb(Crumb{"Blog", "/blog"}, Crumb{p.Title, path}),
		}
	}
	return gr, nil
}

func trimSlash(p string) string { return strings.TrimLeft(p, "/") }
