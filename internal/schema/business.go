package schema

import (
	"strconv"

	"paragon-site/internal/content"
)

// LocalBusiness gera o perfil completo da empresa. O número de fax nunca é
// publicado.
func (g *Generator) LocalBusiness() Object {
	b := g.business
	o := Object{
		"@context": Context,
		"@type":    BusinessType,
		"name":     b.Name,
		"url":      b.URL,
	}
	setIf(o, "legalName", b.LegalName)
	setIf(o, "description", b.Description)
	setIf(o, "telephone", b.Phone)
	setIf(o, "email", b.Email)
	setIf(o, "image", g.absURL(b.Image))
	setIf(o, "priceRange", b.PriceRange)
	if b.FoundedYear > 0 {
		o["foundingDate"] = strconv.Itoa(b.FoundedYear)
	}
	if f := g.founder(); f != nil {
		o["founder"] = f
	}

	if len(b.ServiceArea) > 0 {
		areas := make([]Object, 0, len(b.ServiceArea))
		for _, city := range b.ServiceArea {
			areas = append(areas, Object{
				"@type":            "City",
				"name":             city,
				"containedInPlace": g.state(),
			})
		}
		o["areaServed"] = areas
	}

	if len(b.Locations) > 0 {
		addrs := make([]Object, 0, len(b.Locations))
		geos := make([]Object, 0, len(b.Locations))
		for _, loc := range b.Locations {
			addrs = append(addrs, postalAddress(loc))
			geos = append(geos, Object{
				"@type":     "GeoCoordinates",
				"latitude":  loc.Lat,
				"longitude": loc.Lng,
			})
		}
		o["address"] = addrs
		o["geo"] = geos
	}

	if hours := OpeningHours(b.Hours); len(hours) > 0 {
		o["openingHoursSpecification"] = hours
	}

	if len(b.Social) > 0 {
		same := make([]string, 0, len(b.Social))
		for _, s := range b.Social {
			same = append(same, s.URL)
		}
		o["sameAs"] = same
	}
	setListIf(o, "knowsAbout", b.KnowsAbout)
	return o
}

func (g *Generator) founder() Object {
	name := g.owner.Name
	if name == "" {
		name = g.business.Owner
	}
	if name == "" {
		return nil
	}
	f := Object{"@type": "Person", "name": name}
	if g.owner.Name == name {
		setIf(f, "jobTitle", g.owner.JobTitle)
		if g.owner.Path != "" {
			f["url"] = g.absURL(g.owner.Path)
		}
	}
	return f
}

func postalAddress(loc content.Location) Object {
	return Object{
		"@type":           "PostalAddress",
		"streetAddress":   loc.Street,
		"addressLocality": loc.City,
		"addressRegion":   loc.State,
		"postalCode":      loc.Zip,
		"addressCountry":  "US",
	}
}

// OpeningHours gera uma OpeningHoursSpecification por grupo de dias
// consecutivos com o mesmo horário. Grupo de um dia usa dayOfWeek como string.
func OpeningHours(days []content.DayHours) []Object {
	groups := content.GroupHours(days)
	if len(groups) == 0 {
		return nil
	}
	out := make([]Object, 0, len(groups))
	for _, g := range groups {
		spec := Object{
			"@type":  "OpeningHoursSpecification",
			"opens":  g.Opens,
			"closes": g.Closes,
		}
		if len(g.Days) == 1 {
			spec["dayOfWeek"] = g.Days[0]
		} else {
			spec["dayOfWeek"] = g.Days
		}
		out = append(out, spec)
	}
	return out
}

// Website gera o documento WebSite.
func (g *Generator) Website() Object {
	return Object{
		"@context": Context,
		"@type":    "WebSite",
		"name":     g.business.Name,
		"url":      g.business.URL,
	}
}

// Service descreve um serviço prestado pela empresa no estado atendido.
func (g *Generator) Service(name, description, url string) Object {
	o := Object{
		"@context":   Context,
		"@type":      "Service",
		"name":       name,
		"provider":   g.businessRef(),
		"areaServed": g.state(),
	}
	setIf(o, "description", description)
	setIf(o, "url", url)
	return o
}

// ContactPoint gera a empresa com o canal de vendas.
func (g *Generator) ContactPoint() Object {
	cp := Object{
		"@type":             "ContactPoint",
		"contactType":       "sales",
		"areaServed":        g.state(),
		"availableLanguage": "English",
	}
	setIf(cp, "telephone", g.business.Phone)
	setIf(cp, "email", g.business.Email)

	o := g.businessRef()
	o["@context"] = Context
	o["contactPoint"] = cp
	return o
}
