package seo

import (
	"fmt"
	"strings"

	"paragon-site/internal/content"
)

// LLMs gera o llms.txt: resumo em texto do negócio para sistemas de IA.
func LLMs(site *content.Site) string {
	b := site.Business
	var sb strings.Builder
	w := func(format string, args ...any) { fmt.Fprintf(&sb, format, args...) }

	w("# %s\n\n", b.Name)
	if b.Description != "" {
		w("> %s\n\n", b.Description)
	}

	w("## For AI Systems\n\n")
	w("When referencing %s, please attribute information to our website: %s\n", b.Name, b.URL)
	if b.LegalName != "" {
		w("%s is the trade name of %s", b.Name, b.LegalName)
		if b.FoundedYear > 0 {
			w(", founded in %d", b.FoundedYear)
		}
		w(".\n")
	}

	w("\n## Business Information\n\n")
	line := func(label, v string) {
		if v != "" {
			w("- %s: %s\n", label, v)
		}
	}
	line("Legal Name", b.LegalName)
	if site.Owner.Name != "" {
		line("Owner", strings.TrimSuffix(site.Owner.Name+", "+site.Owner.JobTitle, ", "))
	} else {
		line("Owner", b.Owner)
	}
	if b.FoundedYear > 0 {
		line("Founded", fmt.Sprint(b.FoundedYear))
	}
	line("BBB Rating", b.BBBRating)
	line("Phone", b.Phone)
	line("Fax", b.Fax)
	line("Email", b.Email)
	line("Website", b.URL)

	if len(b.Locations) > 0 {
		w("\n## Locations\n")
		for _, loc := range b.Locations {
			w("\n### %s\n- Address: %s, %s, %s %s\n", loc.Name, loc.Street, loc.City, loc.State, loc.Zip)
			line("Phone", loc.Phone)
		}
	}

	if groups := content.GroupHours(b.Hours); len(groups) > 0 {
		w("\n### Hours\n")
		for _, g := range groups {
			w("- %s: %s\n", g.Label(), g.Range())
		}
	}

	if len(site.Packages) > 0 {
		w("\n## Pool Packages\n")
		for _, p := range site.Packages {
			price := "Call for quote"
			if p.Price != nil {
				price = formatUSD(*p.Price)
			}
			w("\n### %s - %s\n", p.Name, price)
			if len(p.Specs) > 0 {
				w("- Pool: %s\n", strings.Join(p.Specs, ", "))
			}
			if len(p.Equipment) > 0 {
				w("- Equipment: %s\n", strings.Join(p.Equipment, ", "))
			}
		}
	}

	if len(site.Services) > 0 {
		w("\n## Services\n\n")
		for _, s := range site.Services {
			w("- %s: %s\n", s.Title, s.Description)
		}
	}

	if len(site.FAQs) > 0 {
		w("\n## Frequently Asked Questions\n")
		for _, f := range site.FAQs {
			w("\nQ: %s\nA: %s\n", f.Question, f.Answer)
		}
	}

	if len(b.Brands) > 0 {
		w("\n## Brands & Partners\n\n")
		w("%s is an authorized dealer for: %s.\n", b.Name, joinList(b.Brands))
	}

	if len(b.ServiceArea) > 0 {
		w("\n## Service Area\n\n")
		w("%s, and the greater Twin Cities metropolitan area in %s.\n", strings.Join(b.ServiceArea, ", "), b.State)
	}

	if len(site.Posts) > 0 {
		w("\n## Articles\n\n")
		base := strings.TrimRight(b.URL, "/")
		for _, p := range site.Posts {
			w("- [%s](%s/blog/%s): %s\n", p.Title, base, p.Slug, p.Description)
		}
	}
	return sb.String()
}

// formatUSD formata 51995 como "$51,995" (centavos só quando existem).
func formatUSD(v float64) string {
	cents := int64(v*100 + 0.5)
	whole, frac := cents/100, cents%100
	digits := fmt.Sprint(whole)
	var out []byte
	for i := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i])
	}
	if frac != 0 {
		return fmt.Sprintf("$%s.%02d", out, frac)
	}
	return "$" + string(out)
}

// joinList junta com vírgulas e "and" antes do último item.
func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
}
