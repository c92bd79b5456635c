// Package seo gera a superfície para crawlers: sitemap.xml, robots.txt e
// llms.txt.
package seo

import (
	"encoding/xml"
	"io"
	"strings"
	"time"

	"paragon-site/internal/content"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// URLSet é o documento sitemap.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type staticPage struct {
	path       string
	changeFreq string
	priority   string
}

// páginas fixas na ordem em que aparecem no sitemap; os posts entram logo
// depois do índice do blog.
var staticPages = []staticPage{
	{"", "weekly", "1.0"},
	{"/services", "monthly", "0.9"},
	{"/packages", "monthly", "0.8"},
	{"/products", "monthly", "0.8"},
	{"/plans-pricing", "monthly", "0.8"},
	{"/gallery", "monthly", "0.7"},
	{"/about", "monthly", "0.7"},
	{"/testimonials", "monthly", "0.7"},
	{"/blog", "weekly", "0.8"},
	{"/contact", "monthly", "0.9"},
}

// Sitemap monta o sitemap. now é o lastmod das páginas fixas; posts usam
// date_modified ou date_published.
func Sitemap(site *content.Site, now time.Time) URLSet {
	base := strings.TrimRight(site.Business.URL, "/")
	today := now.UTC().Format(content.DateLayout)

	set := URLSet{XMLNS: sitemapNS}
	for _, p := range staticPages {
		set.URLs = append(set.URLs, URL{
			Loc:        base + p.path,
			LastMod:    today,
			ChangeFreq: p.changeFreq,
			Priority:   p.priority,
		})
		if p.path == "/blog" {
			for _, post := range site.Posts {
				set.URLs = append(set.URLs, URL{
					Loc:        base + "/blog/" + post.Slug,
					LastMod:    post.LastModified(),
					ChangeFreq: "monthly",
					Priority:   "0.7",
				})
			}
		}
	}
	return set
}

// WriteTo grava o sitemap com o cabeçalho XML.
func (s URLSet) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if _, err := io.WriteString(cw, xml.Header); err != nil {
		return cw.n, err
	}
	enc := xml.NewEncoder(cw)
	enc.Indent("", "  ")
	if err := enc.Encode(s); err != nil {
		return cw.n, err
	}
	_, err := io.WriteString(cw, "\n")
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
