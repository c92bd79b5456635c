// Package content carrega o conteúdo estático do site (perfil da empresa,
// serviços, FAQs, depoimentos, pacotes e posts do blog) a partir de YAML.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout é o formato das datas dos posts e depoimentos.
const DateLayout = "2006-01-02"

var (
	ErrMissingBusinessName = errors.New("content: business.name is required")
	ErrMissingBusinessURL  = errors.New("content: business.url is required")
	ErrInvalidRating       = errors.New("content: review rating must be between 1 and 5")
	ErrInvalidPost         = errors.New("content: invalid post")
	ErrDuplicateSlug       = errors.New("content: duplicate post slug")
)

//go:embed site.yaml
var defaultSite []byte

// Default devolve o conteúdo embutido no binário.
func Default() (*Site, error) {
	return Load(bytes.NewReader(defaultSite))
}

// LoadFile lê o conteúdo de um arquivo YAML. Caminho vazio usa o embutido.
func LoadFile(path string) (*Site, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("content: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodifica, valida e normaliza o conteúdo. Posts ficam ordenados do
// mais recente para o mais antigo.
func Load(r io.Reader) (*Site, error) {
	var s Site
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("content: decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	sort.SliceStable(s.Posts, func(i, j int) bool {
		return s.Posts[i].DatePublished > s.Posts[j].DatePublished
	})
	return &s, nil
}

// Validate confere os campos de que os geradores dependem.
func (s *Site) Validate() error {
	if s.Business.Name == "" {
		return ErrMissingBusinessName
	}
	if s.Business.URL == "" {
		return ErrMissingBusinessURL
	}
	for i, rv := range s.Reviews {
		if rv.Rating != nil && (*rv.Rating < 1 || *rv.Rating > 5) {
			return fmt.Errorf("%w: review %d (%s)", ErrInvalidRating, i, rv.Author)
		}
	}
	seen := make(map[string]struct{}, len(s.Posts))
	for _, p := range s.Posts {
		if p.Slug == "" || p.Title == "" || p.Author == "" {
			return fmt.Errorf("%w: slug, title and author are required (%q)", ErrInvalidPost, p.Slug)
		}
		if _, err := time.Parse(DateLayout, p.DatePublished); err != nil {
			return fmt.Errorf("%w: %s: date_published: %v", ErrInvalidPost, p.Slug, err)
		}
		if p.DateModified != "" {
			if _, err := time.Parse(DateLayout, p.DateModified); err != nil {
				return fmt.Errorf("%w: %s: date_modified: %v", ErrInvalidPost, p.Slug, err)
			}
		}
		if _, dup := seen[p.Slug]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateSlug, p.Slug)
		}
		seen[p.Slug] = struct{}{}
	}
	return nil
}

// PostBySlug procura um post pelo slug.
func (s *Site) PostBySlug(slug string) (Post, bool) {
	for _, p := range s.Posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return Post{}, false
}

// FeaturedPackage devolve o pacote em destaque, se houver.
func (s *Site) FeaturedPackage() (Package, bool) {
	for _, p := range s.Packages {
		if p.Featured {
			return p, true
		}
	}
	return Package{}, false
}
