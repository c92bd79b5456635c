package content

// Business é o perfil da empresa usado pelo JSON-LD, sitemap e llms.txt.
type Business struct {
	Name        string       `yaml:"name"`
	LegalName   string       `yaml:"legal_name"`
	Tagline     string       `yaml:"tagline"`
	Description string       `yaml:"description"`
	Owner       string       `yaml:"owner"`
	Phone       string       `yaml:"phone"`
	Email       string       `yaml:"email"`
	Fax         string       `yaml:"fax"`
	URL         string       `yaml:"url"`
	Image       string       `yaml:"image"`
	FoundedYear int          `yaml:"founded_year"`
	BBBRating   string       `yaml:"bbb_rating"`
	PriceRange  string       `yaml:"price_range"`
	State       string       `yaml:"state"`
	Locations   []Location   `yaml:"locations"`
	Hours       []DayHours   `yaml:"hours"`
	Social      []SocialLink `yaml:"social"`
	ServiceArea []string     `yaml:"service_area"`
	KnowsAbout  []string     `yaml:"knows_about"`
	Brands      []string     `yaml:"brands"`
}

type Location struct {
	Name   string  `yaml:"name"`
	Street string  `yaml:"street"`
	City   string  `yaml:"city"`
	State  string  `yaml:"state"`
	Zip    string  `yaml:"zip"`
	Phone  string  `yaml:"phone"`
	Lat    float64 `yaml:"lat"`
	Lng    float64 `yaml:"lng"`
}

// DayHours é o horário de um dia, em "HH:MM" 24h. Closed=true ignora Opens/Closes.
type DayHours struct {
	Day    string `yaml:"day"`
	Opens  string `yaml:"opens"`
	Closes string `yaml:"closes"`
	Closed bool   `yaml:"closed"`
}

type SocialLink struct {
	Network string `yaml:"network"`
	URL     string `yaml:"url"`
}

type Service struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type FAQ struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

type ProcessStep struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Review é um depoimento. Rating é opcional (1–5).
type Review struct {
	Author   string `yaml:"author"`
	Rating   *int   `yaml:"rating,omitempty"`
	Text     string `yaml:"text"`
	Date     string `yaml:"date,omitempty"`
	Location string `yaml:"location,omitempty"`
	Service  string `yaml:"service,omitempty"`
}

// Package é um pacote de piscina. Price é opcional ("Call for quote").
type Package struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Price       *float64 `yaml:"price,omitempty"`
	Specs       []string `yaml:"specs"`
	Equipment   []string `yaml:"equipment"`
	Featured    bool     `yaml:"featured"`
}

type Post struct {
	Slug          string   `yaml:"slug"`
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	Author        string   `yaml:"author"`
	DatePublished string   `yaml:"date_published"`
	DateModified  string   `yaml:"date_modified,omitempty"`
	Image         string   `yaml:"image,omitempty"`
	Tags          []string `yaml:"tags"`
}

// LastModified devolve date_modified quando existir, senão date_published.
func (p Post) LastModified() string {
	if p.DateModified != "" {
		return p.DateModified
	}
	return p.DatePublished
}

type Person struct {
	Name        string   `yaml:"name"`
	JobTitle    string   `yaml:"job_title"`
	Description string   `yaml:"description"`
	Path        string   `yaml:"path"`
	Image       string   `yaml:"image,omitempty"`
	Expertise   []string `yaml:"expertise"`
}

// Site agrega todo o conteúdo estático.
type Site struct {
	Business Business      `yaml:"business"`
	Owner    Person        `yaml:"owner"`
	Services []Service     `yaml:"services"`
	Process  []ProcessStep `yaml:"process"`
	FAQs     []FAQ         `yaml:"faqs"`
	Reviews  []Review      `yaml:"reviews"`
	Packages []Package     `yaml:"packages"`
	Posts    []Post        `yaml:"posts"`
}
