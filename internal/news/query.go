package news

import (
	"net/url"
	"strconv"
	"strings"
)

// Selection is the active filter. At most one of Category and Query is
// non-empty; use WithCategory and WithQuery to keep it that way.
type Selection struct {
	Category string
	Query    string
}

// WithCategory selects a category and clears any query.
func (s Selection) WithCategory(category string) Selection {
	return Selection{Category: category}
}

// WithQuery selects a search query and clears any category.
func (s Selection) WithQuery(query string) Selection {
	return Selection{Query: query}
}

// IsDefault reports whether neither filter is set.
func (s Selection) IsDefault() bool {
	return s.Category == "" && s.Query == ""
}

func (s Selection) String() string {
	switch {
	case s.Query != "":
		return "query=" + s.Query
	case s.Category != "":
		return "category=" + s.Category
	default:
		return "top headlines"
	}
}

const (
	everythingPath   = "/everything"
	topHeadlinesPath = "/top-headlines"
)

// QueryBuilder turns a Selection into one of the three request URLs.
type QueryBuilder struct {
	BaseURL  string
	APIKey   string
	Language string
	Country  string
	PageSize int
}

// Build returns the request URL for sel. Category values are not checked
// against the catalog; whatever is selected is sent.
func (b QueryBuilder) Build(sel Selection) string {
	params := url.Values{}
	params.Set("apiKey", b.APIKey)
	params.Set("language", b.Language)
	params.Set("pageSize", strconv.Itoa(b.PageSize))

	path := topHeadlinesPath
	switch {
	case sel.Query != "":
		path = everythingPath
		params.Set("q", sel.Query)
		params.Set("sortBy", "publishedAt")
	case sel.Category != "":
		params.Set("category", sel.Category)
		params.Set("country", b.Country)
	default:
		params.Set("country", b.Country)
	}

	return strings.TrimRight(b.BaseURL, "/") + path + "?" + params.Encode()
}

// RedactURL masks the apiKey parameter so request URLs can be logged.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparseable url>"
	}
	q := u.Query()
	if q.Get("apiKey") != "" {
		q.Set("apiKey", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
