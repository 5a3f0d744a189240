package engine

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/biter777/countries"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Code is the outcome of a country lookup. Numeric is only meaningful when
// Found is true.
type Code struct {
	Numeric int
	Found   bool
}

// Ptr returns the numeric code, or nil when the lookup failed.
func (c Code) Ptr() *int {
	if !c.Found {
		return nil
	}
	n := c.Numeric
	return &n
}

// Catalog maps a country name to its ISO 3166-1 numeric code.
type Catalog interface {
	Lookup(name string) (int, bool)
}

// ISOCatalog is the Catalog backed by the ISO 3166 country list.
type ISOCatalog struct{}

// Lookup implements Catalog.
func (ISOCatalog) Lookup(name string) (int, bool) {
	c := countries.ByName(name)
	if c == countries.Unknown || !c.IsValid() {
		return 0, false
	}
	return int(c), true
}

// OfficialNames covers ISO 3166 official names the country list does not
// match by name.
var OfficialNames = MapCatalog{
	"United Kingdom of Great Britain and Northern Ireland": 826,
	"United Republic of Tanzania":                          834,
	"The former Yugoslav republic of Macedonia":            807,
	"Republic of North Macedonia":                          807,
	"Plurinational State of Bolivia":                       68,
	"Bolivarian Republic of Venezuela":                     862,
	"Islamic Republic of Iran":                             364,
	"Federated States of Micronesia":                       583,
}

// ChainCatalog asks each catalog in turn and returns the first hit.
type ChainCatalog []Catalog

// Lookup implements Catalog.
func (c ChainCatalog) Lookup(name string) (int, bool) {
	for _, cat := range c {
		if code, ok := cat.Lookup(name); ok {
			return code, true
		}
	}
	return 0, false
}

// DefaultCatalog is the ISO country list backed by the official-name table.
func DefaultCatalog() Catalog {
	return ChainCatalog{ISOCatalog{}, OfficialNames}
}

// MapCatalog is a fixed name -> code table.
type MapCatalog map[string]int

// Lookup implements Catalog.
func (m MapCatalog) Lookup(name string) (int, bool) {
	code, ok := m[name]
	return code, ok
}

var qualifier = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// Resolver looks names up in a Catalog, trying progressively looser forms of
// the name. Results are memoised, so a name always resolves the same way.
type Resolver struct {
	catalog Catalog

	mu    sync.Mutex
	cache map[string]Code
}

// NewResolver returns a Resolver over catalog.
func NewResolver(catalog Catalog) *Resolver {
	return &Resolver{catalog: catalog, cache: make(map[string]Code)}
}

// Resolve returns the code for name. It never fails: names the catalog does
// not know yield a Code with Found false.
func (r *Resolver) Resolve(name string) Code {
	r.mu.Lock()
	defer r.mu.Unlock()

	if code, ok := r.cache[name]; ok {
		return code
	}
	code := r.lookup(name)
	r.cache[name] = code
	return code
}

func (r *Resolver) lookup(name string) (code Code) {
	defer func() {
		// A catalog that panics is treated like one that does not know the name.
		if recover() != nil {
			code = Code{}
		}
	}()

	for _, candidate := range candidates(name) {
		if n, ok := r.catalog.Lookup(candidate); ok {
			return Code{Numeric: n, Found: true}
		}
	}
	return Code{}
}

// candidates lists the forms tried for a name, most exact first.
func candidates(name string) []string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil
	}
	out := []string{trimmed}
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		for _, c := range out {
			if c == s {
				return
			}
		}
		out = append(out, s)
	}

	folded := fold(trimmed)
	add(folded)
	add(qualifier.ReplaceAllString(trimmed, ""))
	add(qualifier.ReplaceAllString(folded, ""))
	return out
}

// fold strips diacritics and case folds: "Côte d'Ivoire" -> "cote d'ivoire".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}
