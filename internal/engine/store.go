package engine

import (
	"sort"

	"github.com/go-gota/gota/dataframe"

	"lifeexp/internal/models"
)

// Table is the loaded dataset. It is built once at startup and never mutated
// afterwards, so it is safe to share between requests.
type Table struct {
	df dataframe.DataFrame

	// Dictionary encoded countries (ID -> name) and their resolved codes.
	CountryDict []string
	Codes       []Code
	countryIDs  map[string]int32

	// Distinct years present, ascending.
	Years []int

	// Names that resolved to a code already claimed by an earlier name.
	Collisions []string
}

func newTable(df dataframe.DataFrame) *Table {
	t := &Table{df: df, countryIDs: make(map[string]int32)}

	for _, name := range df.Col(models.ColCountry).Records() {
		if _, ok := t.countryIDs[name]; ok {
			continue
		}
		t.countryIDs[name] = int32(len(t.CountryDict))
		t.CountryDict = append(t.CountryDict, name)
	}
	t.Codes = make([]Code, len(t.CountryDict))

	seen := make(map[int]bool)
	years, _ := df.Col(models.ColYear).Int()
	for _, y := range years {
		if !seen[y] {
			seen[y] = true
			t.Years = append(t.Years, y)
		}
	}
	sort.Ints(t.Years)
	return t
}

// Len returns the number of records.
func (t *Table) Len() int {
	return t.df.Nrow()
}

// CodeOf returns the resolved code for a country name.
func (t *Table) CodeOf(country string) Code {
	id, ok := t.countryIDs[country]
	if !ok {
		return Code{}
	}
	return t.Codes[id]
}

// Resolve maps every distinct country name to its geographic identifier.
// A code already claimed by another name is not reused, keeping identifiers
// unique per country.
func (t *Table) Resolve(r *Resolver) {
	owners := make(map[int]string)
	for id, name := range t.CountryDict {
		code := r.Resolve(name)
		if code.Found {
			if _, taken := owners[code.Numeric]; taken {
				t.Collisions = append(t.Collisions, name)
				code = Code{}
			} else {
				owners[code.Numeric] = name
			}
		}
		t.Codes[id] = code
	}
}

// Unmatched returns the sorted distinct country names without a code.
func (t *Table) Unmatched() []string {
	out := make([]string, 0)
	for id, name := range t.CountryDict {
		if !t.Codes[id].Found {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// YearRange returns the slider bounds. ok is false for an empty table.
func (t *Table) YearRange() (lo, hi int, ok bool) {
	if len(t.Years) == 0 {
		return 0, 0, false
	}
	return t.Years[0], t.Years[len(t.Years)-1], true
}

// DefaultYear returns preferred when present, otherwise the nearest year in
// the table. Ties go to the earlier year.
func (t *Table) DefaultYear(preferred int) int {
	if len(t.Years) == 0 {
		return preferred
	}
	best := t.Years[0]
	for _, y := range t.Years[1:] {
		if abs(y-preferred) < abs(best-preferred) {
			best = y
		}
	}
	return best
}

// Meta summarises the table for the page controls.
func (t *Table) Meta(preferredYear int) models.Meta {
	lo, hi, _ := t.YearRange()
	return models.Meta{
		Title:       "Life Expectancy Comparison Dashboard",
		MinYear:     lo,
		MaxYear:     hi,
		DefaultYear: t.DefaultYear(preferredYear),
		Factors:     models.Factors,
		Rows:        t.Len(),
		Unmatched:   t.Unmatched(),
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
