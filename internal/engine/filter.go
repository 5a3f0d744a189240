package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"lifeexp/internal/models"
)

// View is the filtered view for one year and one factor.
type View struct {
	Year   int
	Factor models.Factor
	Rows   []models.Row
}

// ParseFactor accepts a factor's column name or its key.
func ParseFactor(s string) (models.Factor, error) {
	s = strings.TrimSpace(s)
	for _, f := range models.Factors {
		if s == f.Column || strings.EqualFold(s, f.Key) {
			return f, nil
		}
	}
	return models.Factor{}, fmt.Errorf("%w: %q", ErrUnknownFactor, s)
}

// Filter narrows the table to the rows of year, keeping the country, year,
// life expectancy and factor columns. Rows are ordered by country name.
// A year without rows yields an empty view.
func (t *Table) Filter(year int, factor models.Factor) View {
	v := View{Year: year, Factor: factor, Rows: make([]models.Row, 0)}
	if t.Len() == 0 {
		return v
	}

	sub := t.df.Filter(dataframe.F{
		Colname:    models.ColYear,
		Comparator: series.Eq,
		Comparando: year,
	})
	if sub.Err != nil || sub.Nrow() == 0 {
		return v
	}
	sub = sub.Select([]string{models.ColCountry, models.ColYear, models.ColLifeExpectancy, factor.Column}).
		Arrange(dataframe.Sort(models.ColCountry))
	if sub.Err != nil {
		return v
	}

	countries := sub.Col(models.ColCountry).Records()
	life := sub.Col(models.ColLifeExpectancy).Float()
	values := sub.Col(factor.Column).Float()
	for i, name := range countries {
		v.Rows = append(v.Rows, models.Row{
			Country:        name,
			CountryCode:    t.CodeOf(name).Ptr(),
			Year:           year,
			LifeExpectancy: optional(life[i]),
			Factor:         optional(values[i]),
		})
	}
	return v
}

func optional(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
