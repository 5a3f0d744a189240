package engine

import (
	"lifeexp/internal/models"
)

// Extent returns the [min, max] of the non-missing values. With nothing to
// measure the domain is invalid; a single distinct value gives [v, v].
func Extent(values []*float64) models.Domain {
	var d models.Domain
	for _, p := range values {
		if p == nil {
			continue
		}
		v := *p
		if !d.Valid {
			d = models.Domain{Min: v, Max: v, Valid: true}
			continue
		}
		if v < d.Min {
			d.Min = v
		}
		if v > d.Max {
			d.Max = v
		}
	}
	return d
}

// LifeExpectancyDomain is the colour domain of the life expectancy map.
func (v View) LifeExpectancyDomain() models.Domain {
	values := make([]*float64, len(v.Rows))
	for i, r := range v.Rows {
		values[i] = r.LifeExpectancy
	}
	return Extent(values)
}

// FactorDomain is the colour domain of the factor map.
func (v View) FactorDomain() models.Domain {
	values := make([]*float64, len(v.Rows))
	for i, r := range v.Rows {
		values[i] = r.Factor
	}
	return Extent(values)
}

// Summary counts the rows of the view and reports both domains.
func (v View) Summary() models.ViewSummary {
	s := models.ViewSummary{
		Year:           v.Year,
		Factor:         v.Factor,
		Rows:           len(v.Rows),
		LifeExpectancy: v.LifeExpectancyDomain(),
		FactorDomain:   v.FactorDomain(),
	}
	for _, r := range v.Rows {
		if r.CountryCode != nil {
			s.Matched++
		} else {
			s.Unmatched++
		}
	}
	return s
}
