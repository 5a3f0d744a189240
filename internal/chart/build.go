package chart

import (
	"fmt"
	"sort"

	"lifeexp/internal/engine"
	"lifeexp/internal/geo"
	"lifeexp/internal/models"
)

// Options control the map layout.
type Options struct {
	WorldURL   string
	Width      int
	Height     int
	Projection string
}

// DefaultOptions match the published dashboard.
func DefaultOptions(worldURL string) Options {
	return Options{
		WorldURL:   worldURL,
		Width:      600,
		Height:     300,
		Projection: "equirectangular",
	}
}

const (
	lifeView   = "life_expectancy_map"
	factorView = "factor_map"

	lifeScheme   = "oranges"
	factorScheme = "yellowgreenblue"
)

// Build declares the two stacked maps for a filtered view. Both maps filter on
// the same selection and keep independent colour scales. world may be nil, in
// which case no orphan codes are reported.
func Build(view engine.View, world *geo.World, sel *Selection, opts Options) *Spec {
	values, meta := join(view, world)
	meta.Year = view.Year
	meta.Factor = view.Factor.Column

	life := mapLayer(opts, sel, values, lifeView,
		fmt.Sprintf("Life Expectancy Worldwide in %d", view.Year),
		Channel{
			Field: "life_expectancy",
			Type:  "quantitative",
			Title: "Life Expectancy",
			Scale: scale(view.LifeExpectancyDomain(), lifeScheme),
		})

	factor := mapLayer(opts, sel, values, factorView,
		fmt.Sprintf("World %s in %d", view.Factor.Label, view.Year),
		Channel{
			Field: "factor",
			Type:  "quantitative",
			Title: view.Factor.Label,
			Scale: scale(view.FactorDomain(), factorScheme),
		})

	return &Spec{
		Schema:   SchemaURL,
		Params:   []Param{sel.Param(lifeView, factorView)},
		VConcat:  []Layered{life, factor},
		Resolve:  Resolve{Scale: ResolveScale{Color: "independent"}},
		UserMeta: meta,
	}
}

// join keeps the rows that carry a code. Rows without one are reported as
// dropped, codes without a shape as orphans.
func join(view engine.View, world *geo.World) ([]Datum, UserMeta) {
	meta := UserMeta{Dropped: make([]string, 0), Orphans: make([]string, 0)}
	values := make([]Datum, 0, len(view.Rows))
	for _, r := range view.Rows {
		if r.CountryCode == nil {
			meta.Dropped = append(meta.Dropped, r.Country)
			continue
		}
		if world != nil && !world.Has(*r.CountryCode) {
			meta.Orphans = append(meta.Orphans, r.Country)
		}
		values = append(values, Datum{
			Country:        r.Country,
			Year:           r.Year,
			CountryCode:    *r.CountryCode,
			LifeExpectancy: r.LifeExpectancy,
			Factor:         r.Factor,
		})
	}
	sort.Slice(values, func(i, j int) bool { return values[i].CountryCode < values[j].CountryCode })
	meta.Matched = len(values)
	return values, meta
}

func scale(d models.Domain, scheme string) *Scale {
	s := &Scale{Scheme: scheme}
	if d.Valid {
		s.Domain = []float64{d.Min, d.Max}
	}
	return s
}

func background(opts Options) Unit {
	return Unit{
		Data: worldData(opts),
		Mark: Mark{Type: "geoshape", Fill: "#aaa", Stroke: "white"},
	}
}

func worldData(opts Options) Data {
	return Data{URL: opts.WorldURL, Format: Format{Type: "topojson", Feature: geo.Feature}}
}

func mapLayer(opts Options, sel *Selection, values []Datum, name, title string, color Channel) Layered {
	data := Unit{
		Name: name,
		Data: worldData(opts),
		Mark: Mark{Type: "geoshape"},
		Transform: []Transform{
			{
				Lookup: "id",
				From: &LookupFrom{
					Data:   InlineData{Values: values},
					Key:    "country_code",
					Fields: []string{"Country", "life_expectancy", "factor", "Year"},
				},
			},
			sel.Filter(),
		},
		Encoding: &Encoding{
			Color: &color,
			Tooltip: []Channel{
				{Field: "Country", Type: "nominal", Title: "Country"},
				{Field: color.Field, Type: "quantitative", Title: color.Title},
			},
		},
	}

	return Layered{
		Title:      Title{Text: title},
		Width:      opts.Width,
		Height:     opts.Height,
		Projection: Projection{Type: opts.Projection},
		Layer:      []Unit{background(opts), data},
	}
}
