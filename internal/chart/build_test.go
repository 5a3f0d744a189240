package chart

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeexp/internal/engine"
	"lifeexp/internal/geo"
	"lifeexp/internal/models"
)

func num(v float64) *float64 { return &v }
func code(v int) *int         { return &v }

func sampleView() engine.View {
	return engine.View{
		Year:   2014,
		Factor: models.Factors[2], // GDP
		Rows: []models.Row{
			{Country: "Atlantis", Year: 2014, LifeExpectancy: num(70), Factor: num(1000)},
			{Country: "Germany", CountryCode: code(276), Year: 2014, LifeExpectancy: num(81.1), Factor: num(47821.9)},
			{Country: "Tuvalu", CountryCode: code(798), Year: 2014, LifeExpectancy: nil, Factor: num(3000)},
			{Country: "United States of America", CountryCode: code(840), Year: 2014, LifeExpectancy: num(79.1), Factor: num(55837.4)},
		},
	}
}

func sampleWorld(t *testing.T) *geo.World {
	w, err := geo.Parse([]byte(`{"type":"Topology","objects":{"countries":{"type":"GeometryCollection","geometries":[{"id":840},{"id":276},{"id":250}]}}}`))
	require.NoError(t, err)
	return w
}

func TestBuildUnitedStates(t *testing.T) {
	sel := NewSelection("")
	spec := Build(sampleView(), sampleWorld(t), sel, DefaultOptions("/api/world"))

	require.Len(t, spec.VConcat, 2)
	life, factor := spec.VConcat[0], spec.VConcat[1]

	assert.Equal(t, "Life Expectancy Worldwide in 2014", life.Title.Text)
	assert.Equal(t, "World GDP in 2014", factor.Title.Text)

	// Both maps draw the background under the data layer.
	for _, m := range spec.VConcat {
		require.Len(t, m.Layer, 2)
		assert.Equal(t, "#aaa", m.Layer[0].Mark.Fill)
		assert.Equal(t, "white", m.Layer[0].Mark.Stroke)
		assert.Equal(t, "equirectangular", m.Projection.Type)
		assert.Equal(t, 600, m.Width)
		assert.Equal(t, 300, m.Height)
	}

	lifeData := life.Layer[1]
	lookup := lifeData.Transform[0]
	assert.Equal(t, "id", lookup.Lookup)
	assert.Equal(t, "country_code", lookup.From.Key)

	var us *Datum
	for i, d := range lookup.From.Data.Values {
		if d.CountryCode == 840 {
			us = &lookup.From.Data.Values[i]
		}
	}
	require.NotNil(t, us)
	assert.Equal(t, 79.1, *us.LifeExpectancy)
	assert.Equal(t, 55837.4, *us.Factor)

	assert.Equal(t, "life_expectancy", lifeData.Encoding.Color.Field)
	assert.Equal(t, "factor", factor.Layer[1].Encoding.Color.Field)
	assert.Equal(t, "GDP", factor.Layer[1].Encoding.Color.Title)
	assert.Equal(t, "independent", spec.Resolve.Scale.Color)
}

func TestBuildDomains(t *testing.T) {
	spec := Build(sampleView(), nil, NewSelection(""), DefaultOptions("/api/world"))

	life := spec.VConcat[0].Layer[1].Encoding.Color.Scale
	assert.Equal(t, []float64{70, 81.1}, life.Domain)
	assert.Equal(t, "oranges", life.Scheme)

	factor := spec.VConcat[1].Layer[1].Encoding.Color.Scale
	assert.Equal(t, []float64{1000, 55837.4}, factor.Domain)
	assert.Equal(t, "yellowgreenblue", factor.Scheme)
}

func TestBuildSharedSelection(t *testing.T) {
	sel := NewSelection("")
	sel.Select("United States of America")
	spec := Build(sampleView(), nil, sel, DefaultOptions("/api/world"))

	require.Len(t, spec.Params, 1)
	p := spec.Params[0]
	assert.Equal(t, "selector", p.Name)
	assert.Equal(t, "point", p.Select.Type)
	assert.Equal(t, "click", p.Select.On)
	assert.Equal(t, []string{"Country"}, p.Select.Fields)
	assert.Equal(t, []SelectedItem{{Country: "United States of America"}}, p.Value)
	assert.ElementsMatch(t, []string{spec.VConcat[0].Layer[1].Name, spec.VConcat[1].Layer[1].Name}, p.Views)

	// Both maps filter on the same selection.
	assert.Equal(t, spec.VConcat[0].Layer[1].Transform[1], spec.VConcat[1].Layer[1].Transform[1])
	assert.Equal(t, "selector", spec.VConcat[0].Layer[1].Transform[1].Filter.Param)

	// A new selection replaces the old one.
	sel.Select("Germany")
	assert.Equal(t, []SelectedItem{{Country: "Germany"}}, sel.Param().Value)
	sel.Select("")
	assert.Empty(t, sel.Param().Value)
}

func TestBuildJoinReport(t *testing.T) {
	spec := Build(sampleView(), sampleWorld(t), NewSelection(""), DefaultOptions("/api/world"))

	assert.Equal(t, 3, spec.UserMeta.Matched)
	assert.Equal(t, []string{"Atlantis"}, spec.UserMeta.Dropped)
	assert.Equal(t, []string{"Tuvalu"}, spec.UserMeta.Orphans)

	for _, d := range spec.VConcat[0].Layer[1].Transform[0].From.Data.Values {
		assert.NotEqual(t, "Atlantis", d.Country)
	}
}

func TestBuildEmptyView(t *testing.T) {
	view := engine.View{Year: 1900, Factor: models.DefaultFactor, Rows: []models.Row{}}

	var spec *Spec
	require.NotPanics(t, func() {
		spec = Build(view, nil, NewSelection(""), DefaultOptions("/api/world"))
	})
	assert.Nil(t, spec.VConcat[0].Layer[1].Encoding.Color.Scale.Domain)
	assert.Empty(t, spec.VConcat[0].Layer[1].Transform[0].From.Data.Values)
}

func TestBuildFlatDomain(t *testing.T) {
	view := engine.View{
		Year:   2014,
		Factor: models.DefaultFactor,
		Rows: []models.Row{
			{Country: "Germany", CountryCode: code(276), Year: 2014, LifeExpectancy: num(80), Factor: num(5)},
			{Country: "France", CountryCode: code(250), Year: 2014, LifeExpectancy: num(80), Factor: num(5)},
		},
	}
	spec := Build(view, nil, NewSelection(""), DefaultOptions("/api/world"))
	assert.Equal(t, []float64{80, 80}, spec.VConcat[0].Layer[1].Encoding.Color.Scale.Domain)
}

func TestBuildIdempotent(t *testing.T) {
	first, err := json.Marshal(Build(sampleView(), nil, NewSelection(""), DefaultOptions("/api/world")))
	require.NoError(t, err)
	second, err := json.Marshal(Build(sampleView(), nil, NewSelection(""), DefaultOptions("/api/world")))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}
