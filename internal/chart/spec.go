// Package chart declares the linked choropleth maps as a Vega-Lite document.
package chart

// SchemaURL is the Vega-Lite version the page embeds.
const SchemaURL = "https://vega.github.io/schema/vega-lite/v5.json"

// Spec is a top level Vega-Lite document. Every part is a struct rather than
// a map so equal charts marshal to equal bytes.
type Spec struct {
	Schema   string    `json:"$schema"`
	Params   []Param   `json:"params,omitempty"`
	VConcat  []Layered `json:"vconcat"`
	Resolve  Resolve   `json:"resolve"`
	UserMeta UserMeta  `json:"usermeta"`
}

// Layered is one map: the background shapes with the data layer on top.
type Layered struct {
	Title      Title      `json:"title"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Projection Projection `json:"projection"`
	Layer      []Unit     `json:"layer"`
}

type Title struct {
	Text string `json:"text"`
}

type Projection struct {
	Type string `json:"type"`
}

// Unit is a single mark over one data source.
type Unit struct {
	Name      string      `json:"name,omitempty"`
	Data      Data        `json:"data"`
	Mark      Mark        `json:"mark"`
	Transform []Transform `json:"transform,omitempty"`
	Encoding  *Encoding   `json:"encoding,omitempty"`
}

type Data struct {
	URL    string `json:"url"`
	Format Format `json:"format"`
}

type Format struct {
	Type    string `json:"type"`
	Feature string `json:"feature"`
}

type Mark struct {
	Type   string `json:"type"`
	Fill   string `json:"fill,omitempty"`
	Stroke string `json:"stroke,omitempty"`
}

// Transform holds exactly one of a lookup or a filter.
type Transform struct {
	Lookup string      `json:"lookup,omitempty"`
	From   *LookupFrom `json:"from,omitempty"`
	Filter *Predicate  `json:"filter,omitempty"`
}

type LookupFrom struct {
	Data   InlineData `json:"data"`
	Key    string     `json:"key"`
	Fields []string   `json:"fields"`
}

type InlineData struct {
	Values []Datum `json:"values"`
}

// Datum is one filtered row as seen by the chart.
type Datum struct {
	Country        string   `json:"Country"`
	Year           int      `json:"Year"`
	CountryCode    int      `json:"country_code"`
	LifeExpectancy *float64 `json:"life_expectancy"`
	Factor         *float64 `json:"factor"`
}

type Predicate struct {
	Param string `json:"param"`
}

type Encoding struct {
	Color   *Channel  `json:"color,omitempty"`
	Tooltip []Channel `json:"tooltip,omitempty"`
}

type Channel struct {
	Field string `json:"field"`
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`
	Scale *Scale `json:"scale,omitempty"`
}

// Scale leaves Domain out when the view has nothing to measure, letting the
// renderer fall back to its default.
type Scale struct {
	Domain []float64 `json:"domain,omitempty"`
	Scheme string    `json:"scheme"`
}

// Param is a top level selection parameter bound to named views.
type Param struct {
	Name   string         `json:"name"`
	Select Select         `json:"select"`
	Value  []SelectedItem `json:"value,omitempty"`
	Views  []string       `json:"views"`
}

type Select struct {
	Type   string   `json:"type"`
	Fields []string `json:"fields"`
	On     string   `json:"on"`
	Clear  string   `json:"clear"`
	Toggle bool     `json:"toggle"`
}

type SelectedItem struct {
	Country string `json:"Country"`
}

type Resolve struct {
	Scale ResolveScale `json:"scale"`
}

type ResolveScale struct {
	Color string `json:"color"`
}

// UserMeta carries the join report next to the chart.
type UserMeta struct {
	Year    int      `json:"year"`
	Factor  string   `json:"factor"`
	Matched int      `json:"matched"`
	Dropped []string `json:"dropped"`
	Orphans []string `json:"orphans"`
}
