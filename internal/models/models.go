package models

// Factor is one of the socioeconomic columns that can be compared with life expectancy.
type Factor struct {
	Column string `json:"column"`
	Key    string `json:"key"`
	Label  string `json:"label"`
}

// Column names as they appear in the source CSV. Note the trailing space
// in the life expectancy header.
const (
	ColCountry        = "Country"
	ColYear           = "Year"
	ColLifeExpectancy = "Life expectancy "
	ColAdultMortality = "Adult Mortality"
	ColPopulation     = "Population"
	ColGDP            = "GDP"
	ColInfantDeaths   = "infant deaths"
	ColAlcohol        = "Alcohol"
)

// Factors is the fixed dropdown enumeration, in display order.
var Factors = []Factor{
	{Column: ColAdultMortality, Key: "adult_mortality", Label: "Adult Mortality"},
	{Column: ColPopulation, Key: "population", Label: "Population"},
	{Column: ColGDP, Key: "gdp", Label: "GDP"},
	{Column: ColInfantDeaths, Key: "infant_deaths", Label: "infant deaths"},
	{Column: ColAlcohol, Key: "alcohol", Label: "Alcohol"},
}

// DefaultFactor is the first dropdown entry.
var DefaultFactor = Factors[0]

// Row is one record of the filtered view. Missing numbers are nil.
type Row struct {
	Country        string   `json:"country"`
	CountryCode    *int     `json:"country_code"`
	Year           int      `json:"year"`
	LifeExpectancy *float64 `json:"life_expectancy"`
	Factor         *float64 `json:"factor"`
}

// Domain is the [min, max] of a column within one filtered view.
type Domain struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Valid bool    `json:"valid"`
}

// ViewSummary describes a filtered view.
type ViewSummary struct {
	Year           int    `json:"year"`
	Factor         Factor `json:"factor"`
	Rows           int    `json:"rows"`
	Matched        int    `json:"matched"`
	Unmatched      int    `json:"unmatched"`
	LifeExpectancy Domain `json:"life_expectancy"`
	FactorDomain   Domain `json:"factor_domain"`
}

// Meta feeds the page controls.
type Meta struct {
	Title       string   `json:"title"`
	MinYear     int      `json:"min_year"`
	MaxYear     int      `json:"max_year"`
	DefaultYear int      `json:"default_year"`
	Factors     []Factor `json:"factors"`
	Rows        int      `json:"rows"`
	Unmatched   []string `json:"unmatched"`
}
