package engine

// sampleCSV mirrors the published dataset's header, including the extra
// columns and the padded "Life expectancy " name.
const sampleCSV = `Country,Year,Status,Life expectancy ,Adult Mortality,infant deaths,Alcohol,percentage expenditure,GDP,Population, BMI 
United States of America,2015,Developed,79.3,13,23,,0,,,69.6
United States of America,2014,Developed,79.1,14,23,8.82,0,55837.4,,69.1
Germany,2014,Developed,81.1,68,2,11.03,0,47821.9,8889.0,59.6
Germany,2015,Developed,81.0,67,2,,0,41176.9,81686611,59.8
Atlantis,2014,Developing,70.0,150,5,1.5,0,1000.0,20000,25.0
"Bolivia (Plurinational State of)",2014,Developing,7.1,194,6,3.34,0,,,51.0
France,2013,Developed,82.0,83,3,11.5,0,42592.5,65998687,59.0
`

// testCatalog stands in for the ISO list in tests.
var testCatalog = MapCatalog{
	"United States of America": 840,
	"Germany":                  276,
	"France":                   250,
	"Bolivia":                  68,
}

func loadSample(t interface{ Fatalf(string, ...any) }) *Table {
	table, err := Parse([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("parse sample: %v", err)
	}
	table.Resolve(NewResolver(testCatalog))
	return table
}
