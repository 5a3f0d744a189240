package engine

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"go.uber.org/zap"

	"lifeexp/internal/models"
)

// DefaultSource is the published life expectancy dataset.
const DefaultSource = "https://raw.githubusercontent.com/xyzhang09/BMI706_Project/main/Life_Expectancy_Data.csv"

var columnTypes = map[string]series.Type{
	models.ColCountry:        series.String,
	models.ColYear:           series.Int,
	models.ColLifeExpectancy: series.Float,
	models.ColAdultMortality: series.Float,
	models.ColPopulation:     series.Float,
	models.ColGDP:            series.Float,
	models.ColInfantDeaths:   series.Float,
	models.ColAlcohol:        series.Float,
}

// requiredColumns is the projection kept after parsing, in table order.
var requiredColumns = []string{
	models.ColCountry,
	models.ColYear,
	models.ColLifeExpectancy,
	models.ColAdultMortality,
	models.ColPopulation,
	models.ColGDP,
	models.ColInfantDeaths,
	models.ColAlcohol,
}

// Loader fetches and parses the dataset.
type Loader struct {
	Client *http.Client
	Logger *zap.SugaredLogger
}

// NewLoader returns a Loader. A zero timeout means requests never time out.
func NewLoader(timeout time.Duration, logger *zap.SugaredLogger) *Loader {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Loader{Client: &http.Client{Timeout: timeout}, Logger: logger}
}

// Load reads the CSV at source, an http(s) URL or a local path, into a Table.
func (l *Loader) Load(ctx context.Context, source string) (*Table, error) {
	start := time.Now()
	l.Logger.Infow("loading dataset", "source", source)

	content, err := l.read(ctx, source)
	if err != nil {
		return nil, err
	}

	table, err := Parse(content)
	if err != nil {
		return nil, err
	}

	l.Logger.Infow("dataset loaded",
		"rows", table.Len(),
		"countries", len(table.CountryDict),
		"years", len(table.Years),
		"elapsed", time.Since(start))
	return table, nil
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		content, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFetch, err)
		}
		return content, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", ErrFetch, source, resp.Status)
	}
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return content, nil
}

// Parse builds a Table from raw CSV bytes. Header names are matched after
// trimming whitespace; empty cells become missing values.
func Parse(content []byte) (*Table, error) {
	header, err := csv.NewReader(bytes.NewReader(content)).Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrMalformed, err)
	}

	// Map each canonical column to the raw header that carries it.
	raw := make(map[string]string, len(requiredColumns))
	for _, h := range header {
		for _, col := range requiredColumns {
			if strings.TrimSpace(h) == strings.TrimSpace(col) {
				raw[col] = h
			}
		}
	}

	types := make(map[string]series.Type, len(raw))
	selected := make([]string, 0, len(requiredColumns))
	for _, col := range requiredColumns {
		h, ok := raw[col]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
		types[h] = columnTypes[col]
		selected = append(selected, h)
	}

	df := dataframe.ReadCSV(bytes.NewReader(content),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{"", "NA", "NaN", "<nil>"}),
		dataframe.WithTypes(types),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, df.Err)
	}

	df = df.Select(selected)
	for _, col := range requiredColumns {
		if raw[col] != col {
			df = df.Rename(col, raw[col])
		}
	}
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, df.Err)
	}

	// Every record needs a country and a year.
	countries := df.Col(models.ColCountry).Records()
	missing := df.Col(models.ColCountry).IsNaN()
	years := df.Col(models.ColYear).Float()
	keep := make([]int, 0, len(countries))
	for i := range countries {
		if missing[i] || strings.TrimSpace(countries[i]) == "" || math.IsNaN(years[i]) {
			continue
		}
		keep = append(keep, i)
	}
	if len(keep) == 0 && len(countries) > 0 {
		return nil, fmt.Errorf("%w: no record has both a country and a year", ErrMalformed)
	}
	if len(keep) != len(countries) {
		df = df.Subset(keep)
		if df.Err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, df.Err)
		}
	}

	return newTable(df), nil
}
