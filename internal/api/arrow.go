package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/labstack/echo/v4"

	"lifeexp/internal/engine"
)

// MIMEArrowStream is the media type of an Arrow IPC stream.
const MIMEArrowStream = "application/vnd.apache.arrow.stream"

// viewSchema describes the filtered view. The factor column is named after
// the selected factor's key.
func viewSchema(factorKey string) *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "country", Type: arrow.BinaryTypes.String},
		{Name: "country_code", Type: arrow.PrimitiveTypes.Int32, Nullable: true},
		{Name: "year", Type: arrow.PrimitiveTypes.Int32},
		{Name: "life_expectancy", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
		{Name: factorKey, Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	}, nil)
}

// WriteArrow encodes a view as a single record batch IPC stream.
func WriteArrow(w io.Writer, view engine.View) error {
	mem := memory.NewGoAllocator()
	schema := viewSchema(view.Factor.Key)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	country := b.Field(0).(*array.StringBuilder)
	code := b.Field(1).(*array.Int32Builder)
	year := b.Field(2).(*array.Int32Builder)
	life := b.Field(3).(*array.Float64Builder)
	factor := b.Field(4).(*array.Float64Builder)

	for _, r := range view.Rows {
		country.Append(r.Country)
		if r.CountryCode != nil {
			code.Append(int32(*r.CountryCode))
		} else {
			code.AppendNull()
		}
		year.Append(int32(r.Year))
		if r.LifeExpectancy != nil {
			life.Append(*r.LifeExpectancy)
		} else {
			life.AppendNull()
		}
		if r.Factor != nil {
			factor.Append(*r.Factor)
		} else {
			factor.AppendNull()
		}
	}

	rec := b.NewRecord()
	defer rec.Release()

	wr := ipc.NewWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(mem))
	if err := wr.Write(rec); err != nil {
		wr.Close()
		return fmt.Errorf("api: write arrow record: %w", err)
	}
	return wr.Close()
}

// GetViewArrow streams the filtered view as Arrow IPC.
func (h *Handler) GetViewArrow(c echo.Context) error {
	ds, err := h.dataset()
	if err != nil {
		return err
	}
	year, factor, err := h.viewParams(c, ds.Table)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := WriteArrow(&buf, ds.Table.Filter(year, factor)); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, MIMEArrowStream, buf.Bytes())
}
