package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"lifeexp/internal/chart"
	"lifeexp/internal/engine"
	"lifeexp/internal/geo"
	"lifeexp/internal/models"
)

// Dataset is everything loaded at startup. It is read-only once published.
type Dataset struct {
	Table *engine.Table
	World *geo.World
}

type Handler struct {
	mu   sync.RWMutex
	data *Dataset

	preferredYear int
	logger        *zap.SugaredLogger
}

// NewHandler returns a Handler. With nil data every data route answers 503
// until SetData is called.
func NewHandler(data *Dataset, preferredYear int, logger *zap.SugaredLogger) *Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Handler{data: data, preferredYear: preferredYear, logger: logger}
}

// SetData publishes a loaded dataset.
func (h *Handler) SetData(data *Dataset) {
	h.mu.Lock()
	h.data = data
	h.mu.Unlock()
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/healthz", h.Health)

	api := e.Group("/api")
	api.GET("/meta", h.GetMeta)
	api.GET("/chart", h.GetChart)
	api.GET("/view", h.GetView)
	api.GET("/view.arrow", h.GetViewArrow)
	api.GET("/unmatched", h.GetUnmatched)
	api.GET("/world", h.GetWorld)
}

var errLoading = echo.NewHTTPError(http.StatusServiceUnavailable, "data is still loading")

func (h *Handler) dataset() (*Dataset, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.data == nil || h.data.Table == nil {
		return nil, errLoading
	}
	return h.data, nil
}

// --- HANDLERS ---
func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// viewParams reads year and factor, defaulting to the slider default and the
// first dropdown entry.
func (h *Handler) viewParams(c echo.Context, table *engine.Table) (int, models.Factor, error) {
	year := table.DefaultYear(h.preferredYear)
	if raw := strings.TrimSpace(c.QueryParam("year")); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			return 0, models.Factor{}, echo.NewHTTPError(http.StatusBadRequest, "year must be an integer").SetInternal(err)
		}
		year = y
	}

	factor := models.DefaultFactor
	if raw := c.QueryParam("factor"); raw != "" {
		f, err := engine.ParseFactor(raw)
		if err != nil {
			if errors.Is(err, engine.ErrUnknownFactor) {
				return 0, models.Factor{}, echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
			}
			return 0, models.Factor{}, err
		}
		factor = f
	}
	return year, factor, nil
}

func (h *Handler) Health(c echo.Context) error {
	if _, err := h.dataset(); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetMeta(c echo.Context) error {
	ds, err := h.dataset()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ds.Table.Meta(h.preferredYear))
}

// GetChart returns the Vega-Lite document for the selected year and factor.
// An optional country preselects the shared map selection.
func (h *Handler) GetChart(c echo.Context) error {
	ds, err := h.dataset()
	if err != nil {
		return err
	}
	year, factor, err := h.viewParams(c, ds.Table)
	if err != nil {
		return err
	}

	view := ds.Table.Filter(year, factor)
	sel := chart.NewSelection(strings.TrimSpace(c.QueryParam("country")))
	spec := chart.Build(view, ds.World, sel, chart.DefaultOptions("/api/world"))

	h.logger.Debugw("chart built",
		"year", year,
		"factor", factor.Column,
		"matched", spec.UserMeta.Matched,
		"dropped", len(spec.UserMeta.Dropped))
	return c.JSON(http.StatusOK, spec)
}

func (h *Handler) GetView(c echo.Context) error {
	ds, err := h.dataset()
	if err != nil {
		return err
	}
	year, factor, err := h.viewParams(c, ds.Table)
	if err != nil {
		return err
	}

	view := ds.Table.Filter(year, factor)
	rows := view.Rows
	total := len(rows)
	limit, offset := getPaginationParams(c, total)

	page := []models.Row{}
	if offset < total {
		end := total
		if limit < total-offset {
			end = offset + limit
		}
		page = rows[offset:end]
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"summary": view.Summary(),
		"data":    page,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

func (h *Handler) GetUnmatched(c echo.Context) error {
	ds, err := h.dataset()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ds.Table.Unmatched())
}

func (h *Handler) GetWorld(c echo.Context) error {
	ds, err := h.dataset()
	if err != nil {
		return err
	}
	if ds.World == nil {
		return echo.NewHTTPError(http.StatusNotFound, "world topology not loaded")
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, ds.World.Raw())
}
