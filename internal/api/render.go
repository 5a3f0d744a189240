package api

import (
	"embed"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"lifeexp/internal/models"
)

//go:embed web/index.html
var webFS embed.FS

// Templates renders the embedded page templates for echo.
type Templates struct {
	t *template.Template
}

func NewTemplates() *Templates {
	return &Templates{t: template.Must(template.ParseFS(webFS, "web/*.html"))}
}

func (t *Templates) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.t.ExecuteTemplate(w, name, data)
}

type page struct {
	Loading bool
	Meta    models.Meta
}

// Index renders the dashboard shell. While data loads it renders a page that
// refreshes itself.
func (h *Handler) Index(c echo.Context) error {
	ds, err := h.dataset()
	if err != nil {
		return c.Render(http.StatusServiceUnavailable, "index.html", page{Loading: true})
	}
	return c.Render(http.StatusOK, "index.html", page{Meta: ds.Table.Meta(h.preferredYear)})
}
