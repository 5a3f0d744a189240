// Package geo holds the world topology the maps are drawn on.
package geo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// DefaultSource is the 110m world topology published with the Vega datasets.
const DefaultSource = "https://cdn.jsdelivr.net/npm/vega-datasets@v1.29.0/data/world-110m.json"

// Feature is the TopoJSON object holding country shapes.
const Feature = "countries"

var (
	// ErrFetch is returned when the topology cannot be retrieved.
	ErrFetch = errors.New("geo: fetch topology")
	// ErrNoCountries is returned when the topology has no countries object.
	ErrNoCountries = errors.New("geo: topology has no countries object")
)

type topology struct {
	Type    string `json:"type"`
	Objects map[string]struct {
		Type       string `json:"type"`
		Geometries []struct {
			ID any `json:"id"`
		} `json:"geometries"`
	} `json:"objects"`
}

// World is a read-only index over the topology's country ids.
type World struct {
	raw []byte
	ids map[int]struct{}
}

// Fetch loads the topology from an http(s) URL or a local path.
func Fetch(ctx context.Context, source string, timeout time.Duration) (*World, error) {
	content, err := read(ctx, source, timeout)
	if err != nil {
		return nil, err
	}
	return Parse(content)
}

// Parse indexes a TopoJSON document.
func Parse(content []byte) (*World, error) {
	var topo topology
	if err := json.Unmarshal(content, &topo); err != nil {
		return nil, fmt.Errorf("geo: decode topology: %w", err)
	}
	obj, ok := topo.Objects[Feature]
	if !ok {
		return nil, ErrNoCountries
	}

	w := &World{raw: content, ids: make(map[int]struct{}, len(obj.Geometries))}
	for _, g := range obj.Geometries {
		if id, ok := numericID(g.ID); ok {
			w.ids[id] = struct{}{}
		}
	}
	return w, nil
}

func numericID(v any) (int, bool) {
	switch id := v.(type) {
	case float64:
		return int(id), true
	case string:
		n, err := strconv.Atoi(id)
		return n, err == nil
	}
	return 0, false
}

func read(ctx context.Context, source string, timeout time.Duration) ([]byte, error) {
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
	resp, err := (&http.Client{Timeout: timeout}).Do(req)
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

// Has reports whether a shape exists for the id.
func (w *World) Has(id int) bool {
	if w == nil {
		return false
	}
	_, ok := w.ids[id]
	return ok
}

// IDs returns the shape ids, ascending.
func (w *World) IDs() []int {
	out := make([]int, 0, len(w.ids))
	for id := range w.ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Raw returns the topology document as loaded.
func (w *World) Raw() []byte {
	return w.raw
}
