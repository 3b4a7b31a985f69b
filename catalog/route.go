package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
)

// Route is a directed city-pair served by a single carrier. The catalog may be
// asymmetric: the existence of A→B does not guarantee B→A.
type Route struct {
	From               string  `json:"from"`
	To                 string  `json:"to"`
	CarrierName        string  `json:"carrier_name"`
	CarrierCode        string  `json:"carrier_code"`
	BasePrice          float64 `json:"base_price"` // USD, economy, one adult
	NominalDuration    string  `json:"nominal_duration"`
	DailyFrequency     int     `json:"daily_frequency"`
	OriginCountry      string  `json:"origin_country"`
	DestinationCountry string  `json:"destination_country"`
}

// Table is the immutable, indexed route catalog. It is built once at startup
// and never mutated afterwards, so concurrent readers need no locking.
type Table struct {
	version string
	routes  []Route
	index   map[string]int
}

type dataset struct {
	Version string  `json:"version"`
	Routes  []Route `json:"routes"`
}

//go:embed routes.json
var datasetFS embed.FS

// Load builds the route table from the embedded dataset. Any invalid entry
// fails the whole load; a bad catalog should stop the process at startup, not
// surface per-request.
func Load() (*Table, error) {
	raw, err := datasetFS.ReadFile("routes.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded route dataset: %w", err)
	}

	var ds dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("parse route dataset: %w", err)
	}
	if ds.Version == "" {
		return nil, fmt.Errorf("route dataset has no version")
	}

	return NewTable(ds.Version, ds.Routes)
}

// NewTable validates every route and indexes them by (from, to).
func NewTable(version string, routes []Route) (*Table, error) {
	index := make(map[string]int, len(routes))

	for i, r := range routes {
		if err := validateRoute(r); err != nil {
			return nil, fmt.Errorf("route %d (%s-%s): %w", i, r.From, r.To, err)
		}
		key := routeKey(r.From, r.To)
		if prev, dup := index[key]; dup {
			return nil, fmt.Errorf("duplicate route %s-%s (entries %d and %d)", r.From, r.To, prev, i)
		}
		index[key] = i
	}

	return &Table{version: version, routes: routes, index: index}, nil
}

func validateRoute(r Route) error {
	switch {
	case len(r.From) != 3 || len(r.To) != 3:
		return fmt.Errorf("airport codes must be 3 letters")
	case r.From == r.To:
		return fmt.Errorf("origin and destination are the same")
	case r.BasePrice <= 0:
		return fmt.Errorf("base price must be positive, got %.2f", r.BasePrice)
	case r.CarrierName == "":
		return fmt.Errorf("carrier name is empty")
	case r.OriginCountry == "" || r.DestinationCountry == "":
		return fmt.Errorf("origin/destination country is empty")
	}
	return nil
}

func routeKey(from, to string) string {
	return strings.ToUpper(from) + "-" + strings.ToUpper(to)
}

// Version reports the dataset version the table was built from.
func (t *Table) Version() string {
	return t.version
}

// Len reports the number of routes in the catalog.
func (t *Table) Len() int {
	return len(t.routes)
}

// Find looks up the exact (from, to) pair. There is no distance-based
// interpolation for missing pairs; callers fall back to fully synthesized
// offers when a route is absent.
func (t *Table) Find(from, to string) (Route, bool) {
	i, ok := t.index[routeKey(from, to)]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

// Routes returns a copy of the catalog for batch tooling. The copy keeps the
// table itself immutable.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}
