package server

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/rshade/carbonfocus/internal/factors"
	"github.com/rshade/carbonfocus/internal/footprint"
	"github.com/rshade/carbonfocus/internal/report"
)

// maxBodyBytes caps POST bodies.
const maxBodyBytes = 1 << 20

// Calculator computes a footprint.
type Calculator interface {
	Calculate(in footprint.Input) (footprint.Result, error)
}

// Catalog lists countries and their emission factors.
type Catalog interface {
	Countries() []string
	Lookup(country string) (factors.Entry, error)
	Version() string
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CountriesResponse is returned by GET /api/v1/countries.
type CountriesResponse struct {
	Countries     []string `json:"countries"`
	Count         int      `json:"count"`
	SchemaVersion string   `json:"schema_version"`
}

// CountryResponse is returned by GET /api/v1/countries/{country}.
type CountryResponse struct {
	Country string        `json:"country"`
	Factors factors.Entry `json:"factors"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Handler serves the footprint API.
type Handler struct {
	calc    Calculator
	catalog Catalog
	version string
}

// NewHandler returns a Handler backed by calc and catalog.
func NewHandler(calc Calculator, catalog Catalog, version string) *Handler {
	return &Handler{calc: calc, catalog: catalog, version: version}
}

// CalculateFootprint handles POST /api/v1/footprint.
func (h *Handler) CalculateFootprint(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	var in footprint.Input
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		log.Debug().Err(err).Msg("rejecting malformed request body")
		writeError(w, http.StatusBadRequest, "malformed request body: "+err.Error())
		return
	}

	res, err := h.calc.Calculate(in)
	if err != nil {
		status := statusForError(err)
		CalculationsTotal.WithLabelValues(metricCountry(h.catalog, in.Country), strconv.Itoa(status)).Inc()
		log.Info().Err(err).Str("country", in.Country).Int("status", status).Msg("calculation rejected")
		writeError(w, status, err.Error())
		return
	}

	CalculationsTotal.WithLabelValues(metricCountry(h.catalog, in.Country), strconv.Itoa(http.StatusOK)).Inc()
	FootprintTonnes.Observe(res.Total)
	log.Debug().Str("country", in.Country).Float64("total_tonnes", res.Total).Msg("footprint calculated")

	writeJSON(w, http.StatusOK, report.Build(in, res))
}

// ListCountries handles GET /api/v1/countries.
func (h *Handler) ListCountries(w http.ResponseWriter, _ *http.Request) {
	countries := h.catalog.Countries()
	writeJSON(w, http.StatusOK, CountriesResponse{
		Countries:     countries,
		Count:         len(countries),
		SchemaVersion: h.catalog.Version(),
	})
}

// GetCountry handles GET /api/v1/countries/{country}.
func (h *Handler) GetCountry(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "country")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}

	entry, err := h.catalog.Lookup(name)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, CountryResponse{Country: name, Factors: entry})
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: h.version})
}

// statusForError maps calculation errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, footprint.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, footprint.ErrUnknownCountry):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// metricCountry keeps label cardinality bounded to known countries.
func metricCountry(catalog Catalog, country string) string {
	if _, err := catalog.Lookup(country); err != nil {
		return "unknown"
	}
	return country
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
