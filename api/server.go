// Package api exposes the resolution pipeline over a JSON HTTP surface:
// live suggestions, name search, coordinate and geolocation entry, the unit
// toggle and the current rendered views.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"skycast/geocode"
	"skycast/models"
	"skycast/pipeline"
)

// Suggestion limits for /api/suggest.
const (
	defaultSuggestLimit = 6
	maxSuggestLimit     = 10
)

// Server wires the HTTP handlers to the pipeline.
type Server struct {
	pipeline *pipeline.Pipeline
	geocoder geocode.Geocoder
}

// NewServer creates an API server around a pipeline and the geocoder used
// for live suggestions.
func NewServer(p *pipeline.Pipeline, geocoder geocode.Geocoder) *Server {
	return &Server{pipeline: p, geocoder: geocoder}
}

// RegisterRoutes mounts all handlers on a router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/suggest", s.handleSuggest)
	r.Get("/search", s.handleSearch)
	r.Get("/forecast", s.handleForecast)
	r.Get("/locate", s.handleLocate)
	r.Put("/units", s.handleUnits)
	r.Get("/state", s.handleState)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// handleSuggest serves the live suggestion list. This path fails soft: an
// empty query or an upstream failure both yield an empty array, never an
// error status.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeJSON(w, http.StatusOK, []models.LocationCandidate{})
		return
	}

	limit := defaultSuggestLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 && l <= maxSuggestLimit {
			limit = l
		}
	}

	candidates, err := s.geocoder.Search(r.Context(), query, limit)
	if err != nil || candidates == nil {
		candidates = []models.LocationCandidate{}
	}
	writeJSON(w, http.StatusOK, candidates)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	rendered, err := s.pipeline.ResolveByName(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeResolveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rendered)
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		writeError(w, http.StatusBadRequest, "invalid lat parameter")
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil || lon < -180 || lon > 180 {
		writeError(w, http.StatusBadRequest, "invalid lon parameter")
		return
	}
	label := strings.TrimSpace(r.URL.Query().Get("label"))

	rendered, err := s.pipeline.ResolveByCoords(r.Context(), lat, lon, label)
	if err != nil {
		s.writeResolveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rendered)
}

func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	rendered, err := s.pipeline.Locate(r.Context())
	if err != nil {
		s.writeResolveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rendered)
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Units string `json:"units"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rendered, err := s.pipeline.SetUnits(body.Units)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"units": s.pipeline.Units(),
		"views": rendered,
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	rendered, ok := s.pipeline.Snapshot()
	if !ok {
		writeError(w, http.StatusNotFound, "nothing resolved yet")
		return
	}
	writeJSON(w, http.StatusOK, rendered)
}

// writeResolveError maps the pipeline error taxonomy onto HTTP statuses.
func (s *Server) writeResolveError(w http.ResponseWriter, err error) {
	var te *pipeline.TransportError
	var lae *pipeline.LocationAccessError
	switch {
	case errors.Is(err, pipeline.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, "query must not be empty")
	case errors.Is(err, pipeline.ErrNotFound):
		writeError(w, http.StatusNotFound, "location not found")
	case errors.As(err, &lae):
		writeError(w, http.StatusBadGateway, "location access failed")
	case errors.As(err, &te):
		writeError(w, http.StatusBadGateway, te.Op)
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
