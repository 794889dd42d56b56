// Package pipeline orchestrates location resolution: name or coordinates in,
// rendered forecast views out, with the last successful state held and
// persisted.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"skycast/forecast"
	"skycast/geocode"
	"skycast/models"
	"skycast/render"
	"skycast/statestore"
)

// GenericLocationLabel is the fixed place label used for geolocation-based
// resolutions.
const GenericLocationLabel = "Your location"

// Locator is the operating environment's geolocation facility.
type Locator interface {
	Locate(ctx context.Context) (lat, lon float64, err error)
}

// Pipeline owns the application state: the current unit preference and the
// last successful resolution. Commits happen under one mutex, so when two
// resolutions race, the rendered and persisted state follows completion
// order — the last fetch to complete wins.
type Pipeline struct {
	geocoder      geocode.Geocoder
	source        forecast.Source
	store         statestore.Store // optional; nil disables persistence
	locator       Locator          // optional; nil disables geolocation
	locateTimeout time.Duration

	mutex sync.Mutex
	units string
	state *models.ResolvedState
}

// New creates a pipeline. store and locator may be nil.
func New(geocoder geocode.Geocoder, source forecast.Source, store statestore.Store, locator Locator) *Pipeline {
	return &Pipeline{
		geocoder:      geocoder,
		source:        source,
		store:         store,
		locator:       locator,
		locateTimeout: 10 * time.Second,
		units:         models.UnitsMetric,
	}
}

// ResolveByName validates and geocodes a free-text place name, then resolves
// the best candidate. Zero geocoding results yield ErrNotFound and no
// forecast fetch.
func (p *Pipeline) ResolveByName(ctx context.Context, name string) (models.Rendered, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Rendered{}, ErrEmptyQuery
	}

	candidates, err := p.geocoder.Search(ctx, name, 1)
	if err != nil {
		return models.Rendered{}, &TransportError{Op: "geocoding failed", Err: err}
	}
	if len(candidates) == 0 {
		return models.Rendered{}, ErrNotFound
	}

	best := candidates[0]
	return p.ResolveByCoords(ctx, best.Latitude, best.Longitude, best.Label())
}

// ResolveByCoords fetches the forecast for a coordinate pair and, on
// success, commits the new state: persist, then render. A fetch failure
// leaves the previously committed state untouched.
func (p *Pipeline) ResolveByCoords(ctx context.Context, lat, lon float64, label string) (models.Rendered, error) {
	payload, err := p.source.Fetch(ctx, lat, lon)
	if err != nil {
		return models.Rendered{}, &TransportError{Op: "weather fetch failed", Err: err}
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	state := models.ResolvedState{
		ResolvedAt: time.Now(),
		Latitude:   lat,
		Longitude:  lon,
		Label:      label,
		Units:      p.units,
		Payload:    payload,
	}
	p.state = &state
	p.persistLocked()
	return render.Render(state), nil
}

// Locate resolves the device location and feeds it through the coordinate
// entry with the generic place label.
func (p *Pipeline) Locate(ctx context.Context) (models.Rendered, error) {
	if p.locator == nil {
		return models.Rendered{}, &LocationAccessError{Err: errors.New("no geolocation facility configured")}
	}

	locateCtx, cancel := context.WithTimeout(ctx, p.locateTimeout)
	defer cancel()

	lat, lon, err := p.locator.Locate(locateCtx)
	if err != nil {
		return models.Rendered{}, &LocationAccessError{Err: err}
	}

	return p.ResolveByCoords(ctx, lat, lon, GenericLocationLabel)
}

// SetUnits switches the display unit preference and re-renders the held
// payload. No network call is made; with no state held yet the preference is
// still recorded for the next resolution.
func (p *Pipeline) SetUnits(unitPref string) (models.Rendered, error) {
	if unitPref != models.UnitsMetric && unitPref != models.UnitsImperial {
		return models.Rendered{}, fmt.Errorf("unknown unit preference %q", unitPref)
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.units = unitPref
	if p.state == nil {
		return models.Rendered{}, nil
	}
	p.state.Units = unitPref
	p.persistLocked()
	return render.Render(*p.state), nil
}

// Units returns the active unit preference.
func (p *Pipeline) Units() string {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.units
}

// Snapshot re-renders the held state. ok is false before the first
// successful resolution.
func (p *Pipeline) Snapshot() (models.Rendered, bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.state == nil {
		return models.Rendered{}, false
	}
	return render.Render(*p.state), true
}

// Restore adopts the persisted record, if any, including its unit
// preference. Called once at startup.
func (p *Pipeline) Restore() (models.Rendered, bool) {
	if p.store == nil {
		return models.Rendered{}, false
	}
	state, ok, err := p.store.Load()
	if err != nil {
		slog.Warn("could not restore persisted state", "error", err)
		return models.Rendered{}, false
	}
	if !ok {
		return models.Rendered{}, false
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()
	if state.Units == models.UnitsMetric || state.Units == models.UnitsImperial {
		p.units = state.Units
	} else {
		state.Units = p.units
	}
	p.state = &state
	return render.Render(state), true
}

// AutoRefresh periodically re-resolves the last location so the held view
// does not go stale. Blocks until ctx is done; ticks with nothing resolved
// yet are skipped.
func (p *Pipeline) AutoRefresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.mutex.Lock()
			var lat, lon float64
			var label string
			resolved := p.state != nil
			if resolved {
				lat, lon, label = p.state.Latitude, p.state.Longitude, p.state.Label
			}
			p.mutex.Unlock()
			if !resolved {
				continue
			}

			fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			if _, err := p.ResolveByCoords(fetchCtx, lat, lon, label); err != nil {
				slog.Warn("auto refresh failed", "label", label, "error", err)
			}
			cancel()
		case <-ctx.Done():
			return
		}
	}
}

// persistLocked writes the held state to the store. Persistence is
// best-effort: a write failure is logged and never fails the resolution.
func (p *Pipeline) persistLocked() {
	if p.store == nil || p.state == nil {
		return
	}
	if err := p.store.Save(*p.state); err != nil {
		slog.Warn("could not persist state", "error", err)
	}
}
