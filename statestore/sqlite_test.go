package statestore

import (
	"path/filepath"
	"testing"
	"time"

	"skycast/models"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "state.db")

	s, err := NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	defer s.Close()

	wind := 11.2
	state := models.ResolvedState{
		ResolvedAt: time.Now().UTC().Truncate(time.Second),
		Latitude:   48.85,
		Longitude:  2.35,
		Label:      "Paris, France",
		Units:      models.UnitsImperial,
		Payload: models.ForecastPayload{
			Timezone: "Europe/Paris",
			Current:  models.CurrentBlock{Temperature: 20, WindSpeed: &wind, WeatherCode: 2, Time: "2026-08-31T14:00"},
			Hourly: models.HourlyBlock{
				Time:        []string{"2026-08-31T14:00"},
				Temperature: []float64{20},
				WeatherCode: []int{2},
			},
		},
	}

	if err := s.Save(state); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, ok, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatal("expected a persisted record")
	}
	if loaded.Label != state.Label || loaded.Units != state.Units {
		t.Errorf("loaded %+v, want %+v", loaded, state)
	}
	if !loaded.ResolvedAt.Equal(state.ResolvedAt) {
		t.Errorf("resolvedAt = %v, want %v", loaded.ResolvedAt, state.ResolvedAt)
	}
	if loaded.Payload.Current.WindSpeed == nil || *loaded.Payload.Current.WindSpeed != wind {
		t.Errorf("wind did not survive the round trip: %+v", loaded.Payload.Current)
	}
}

func TestLoadEmptyStore(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "empty.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	defer s.Close()

	_, ok, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok {
		t.Fatal("expected no record in a fresh store")
	}
}

func TestSaveReplacesRecord(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "replace.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	defer s.Close()

	if err := s.Save(models.ResolvedState{Label: "first", Units: models.UnitsMetric}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Save(models.ResolvedState{Label: "second", Units: models.UnitsMetric}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, ok, err := s.Load()
	if err != nil || !ok {
		t.Fatalf("Load = %v, ok=%v", err, ok)
	}
	if loaded.Label != "second" {
		t.Errorf("label = %q, want the replacing record", loaded.Label)
	}
}
