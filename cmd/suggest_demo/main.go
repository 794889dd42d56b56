package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sync"
	"time"

	"skycast/models"
	"skycast/suggest"
)

// MockGeocoder simulates latency and counts calls so the debounce and
// last-request-wins behavior is observable.
type MockGeocoder struct {
	latency   time.Duration
	callCount int
	mutex     sync.Mutex
}

func (m *MockGeocoder) Search(ctx context.Context, name string, limit int) ([]models.LocationCandidate, error) {
	m.mutex.Lock()
	m.callCount++
	count := m.callCount
	m.mutex.Unlock()

	log.Printf("geocoder call #%d for %q (latency %s)", count, name, m.latency)
	select {
	case <-time.After(m.latency):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return []models.LocationCandidate{
		{Name: name, Country: "Mockland", Latitude: 10, Longitude: 20},
	}, nil
}

func (m *MockGeocoder) CallCount() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.callCount
}

func main() {
	debounce := flag.Duration("debounce", 250*time.Millisecond, "Debounce delay")
	latency := flag.Duration("latency", 100*time.Millisecond, "Simulated geocoder latency")
	flag.Parse()

	fmt.Println("=== Running Suggestion Controller Demo ===")
	fmt.Println("Simulates a user typing and shows which lookups actually fire.")

	geocoder := &MockGeocoder{latency: *latency}
	ctrl := suggest.NewController(geocoder, *debounce, 6)
	ctrl.OnSuggestions = func(candidates []models.LocationCandidate) {
		if len(candidates) == 0 {
			log.Println("suggestion list cleared")
			return
		}
		log.Printf("suggestion list updated: %s", candidates[0].Label())
	}
	defer ctrl.Close()

	// A burst of keystrokes inside one debounce window: only the final
	// query reaches the geocoder.
	fmt.Println("\n-- typing \"London\" one key at a time --")
	for _, q := range []string{"L", "Lo", "Lon", "Lond", "Londo", "London"} {
		ctrl.SetQuery(q)
		time.Sleep(*debounce / 4)
	}
	time.Sleep(*debounce + *latency + 50*time.Millisecond)
	fmt.Printf("geocoder calls so far: %d (a call per keystroke would be 6)\n", geocoder.CallCount())

	// Clearing the input cancels the pending lookup.
	fmt.Println("\n-- typing then clearing the input --")
	before := geocoder.CallCount()
	ctrl.SetQuery("Par")
	ctrl.SetQuery("")
	time.Sleep(*debounce + *latency)
	fmt.Printf("lookups fired after clearing: %d\n", geocoder.CallCount()-before)

	fmt.Println("\nDemo complete")
}
