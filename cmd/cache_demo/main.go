package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"skycast/forecast"
)

func main() {
	fmt.Println("=== Running Forecast Cache Demo ===")
	fmt.Println("Fetches the same coordinates twice and shows the cache at work.")

	// Short TTL for demonstration purposes.
	source := forecast.NewCachedSource(forecast.NewClient(""), 15*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Paris, twice in a row: the second fetch is served from cache.
	for i := 0; i < 2; i++ {
		start := time.Now()
		payload, err := source.Fetch(ctx, 48.8566, 2.3522)
		if err != nil {
			log.Fatalf("fetch failed: %v", err)
		}
		fmt.Printf("fetch %d: %.1f°C in %s (took %s)\n",
			i+1, payload.Current.Temperature, payload.Timezone, time.Since(start).Round(time.Millisecond))
	}

	hits, misses := source.CacheStats()
	fmt.Printf("\ncache stats: %d hits, %d misses\n", hits, misses)
}
