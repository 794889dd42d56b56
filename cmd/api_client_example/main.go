package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"skycast/models"
)

func main() {
	fmt.Println("Skycast API Client Example")
	fmt.Println("==========================")

	baseURL := "http://localhost:8080"
	if len(os.Args) > 1 {
		baseURL = os.Args[1]
	}

	// Live suggestions for a partial query
	fmt.Println("\nFetching suggestions for \"Par\"...")
	var candidates []models.LocationCandidate
	if err := getJSON(baseURL+"/api/suggest?q=Par", &candidates); err != nil {
		fmt.Printf("Error fetching suggestions: %v\n", err)
		os.Exit(1)
	}
	for _, c := range candidates {
		fmt.Printf("  %s (%.2f, %.2f)\n", c.Label(), c.Latitude, c.Longitude)
	}

	// Full search for a city name
	fmt.Println("\nSearching for \"Paris\"...")
	var rendered models.Rendered
	if err := getJSON(baseURL+"/api/search?q=Paris", &rendered); err != nil {
		fmt.Printf("Error searching: %v\n", err)
		os.Exit(1)
	}
	printViews(rendered)

	// Toggle to imperial and show the re-rendered values
	fmt.Println("\nSwitching to imperial units...")
	body := bytes.NewReader([]byte(`{"units":"imperial"}`))
	req, _ := http.NewRequest(http.MethodPut, baseURL+"/api/units", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error toggling units: %v\n", err)
		os.Exit(1)
	}
	var toggled struct {
		Units string          `json:"units"`
		Views models.Rendered `json:"views"`
	}
	err = json.NewDecoder(resp.Body).Decode(&toggled)
	resp.Body.Close()
	if err != nil {
		fmt.Printf("Error decoding response: %v\n", err)
		os.Exit(1)
	}
	printViews(toggled.Views)
}

func getJSON(url string, out any) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func printViews(r models.Rendered) {
	cur := r.Current
	fmt.Printf("\n%s %s  %s (%s)\n", cur.Icon, cur.Temperature, cur.Place, cur.Description)
	fmt.Printf("Humidity %s · Wind %s · Local %s\n", cur.Humidity, cur.Wind, cur.LocalTime)
	fmt.Printf("Sunrise %s · Sunset %s\n", r.Sunrise, r.Sunset)

	fmt.Println("\nNext hours:")
	for i, h := range r.Hourly {
		if i >= 6 {
			break
		}
		fmt.Printf("  %s %s %s %s\n", h.Time, h.Icon, h.Temperature, h.Precip)
	}

	fmt.Println("\nNext days:")
	for _, d := range r.Daily {
		fmt.Printf("  %s %s H %s · L %s (%s)\n", d.Date, d.Icon, d.Max, d.Min, d.Description)
	}
}
