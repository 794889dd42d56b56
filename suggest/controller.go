// Package suggest implements the live-suggestion control: debounced lookups
// against a geocoder with last-request-wins delivery.
package suggest

import (
	"context"
	"strings"
	"sync"
	"time"

	"skycast/geocode"
	"skycast/models"
)

// DefaultDebounce is the delay between the last keystroke and the geocoding
// request.
const DefaultDebounce = 250 * time.Millisecond

// DefaultLimit is how many candidates a suggestion lookup asks for.
const DefaultLimit = 6

// Controller debounces query text changes and publishes candidate lists.
// At most one debounce timer is pending at a time; every text change resets
// it. A monotonically increasing token guards delivery: a response is
// discarded when any newer text change has been made since its request
// started (last-request-wins, not first-completed-wins).
type Controller struct {
	geocoder geocode.Geocoder
	delay    time.Duration
	limit    int

	// OnSuggestions receives every update to the visible candidate list,
	// including the empty list that clears it.
	OnSuggestions func([]models.LocationCandidate)

	// OnSelect receives the candidate picked from the list.
	OnSelect func(models.LocationCandidate)

	mutex sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewController creates a suggestion controller around a geocoder.
// Non-positive delay or limit fall back to the defaults.
func NewController(geocoder geocode.Geocoder, delay time.Duration, limit int) *Controller {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Controller{
		geocoder: geocoder,
		delay:    delay,
		limit:    limit,
	}
}

// SetQuery records a text change. Empty (after trimming) text cancels any
// pending timer and clears the list without issuing a request; anything else
// restarts the debounce timer.
func (c *Controller) SetQuery(text string) {
	text = strings.TrimSpace(text)

	c.mutex.Lock()
	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if text == "" {
		c.mutex.Unlock()
		c.publish(nil)
		return
	}
	token := c.seq
	c.timer = time.AfterFunc(c.delay, func() {
		c.lookup(token, text)
	})
	c.mutex.Unlock()
}

// Select clears the visible list and hands the picked candidate on. No
// geocoding request is made for a selection.
func (c *Controller) Select(candidate models.LocationCandidate) {
	c.mutex.Lock()
	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mutex.Unlock()

	c.publish(nil)
	if c.OnSelect != nil {
		c.OnSelect(candidate)
	}
}

// Close cancels any pending lookup. In-flight responses are discarded.
func (c *Controller) Close() {
	c.mutex.Lock()
	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mutex.Unlock()
}

// lookup runs the debounced geocoding request for one token.
func (c *Controller) lookup(token uint64, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	candidates, err := c.geocoder.Search(ctx, text, c.limit)
	if err != nil {
		// Lookup failures on the suggestion path collapse to an empty list.
		candidates = nil
	}

	c.mutex.Lock()
	stale := token != c.seq
	c.mutex.Unlock()
	if stale {
		return
	}
	c.publish(candidates)
}

func (c *Controller) publish(candidates []models.LocationCandidate) {
	if c.OnSuggestions != nil {
		c.OnSuggestions(candidates)
	}
}
