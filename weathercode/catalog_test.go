package weathercode

import "testing"

func TestDescribeListedCodes(t *testing.T) {
	// The minimum code set the upstream standard produces.
	listed := []int{0, 1, 2, 3, 45, 48, 51, 53, 55, 61, 63, 65, 71, 73, 75, 95, 96}
	for _, code := range listed {
		c := Describe(code)
		if c == Fallback {
			t.Errorf("code %d resolved to the fallback condition", code)
		}
		if c.Description == "" || c.Icon == "" {
			t.Errorf("code %d returned incomplete condition %+v", code, c)
		}
	}
}

func TestDescribeClearSky(t *testing.T) {
	c := Describe(0)
	if c.Description != "Clear sky" || c.Icon != "☀️" {
		t.Errorf("Describe(0) = %+v, want Clear sky/☀️", c)
	}
}

func TestDescribeUnknownCode(t *testing.T) {
	for _, code := range []int{-1, 4, 42, 100, 1000} {
		if c := Describe(code); c != Fallback {
			t.Errorf("Describe(%d) = %+v, want fallback", code, c)
		}
	}
}

func TestDescribeIsStable(t *testing.T) {
	if Describe(61) != Describe(61) {
		t.Error("Describe is not stable for the same code")
	}
}
