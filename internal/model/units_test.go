package model

import (
	"math"
	"testing"
)

func TestConvert_MillimetersToInches(t *testing.T) {
	got := Convert(25.4, Millimeters, Inches)
	if math.Abs(got-1.0) > 1e-12 {
		t.Errorf("expected 1 inch, got %g", got)
	}
}

func TestConvert_MetersToCentimeters(t *testing.T) {
	got := Convert(1.5, Meters, Centimeters)
	if math.Abs(got-150) > 1e-9 {
		t.Errorf("expected 150 cm, got %g", got)
	}
}

func TestConvert_UnspecifiedPassesThrough(t *testing.T) {
	if got := Convert(42.0, Unspecified, Inches); got != 42.0 {
		t.Errorf("expected pass-through, got %g", got)
	}
	if got := Convert(42.0, Millimeters, Unspecified); got != 42.0 {
		t.Errorf("expected pass-through, got %g", got)
	}
}

func TestConvert_RoundTripWithinRounding(t *testing.T) {
	// mm -> in -> mm must reproduce the value within the 3-decimal
	// rounding tolerance used by the measurement record.
	values := []float64{0.001, 3.21, 81.534, 1000}
	for _, v := range values {
		back := Convert(Convert(v, Millimeters, Inches), Inches, Millimeters)
		if math.Abs(Round3(back)-Round3(v)) > 0.001 {
			t.Errorf("round trip of %g produced %g", v, back)
		}
	}
}

func TestParseUnit(t *testing.T) {
	cases := map[string]Unit{
		"mm":          Millimeters,
		"millimeters": Millimeters,
		"IN":          Inches,
		"inch":        Inches,
		"cm":          Centimeters,
		"m":           Meters,
		"":            Unspecified,
	}
	for in, want := range cases {
		got, err := ParseUnit(in)
		if err != nil {
			t.Errorf("ParseUnit(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseUnit(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := ParseUnit("furlongs"); err == nil {
		t.Error("expected error for unknown unit")
	}
}

func TestRound3_HalfAwayFromZero(t *testing.T) {
	// Exact decimal halves are not representable in binary, so the
	// mode is checked with values just past the half.
	cases := []struct {
		in   float64
		want float64
	}{
		{2.0006, 2.001},
		{-2.0006, -2.001},
		{1.23449, 1.234},
		{9.8765, 9.877},
		{0, 0},
	}
	for _, c := range cases {
		if got := Round3(c.in); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("Round3(%g) = %g, want %g", c.in, got, c.want)
		}
	}
}
