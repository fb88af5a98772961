package model

import (
	"fmt"
	"math"
	"strings"
)

// Unit is a length unit for measurement input and output.
type Unit string

const (
	Millimeters Unit = "millimeters"
	Inches      Unit = "inches"
	Centimeters Unit = "centimeters"
	Meters      Unit = "meters"

	// Unspecified marks a drawing whose source units are unknown
	// (missing or unsupported $INSUNITS). Values tagged Unspecified
	// pass through conversion unscaled.
	Unspecified Unit = "unspecified"
)

// millimeters per unit
var unitFactors = map[Unit]float64{
	Millimeters: 1.0,
	Inches:      25.4,
	Centimeters: 10.0,
	Meters:      1000.0,
}

// Convert converts a length value between units. Unspecified on either
// side leaves the value unscaled, since no conversion factor is known.
func Convert(v float64, from, to Unit) float64 {
	ff, ok := unitFactors[from]
	if !ok {
		return v
	}
	tf, ok := unitFactors[to]
	if !ok {
		return v
	}
	return v * ff / tf
}

// ParseUnit parses a unit name as accepted by the CLI and config file.
// Both full names and the common abbreviations are recognized.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "millimeters", "millimeter", "mm":
		return Millimeters, nil
	case "inches", "inch", "in":
		return Inches, nil
	case "centimeters", "centimeter", "cm":
		return Centimeters, nil
	case "meters", "meter", "m":
		return Meters, nil
	case "", "unspecified":
		return Unspecified, nil
	default:
		return Unspecified, fmt.Errorf("unknown unit %q", s)
	}
}

// Round3 rounds to 3 decimal places, halves away from zero. All numeric
// fields of a measurement record are rounded with this before they are
// returned, so serialized values never expose float artifacts.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
