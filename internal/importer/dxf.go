// Package importer decodes DXF drawings into the measurement engine's
// entity model. Only the 2D cut entities (LINE, ARC, CIRCLE,
// LWPOLYLINE) are imported; anything else produces a warning.
package importer

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/dxfmeasure/internal/model"
)

// ImportResult holds the results of a DXF import operation.
type ImportResult struct {
	Entities []model.Entity
	Units    model.Unit
	Errors   []string
	Warnings []string
}

// ImportDXF reads a DXF file and converts its modelspace entities.
// The drawing's source units are resolved from the $INSUNITS header
// variable; drawings without one import as Unspecified.
func ImportDXF(path string) ImportResult {
	result := ImportResult{Units: model.Unspecified}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	if units, err := readInsUnits(path); err == nil {
		result.Units = units
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.Line:
			result.Entities = append(result.Entities, model.NewLine(
				model.Point2D{X: e.Start[0], Y: e.Start[1]},
				model.Point2D{X: e.End[0], Y: e.End[1]},
			))

		case *entity.Arc:
			// DXF arc angles are degrees, CCW from start to end.
			result.Entities = append(result.Entities, model.NewArc(
				model.Point2D{X: e.Circle.Center[0], Y: e.Circle.Center[1]},
				e.Circle.Radius,
				e.Angle[0]*math.Pi/180,
				e.Angle[1]*math.Pi/180,
			))

		case *entity.Circle:
			result.Entities = append(result.Entities, model.NewCircle(
				model.Point2D{X: e.Center[0], Y: e.Center[1]},
				e.Radius,
			))

		case *entity.LwPolyline:
			pl, warn := lwPolylineToEntity(e)
			if warn != "" {
				result.Warnings = append(result.Warnings, warn)
				continue
			}
			result.Entities = append(result.Entities, pl)

		default:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped unsupported entity type %T", ent))
		}
	}

	if len(result.Entities) == 0 {
		result.Errors = append(result.Errors, "No measurable entities found in DXF file")
	}

	return result
}

// lwPolylineToEntity converts a DXF LWPOLYLINE, carrying vertex bulges
// through so arc segments keep their exact length.
func lwPolylineToEntity(lw *entity.LwPolyline) (model.Entity, string) {
	if len(lw.Vertices) < 2 {
		return model.Entity{}, "Skipped LWPOLYLINE with fewer than 2 vertices"
	}

	vertices := make([]model.Point2D, len(lw.Vertices))
	for i, v := range lw.Vertices {
		vertices[i] = model.Point2D{X: v[0], Y: v[1]}
	}

	var bulges []float64
	for _, b := range lw.Bulges {
		if math.Abs(b) > 1e-9 {
			bulges = make([]float64, len(lw.Bulges))
			copy(bulges, lw.Bulges)
			break
		}
	}

	return model.NewPolyline(vertices, bulges, lw.Closed), ""
}

// insUnitsCodes maps DXF $INSUNITS codes to units. Codes outside this
// table (unitless, feet, and the astronomic scales) import as
// Unspecified.
var insUnitsCodes = map[int]model.Unit{
	1: model.Inches,
	4: model.Millimeters,
	5: model.Centimeters,
	6: model.Meters,
}

// readInsUnits scans the HEADER section for the $INSUNITS variable.
// The dxf library does not surface header variables, but the format is
// a simple tag stream: code 9 with the variable name, then code 70 with
// the value.
func readInsUnits(path string) (model.Unit, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Unspecified, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	seen := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "$INSUNITS" {
			seen = true
			continue
		}
		if !seen {
			continue
		}
		// After the name: a group code line (70), then the value.
		if line == "70" {
			continue
		}
		code, err := strconv.Atoi(line)
		if err != nil {
			return model.Unspecified, fmt.Errorf("bad $INSUNITS value %q", line)
		}
		if u, ok := insUnitsCodes[code]; ok {
			return u, nil
		}
		return model.Unspecified, nil
	}
	if err := scanner.Err(); err != nil {
		return model.Unspecified, err
	}
	return model.Unspecified, fmt.Errorf("$INSUNITS not present")
}
