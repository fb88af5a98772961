// Package model defines the 2D drawing entities consumed by the
// measurement engine and the measurement records it produces.
package model

import (
	"math"

	"github.com/google/uuid"
)

// Point2D represents a 2D coordinate in drawing units.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the Euclidean distance to another point.
func (p Point2D) DistanceTo(q Point2D) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// EntityKind identifies the geometric variant an Entity carries.
// The values match DXF entity type names so counts line up with the
// source drawing.
type EntityKind string

const (
	KindLine     EntityKind = "LINE"
	KindArc      EntityKind = "ARC"
	KindCircle   EntityKind = "CIRCLE"
	KindPolyline EntityKind = "LWPOLYLINE"
)

// Entity is a tagged variant over line, arc, circle, and polyline.
// Only the fields relevant to the Kind are populated; the rest stay at
// their zero values. Entities are read-only inputs: the engine never
// mutates them.
type Entity struct {
	Kind  EntityKind `json:"type"`
	Layer string     `json:"layer,omitempty"`

	// Line
	Start Point2D `json:"start,omitzero"`
	End   Point2D `json:"end,omitzero"`

	// Arc and Circle. Angles are radians, counter-clockwise positive.
	// An Arc sweeps CCW from StartAngle to EndAngle.
	Center     Point2D `json:"center,omitzero"`
	Radius     float64 `json:"radius,omitempty"`
	StartAngle float64 `json:"start_angle,omitempty"`
	EndAngle   float64 `json:"end_angle,omitempty"`

	// Polyline. Bulges[i] is the bulge of the segment starting at
	// Vertices[i]; a missing or zero bulge means a straight segment.
	Vertices []Point2D `json:"vertices,omitempty"`
	Bulges   []float64 `json:"bulges,omitempty"`
	Closed   bool      `json:"closed,omitempty"`
}

func NewLine(start, end Point2D) Entity {
	return Entity{Kind: KindLine, Start: start, End: end}
}

func NewArc(center Point2D, radius, startAngle, endAngle float64) Entity {
	return Entity{
		Kind:       KindArc,
		Center:     center,
		Radius:     radius,
		StartAngle: startAngle,
		EndAngle:   endAngle,
	}
}

func NewCircle(center Point2D, radius float64) Entity {
	return Entity{Kind: KindCircle, Center: center, Radius: radius}
}

func NewPolyline(vertices []Point2D, bulges []float64, closed bool) Entity {
	return Entity{Kind: KindPolyline, Vertices: vertices, Bulges: bulges, Closed: closed}
}

// NewRecordID returns a short unique identifier for a measurement record.
func NewRecordID() string {
	return uuid.New().String()[:8]
}
