package model

// Rect describes an extremal bounding rectangle. By convention Width is
// the larger side and Length the smaller one. AngleDeg is the direction
// of the Width side, degrees CCW from the X axis, normalized to [0, 180);
// it is always 0 for the axis-aligned box.
type Rect struct {
	Width    float64 `json:"width"`
	Length   float64 `json:"length"`
	AngleDeg float64 `json:"angle_deg"`
}

// Area returns Width × Length.
func (r Rect) Area() float64 {
	return r.Width * r.Length
}

// Component is one connected pierce: a group of entity indices whose
// endpoints touch within the join tolerance.
type Component struct {
	ID       int   `json:"id"`
	Entities []int `json:"entities"`
}

// Counts holds per-type entity counts for the drawing.
type Counts struct {
	Lines     int `json:"lines"`
	Arcs      int `json:"arcs"`
	Circles   int `json:"circles"`
	Polylines int `json:"polylines"`
}

// Total returns the sum over all entity types.
func (c Counts) Total() int {
	return c.Lines + c.Arcs + c.Circles + c.Polylines
}

// EntityInfo is the per-entity diagnostic row of a measurement record.
type EntityInfo struct {
	Index     int        `json:"index"`
	Type      EntityKind `json:"type"`
	Layer     string     `json:"layer,omitempty"`
	Vertices  int        `json:"vertices"`
	Length    float64    `json:"length"`
	Closed    bool       `json:"closed"`
	Start     Point2D    `json:"start,omitzero"`
	End       Point2D    `json:"end,omitzero"`
	Component int        `json:"component"`
}

// SkippedEntity reports an entity excluded from the computation because
// its parameters were malformed. Skipped entities are never silently
// dropped; they are returned alongside the measurement.
type SkippedEntity struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Measurement is the fully-computed result for one drawing. It is
// created once per entity set and never mutated after assembly. All
// lengths are in Unit and rounded to 3 decimals, except SquareInches
// which is always square inches regardless of the requested unit.
type Measurement struct {
	ID   string `json:"id"`
	Unit Unit   `json:"unit"`

	// Legacy dimension fields: aliases of the AABB extents, kept for
	// backward compatibility with older quoting consumers.
	ObjectWidth  float64 `json:"object_width"`
	ObjectLength float64 `json:"object_length"`
	SquareInches float64 `json:"square_inches"`

	AABB          Rect    `json:"aabb"`
	OBB           Rect    `json:"obb"`
	MinMaxRect    Rect    `json:"min_max_rect"`
	MinSquareSide float64 `json:"min_enclosing_square_side"`

	TotalLength   float64 `json:"total_cut_length"`
	LongestLength float64 `json:"max_edge_length"`

	Counts           Counts      `json:"counts"`
	NumberOfPierces  int         `json:"number_of_pierces"`
	ConnectedPierces int         `json:"connected_pierces"`
	Components       []Component `json:"components"`

	Entities []EntityInfo    `json:"entities"`
	Skipped  []SkippedEntity `json:"skipped,omitempty"`
}
