package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/dxfmeasure/internal/model"
)

// unionFind is a disjoint-set over entity indices, array-of-parents
// with path compression and union by rank.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(i int) int {
	for uf.parent[i] != i {
		uf.parent[i] = uf.parent[uf.parent[i]] // halve the path
		i = uf.parent[i]
	}
	return i
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.rank[ra] < uf.rank[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	if uf.rank[ra] == uf.rank[rb] {
		uf.rank[ra]++
	}
}

type endpoint struct {
	entity int
	pt     model.Point2D
}

type gridCell struct {
	x, y int
}

// gridIndex buckets a coordinate by tolerance. The quotient is clamped
// before conversion: a tiny tolerance on ordinary coordinates would
// otherwise overflow int. Clamping only widens a bucket at the extreme,
// and the distance check still gates every union, so matches within
// tolerance are never missed.
func gridIndex(v, tol float64) int {
	const clamp = 1 << 40
	c := math.Floor(v / tol)
	if c > clamp {
		return clamp
	}
	if c < -clamp {
		return -clamp
	}
	return int(c)
}

// Components partitions entities into connected pierces: two entities
// join when any endpoint of one lies within joinTol of any endpoint of
// the other. Closed entities (circles, closed polylines) expose no
// endpoints and are always singleton components. Skipped extractions
// (nil Points) get no component.
//
// Endpoints are bucketed into a grid keyed by joinTol so candidate
// pairs come from the 3×3 neighborhood instead of all pairs; with
// joinTol = 0 an exact-coordinate map is used, since zero tolerance
// means exact coincidence.
func Components(exts []Extraction, joinTol float64) ([]model.Component, error) {
	if joinTol < 0 {
		return nil, fmt.Errorf("%w: join_tol %g is negative", ErrInvalidTolerance, joinTol)
	}

	uf := newUnionFind(len(exts))

	var eps []endpoint
	for i, x := range exts {
		if x.Points == nil || x.Closed {
			continue
		}
		eps = append(eps, endpoint{i, x.Start}, endpoint{i, x.End})
	}

	if joinTol == 0 {
		exact := make(map[model.Point2D]int, len(eps))
		for _, ep := range eps {
			if first, ok := exact[ep.pt]; ok {
				uf.union(first, ep.entity)
			} else {
				exact[ep.pt] = ep.entity
			}
		}
	} else {
		grid := make(map[gridCell][]endpoint, len(eps))
		for _, ep := range eps {
			cx := gridIndex(ep.pt.X, joinTol)
			cy := gridIndex(ep.pt.Y, joinTol)
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					for _, other := range grid[gridCell{cx + dx, cy + dy}] {
						if ep.pt.DistanceTo(other.pt) <= joinTol {
							uf.union(other.entity, ep.entity)
						}
					}
				}
			}
			cell := gridCell{cx, cy}
			grid[cell] = append(grid[cell], ep)
		}
	}

	// Components ordered by first-encountered entity index.
	var comps []model.Component
	byRoot := make(map[int]int)
	for i, x := range exts {
		if x.Points == nil {
			continue
		}
		root := uf.find(i)
		if ci, ok := byRoot[root]; ok {
			comps[ci].Entities = append(comps[ci].Entities, i)
			continue
		}
		byRoot[root] = len(comps)
		comps = append(comps, model.Component{ID: len(comps), Entities: []int{i}})
	}
	return comps, nil
}
