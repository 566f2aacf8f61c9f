// Package overlap finds cabinets whose floor-plan footprints intersect.
//
// Detection is a pairwise O(n²) pass, which is fine for the tens of cabinets
// a single room holds. Unplaced cabinets never overlap anything.
package overlap

import (
	"sort"

	"github.com/braunma/rack-layout/pkg/geometry"
	"github.com/braunma/rack-layout/pkg/models"
)

// Set holds the ids of every cabinet involved in at least one overlap
type Set map[string]struct{}

// Has reports whether id is in the set
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of overlapping cabinets
func (s Set) Len() int {
	return len(s)
}

// IDs returns the members in sorted order
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Pair is one pair of overlapping cabinets, A before B in input order
type Pair struct {
	A string `yaml:"a" json:"a"`
	B string `yaml:"b" json:"b"`
}

// Detect returns every cabinet that overlaps at least one other cabinet
func Detect(cabinets []models.Cabinet, footprint models.Size) Set {
	set := make(Set)
	for _, p := range Pairs(cabinets, footprint) {
		set[p.A] = struct{}{}
		set[p.B] = struct{}{}
	}
	return set
}

// Pairs lists every overlapping pair. Edge-touching footprints do not count.
func Pairs(cabinets []models.Cabinet, footprint models.Size) []Pair {
	floor := geometry.FloorPlan{Footprint: footprint}

	rects := make([]geometry.Rect, len(cabinets))
	placed := make([]bool, len(cabinets))
	for i, c := range cabinets {
		rects[i], placed[i] = floor.Rect(c)
	}

	var pairs []Pair
	for i := 0; i < len(cabinets); i++ {
		if !placed[i] {
			continue
		}
		for j := i + 1; j < len(cabinets); j++ {
			if !placed[j] {
				continue
			}
			if rects[i].Intersects(rects[j]) {
				pairs = append(pairs, Pair{A: cabinets[i].ID, B: cabinets[j].ID})
			}
		}
	}
	return pairs
}
