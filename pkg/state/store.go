// Package state holds the shared cabinet collection that renderers read and
// that ingestion and drag-and-drop write.
package state

import (
	"math"
	"sync"

	"github.com/braunma/rack-layout/internal/constants"
	"github.com/braunma/rack-layout/pkg/dragdrop"
	rackerr "github.com/braunma/rack-layout/pkg/errors"
	"github.com/braunma/rack-layout/pkg/geometry"
	"github.com/braunma/rack-layout/pkg/models"
	"github.com/braunma/rack-layout/pkg/overlap"
	"github.com/braunma/rack-layout/pkg/utils"
)

// ViewMode selects between the flat and the 3D design view
type ViewMode string

const (
	ViewMode2D ViewMode = "2d"
	ViewMode3D ViewMode = "3d"
)

// Valid reports whether m is a known view mode
func (m ViewMode) Valid() bool {
	return m == ViewMode2D || m == ViewMode3D
}

// Token identifies one ingestion attempt. Later attempts get larger tokens.
type Token uint64

// Store is the single authoritative cabinet collection. Every write replaces
// or updates the collection under the write lock and recomputes the overlap
// set before releasing it, so readers only ever see complete snapshots.
type Store struct {
	floor  geometry.FloorPlan
	logger *utils.Logger

	mu          sync.RWMutex
	cabinets    []models.Cabinet
	index       map[string]int
	overlaps    overlap.Set
	source      string
	ingestionID string
	loading     bool
	latest      Token
	viewMode    ViewMode
	activeTab   string
}

// NewStore creates an empty store on the given floor plan
func NewStore(floor geometry.FloorPlan, logger *utils.Logger) *Store {
	if logger == nil {
		logger = utils.Discard()
	}
	return &Store{
		floor:     floor,
		logger:    logger,
		index:     make(map[string]int),
		overlaps:  make(overlap.Set),
		viewMode:  ViewMode2D,
		activeTab: constants.DefaultActiveTab,
	}
}

// FloorPlan returns the floor plan positions are validated against
func (s *Store) FloorPlan() geometry.FloorPlan {
	return s.floor
}

// Cabinets returns a deep copy of the current collection in source order
func (s *Store) Cabinets() []models.Cabinet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Cabinet, len(s.cabinets))
	for i, c := range s.cabinets {
		out[i] = c.Clone()
	}
	return out
}

// Cabinet returns a copy of one cabinet
func (s *Store) Cabinet(id string) (models.Cabinet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return models.Cabinet{}, false
	}
	return s.cabinets[i].Clone(), true
}

// Len returns the number of cabinets
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cabinets)
}

// Overlaps returns a copy of the ids whose footprints currently intersect
func (s *Store) Overlaps() overlap.Set {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(overlap.Set, len(s.overlaps))
	for id := range s.overlaps {
		out[id] = struct{}{}
	}
	return out
}

// Source returns the file name of the last committed import
func (s *Store) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// Layout returns the collection as a document suitable for saving
func (s *Store) Layout() models.Layout {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cabinets := make([]models.Cabinet, len(s.cabinets))
	for i, c := range s.cabinets {
		cabinets[i] = c.Clone()
	}
	return models.Layout{
		Source:      s.source,
		IngestionID: s.ingestionID,
		Cabinets:    cabinets,
	}
}

// Replace swaps in a new collection. Duplicate ids reject the whole
// collection and leave the store untouched. Positions are clamped into the
// floor plan.
func (s *Store) Replace(cabinets []models.Cabinet) error {
	next, index, err := s.prepare(cabinets)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.install(next, index)
	return nil
}

// Load replaces the collection and its provenance from a saved layout
func (s *Store) Load(layout models.Layout) error {
	next, index, err := s.prepare(layout.Cabinets)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.install(next, index)
	s.source = layout.Source
	s.ingestionID = layout.IngestionID
	return nil
}

// Clear empties the store and returns to the design tab
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.install(nil, make(map[string]int))
	s.source = ""
	s.ingestionID = ""
	s.activeTab = constants.DefaultActiveTab
}

// UpdatePosition moves one cabinet. The position is clamped into the floor plan.
func (s *Store) UpdatePosition(id string, p models.Point) (models.Point, error) {
	if !finite(p.X) || !finite(p.Y) {
		return models.Point{}, rackerr.New(rackerr.ErrCodeMalformedDragPayload, "position (%v, %v) for %q is not finite", p.X, p.Y, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return models.Point{}, rackerr.New(rackerr.ErrCodeCabinetNotFound, "cabinet %q not found", id)
	}

	clamped := s.floor.Clamp(p)
	s.cabinets[i].Position = &clamped
	s.recompute()
	s.logger.Debug("Moved %s to (%g, %g)", id, clamped.X, clamped.Y)
	return clamped, nil
}

// Drop applies a completed drag gesture. On any error the store is unchanged.
func (s *Store) Drop(payload dragdrop.Payload, pointer, containerOrigin models.Point) (models.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[payload.CabinetID]
	if !ok {
		return models.Point{}, rackerr.New(rackerr.ErrCodeCabinetNotFound, "dropped cabinet %q not found", payload.CabinetID)
	}

	p, err := dragdrop.ComputeDropPosition(pointer, payload.Offset, containerOrigin,
		s.floor.GridSize, s.floor.Area, s.floor.Footprint)
	if err != nil {
		return models.Point{}, err
	}

	s.cabinets[i].Position = &p
	s.recompute()
	s.logger.Debug("Dropped %s at (%g, %g)", payload.CabinetID, p.X, p.Y)
	return p, nil
}

// prepare validates and copies a collection outside the lock
func (s *Store) prepare(cabinets []models.Cabinet) ([]models.Cabinet, map[string]int, error) {
	next := make([]models.Cabinet, len(cabinets))
	index := make(map[string]int, len(cabinets))
	for i, c := range cabinets {
		if _, dup := index[c.ID]; dup {
			return nil, nil, rackerr.New(rackerr.ErrCodeDuplicateCabinet, "cabinet id %q appears more than once", c.ID)
		}
		index[c.ID] = i

		next[i] = c.Clone()
		if p := next[i].Position; p != nil {
			if !finite(p.X) || !finite(p.Y) {
				return nil, nil, rackerr.New(rackerr.ErrCodeMalformedDragPayload, "cabinet %q has a non-finite position", c.ID)
			}
			clamped := s.floor.Clamp(*p)
			next[i].Position = &clamped
		}
	}
	return next, index, nil
}

// install must be called with the write lock held
func (s *Store) install(cabinets []models.Cabinet, index map[string]int) {
	s.cabinets = cabinets
	s.index = index
	if _, ok := index[s.activeTab]; !ok {
		s.activeTab = constants.DefaultActiveTab
	}
	s.recompute()
}

// recompute must be called with the write lock held
func (s *Store) recompute() {
	s.overlaps = overlap.Detect(s.cabinets, s.floor.Footprint)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
