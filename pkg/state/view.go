package state

import (
	"github.com/braunma/rack-layout/internal/constants"
	rackerr "github.com/braunma/rack-layout/pkg/errors"
)

// ViewMode returns the current design view
func (s *Store) ViewMode() ViewMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewMode
}

// SetViewMode switches between 2D and 3D
func (s *Store) SetViewMode(mode ViewMode) error {
	if !mode.Valid() {
		return rackerr.New(rackerr.ErrCodeInvalidConfig, "unknown view mode %q", mode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewMode = mode
	return nil
}

// ActiveTab returns "design" or the id of the cabinet being viewed
func (s *Store) ActiveTab() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeTab
}

// SetActiveTab selects the design tab or an existing cabinet
func (s *Store) SetActiveTab(tab string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tab != constants.DefaultActiveTab {
		if _, ok := s.index[tab]; !ok {
			return rackerr.New(rackerr.ErrCodeCabinetNotFound, "cabinet %q not found", tab)
		}
	}
	s.activeTab = tab
	return nil
}
