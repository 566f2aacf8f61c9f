package state

import (
	rackerr "github.com/braunma/rack-layout/pkg/errors"
	"github.com/braunma/rack-layout/pkg/models"
)

// Loading reports whether an ingestion is in flight
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// BeginIngestion starts a new ingestion and supersedes any earlier one
func (s *Store) BeginIngestion() Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest++
	s.loading = true
	return s.latest
}

// CommitIngestion installs the result of an ingestion if it is still the most
// recently started one. Results of superseded ingestions are discarded with
// STALE_INGESTION and the collection is left as is.
func (s *Store) CommitIngestion(token Token, layout models.Layout) error {
	next, index, err := s.prepare(layout.Cabinets)

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.latest {
		s.logger.Debug("Discarding ingestion %d, superseded by %d", token, s.latest)
		return rackerr.New(rackerr.ErrCodeStaleIngestion, "ingestion %d superseded by %d", token, s.latest)
	}
	s.loading = false

	if err != nil {
		return err
	}

	s.install(next, index)
	s.source = layout.Source
	s.ingestionID = layout.IngestionID
	return nil
}

// AbortIngestion ends a failed ingestion without touching the collection
func (s *Store) AbortIngestion(token Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == s.latest {
		s.loading = false
	}
}
