package state

import (
	"testing"

	rackerr "github.com/braunma/rack-layout/pkg/errors"
	"github.com/braunma/rack-layout/pkg/geometry"
	"github.com/braunma/rack-layout/pkg/models"
)

func layoutOf(source string, ids ...string) models.Layout {
	l := models.Layout{Source: source}
	for _, id := range ids {
		l.Cabinets = append(l.Cabinets, models.Cabinet{ID: id})
	}
	return l
}

func TestLastIngestionWins(t *testing.T) {
	s := NewStore(geometry.DefaultFloorPlan(), nil)

	first := s.BeginIngestion()
	second := s.BeginIngestion()
	if !s.Loading() {
		t.Fatal("Loading() = false during ingestion")
	}

	if err := s.CommitIngestion(second, layoutOf("second.xlsx", "B1", "B2")); err != nil {
		t.Fatalf("CommitIngestion(second) error = %v", err)
	}
	if s.Loading() {
		t.Error("Loading() = true after the latest ingestion committed")
	}

	err := s.CommitIngestion(first, layoutOf("first.xlsx", "A1"))
	if !rackerr.Is(err, rackerr.ErrCodeStaleIngestion) {
		t.Fatalf("CommitIngestion(first) error = %v, expected %s", err, rackerr.ErrCodeStaleIngestion)
	}
	if s.Source() != "second.xlsx" || s.Len() != 2 {
		t.Errorf("stale ingestion replaced the collection: source %q, %d cabinets", s.Source(), s.Len())
	}
}

func TestStaleCommitKeepsLoading(t *testing.T) {
	s := NewStore(geometry.DefaultFloorPlan(), nil)

	first := s.BeginIngestion()
	_ = s.BeginIngestion()

	_ = s.CommitIngestion(first, layoutOf("first.xlsx", "A1"))
	if !s.Loading() {
		t.Error("Loading() = false while the latest ingestion is still running")
	}
	if s.Len() != 0 {
		t.Error("stale ingestion installed cabinets")
	}
}

func TestAbortIngestion(t *testing.T) {
	s := NewStore(geometry.DefaultFloorPlan(), nil)
	_ = s.Replace([]models.Cabinet{{ID: "keep"}})

	token := s.BeginIngestion()
	s.AbortIngestion(token)

	if s.Loading() {
		t.Error("Loading() = true after abort")
	}
	if _, ok := s.Cabinet("keep"); !ok {
		t.Error("abort removed the previous collection")
	}
}

func TestAbortOfSupersededIngestionKeepsLoading(t *testing.T) {
	s := NewStore(geometry.DefaultFloorPlan(), nil)

	first := s.BeginIngestion()
	_ = s.BeginIngestion()
	s.AbortIngestion(first)

	if !s.Loading() {
		t.Error("aborting a superseded ingestion cleared Loading()")
	}
}

func TestCommitWithDuplicateIDs(t *testing.T) {
	s := NewStore(geometry.DefaultFloorPlan(), nil)
	_ = s.Replace([]models.Cabinet{{ID: "keep"}})

	token := s.BeginIngestion()
	err := s.CommitIngestion(token, layoutOf("dup.xlsx", "X", "X"))
	if !rackerr.Is(err, rackerr.ErrCodeDuplicateCabinet) {
		t.Fatalf("CommitIngestion() error = %v, expected %s", err, rackerr.ErrCodeDuplicateCabinet)
	}
	if s.Loading() {
		t.Error("Loading() = true after a failed commit")
	}
	if _, ok := s.Cabinet("keep"); !ok {
		t.Error("failed commit replaced the collection")
	}
}
