package core

import (
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/starwall/starwall/internal/domain"
)

// Store is a threadsafe bounded FIFO of star records. It owns the history
// exclusively; everything else sees copies via Snapshot.
type Store struct {
	mu      sync.RWMutex
	stars   []domain.StarRecord
	maxSize int
}

func NewStore(maxSize int) *Store {
	return &Store{maxSize: maxSize}
}

// Seed replaces the history wholesale. Called once at startup with whatever
// the persistence bridge recovered; anything beyond capacity is trimmed from
// the oldest end.
func (s *Store) Seed(stars []domain.StarRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(stars) > s.maxSize {
		stars = stars[len(stars)-s.maxSize:]
	}
	s.stars = append([]domain.StarRecord(nil), stars...)
	log.Info().Str("module", "core.store").Int("count", len(s.stars)).Msg("seeded history")
}

// Append commits one record to the tail. When the cap is exceeded the single
// oldest record is evicted; insertions are one-at-a-time so one eviction is
// always enough.
func (s *Store) Append(rec domain.StarRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stars = append(s.stars, rec)
	if len(s.stars) > s.maxSize {
		evicted := s.stars[0]
		s.stars = append(s.stars[:0], s.stars[1:]...)
		log.Debug().Str("module", "core.store").Str("id", string(evicted.ID)).Msg("evicted oldest")
	}
}

// Remove deletes the record with the given id. Removing an unknown id is a
// silent no-op: two clients racing to delete the same star is normal.
func (s *Store) Remove(id domain.StarID) (domain.StarRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.stars {
		if rec.ID == id {
			s.stars = append(s.stars[:i], s.stars[i+1:]...)
			return rec, true
		}
	}
	return domain.StarRecord{}, false
}

// Get returns the record with the given id without removing it.
func (s *Store) Get(id domain.StarID) (domain.StarRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.stars {
		if rec.ID == id {
			return rec, true
		}
	}
	return domain.StarRecord{}, false
}

// Snapshot returns a point-in-time copy of the history, oldest first.
func (s *Store) Snapshot() []domain.StarRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.StarRecord(nil), s.stars...)
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stars)
}
