package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starwall/starwall/internal/domain"
)

func star(id, owner string) domain.StarRecord {
	return domain.StarRecord{ID: domain.StarID(id), Owner: domain.OwnerID(owner), DisplayName: id}
}

func TestStoreAppendAndCount(t *testing.T) {
	s := NewStore(10)
	assert.Equal(t, 0, s.Count())

	s.Append(star("a", "s1"))
	s.Append(star("b", "s2"))
	assert.Equal(t, 2, s.Count())
}

func TestStoreCapacityEviction(t *testing.T) {
	const maxSize = 5
	s := NewStore(maxSize)

	for i := 0; i < maxSize*3; i++ {
		s.Append(star(fmt.Sprintf("star-%d", i), "s1"))
		assert.LessOrEqual(t, s.Count(), maxSize)
	}
	require.Equal(t, maxSize, s.Count())

	// Exactly the last maxSize appends survive, oldest evicted first.
	snap := s.Snapshot()
	for i, rec := range snap {
		assert.Equal(t, domain.StarID(fmt.Sprintf("star-%d", maxSize*2+i)), rec.ID)
	}
}

func TestStoreRemove(t *testing.T) {
	s := NewStore(10)
	s.Append(star("a", "s1"))
	s.Append(star("b", "s2"))

	rec, ok := s.Remove("a")
	require.True(t, ok)
	assert.Equal(t, domain.StarID("a"), rec.ID)
	assert.Equal(t, 1, s.Count())

	// Second removal of the same id is a silent no-op.
	_, ok = s.Remove("a")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Count())

	_, ok = s.Remove("never-existed")
	assert.False(t, ok)
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	s := NewStore(10)
	s.Append(star("a", "s1"))

	snap := s.Snapshot()
	require.Len(t, snap, 1)

	s.Append(star("b", "s2"))
	assert.Len(t, snap, 1, "snapshot must not see later appends")

	snap[0].ID = "mutated"
	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, domain.StarID("a"), got.ID, "mutating a snapshot must not touch the store")
}

func TestStoreSnapshotOrder(t *testing.T) {
	s := NewStore(10)
	s.Append(star("a", "s1"))
	s.Append(star("b", "s1"))
	s.Append(star("c", "s1"))

	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, domain.StarID("a"), snap[0].ID)
	assert.Equal(t, domain.StarID("b"), snap[1].ID)
	assert.Equal(t, domain.StarID("c"), snap[2].ID)
}

func TestStoreSeedTrimsToCapacity(t *testing.T) {
	s := NewStore(2)
	s.Seed([]domain.StarRecord{star("a", "s1"), star("b", "s1"), star("c", "s1")})

	require.Equal(t, 2, s.Count())
	snap := s.Snapshot()
	assert.Equal(t, domain.StarID("b"), snap[0].ID)
	assert.Equal(t, domain.StarID("c"), snap[1].ID)
}

func TestStoreOwnerSurvivesUnchanged(t *testing.T) {
	s := NewStore(10)
	s.Append(star("a", "s1"))

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, domain.OwnerID("s1"), got.Owner)

	snap := s.Snapshot()
	assert.Equal(t, domain.OwnerID("s1"), snap[0].Owner)
}
