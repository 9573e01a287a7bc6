package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starwall/starwall/internal/domain"
)

func TestFileBridgeRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	b := NewFileBridge(path)

	stars := []domain.StarRecord{
		{ID: "a", Owner: "s1", DisplayName: "polaris", Shape: json.RawMessage(`{"points":5}`), Audio: []byte("clip")},
		{ID: "b", Owner: "s2", DisplayName: "vega"},
	}
	b.Save(stars)

	got := NewFileBridge(path).Load()
	require.Len(t, got, 2)
	assert.Equal(t, stars[0].ID, got[0].ID)
	assert.Equal(t, stars[0].Owner, got[0].Owner)
	assert.JSONEq(t, `{"points":5}`, string(got[0].Shape))
	assert.Equal(t, []byte("clip"), got[0].Audio)
	assert.Equal(t, stars[1].ID, got[1].ID)
}

func TestFileBridgeLoadMissingFile(t *testing.T) {
	b := NewFileBridge(filepath.Join(t.TempDir(), "nope.json"))
	assert.Nil(t, b.Load())
}

func TestFileBridgeLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	assert.Nil(t, NewFileBridge(path).Load())
}

func TestFileBridgeSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	b := NewFileBridge(path)

	b.Save([]domain.StarRecord{{ID: "a"}, {ID: "b"}})
	b.Save([]domain.StarRecord{{ID: "b"}})

	got := b.Load()
	require.Len(t, got, 1)
	assert.Equal(t, domain.StarID("b"), got[0].ID)
}

func TestFileBridgeDisabled(t *testing.T) {
	b := NewFileBridge("")
	assert.False(t, b.Enabled())
	assert.Nil(t, b.Load())
	b.Save([]domain.StarRecord{{ID: "a"}}) // must not panic or write anywhere
}
