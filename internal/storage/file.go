// Package storage mirrors the in-memory history to a single JSON file.
// The file is rewritten wholesale on every mutation and read wholesale at
// startup. O(history) per write is an accepted ceiling: the history is
// capped small and mutations are human-paced.
package storage

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/starwall/starwall/internal/domain"
)

// FileBridge persists the full star history to one file. A zero path
// disables it entirely (the in-memory-only variant).
type FileBridge struct {
	path string
}

func NewFileBridge(path string) *FileBridge {
	return &FileBridge{path: path}
}

func (b *FileBridge) Enabled() bool { return b != nil && b.path != "" }

// Load reads whatever history survived the last run. A missing file means a
// first start; an unreadable or corrupt file is logged and treated as empty.
// Load never fails startup.
func (b *FileBridge) Load() []domain.StarRecord {
	if !b.Enabled() {
		return nil
	}
	raw, err := os.ReadFile(b.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("module", "storage").Str("path", b.path).Msg("history unreadable, starting empty")
		}
		return nil
	}
	var stars []domain.StarRecord
	if err := json.Unmarshal(raw, &stars); err != nil {
		log.Warn().Err(err).Str("module", "storage").Str("path", b.path).Msg("history corrupt, starting empty")
		return nil
	}
	log.Info().Str("module", "storage").Int("count", len(stars)).Msg("history loaded")
	return stars
}

// Save rewrites the whole history. Best-effort: a failed write is logged and
// the in-memory state stays authoritative; at worst one mutation is lost on
// the next restart.
func (b *FileBridge) Save(stars []domain.StarRecord) {
	if !b.Enabled() {
		return
	}
	raw, err := json.Marshal(stars)
	if err != nil {
		log.Error().Err(err).Str("module", "storage").Msg("history marshal")
		return
	}
	if err := os.WriteFile(b.path, raw, 0o644); err != nil {
		log.Error().Err(err).Str("module", "storage").Str("path", b.path).Msg("history write")
	}
}
