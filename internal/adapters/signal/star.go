package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/starwall/starwall/internal/core"
	"github.com/starwall/starwall/internal/domain"
)

func (ctl *StarWSController) handleCreate(sid core.SessionID, data []byte) {
	type createPayload struct {
		Type string           `json:"type"`
		Star domain.DraftStar `json:"star"`
	}
	var p createPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad create payload")
		return
	}
	if err := ctl.validate.Struct(p.Star); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("create rejected")
		return
	}
	if !ctl.limiter.Allow(sid) {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("create rate limited")
		return
	}

	// Shape, placement and audio pass through opaque; their contents are a
	// presentation concern.
	ctl.Orch.Create(sid, p.Star)
}

func (ctl *StarWSController) handleDelete(sid core.SessionID, data []byte) {
	type deletePayload struct {
		Type string        `json:"type"`
		ID   domain.StarID `json:"id"`
	}
	var p deletePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad delete payload")
		return
	}
	if p.ID == "" {
		return
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("id", string(p.ID)).Msg("delete requested")
	ctl.Orch.Delete(sid, p.ID)
}
