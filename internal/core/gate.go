package core

import (
	"github.com/rs/zerolog/log"
	"github.com/starwall/starwall/internal/domain"
)

// Gate decides who may mutate what. Identity is per-connection and
// client-asserted; the admin capability is a deliberately weak trust model
// (an unauthenticated handshake flag), not a security boundary.
type Gate struct {
	adminEnabled bool
}

func NewGate(adminEnabled bool) *Gate {
	return &Gate{adminEnabled: adminEnabled}
}

// StampOwnership mints the committed record for a draft. The server is the
// sole source of truth here: any id or owner the client supplied is gone by
// construction, and the owner is always the submitting session.
func (g *Gate) StampOwnership(ident Identity, draft domain.DraftStar) domain.StarRecord {
	return domain.NewStar(draft, domain.OwnerID(ident.SID))
}

// AuthorizeDelete reports whether ident may remove rec: it must be the
// owner, or carry the admin capability while the server honors it.
func (g *Gate) AuthorizeDelete(ident Identity, rec domain.StarRecord) bool {
	if domain.OwnerID(ident.SID) == rec.Owner {
		return true
	}
	if ident.Admin && g.adminEnabled {
		log.Info().Str("module", "core.gate").Str("sid", string(ident.SID)).Str("id", string(rec.ID)).Msg("admin delete")
		return true
	}
	return false
}
