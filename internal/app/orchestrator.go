package app

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/starwall/starwall/internal/core"
	"github.com/starwall/starwall/internal/domain"
	"github.com/starwall/starwall/internal/storage"
)

// Wire events, server to client. Clients speak the same envelope shape with
// a "type" discriminator.
type snapshotEvent struct {
	Type  string              `json:"type"`
	Stars []domain.StarRecord `json:"stars"`
}

type createdEvent struct {
	Type string            `json:"type"`
	Star domain.StarRecord `json:"star"`
}

type deletedEvent struct {
	Type string        `json:"type"`
	ID   domain.StarID `json:"id"`
}

// Orchestrator routes every lifecycle and mutation request through the gate,
// the store, the persistence bridge and the hub, in that order. One mutex
// serializes the whole path: a mutation commits and reaches every send
// buffer before the next one starts, so fan-out order matches commit order.
type Orchestrator struct {
	Store  *core.Store
	Gate   *core.Gate
	Hub    *Hub
	Bridge *storage.FileBridge
	Policy Policy

	mu sync.Mutex
}

// Connect registers the session and delivers the full history to it, and
// only to it.
func (o *Orchestrator) Connect(ident core.Identity, conn core.SignalConnection, cancel context.CancelFunc) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Hub.Register(ident, conn, cancel)
	o.sendTo(ident.SID, snapshotEvent{Type: "snapshot", Stars: o.Store.Snapshot()})
}

func (o *Orchestrator) Disconnect(sid core.SessionID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Hub.Unregister(sid)
}

// Create commits a draft under the submitting session's identity and fans
// the committed record out to every session, the creator included: ids are
// server-assigned, so the creator needs the authoritative copy to issue a
// delete later.
func (o *Orchestrator) Create(sid core.SessionID, draft domain.DraftStar) (domain.StarRecord, bool) {
	o.mu.Lock()
	ident, ok := o.Hub.Identity(sid)
	if !ok {
		o.mu.Unlock()
		return domain.StarRecord{}, false
	}
	rec := o.Gate.StampOwnership(ident, draft)
	o.Store.Append(rec)
	o.Bridge.Save(o.Store.Snapshot())
	count := o.Store.Count()
	res := o.fanout(createdEvent{Type: "created", Star: rec})
	o.mu.Unlock()

	log.Info().Str("module", "app.orch").Str("sid", string(sid)).Str("id", string(rec.ID)).Int("count", count).Msg("star created")
	o.punish(res)
	return rec, true
}

// Delete removes a record if the requester owns it or carries the admin
// capability. An unauthorized or unknown-id request is a silent no-op:
// nothing changes, nothing is broadcast, and the requester learns nothing
// it did not already know.
func (o *Orchestrator) Delete(sid core.SessionID, id domain.StarID) bool {
	o.mu.Lock()
	ident, ok := o.Hub.Identity(sid)
	if !ok {
		o.mu.Unlock()
		return false
	}
	rec, ok := o.Store.Get(id)
	if !ok {
		o.mu.Unlock()
		return false
	}
	if !o.Gate.AuthorizeDelete(ident, rec) {
		o.mu.Unlock()
		log.Info().Str("module", "app.orch").Str("sid", string(sid)).Str("id", string(id)).Msg("delete denied")
		return false
	}
	o.Store.Remove(id)
	o.Bridge.Save(o.Store.Snapshot())
	res := o.fanout(deletedEvent{Type: "deleted", ID: id})
	o.mu.Unlock()

	log.Info().Str("module", "app.orch").Str("sid", string(sid)).Str("id", string(id)).Msg("star deleted")
	o.punish(res)
	return true
}

func (o *Orchestrator) sendTo(sid core.SessionID, v any) {
	f, ok := encode(v)
	if !ok {
		return
	}
	o.Hub.Send(sid, f)
}

func (o *Orchestrator) fanout(v any) core.PublishResult {
	f, ok := encode(v)
	if !ok {
		return core.PublishResult{}
	}
	return o.Hub.Broadcast(f)
}

func (o *Orchestrator) punish(res core.PublishResult) {
	if o.Policy == nil {
		return
	}
	for _, sid := range res.Dropped {
		switch o.Policy.OnBackpressure(sid) {
		case KickSession:
			o.Hub.Kick(sid)
		case NoAction, DropFrame:
		}
	}
}

func encode(v any) (core.Frame, bool) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.orch").Msg("event marshal")
		return nil, false
	}
	return b, true
}
