package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/starwall/starwall/internal/core"
)

type sessionEntry struct {
	Ident  core.Identity
	Conn   core.SignalConnection
	Cancel context.CancelFunc
}

// Hub is the audience set: every live session, keyed by its id. It never
// touches the history; fan-out works on frames the orchestrator already
// encoded.
type Hub struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[core.SessionID]*sessionEntry)}
}

func (h *Hub) Register(ident core.Identity, conn core.SignalConnection, cancel context.CancelFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[ident.SID] = &sessionEntry{Ident: ident, Conn: conn, Cancel: cancel}
	log.Info().Str("module", "app.hub").Str("sid", string(ident.SID)).Bool("admin", ident.Admin).Int("sessions", len(h.sessions)).Msg("session registered")
}

// Unregister is idempotent; a session cannot disconnect twice.
func (h *Hub) Unregister(sid core.SessionID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions[sid]; !ok {
		return
	}
	delete(h.sessions, sid)
	log.Info().Str("module", "app.hub").Str("sid", string(sid)).Int("sessions", len(h.sessions)).Msg("session unregistered")
}

func (h *Hub) Identity(sid core.SessionID) (core.Identity, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if e, ok := h.sessions[sid]; ok {
		return e.Ident, true
	}
	return core.Identity{}, false
}

func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Send delivers one frame to one session, if it is still connected.
func (h *Hub) Send(sid core.SessionID, f core.Frame) {
	h.mu.RLock()
	e, ok := h.sessions[sid]
	h.mu.RUnlock()
	if !ok {
		return
	}
	if err := e.Conn.TrySend(f); err != nil {
		log.Warn().Err(err).Str("module", "app.hub").Str("sid", string(sid)).Msg("send dropped")
	}
}

// Broadcast fans one frame out to every session. A session whose send
// buffer is full misses the frame and is reported as dropped; its next
// connect gets a fresh snapshot, which subsumes anything missed.
func (h *Hub) Broadcast(f core.Frame) core.PublishResult {
	return h.broadcast(f, "")
}

// BroadcastExcept is Broadcast minus the origin session, for the
// exclude-origin audience policy.
func (h *Hub) BroadcastExcept(origin core.SessionID, f core.Frame) core.PublishResult {
	return h.broadcast(f, origin)
}

func (h *Hub) broadcast(f core.Frame, skip core.SessionID) core.PublishResult {
	h.mu.RLock()
	defer h.mu.RUnlock()
	res := core.PublishResult{}
	for sid, e := range h.sessions {
		if sid == skip {
			continue
		}
		if err := e.Conn.TrySend(f); err != nil {
			res.Dropped = append(res.Dropped, sid)
			continue
		}
		res.SentTo++
	}
	log.Debug().Str("module", "app.hub").Int("sent_to", res.SentTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}

// Kick cancels a session's connection context. The adapter's pumps observe
// the cancellation and close the transport; Unregister follows from there.
func (h *Hub) Kick(sid core.SessionID) bool {
	h.mu.RLock()
	e, ok := h.sessions[sid]
	h.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.hub").Str("sid", string(sid)).Msg("kicked session")
	return true
}
