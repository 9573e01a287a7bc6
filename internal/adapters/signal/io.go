package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/starwall/starwall/internal/core"
)

func (ctl *StarWSController) writePump(ctx context.Context, c *WsConn) {
	ticker := time.NewTicker(ctl.PingPeriod)
	defer ticker.Stop()
	// Closing here tears the socket down on cancellation too, which
	// unblocks readPump's ReadMessage so its deferred cleanup runs.
	defer c.Close()
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				log.Warn().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump ping error")
				return
			}
		}
	}
}

func (ctl *StarWSController) readPump(ctx context.Context, sid core.SessionID, c *WsConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump closing")
		c.Close()
		ctl.Orch.Disconnect(sid)
		ctl.limiter.Forget(sid)
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("readPump read error")
				return
			}
			ctl.handleMessage(sid, c, data)
		}
	}
}

// handleMessage dispatches one inbound envelope by its type discriminator.
// Nothing here replies with an error frame: the protocol has none, a bad
// request simply has no visible effect.
func (ctl *StarWSController) handleMessage(sid core.SessionID, c *WsConn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		return
	}

	switch env.Type {
	case "create":
		ctl.handleCreate(sid, data)
	case "delete":
		ctl.handleDelete(sid, data)
	case "ping":
		ctl.handlePing(c)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown message")
	}
}

func (ctl *StarWSController) sendJSON(c *WsConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}
