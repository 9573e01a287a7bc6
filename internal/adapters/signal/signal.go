package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/starwall/starwall/internal/app"
	"github.com/starwall/starwall/internal/config"
	"github.com/starwall/starwall/internal/core"
)

var ErrBackpressure = errors.New("backpressure")

type StarWSController struct {
	Orch       *app.Orchestrator
	ReadLimit  int64
	PingPeriod time.Duration

	limiter  *CreateRateLimiter
	validate *validator.Validate
}

func NewStarWSController(orch *app.Orchestrator, cfg *config.Config) *StarWSController {
	return &StarWSController{
		Orch:       orch,
		ReadLimit:  cfg.ReadLimit,
		PingPeriod: cfg.PingPeriod,
		limiter:    NewCreateRateLimiter(cfg.CreateLimit, cfg.CreateWindow),
		validate:   validator.New(),
	}
}

type WsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleStars upgrades the connection and hands it to the orchestrator.
// Each connection gets a fresh session id; a reconnecting client is a new
// session and catches up from the snapshot. The admin capability is read
// from the handshake query, a trusted flag rather than a security check.
func (ctl *StarWSController) HandleStars(ctx context.Context, c *gin.Context) {
	sid := core.SessionID(uuid.NewString())
	admin := c.Query("admin") == "1"
	log.Info().Str("module", "signal").Str("sid", string(sid)).Bool("admin", admin).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}
	ws.SetReadLimit(ctl.ReadLimit)

	conn := &WsConn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}

	ctx, cancel := context.WithCancel(ctx)
	ctl.Orch.Connect(core.Identity{SID: sid, Admin: admin}, conn, cancel)

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, sid, conn)
}
