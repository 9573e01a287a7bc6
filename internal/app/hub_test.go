package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starwall/starwall/internal/core"
)

func TestHubRegisterUnregister(t *testing.T) {
	h := NewHub()
	c := &fakeConn{}

	h.Register(core.Identity{SID: "s1"}, c, nil)
	assert.Equal(t, 1, h.SessionCount())

	ident, ok := h.Identity("s1")
	require.True(t, ok)
	assert.Equal(t, core.SessionID("s1"), ident.SID)

	h.Unregister("s1")
	h.Unregister("s1") // second time is a no-op
	assert.Equal(t, 0, h.SessionCount())

	_, ok = h.Identity("s1")
	assert.False(t, ok)
}

func TestHubSendToUnknownSession(t *testing.T) {
	h := NewHub()
	h.Send("ghost", core.Frame(`{}`)) // must not panic
}

func TestHubBroadcastExcept(t *testing.T) {
	h := NewHub()
	origin := &fakeConn{}
	other := &fakeConn{}
	h.Register(core.Identity{SID: "origin"}, origin, nil)
	h.Register(core.Identity{SID: "other"}, other, nil)

	res := h.BroadcastExcept("origin", core.Frame(`{"type":"created"}`))
	assert.Equal(t, 1, res.SentTo)
	assert.Empty(t, origin.frames)
	assert.Len(t, other.frames, 1)
}

func TestHubBroadcastReportsDropped(t *testing.T) {
	h := NewHub()
	fast := &fakeConn{}
	slow := &fakeConn{full: true}
	h.Register(core.Identity{SID: "fast"}, fast, nil)
	h.Register(core.Identity{SID: "slow"}, slow, nil)

	res := h.Broadcast(core.Frame(`{"type":"created"}`))
	assert.Equal(t, 1, res.SentTo)
	require.Len(t, res.Dropped, 1)
	assert.Equal(t, core.SessionID("slow"), res.Dropped[0])
}

func TestHubKick(t *testing.T) {
	h := NewHub()
	kicked := false
	h.Register(core.Identity{SID: "s1"}, &fakeConn{}, func() { kicked = true })

	assert.True(t, h.Kick("s1"))
	assert.True(t, kicked)
	assert.False(t, h.Kick("ghost"))
}
