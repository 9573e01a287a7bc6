package app

import "github.com/starwall/starwall/internal/core"

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickSession
	DropFrame
)

// Policy decides what happens to a session whose send buffer was full
// during a fan-out.
type Policy interface {
	OnBackpressure(sid core.SessionID) BackpressureAction
}

// SimplePolicy kicks slow consumers. A kicked client reconnects and gets a
// fresh snapshot, which is cheaper than queuing for it.
type SimplePolicy struct{}

func (SimplePolicy) OnBackpressure(sid core.SessionID) BackpressureAction {
	return KickSession
}
