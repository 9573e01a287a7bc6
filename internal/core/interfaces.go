package core

// Frame is an encoded outbound message (JSON bytes on the wire).
type Frame []byte

// SessionID identifies one live connection. It is minted at upgrade time
// and never reused; a reconnecting client gets a fresh one.
type SessionID string

// SignalConnection abstracts for a system messaging transport
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// Identity is what the gate knows about a connection: who it is and
// whether the handshake granted the elevated delete capability.
type Identity struct {
	SID   SessionID
	Admin bool
}

// PublishResult reports delivery stats/backpressure to the orchestrator.
type PublishResult struct {
	SentTo  int
	Dropped []SessionID
}
