package system

import (
	"time"

	coresys "github.com/blockgo/server/internal/core/system"
	"github.com/blockgo/server/internal/net"
	"github.com/blockgo/server/internal/net/packet"
)

// OutputSystem hands every session's buffered packets to its writer
// goroutine once per tick. Sessions marked for disconnect are closed once
// their last packet has been picked up. Phase 4 (Output).
type OutputSystem struct {
	store *net.SessionStore
}

func NewOutputSystem(store *net.SessionStore) *OutputSystem {
	return &OutputSystem{store: store}
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *OutputSystem) Update(_ time.Duration) {
	s.store.ForEach(func(sess *net.Session) {
		sess.FlushOutput()
		if sess.State() == packet.StateDisconnecting && !sess.IsClosed() && len(sess.OutQueue) == 0 {
			sess.Close()
		}
	})
}
