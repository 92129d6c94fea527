package system

import (
	"time"

	coresys "github.com/blockgo/server/internal/core/system"
	"github.com/blockgo/server/internal/handler"
	"github.com/blockgo/server/internal/net"
	"github.com/blockgo/server/internal/net/packet"
	"go.uber.org/zap"
)

// SessionSource hands new and dead sessions to the game loop. *net.Server
// implements it.
type SessionSource interface {
	NewSessions() <-chan *net.Session
	DeadSessions() <-chan uint64
	NotifyDead(sessionID uint64)
}

// InputSystem drains packet queues from all sessions and dispatches them
// through the packet registry. Phase 0 (Input).
type InputSystem struct {
	source     SessionSource
	registry   *packet.Registry
	store      *net.SessionStore
	deps       *handler.Deps
	maxPerTick int
	log        *zap.Logger
}

func NewInputSystem(
	source SessionSource,
	registry *packet.Registry,
	store *net.SessionStore,
	deps *handler.Deps,
	maxPerTick int,
	log *zap.Logger,
) *InputSystem {
	return &InputSystem{
		source:     source,
		registry:   registry,
		store:      store,
		deps:       deps,
		maxPerTick: maxPerTick,
		log:        log,
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	// Accept new sessions
	for {
		select {
		case sess := <-s.source.NewSessions():
			s.store.Add(sess)
		default:
			goto doneNew
		}
	}
doneNew:

	// Process dead sessions
	for {
		select {
		case id := <-s.source.DeadSessions():
			s.store.Remove(id)
		default:
			goto doneDead
		}
	}
doneDead:

	s.store.ForEach(func(sess *net.Session) {
		if sess.IsClosed() {
			// Packets that arrived before the close still count (a final
			// position update, the disconnect packet itself).
			s.drain(sess, true)
			handler.LeaveWorld(sess, s.deps)
			s.source.NotifyDead(sess.ID)
			s.store.Remove(sess.ID)
			sess.Log().Info("client disconnected")
			return
		}
		s.drain(sess, false)
	})
}

// drain dispatches up to maxPerTick packets from sess.
func (s *InputSystem) drain(sess *net.Session, closing bool) {
	for i := 0; i < s.maxPerTick; i++ {
		select {
		case data := <-sess.InQueue:
			if err := s.registry.Dispatch(sess, sess.State(), data); err != nil {
				s.log.Debug("packet dispatch error",
					zap.Uint64("session", sess.ID),
					zap.Bool("closing", closing),
					zap.Error(err),
				)
			}
		default:
			return
		}
	}
}
