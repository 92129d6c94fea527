package handler

import (
	"github.com/blockgo/server/internal/config"
	"github.com/blockgo/server/internal/core/event"
	"github.com/blockgo/server/internal/net"
	"github.com/blockgo/server/internal/net/packet"
	"github.com/blockgo/server/internal/protocol"
	"github.com/blockgo/server/internal/world"
	"go.uber.org/zap"
)

// Visibility is the part of the visibility system handlers need: scheduling
// a full view refresh after a join or a radius change.
type Visibility interface {
	MarkDirty(v *world.ClientView)
}

// Deps holds shared dependencies injected into all packet handlers.
type Deps struct {
	Config     *config.Config
	Log        *zap.Logger
	Registry   *world.Registry
	Clients    *world.Clients
	Visibility Visibility
	Events     *event.Bus
}

// RegisterAll registers all packet handlers into the registry.
func RegisterAll(reg *packet.Registry, deps *Deps) {
	// Handshake phase
	reg.Register(packet.C_OPCODE_HANDSHAKE,
		[]packet.SessionState{packet.StateHandshake},
		func(sess any, r *packet.Reader) {
			HandleHandshake(sess.(*net.Session), r, deps)
		},
	)

	// Login phase
	reg.Register(packet.C_OPCODE_LOGIN,
		[]packet.SessionState{packet.StateLogin},
		func(sess any, r *packet.Reader) {
			HandleLogin(sess.(*net.Session), r, deps)
		},
	)

	// In-world phase
	inWorld := []packet.SessionState{packet.StateInWorld}
	reg.Register(packet.C_OPCODE_PLAYER, inWorld,
		func(sess any, r *packet.Reader) {},
	)
	reg.Register(packet.C_OPCODE_PLAYER_POSITION, inWorld,
		func(sess any, r *packet.Reader) {
			HandlePosition(sess.(*net.Session), r, deps)
		},
	)
	reg.Register(packet.C_OPCODE_PLAYER_LOOK, inWorld,
		func(sess any, r *packet.Reader) {
			HandleLook(sess.(*net.Session), r, deps)
		},
	)
	reg.Register(packet.C_OPCODE_PLAYER_POSITION_LOOK, inWorld,
		func(sess any, r *packet.Reader) {
			HandlePositionLook(sess.(*net.Session), r, deps)
		},
	)
	reg.Register(packet.C_OPCODE_CLIENT_SETTINGS, inWorld,
		func(sess any, r *packet.Reader) {
			HandleClientSettings(sess.(*net.Session), r, deps)
		},
	)

	// Disconnect is accepted in any live state.
	reg.Register(packet.C_OPCODE_DISCONNECT,
		[]packet.SessionState{packet.StateHandshake, packet.StateLogin, packet.StateInWorld},
		func(sess any, r *packet.Reader) {
			HandleDisconnect(sess.(*net.Session), r, deps)
		},
	)
}

// send marshals m straight onto the session's output buffer.
func send(sess *net.Session, m protocol.Message) {
	sess.Send(protocol.Marshal(m))
}

// playerOf returns the entity controlled by sess, nil before login.
func playerOf(sess *net.Session, deps *Deps) *world.Entity {
	v := deps.Clients.Get(sess.ID)
	if v == nil {
		return nil
	}
	return v.Entity()
}
