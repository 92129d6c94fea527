package handler

import (
	"github.com/blockgo/server/internal/core/event"
	"github.com/blockgo/server/internal/net"
	"github.com/blockgo/server/internal/net/packet"
	"go.uber.org/zap"
)

// HandleDisconnect processes the client's disconnect (opcode 0xFF).
// We just close the session; InputSystem calls LeaveWorld for the cleanup.
func HandleDisconnect(sess *net.Session, r *packet.Reader, deps *Deps) {
	reason := r.ReadS()
	deps.Log.Info("client quit", zap.Uint64("session", sess.ID), zap.String("reason", reason))
	sess.Close()
}

// LeaveWorld discards the session's view and despawns its player. The view
// leaves the client set first, so the closing connection is not sent the
// despawn of its own entity or anything else.
func LeaveWorld(sess *net.Session, deps *Deps) {
	v := deps.Clients.Remove(sess.ID)
	if v == nil {
		return
	}
	v.Reset()
	p := v.Entity()
	if p == nil {
		return
	}
	deps.Registry.Despawn(p)

	event.Emit(deps.Events, event.ClientLeft{
		SessionID:   sess.ID,
		SessionUUID: sess.UUID.String(),
		Name:        p.Name,
		EntityID:    p.ID,
	})
	deps.Log.Info("player left",
		zap.Uint64("session", sess.ID),
		zap.String("name", p.Name),
		zap.Stringer("entity", p.ID),
	)
}
