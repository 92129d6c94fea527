package handler

import (
	"fmt"

	"github.com/blockgo/server/internal/core/event"
	"github.com/blockgo/server/internal/net"
	"github.com/blockgo/server/internal/net/packet"
	"github.com/blockgo/server/internal/protocol"
	"github.com/blockgo/server/internal/world"
	"go.uber.org/zap"
)

const maxNameLength = 16

// HandleLogin processes the login request (opcode 0x01): protocol version,
// username, map seed and dimension. On success the session gets a player
// entity and a client view, and its first view refresh is scheduled.
func HandleLogin(sess *net.Session, r *packet.Reader, deps *Deps) {
	version := r.ReadD()
	name := r.ReadS()
	_ = r.ReadQ() // seed, unused by clients
	_ = r.ReadC() // dimension

	if version != packet.ProtocolVersion {
		deps.Log.Info("login rejected: protocol mismatch",
			zap.Uint64("session", sess.ID),
			zap.Int32("version", version),
		)
		reject(sess, fmt.Sprintf("Outdated client! Server protocol is %d", packet.ProtocolVersion))
		return
	}
	if r.Short() || name == "" || len([]rune(name)) > maxNameLength {
		deps.Log.Info("login rejected: bad name", zap.Uint64("session", sess.ID), zap.String("name", name))
		reject(sess, "Invalid username")
		return
	}

	cfg := deps.Config
	view := world.NewClientView(sess.ID, sess, cfg.World.DefaultRadius)
	spawn := world.Vec3{X: cfg.World.Spawn[0], Y: cfg.World.Spawn[1], Z: cfg.World.Spawn[2]}
	player := world.NewPlayer(name, spawn, view)
	deps.Registry.Add(player)
	deps.Clients.Add(view)
	sess.Username = name

	send(sess, protocol.LoginResponse{EntityID: player.ID, Seed: cfg.Server.Seed})
	sess.SetState(packet.StateInWorld)
	deps.Visibility.MarkDirty(view)

	event.Emit(deps.Events, event.ClientJoined{
		SessionID:   sess.ID,
		SessionUUID: sess.UUID.String(),
		Name:        name,
		EntityID:    player.ID,
	})
	deps.Log.Info("player joined",
		zap.Uint64("session", sess.ID),
		zap.String("name", name),
		zap.Stringer("entity", player.ID),
	)
}

// reject queues a disconnect message. OutputSystem closes the session once
// the message has left the output queue.
func reject(sess *net.Session, reason string) {
	send(sess, protocol.Disconnect{Reason: reason})
	sess.SetState(packet.StateDisconnecting)
}
