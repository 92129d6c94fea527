package handler

import (
	"github.com/blockgo/server/internal/net"
	"github.com/blockgo/server/internal/net/packet"
	"github.com/blockgo/server/internal/protocol"
	"go.uber.org/zap"
)

// offlineHash tells the client not to contact the session server.
const offlineHash = "-"

// HandleHandshake processes the client handshake (opcode 0x02).
// The client sends its username; the server answers with the connection hash
// and waits for the login packet.
func HandleHandshake(sess *net.Session, r *packet.Reader, deps *Deps) {
	name := r.ReadS()
	deps.Log.Debug("handshake", zap.Uint64("session", sess.ID), zap.String("name", name))

	send(sess, protocol.HandshakeResponse{ConnectionHash: offlineHash})
	sess.SetState(packet.StateLogin)
}
