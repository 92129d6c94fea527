package handler

import (
	"github.com/blockgo/server/internal/net"
	"github.com/blockgo/server/internal/net/packet"
	"go.uber.org/zap"
)

// HandleClientSettings processes client settings (opcode 0xCC): locale and
// requested view distance in chunks. The radius is clamped to the configured
// bounds; a change triggers a view refresh on the next tick.
func HandleClientSettings(sess *net.Session, r *packet.Reader, deps *Deps) {
	locale := r.ReadS()
	distance := r.ReadC()
	if r.Short() {
		return
	}
	v := deps.Clients.Get(sess.ID)
	if v == nil {
		return
	}
	radius := deps.Config.World.ClampRadius(int(distance))
	if radius == v.Radius {
		return
	}
	deps.Log.Debug("view radius changed",
		zap.Uint64("session", sess.ID),
		zap.String("locale", locale),
		zap.Int("from", v.Radius),
		zap.Int("to", radius),
	)
	v.Radius = radius
	deps.Visibility.MarkDirty(v)
}
