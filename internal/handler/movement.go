package handler

import (
	"math"

	"github.com/blockgo/server/internal/net"
	"github.com/blockgo/server/internal/net/packet"
	"github.com/blockgo/server/internal/world"
)

// HandlePosition processes player position (opcode 0x0B):
// x, y, stance, z as doubles followed by on-ground.
// Positions are trusted; only malformed or non-finite values are dropped.
func HandlePosition(sess *net.Session, r *packet.Reader, deps *Deps) {
	x := r.ReadF64()
	y := r.ReadF64()
	_ = r.ReadF64() // stance
	z := r.ReadF64()
	_ = r.ReadBool()
	if r.Short() || !finite(x, y, z) {
		return
	}
	p := playerOf(sess, deps)
	if p == nil {
		return
	}
	p.SetPosition(world.Vec3{X: x, Y: y, Z: z})
}

// HandleLook processes player look (opcode 0x0C): yaw, pitch, on-ground.
func HandleLook(sess *net.Session, r *packet.Reader, deps *Deps) {
	yaw := r.ReadF()
	pitch := r.ReadF()
	_ = r.ReadBool()
	if r.Short() || !finite(float64(yaw), float64(pitch)) {
		return
	}
	p := playerOf(sess, deps)
	if p == nil {
		return
	}
	p.Move(p.Position(), yaw, pitch)
}

// HandlePositionLook processes the combined packet (opcode 0x0D). One
// notification goes out for the whole update.
func HandlePositionLook(sess *net.Session, r *packet.Reader, deps *Deps) {
	x := r.ReadF64()
	y := r.ReadF64()
	_ = r.ReadF64() // stance
	z := r.ReadF64()
	yaw := r.ReadF()
	pitch := r.ReadF()
	_ = r.ReadBool()
	if r.Short() || !finite(x, y, z, float64(yaw), float64(pitch)) {
		return
	}
	p := playerOf(sess, deps)
	if p == nil {
		return
	}
	p.Move(world.Vec3{X: x, Y: y, Z: z}, yaw, pitch)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
