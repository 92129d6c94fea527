package scripting

import (
	"math"

	"github.com/blockgo/server/internal/world"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

var _ world.Behavior = (*Behavior)(nil)

// Behavior drives one entity from a Lua function. The function receives a
// table with the entity's id, kind, x/y/z, yaw/pitch, vx/vy/vz, age (ticks
// since the behavior started) and a persistent state table, and returns a
// table of changes: any of x, y, z, yaw, pitch, vx, vy, vz, despawn. Returning
// nil leaves the entity as is.
type Behavior struct {
	engine *Engine
	name   string
	fn     *lua.LFunction
	state  *lua.LTable
	age    int
	failed bool
}

func (b *Behavior) Name() string { return b.name }

// Update implements world.Behavior.
func (b *Behavior) Update(e *world.Entity, r *world.Registry) {
	if b.failed {
		return
	}
	vm := b.engine.vm
	b.age++

	pos := e.Position()
	t := vm.NewTable()
	t.RawSetString("id", lua.LNumber(e.ID))
	t.RawSetString("kind", lua.LString(e.Kind.String()))
	t.RawSetString("x", lua.LNumber(pos.X))
	t.RawSetString("y", lua.LNumber(pos.Y))
	t.RawSetString("z", lua.LNumber(pos.Z))
	t.RawSetString("yaw", lua.LNumber(e.Yaw()))
	t.RawSetString("pitch", lua.LNumber(e.Pitch()))
	t.RawSetString("vx", lua.LNumber(e.Velocity.X))
	t.RawSetString("vy", lua.LNumber(e.Velocity.Y))
	t.RawSetString("vz", lua.LNumber(e.Velocity.Z))
	t.RawSetString("age", lua.LNumber(b.age))
	t.RawSetString("state", b.state)

	result, err := b.engine.call(b.fn, t)
	if err != nil {
		// A broken script would fail every tick; stop calling it.
		b.failed = true
		b.engine.log.Error("lua behavior error, disabled for entity",
			zap.String("behavior", b.name),
			zap.Stringer("entity", e.ID),
			zap.Error(err),
		)
		return
	}
	rt, ok := result.(*lua.LTable)
	if !ok {
		return
	}
	apply(e, r, rt)
}

func apply(e *world.Entity, r *world.Registry, rt *lua.LTable) {
	if rt.RawGetString("despawn") == lua.LTrue {
		r.Despawn(e)
		return
	}

	if e.HasVelocity() {
		v := e.Velocity
		if x, ok := lNum(rt, "vx"); ok {
			v.X = x
		}
		if y, ok := lNum(rt, "vy"); ok {
			v.Y = y
		}
		if z, ok := lNum(rt, "vz"); ok {
			v.Z = z
		}
		e.Velocity = v
	}

	pos := e.Position()
	if x, ok := lNum(rt, "x"); ok {
		pos.X = x
	}
	if y, ok := lNum(rt, "y"); ok {
		pos.Y = y
	}
	if z, ok := lNum(rt, "z"); ok {
		pos.Z = z
	}
	yaw, pitch := e.Yaw(), e.Pitch()
	if v, ok := lNum(rt, "yaw"); ok {
		yaw = float32(v)
	}
	if v, ok := lNum(rt, "pitch"); ok {
		pitch = float32(v)
	}
	if !finite(pos.X, pos.Y, pos.Z, float64(yaw), float64(pitch)) {
		return
	}
	e.Move(pos, yaw, pitch)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
