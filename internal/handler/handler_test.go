package handler

import (
	"net"
	"testing"

	"github.com/blockgo/server/internal/config"
	"github.com/blockgo/server/internal/core/event"
	gonet "github.com/blockgo/server/internal/net"
	"github.com/blockgo/server/internal/net/packet"
	"github.com/blockgo/server/internal/world"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type dirtyRecorder struct{ views []*world.ClientView }

func (d *dirtyRecorder) MarkDirty(v *world.ClientView) { d.views = append(d.views, v) }

type harness struct {
	deps  *Deps
	reg   *packet.Registry
	dirty *dirtyRecorder
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	bus := event.NewBus()
	dirty := &dirtyRecorder{}
	deps := &Deps{
		Config:     config.Default(),
		Log:        zap.NewNop(),
		Registry:   world.NewRegistry(bus, zap.NewNop()),
		Clients:    world.NewClients(),
		Visibility: dirty,
		Events:     bus,
	}
	reg := packet.NewRegistry(zap.NewNop())
	RegisterAll(reg, deps)
	return &harness{deps: deps, reg: reg, dirty: dirty}
}

func newSession(t *testing.T, id uint64) *gonet.Session {
	t.Helper()
	c1, c2 := net.Pipe()
	t.Cleanup(func() { c1.Close(); c2.Close() })
	return gonet.NewSession(c1, id, gonet.SessionOptions{InQueueSize: 8, OutQueueSize: 64}, zap.NewNop())
}

// sent flushes the session and returns every queued payload.
func sent(sess *gonet.Session) [][]byte {
	sess.FlushOutput()
	var out [][]byte
	for {
		select {
		case data := <-sess.OutQueue:
			out = append(out, data)
		default:
			return out
		}
	}
}

func (h *harness) dispatch(t *testing.T, sess *gonet.Session, w *packet.Writer) {
	t.Helper()
	require.NoError(t, h.reg.Dispatch(sess, sess.State(), w.Bytes()))
}

func handshake(name string) *packet.Writer {
	w := packet.NewWriterWithOpcode(packet.C_OPCODE_HANDSHAKE)
	w.WriteS(name)
	return w
}

func login(version int32, name string) *packet.Writer {
	w := packet.NewWriterWithOpcode(packet.C_OPCODE_LOGIN)
	w.WriteD(version)
	w.WriteS(name)
	w.WriteQ(0)
	w.WriteC(0)
	return w
}

func (h *harness) join(t *testing.T, sess *gonet.Session, name string) *world.Entity {
	t.Helper()
	h.dispatch(t, sess, handshake(name))
	h.dispatch(t, sess, login(packet.ProtocolVersion, name))
	v := h.deps.Clients.Get(sess.ID)
	require.NotNil(t, v)
	return v.Entity()
}

func TestHandshakeThenLogin(t *testing.T) {
	h := newHarness(t)
	sess := newSession(t, 1)

	h.dispatch(t, sess, handshake("alex"))
	require.Equal(t, packet.StateLogin, sess.State())
	out := sent(sess)
	require.Len(t, out, 1)
	require.Equal(t, byte(packet.S_OPCODE_HANDSHAKE), out[0][0])

	h.dispatch(t, sess, login(packet.ProtocolVersion, "alex"))
	require.Equal(t, packet.StateInWorld, sess.State())
	require.Equal(t, "alex", sess.Username)

	v := h.deps.Clients.Get(1)
	require.NotNil(t, v)
	p := v.Entity()
	require.NotNil(t, p)
	require.True(t, p.IsPlayer())
	require.Same(t, p, h.deps.Registry.Get(p.ID))
	require.Equal(t, 5, v.Radius)
	require.Equal(t, []*world.ClientView{v}, h.dirty.views)

	out = sent(sess)
	require.Len(t, out, 1)
	require.Equal(t, byte(packet.S_OPCODE_LOGIN_RESPONSE), out[0][0])

	var joined []event.ClientJoined
	event.Subscribe(h.deps.Events, func(ev event.ClientJoined) { joined = append(joined, ev) })
	h.deps.Events.SwapBuffers()
	h.deps.Events.DispatchAll()
	require.Len(t, joined, 1)
	require.Equal(t, p.ID, joined[0].EntityID)
	require.Equal(t, sess.UUID.String(), joined[0].SessionUUID)
}

func TestLoginRejectsWrongProtocol(t *testing.T) {
	h := newHarness(t)
	sess := newSession(t, 1)
	h.dispatch(t, sess, handshake("alex"))
	sent(sess)

	h.dispatch(t, sess, login(13, "alex"))
	require.Equal(t, packet.StateDisconnecting, sess.State())
	require.Zero(t, h.deps.Registry.Len())
	require.Zero(t, h.deps.Clients.Len())

	out := sent(sess)
	require.Len(t, out, 1)
	require.Equal(t, byte(packet.S_OPCODE_DISCONNECT), out[0][0])
}

func TestLoginBeforeHandshakeIsRefused(t *testing.T) {
	h := newHarness(t)
	sess := newSession(t, 1)
	err := h.reg.Dispatch(sess, sess.State(), login(packet.ProtocolVersion, "alex").Bytes())
	require.Error(t, err)
	require.Zero(t, h.deps.Registry.Len())
}

func TestMovementUpdatesPlayer(t *testing.T) {
	h := newHarness(t)
	sess := newSession(t, 1)
	p := h.join(t, sess, "alex")

	w := packet.NewWriterWithOpcode(packet.C_OPCODE_PLAYER_POSITION)
	w.WriteF64(10.5)
	w.WriteF64(65)
	w.WriteF64(66.62)
	w.WriteF64(-3)
	w.WriteBool(true)
	h.dispatch(t, sess, w)
	require.Equal(t, world.Vec3{X: 10.5, Y: 65, Z: -3}, p.Position())

	w = packet.NewWriterWithOpcode(packet.C_OPCODE_PLAYER_LOOK)
	w.WriteF(90)
	w.WriteF(-10)
	w.WriteBool(true)
	h.dispatch(t, sess, w)
	require.Equal(t, float32(90), p.Yaw())
	require.Equal(t, float32(-10), p.Pitch())

	w = packet.NewWriterWithOpcode(packet.C_OPCODE_PLAYER_POSITION_LOOK)
	w.WriteF64(1)
	w.WriteF64(64)
	w.WriteF64(65.62)
	w.WriteF64(2)
	w.WriteF(180)
	w.WriteF(0)
	w.WriteBool(true)
	h.dispatch(t, sess, w)
	require.Equal(t, world.Vec3{X: 1, Y: 64, Z: 2}, p.Position())
	require.Equal(t, float32(180), p.Yaw())
}

func TestTruncatedMovementIgnored(t *testing.T) {
	h := newHarness(t)
	sess := newSession(t, 1)
	p := h.join(t, sess, "alex")
	before := p.Position()

	w := packet.NewWriterWithOpcode(packet.C_OPCODE_PLAYER_POSITION)
	w.WriteF64(100)
	h.dispatch(t, sess, w)
	require.Equal(t, before, p.Position())
}

func TestClientSettingsClampsRadius(t *testing.T) {
	h := newHarness(t)
	sess := newSession(t, 1)
	h.join(t, sess, "alex")
	v := h.deps.Clients.Get(1)
	h.dirty.views = nil

	settings := func(d byte) *packet.Writer {
		w := packet.NewWriterWithOpcode(packet.C_OPCODE_CLIENT_SETTINGS)
		w.WriteS("en_US")
		w.WriteC(d)
		return w
	}
	h.dispatch(t, sess, settings(32))
	require.Equal(t, 10, v.Radius)
	require.Len(t, h.dirty.views, 1)

	h.dispatch(t, sess, settings(10))
	require.Len(t, h.dirty.views, 1, "unchanged radius does not refresh")

	h.dispatch(t, sess, settings(0))
	require.Equal(t, 2, v.Radius)
	require.Len(t, h.dirty.views, 2)
}

func TestLeaveWorldDespawnsPlayer(t *testing.T) {
	h := newHarness(t)
	sess := newSession(t, 1)
	p := h.join(t, sess, "alex")
	v := h.deps.Clients.Get(1)
	v.Remember(42)

	w := packet.NewWriterWithOpcode(packet.C_OPCODE_DISCONNECT)
	w.WriteS("Quitting")
	h.dispatch(t, sess, w)
	require.True(t, sess.IsClosed())

	LeaveWorld(sess, h.deps)
	require.Nil(t, h.deps.Clients.Get(1))
	require.Zero(t, v.KnownCount())
	require.True(t, p.PendingDespawn())

	h.deps.Registry.FlushDespawns()
	require.Nil(t, h.deps.Registry.Get(p.ID))

	// Second call is a no-op.
	LeaveWorld(sess, h.deps)
}
