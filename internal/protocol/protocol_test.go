package protocol

import (
	"testing"

	"github.com/blockgo/server/internal/net/packet"
	"github.com/stretchr/testify/require"
)

func TestAngleByte(t *testing.T) {
	cases := []struct {
		deg  float32
		want byte
	}{
		{0, 0},
		{90, 64},
		{180, 128},
		{270, 192},
		{359, 255},
		{360, 0},
		{450, 64},
		{-90, 192},
		{45.7, 32},
	}
	for _, c := range cases {
		require.Equal(t, c.want, AngleByte(c.deg), "yaw %v", c.deg)
	}
}

func TestVelocityComponent(t *testing.T) {
	v := NewVelocity(7, 1.0, -0.5, 0.25)
	require.Equal(t, Velocity{EntityID: 7, X: 320, Y: -160, Z: 80}, v)

	require.Equal(t, int16(-1), VelocityComponent(-0.001))
	require.Equal(t, int16(32767), VelocityComponent(1000))
	require.Equal(t, int16(-32768), VelocityComponent(-1000))
}

func TestFixedPoint(t *testing.T) {
	require.Equal(t, int32(32), FixedPoint(1))
	require.Equal(t, int32(-16), FixedPoint(-0.5))
	require.Equal(t, int32(-1), FixedPoint(-0.01))
}

func TestMarshalDestroy(t *testing.T) {
	require.Equal(t, []byte{packet.S_OPCODE_DESTROY_ENTITY, 0, 0, 1, 2}, Marshal(Destroy{EntityID: 258}))
}

func TestMarshalTeleport(t *testing.T) {
	got := Marshal(Teleport{EntityID: 1, X: 1, Y: 2, Z: -1, Yaw: 64, Pitch: 192})
	r := packet.NewReader(got)
	require.Equal(t, byte(packet.S_OPCODE_ENTITY_TELEPORT), r.Opcode())
	require.Equal(t, int32(1), r.ReadD())
	require.Equal(t, int32(32), r.ReadD())
	require.Equal(t, int32(64), r.ReadD())
	require.Equal(t, int32(-32), r.ReadD())
	require.Equal(t, byte(64), r.ReadC())
	require.Equal(t, byte(192), r.ReadC())
	require.Equal(t, 0, r.Remaining())
}

func TestMarshalSpawnPlayer(t *testing.T) {
	got := Marshal(SpawnPlayer{EntityID: 5, Name: "Notch", X: 0.5, Y: 64, Z: 0.5, Yaw: 128, HeldItem: 0})
	r := packet.NewReader(got)
	require.Equal(t, byte(packet.S_OPCODE_NAMED_ENTITY_SPAWN), r.Opcode())
	require.Equal(t, int32(5), r.ReadD())
	require.Equal(t, "Notch", r.ReadS())
	require.Equal(t, int32(16), r.ReadD())
	require.Equal(t, int32(2048), r.ReadD())
	require.Equal(t, int32(16), r.ReadD())
	require.Equal(t, byte(128), r.ReadC())
	require.Equal(t, byte(0), r.ReadC())
	require.Equal(t, int16(0), r.ReadH())
	require.False(t, r.Short())
}

func TestMarshalMetadataTerminated(t *testing.T) {
	got := Marshal(Metadata{EntityID: 2, Blob: []byte{0x00, 0x01}})
	require.Equal(t, []byte{packet.S_OPCODE_ENTITY_METADATA, 0, 0, 0, 2, 0x00, 0x01, MetadataTerminator}, got)
}

func TestMarshalVelocity(t *testing.T) {
	got := Marshal(NewVelocity(3, 1, -0.5, 0.25))
	require.Equal(t, []byte{packet.S_OPCODE_ENTITY_VELOCITY, 0, 0, 0, 3, 0x01, 0x40, 0xFF, 0x60, 0x00, 0x50}, got)
}
