package packet

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWriterBigEndian(t *testing.T) {
	w := NewWriterWithOpcode(0x22)
	w.WriteD(0x01020304)
	w.WriteH(-2)
	w.WriteC(0xAB)
	w.WriteBool(true)
	require.Equal(t, []byte{0x22, 1, 2, 3, 4, 0xFF, 0xFE, 0xAB, 0x01}, w.Bytes())
	require.Equal(t, 9, w.Len())
}

func TestString16(t *testing.T) {
	w := NewWriterWithOpcode(0xFF)
	w.WriteS("Hé")
	// length 2 code units, then UTF-16BE
	require.Equal(t, []byte{0xFF, 0x00, 0x02, 0x00, 'H', 0x00, 0xE9}, w.Bytes())

	r := NewReader(w.Bytes())
	require.Equal(t, byte(0xFF), r.Opcode())
	require.Equal(t, "Hé", r.ReadS())
	require.Equal(t, 0, r.Remaining())
	require.False(t, r.Short())
}

func TestReaderNumbers(t *testing.T) {
	w := NewWriterWithOpcode(0x0D)
	w.WriteF64(12.5)
	w.WriteF(-90)
	w.WriteQ(-7)
	r := NewReader(w.Bytes())
	require.Equal(t, 12.5, r.ReadF64())
	require.Equal(t, float32(-90), r.ReadF())
	require.Equal(t, int64(-7), r.ReadQ())
}

func TestReaderShort(t *testing.T) {
	r := NewReader([]byte{0x0B, 0x00, 0x01})
	require.Equal(t, int32(0), r.ReadD())
	require.True(t, r.Short())
	require.Equal(t, 0, r.Remaining())
	require.Equal(t, "", r.ReadS())
}

func TestRegistryDispatch(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	var got int32
	reg.Register(C_OPCODE_LOGIN, []SessionState{StateLogin}, func(_ any, r *Reader) {
		got = r.ReadD()
	})
	reg.Register(C_OPCODE_DISCONNECT, []SessionState{StateInWorld}, func(any, *Reader) {
		panic("boom")
	})

	w := NewWriterWithOpcode(C_OPCODE_LOGIN)
	w.WriteD(ProtocolVersion)

	require.Error(t, reg.Dispatch(nil, StateHandshake, w.Bytes()))
	require.NoError(t, reg.Dispatch(nil, StateLogin, w.Bytes()))
	require.Equal(t, int32(ProtocolVersion), got)

	require.NoError(t, reg.Dispatch(nil, StateLogin, []byte{0x42}))
	require.Error(t, reg.Dispatch(nil, StateLogin, nil))

	err := reg.Dispatch(nil, StateInWorld, []byte{C_OPCODE_DISCONNECT})
	require.ErrorContains(t, err, "panic")
}
