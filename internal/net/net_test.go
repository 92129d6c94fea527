package net

import (
	"bytes"
	"net"
	"testing"
	"time"

	"github.com/blockgo/server/internal/net/packet"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte{0x1D, 0, 0, 0, 7}))
	require.Equal(t, []byte{0x00, 0x07, 0x1D, 0, 0, 0, 7}, buf.Bytes())

	payload, err := ReadFrame(&buf)
	require.NoError(t, err)
	require.Equal(t, []byte{0x1D, 0, 0, 0, 7}, payload)
}

func TestReadFrameRejectsEmpty(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader([]byte{0x00, 0x02}))
	require.ErrorContains(t, err, "invalid frame length")

	_, err = ReadFrame(bytes.NewReader([]byte{0x00, 0x09, 0x01}))
	require.Error(t, err)
}

func TestWriteFrameTooLarge(t *testing.T) {
	require.Error(t, WriteFrame(&bytes.Buffer{}, make([]byte, MaxFrameSize)))
}

func newPipeSession(t *testing.T, opts SessionOptions) (*Session, net.Conn) {
	t.Helper()
	server, client := net.Pipe()
	t.Cleanup(func() { client.Close() })
	return NewSession(server, 1, opts, zap.NewNop()), client
}

func TestSessionBuffersUntilFlush(t *testing.T) {
	s, _ := newPipeSession(t, SessionOptions{InQueueSize: 1, OutQueueSize: 4})
	require.Equal(t, packet.StateHandshake, s.State())

	s.Send([]byte{1})
	s.Send([]byte{2})
	require.Equal(t, 2, s.Buffered())
	require.Len(t, s.OutQueue, 0)

	s.FlushOutput()
	require.Equal(t, 0, s.Buffered())
	require.Equal(t, []byte{1}, <-s.OutQueue)
	require.Equal(t, []byte{2}, <-s.OutQueue)
}

func TestSessionBackpressureCloses(t *testing.T) {
	s, _ := newPipeSession(t, SessionOptions{InQueueSize: 1, OutQueueSize: 1})
	s.Send([]byte{1})
	s.Send([]byte{2})
	s.FlushOutput()
	require.True(t, s.IsClosed())
	require.Equal(t, packet.StateDisconnecting, s.State())

	s.Send([]byte{3})
	require.Equal(t, 0, s.Buffered())
}

func TestSessionReadWriteLoops(t *testing.T) {
	s, client := newPipeSession(t, SessionOptions{InQueueSize: 4, OutQueueSize: 4, WriteTimeout: time.Second})
	s.Start()
	defer s.Close()

	go func() { _ = WriteFrame(client, []byte{packet.C_OPCODE_PLAYER, 1}) }()
	select {
	case data := <-s.InQueue:
		require.Equal(t, []byte{packet.C_OPCODE_PLAYER, 1}, data)
	case <-time.After(2 * time.Second):
		t.Fatal("inbound frame not delivered")
	}

	s.Send([]byte{packet.S_OPCODE_DESTROY_ENTITY, 0, 0, 0, 9})
	s.FlushOutput()
	got, err := ReadFrame(client)
	require.NoError(t, err)
	require.Equal(t, []byte{packet.S_OPCODE_DESTROY_ENTITY, 0, 0, 0, 9}, got)
}

func TestSessionStoreOrder(t *testing.T) {
	st := NewSessionStore()
	for _, id := range []uint64{3, 1, 2} {
		st.Add(&Session{ID: id})
	}
	var ids []uint64
	st.ForEach(func(s *Session) { ids = append(ids, s.ID) })
	require.Equal(t, []uint64{1, 2, 3}, ids)

	st.Remove(2)
	require.Nil(t, st.Get(2))
	require.Equal(t, 2, st.Len())
}
