package event

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBusDeliversNextTick(t *testing.T) {
	b := NewBus()
	var got []EntityDespawned
	Subscribe(b, func(ev EntityDespawned) { got = append(got, ev) })

	Emit(b, EntityDespawned{EntityID: 1})
	Emit(b, EntityDespawned{EntityID: 2})
	require.Equal(t, 2, b.Pending())

	// Nothing is readable until the buffers swap.
	b.DispatchAll()
	require.Empty(t, got)

	b.SwapBuffers()
	require.Equal(t, 0, b.Pending())
	b.DispatchAll()
	require.Len(t, got, 2)
	require.EqualValues(t, 1, got[0].EntityID)
	require.EqualValues(t, 2, got[1].EntityID)

	// The next swap clears what was dispatched.
	b.SwapBuffers()
	b.DispatchAll()
	require.Len(t, got, 2)
}

func TestBusTypesAreIsolated(t *testing.T) {
	b := NewBus()
	joined, left := 0, 0
	Subscribe(b, func(ClientJoined) { joined++ })
	Subscribe(b, func(ClientLeft) { left++ })
	Emit(b, ClientJoined{Name: "a"})
	b.SwapBuffers()
	b.DispatchAll()
	require.Equal(t, 1, joined)
	require.Equal(t, 0, left)
}

func TestEmitOnNilBus(t *testing.T) {
	require.NotPanics(t, func() { Emit[ClientLeft](nil, ClientLeft{}) })
}

func TestPropertyBusIsSynchronous(t *testing.T) {
	b := NewPropertyBus[string]()
	var calls []string
	b.Subscribe(func(e string, p Property) { calls = append(calls, "first:"+e+":"+p.String()) })
	b.Subscribe(func(e string, p Property) { calls = append(calls, "second:"+e+":"+p.String()) })

	b.Notify("pig", PropYaw)
	require.Equal(t, []string{"first:pig:Yaw", "second:pig:Yaw"}, calls)
	require.Equal(t, "Property(9)", Property(9).String())
}
