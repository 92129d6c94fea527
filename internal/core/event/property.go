package event

import "fmt"

// Property names an entity attribute whose change must be mirrored to clients.
type Property uint8

const (
	PropPosition Property = iota + 1
	PropYaw
	PropPitch
	PropMetadata
)

func (p Property) String() string {
	switch p {
	case PropPosition:
		return "Position"
	case PropYaw:
		return "Yaw"
	case PropPitch:
		return "Pitch"
	case PropMetadata:
		return "Metadata"
	default:
		return fmt.Sprintf("Property(%d)", uint8(p))
	}
}

// PropertyBus delivers property-changed notifications synchronously: Notify
// returns only after every subscriber has run. Unlike Bus there is no
// buffering, so subscribers observe the entity exactly as the publisher left it.
// Single-goroutine access only (game loop).
type PropertyBus[E any] struct {
	subs []func(E, Property)
}

func NewPropertyBus[E any]() *PropertyBus[E] {
	return &PropertyBus[E]{}
}

// Subscribe appends fn; subscribers run in registration order.
func (b *PropertyBus[E]) Subscribe(fn func(E, Property)) {
	b.subs = append(b.subs, fn)
}

func (b *PropertyBus[E]) Notify(e E, p Property) {
	for _, fn := range b.subs {
		fn(e, p)
	}
}
