package protocol

import (
	"github.com/blockgo/server/internal/core/ecs"
	"github.com/blockgo/server/internal/net/packet"
)

// Message is an outbound protocol intent. Marshal turns it into a frame
// payload; the transport owns framing.
type Message interface {
	Opcode() byte
	Encode(w *packet.Writer)
}

// Marshal encodes m including its opcode byte.
func Marshal(m Message) []byte {
	w := packet.NewWriterWithOpcode(m.Opcode())
	m.Encode(w)
	return w.Bytes()
}

// SpawnPlayer introduces another player's entity to a client.
type SpawnPlayer struct {
	EntityID ecs.EntityID
	Name     string
	X, Y, Z  float64
	Yaw      byte
	Pitch    byte
	HeldItem int16
}

func (SpawnPlayer) Opcode() byte { return packet.S_OPCODE_NAMED_ENTITY_SPAWN }

func (m SpawnPlayer) Encode(w *packet.Writer) {
	w.WriteD(int32(m.EntityID))
	w.WriteS(m.Name)
	w.WriteD(FixedPoint(m.X))
	w.WriteD(FixedPoint(m.Y))
	w.WriteD(FixedPoint(m.Z))
	w.WriteC(m.Yaw)
	w.WriteC(m.Pitch)
	w.WriteH(m.HeldItem)
}

// SpawnObject introduces a non-player entity (generic or physics-driven).
type SpawnObject struct {
	EntityID   ecs.EntityID
	ObjectType byte
	X, Y, Z    float64
}

func (SpawnObject) Opcode() byte { return packet.S_OPCODE_ADD_OBJECT }

func (m SpawnObject) Encode(w *packet.Writer) {
	w.WriteD(int32(m.EntityID))
	w.WriteC(m.ObjectType)
	w.WriteD(FixedPoint(m.X))
	w.WriteD(FixedPoint(m.Y))
	w.WriteD(FixedPoint(m.Z))
}

// Destroy tells a client to forget an entity.
type Destroy struct {
	EntityID ecs.EntityID
}

func (Destroy) Opcode() byte { return packet.S_OPCODE_DESTROY_ENTITY }

func (m Destroy) Encode(w *packet.Writer) {
	w.WriteD(int32(m.EntityID))
}

// Teleport sets an entity's absolute position and orientation.
type Teleport struct {
	EntityID ecs.EntityID
	X, Y, Z  float64
	Yaw      byte
	Pitch    byte
}

func (Teleport) Opcode() byte { return packet.S_OPCODE_ENTITY_TELEPORT }

func (m Teleport) Encode(w *packet.Writer) {
	w.WriteD(int32(m.EntityID))
	w.WriteD(FixedPoint(m.X))
	w.WriteD(FixedPoint(m.Y))
	w.WriteD(FixedPoint(m.Z))
	w.WriteC(m.Yaw)
	w.WriteC(m.Pitch)
}

// MetadataTerminator ends an entity metadata stream on the wire.
const MetadataTerminator = 0x7F

// Metadata carries an entity's metadata entries. The blob holds the encoded
// entries without the terminator.
type Metadata struct {
	EntityID ecs.EntityID
	Blob     []byte
}

func (Metadata) Opcode() byte { return packet.S_OPCODE_ENTITY_METADATA }

func (m Metadata) Encode(w *packet.Writer) {
	w.WriteD(int32(m.EntityID))
	w.WriteBytes(m.Blob)
	w.WriteC(MetadataTerminator)
}

// Velocity carries a physics-driven entity's motion, already scaled by
// VelocityScale.
type Velocity struct {
	EntityID ecs.EntityID
	X, Y, Z  int16
}

// NewVelocity scales a velocity given in blocks/tick.
func NewVelocity(id ecs.EntityID, vx, vy, vz float64) Velocity {
	return Velocity{
		EntityID: id,
		X:        VelocityComponent(vx),
		Y:        VelocityComponent(vy),
		Z:        VelocityComponent(vz),
	}
}

func (Velocity) Opcode() byte { return packet.S_OPCODE_ENTITY_VELOCITY }

func (m Velocity) Encode(w *packet.Writer) {
	w.WriteD(int32(m.EntityID))
	w.WriteH(m.X)
	w.WriteH(m.Y)
	w.WriteH(m.Z)
}

// LoginResponse binds the client to its own player entity.
type LoginResponse struct {
	EntityID  ecs.EntityID
	Seed      int64
	Dimension byte
}

func (LoginResponse) Opcode() byte { return packet.S_OPCODE_LOGIN_RESPONSE }

func (m LoginResponse) Encode(w *packet.Writer) {
	w.WriteD(int32(m.EntityID))
	w.WriteS("")
	w.WriteQ(m.Seed)
	w.WriteC(m.Dimension)
}

// HandshakeResponse answers the client handshake. "-" means offline mode.
type HandshakeResponse struct {
	ConnectionHash string
}

func (HandshakeResponse) Opcode() byte { return packet.S_OPCODE_HANDSHAKE }

func (m HandshakeResponse) Encode(w *packet.Writer) {
	w.WriteS(m.ConnectionHash)
}

// Disconnect tells the client why it is being dropped.
type Disconnect struct {
	Reason string
}

func (Disconnect) Opcode() byte { return packet.S_OPCODE_DISCONNECT }

func (m Disconnect) Encode(w *packet.Writer) {
	w.WriteS(m.Reason)
}
