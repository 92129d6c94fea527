package packet

// Client → server opcodes (beta protocol 14 numbering).
const (
	C_OPCODE_LOGIN                = 0x01
	C_OPCODE_HANDSHAKE            = 0x02
	C_OPCODE_PLAYER               = 0x0A
	C_OPCODE_PLAYER_POSITION      = 0x0B
	C_OPCODE_PLAYER_LOOK          = 0x0C
	C_OPCODE_PLAYER_POSITION_LOOK = 0x0D
	C_OPCODE_CLIENT_SETTINGS      = 0xCC
	C_OPCODE_DISCONNECT           = 0xFF
)

// Server → client opcodes.
const (
	S_OPCODE_LOGIN_RESPONSE     = 0x01
	S_OPCODE_HANDSHAKE          = 0x02
	S_OPCODE_NAMED_ENTITY_SPAWN = 0x14
	S_OPCODE_ADD_OBJECT         = 0x17
	S_OPCODE_ENTITY_VELOCITY    = 0x1C
	S_OPCODE_DESTROY_ENTITY     = 0x1D
	S_OPCODE_ENTITY_TELEPORT    = 0x22
	S_OPCODE_ENTITY_METADATA    = 0x28
	S_OPCODE_DISCONNECT         = 0xFF
)

// ProtocolVersion is the only client protocol accepted at login.
const ProtocolVersion = 14
