// Package websocket implements the RFC 6455 base framing protocol and an
// in-process channel registry for fanning messages out to independent
// consumers.
//
// The frame codec operates on byte buffers rather than connections: Decode
// consumes the complete frame at the front of a buffer and reports how many
// bytes it used, so it is safe to call repeatedly on a growing buffer fed by
// a streaming transport. Encode produces the byte-exact wire representation,
// always using the smallest payload length encoding that fits.
//
// Out of scope by design: TLS, the HTTP upgrade exchange (only the
// Sec-WebSocket-Accept computation is provided, see AcceptKey), continuation
// reassembly (frames are exposed individually) and extension negotiation.
//
// RFC Reference: https://datatracker.ietf.org/doc/html/rfc6455
package websocket

// Opcode is the 4-bit frame type field from RFC 6455 Section 5.2.
//
// The codec preserves the raw value even for reserved opcodes (0x3-0x7,
// 0xB-0xF); whether those are rejected is the caller's choice between
// Decode and DecodeStrict.
type Opcode byte

// Opcode values defined in RFC 6455 Section 5.2.
const (
	// OpContinuation indicates a continuation frame (RFC 6455 Section 5.4).
	OpContinuation Opcode = 0x0

	// OpText indicates a text data frame. Payload is UTF-8.
	OpText Opcode = 0x1

	// OpBinary indicates a binary data frame.
	OpBinary Opcode = 0x2

	// OpClose indicates a close control frame (RFC 6455 Section 5.5.1).
	OpClose Opcode = 0x8

	// OpPing indicates a ping control frame (RFC 6455 Section 5.5.2).
	OpPing Opcode = 0x9

	// OpPong indicates a pong control frame (RFC 6455 Section 5.5.3).
	OpPong Opcode = 0xA
)

// IsControl reports whether op is a control opcode (0x8-0xF).
//
// RFC 6455 Section 5.5: control frames must not be fragmented and carry at
// most 125 payload bytes.
func (op Opcode) IsControl() bool {
	return op&0x08 != 0
}

// IsData reports whether op is a data opcode (continuation, text or binary).
func (op Opcode) IsData() bool {
	return op == OpContinuation || op == OpText || op == OpBinary
}

// IsReserved reports whether op is one of the values RFC 6455 reserves for
// future use (0x3-0x7, 0xB-0xF).
func (op Opcode) IsReserved() bool {
	switch op {
	case OpContinuation, OpText, OpBinary, OpClose, OpPing, OpPong:
		return false
	default:
		return true
	}
}

// String returns a human-readable opcode name.
func (op Opcode) String() string {
	switch op {
	case OpContinuation:
		return "Continuation"
	case OpText:
		return "Text"
	case OpBinary:
		return "Binary"
	case OpClose:
		return "Close"
	case OpPing:
		return "Ping"
	case OpPong:
		return "Pong"
	default:
		return "Reserved"
	}
}
