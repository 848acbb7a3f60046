package websocket

import "errors"

// Codec error types. Decode never returns these: an incomplete or oversized
// buffer is reported as "need more data" (nil frame, nil error), because a
// short buffer is the expected steady state of a streaming read loop.
// DecodeStrict returns them for frames that violate RFC 6455.

var (
	// ErrProtocolError indicates a violation of the WebSocket protocol
	// (RFC 6455 Section 7.4.1, status code 1002), such as a 64-bit payload
	// length with the most significant bit set.
	ErrProtocolError = errors.New("websocket: protocol error")

	// ErrInvalidOpcode indicates a reserved opcode (0x3-0x7, 0xB-0xF).
	// Only returned in strict mode; permissive Decode passes the raw
	// opcode through.
	ErrInvalidOpcode = errors.New("websocket: invalid opcode")

	// ErrReservedBits indicates RSV1/RSV2/RSV3 set without a negotiated
	// extension (RFC 6455 Section 5.2). Strict mode only.
	ErrReservedBits = errors.New("websocket: reserved bits must be 0")

	// ErrControlFragmented indicates a control frame with FIN=0.
	// RFC 6455 Section 5.5: control frames must not be fragmented.
	ErrControlFragmented = errors.New("websocket: control frame must not be fragmented")

	// ErrControlTooLarge indicates a control frame payload over 125 bytes
	// (RFC 6455 Section 5.5). Strict mode only.
	ErrControlTooLarge = errors.New("websocket: control frame payload too large")

	// ErrFrameTooLarge indicates a frame whose declared payload length
	// cannot be represented or, in strict mode, exceeds the implementation
	// limit. Fatal to the frame boundary: the caller should close the
	// connection since resynchronization is not possible.
	ErrFrameTooLarge = errors.New("websocket: frame too large")

	// ErrShortBuffer indicates an introspection call against a buffer that
	// does not yet hold the header bytes the call needs.
	ErrShortBuffer = errors.New("websocket: buffer too short for frame header")
)

// Channel registry error types.

var (
	// ErrChannelNotFound indicates an operation against an unregistered or
	// removed channel id. Caller-recoverable: create the channel, or treat
	// as a no-op read.
	ErrChannelNotFound = errors.New("websocket: channel not found")

	// ErrHubClosed indicates an operation against a hub after Close.
	ErrHubClosed = errors.New("websocket: hub closed")
)
