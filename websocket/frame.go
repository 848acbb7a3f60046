package websocket

import (
	"crypto/rand"
	"encoding/binary"
	"math"
)

// Frame layout constants (RFC 6455 Section 5.2).
//
//	 0                   1                   2                   3
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
//	+-+-+-+-+-------+-+-------------+-------------------------------+
//	|F|R|R|R| opcode|M| Payload len |    Extended payload length    |
//	|I|S|S|S|  (4)  |A|     (7)     |             (16/64)           |
//	|N|V|V|V|       |S|             |   (if payload len==126/127)   |
//	| |1|2|3|       |K|             |                               |
//	+-+-+-+-+-------+-+-------------+ - - - - - - - - - - - - - - - +
//	|     Extended payload length continued, if payload len == 127  |
//	+ - - - - - - - - - - - - - - - +-------------------------------+
//	|                               |Masking-key, if MASK set to 1  |
//	+-------------------------------+-------------------------------+
//	| Masking-key (continued)       |          Payload Data         |
//	+-------------------------------- - - - - - - - - - - - - - - - +
const (
	finBit     = 0x80
	rsv1Bit    = 0x40
	rsv2Bit    = 0x20
	rsv3Bit    = 0x10
	maskBit    = 0x80
	opcodeBits = 0x0F

	// Payload length encoding thresholds (RFC 6455 Section 5.2).
	payloadLen7Bit  = 125 // 0-125: stored inline in 7 bits
	payloadLen16Bit = 126 // 126: followed by 16-bit big-endian length
	payloadLen64Bit = 127 // 127: followed by 64-bit big-endian length

	// maxControlPayload is the maximum payload length for control frames
	// (RFC 6455 Section 5.5). Enforced in strict mode only.
	maxControlPayload = 125

	// maxFramePayload is the implementation limit for data frames,
	// enforced in strict mode only. Permissive Decode accepts any length
	// the platform can allocate.
	maxFramePayload = 32 * 1024 * 1024
)

// Frame represents a single WebSocket frame.
//
// Payload is the logical payload: already unmasked by the time the frame is
// exposed to the caller. Its length always equals the length reconstructed
// from the header, never more, never less.
type Frame struct {
	// Fin marks the final frame of a logical message.
	Fin bool

	// Rsv1, Rsv2, Rsv3 are the extension bits. Zero unless the peer
	// negotiated an extension (which this codec does not do itself).
	Rsv1, Rsv2, Rsv3 bool

	// Opcode is the raw 4-bit frame type, preserved even for reserved
	// values.
	Opcode Opcode

	// Masked records whether the wire representation carried a mask.
	Masked bool

	// MaskKey is the 4-byte XOR key read from (or written to) the wire.
	// Only meaningful when Masked is true.
	MaskKey [4]byte

	// Payload is the unmasked payload data.
	Payload []byte
}

// lengthFromHeader reads the three-tier payload length out of buf and
// returns it together with the header offset just past the length field
// (2, 4 or 10). ErrShortBuffer if buf does not hold the bytes the tier
// needs. Shared by Decode and the introspection helpers so their boundary
// arithmetic can never disagree.
func lengthFromHeader(buf []byte) (length uint64, offset int, err error) {
	if len(buf) < 2 {
		return 0, 0, ErrShortBuffer
	}

	switch indicator := buf[1] & 0x7F; indicator {
	case payloadLen16Bit:
		if len(buf) < 4 {
			return 0, 0, ErrShortBuffer
		}
		return uint64(binary.BigEndian.Uint16(buf[2:4])), 4, nil
	case payloadLen64Bit:
		if len(buf) < 10 {
			return 0, 0, ErrShortBuffer
		}
		return binary.BigEndian.Uint64(buf[2:10]), 10, nil
	default:
		return uint64(indicator), 2, nil
	}
}

// Decode parses the frame at the front of buf.
//
// Returns:
//   - (frame, bytesConsumed, nil) when buf holds a complete frame,
//   - (nil, 0, nil) when more bytes are needed; not an error, call again
//     once the transport has delivered more data,
//   - (nil, 0, err) when the frame can never be completed (declared payload
//     length not representable on this platform).
//
// Decode is permissive: reserved opcodes and RSV bits pass through
// untouched, and no payload size limit applies. Use DecodeStrict for
// RFC-conformance checks. Decode keeps no state between calls; the caller
// owns buffer accumulation and must retain buf[bytesConsumed:] for the
// next call.
func Decode(buf []byte) (*Frame, int, error) {
	return decode(buf, false)
}

// DecodeStrict parses like Decode but rejects frames that violate
// RFC 6455: reserved opcodes, non-zero RSV bits, fragmented or oversized
// control frames, a 64-bit length with the MSB set, and payloads over the
// implementation limit. A strict error is fatal to the frame boundary; the
// caller should close the connection rather than retry.
func DecodeStrict(buf []byte) (*Frame, int, error) {
	return decode(buf, true)
}

func decode(buf []byte, strict bool) (*Frame, int, error) {
	length, offset, err := lengthFromHeader(buf)
	if err != nil {
		return nil, 0, nil // incomplete header
	}

	f := &Frame{
		Fin:    buf[0]&finBit != 0,
		Rsv1:   buf[0]&rsv1Bit != 0,
		Rsv2:   buf[0]&rsv2Bit != 0,
		Rsv3:   buf[0]&rsv3Bit != 0,
		Opcode: Opcode(buf[0] & opcodeBits),
		Masked: buf[1]&maskBit != 0,
	}

	if strict {
		if err := validateHeader(f, length); err != nil {
			return nil, 0, err
		}
	}

	if f.Masked {
		if len(buf) < offset+4 {
			return nil, 0, nil // incomplete mask key
		}
		copy(f.MaskKey[:], buf[offset:offset+4])
		offset += 4
	}

	// A length this close to the platform limit cannot ever fit in a
	// buffer, so waiting for more bytes would spin forever.
	if length > uint64(math.MaxInt-offset) {
		return nil, 0, ErrFrameTooLarge
	}

	total := offset + int(length)
	if len(buf) < total {
		return nil, 0, nil // incomplete payload
	}

	payload := make([]byte, length)
	copy(payload, buf[offset:total])
	if f.Masked {
		applyMask(payload, f.MaskKey)
	}
	f.Payload = payload

	return f, total, nil
}

// validateHeader holds the strict-mode checks, applied once the first two
// header bytes and the declared length are known.
func validateHeader(f *Frame, length uint64) error {
	if f.Opcode.IsReserved() {
		return ErrInvalidOpcode
	}
	if f.Rsv1 || f.Rsv2 || f.Rsv3 {
		return ErrReservedBits
	}
	if f.Opcode.IsControl() {
		if !f.Fin {
			return ErrControlFragmented
		}
		if length > maxControlPayload {
			return ErrControlTooLarge
		}
	}
	// RFC 6455 Section 5.2: the most significant bit of the 64-bit
	// length must be 0.
	if length&(1<<63) != 0 {
		return ErrProtocolError
	}
	if length > maxFramePayload {
		return ErrFrameTooLarge
	}
	return nil
}

// Encode serializes f to its wire representation.
//
// The length field always uses the smallest encoding that fits the payload
// (7-bit inline below 126, 16-bit up to 65535, 64-bit above). When f.Masked
// is set, a fresh mask key is drawn from crypto/rand for every call:
// RFC 6455 Section 5.3 requires masking keys to be unpredictable, so a
// fixed or zero key is never used.
func Encode(f *Frame) []byte {
	if !f.Masked {
		return encode(f, false, [4]byte{})
	}
	return encode(f, true, newMaskKey())
}

// EncodeWithKey serializes f masked with the caller-supplied key,
// regardless of f.Masked. Intended for tests and for callers that manage
// key generation themselves.
func EncodeWithKey(f *Frame, key [4]byte) []byte {
	return encode(f, true, key)
}

func encode(f *Frame, masked bool, key [4]byte) []byte {
	n := len(f.Payload)
	buf := make([]byte, 0, 14+n)

	b0 := byte(f.Opcode) & opcodeBits
	if f.Fin {
		b0 |= finBit
	}
	if f.Rsv1 {
		b0 |= rsv1Bit
	}
	if f.Rsv2 {
		b0 |= rsv2Bit
	}
	if f.Rsv3 {
		b0 |= rsv3Bit
	}
	buf = append(buf, b0)

	var b1 byte
	if masked {
		b1 = maskBit
	}
	switch {
	case n <= payloadLen7Bit:
		buf = append(buf, b1|byte(n))
	case n <= math.MaxUint16:
		buf = append(buf, b1|payloadLen16Bit)
		buf = binary.BigEndian.AppendUint16(buf, uint16(n))
	default:
		buf = append(buf, b1|payloadLen64Bit)
		buf = binary.BigEndian.AppendUint64(buf, uint64(n))
	}

	if masked {
		buf = append(buf, key[:]...)
		start := len(buf)
		buf = append(buf, f.Payload...)
		applyMask(buf[start:], key)
		return buf
	}

	return append(buf, f.Payload...)
}

// applyMask XORs data in place with the cycling 4-byte key
// (RFC 6455 Section 5.3). XOR is self-inverse, so the same call masks and
// unmasks.
func applyMask(data []byte, key [4]byte) {
	for i := range data {
		data[i] ^= key[i%4]
	}
}

// newMaskKey returns a cryptographically random 4-byte masking key.
func newMaskKey() [4]byte {
	var key [4]byte
	if _, err := rand.Read(key[:]); err != nil {
		// crypto/rand failure means the platform entropy source is
		// broken; nothing sensible to return.
		panic("websocket: rand.Read: " + err.Error())
	}
	return key
}

// NewText returns an unmasked final text frame.
func NewText(text string) *Frame {
	return &Frame{Fin: true, Opcode: OpText, Payload: []byte(text)}
}

// NewBinary returns an unmasked final binary frame.
func NewBinary(data []byte) *Frame {
	return &Frame{Fin: true, Opcode: OpBinary, Payload: data}
}

// NewClose returns an unmasked final close frame carrying the status code
// and an optional UTF-8 reason. Use NewCloseEmpty to omit the status code
// entirely.
func NewClose(code CloseCode, reason string) *Frame {
	return &Frame{Fin: true, Opcode: OpClose, Payload: ClosePayload(code, reason)}
}

// NewCloseEmpty returns an unmasked final close frame with no payload.
func NewCloseEmpty() *Frame {
	return &Frame{Fin: true, Opcode: OpClose}
}

// NewPing returns an unmasked final ping frame. data may be nil.
func NewPing(data []byte) *Frame {
	return &Frame{Fin: true, Opcode: OpPing, Payload: data}
}

// NewPong returns an unmasked final pong frame. data may be nil.
func NewPong(data []byte) *Frame {
	return &Frame{Fin: true, Opcode: OpPong, Payload: data}
}
