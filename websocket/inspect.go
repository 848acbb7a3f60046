package websocket

import "math"

// Header-only introspection helpers.
//
// These answer cheap questions about the frame at the front of a buffer
// without decoding or allocating the payload. They share their boundary
// arithmetic with Decode (see lengthFromHeader), so IsComplete is true
// exactly when Decode would return a frame rather than "need more data".

// IsFinal reports the FIN bit of the frame at the front of buf.
// False for an empty buffer.
func IsFinal(buf []byte) bool {
	return len(buf) > 0 && buf[0]&finBit != 0
}

// FrameType returns the opcode of the frame at the front of buf.
// ok is false when the buffer is empty.
func FrameType(buf []byte) (op Opcode, ok bool) {
	if len(buf) == 0 {
		return 0, false
	}
	return Opcode(buf[0] & opcodeBits), true
}

// IsMasked reports the MASK bit of the frame at the front of buf.
// False when the buffer is shorter than two bytes.
func IsMasked(buf []byte) bool {
	return len(buf) >= 2 && buf[1]&maskBit != 0
}

// PayloadLength returns the declared payload length of the frame at the
// front of buf, applying the same three-tier extended-length rule as
// Decode. ErrShortBuffer when buf does not hold the header bytes that the
// frame's length tier requires (2, 4 or 10).
func PayloadLength(buf []byte) (uint64, error) {
	length, _, err := lengthFromHeader(buf)
	return length, err
}

// IsComplete reports whether buf holds an entire frame: header, mask key
// if masked, and the full payload. True iff Decode on the same buffer
// would yield a frame instead of requesting more data.
func IsComplete(buf []byte) bool {
	length, offset, err := lengthFromHeader(buf)
	if err != nil {
		return false
	}
	if buf[1]&maskBit != 0 {
		offset += 4
	}
	if length > uint64(math.MaxInt-offset) {
		return false
	}
	return len(buf) >= offset+int(length)
}
