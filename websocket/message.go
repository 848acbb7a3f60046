package websocket

import "encoding/binary"

// CloseCode represents WebSocket close status codes (RFC 6455 Section 7.4).
//
// A close frame MAY carry a status code followed by a UTF-8 reason.
type CloseCode uint16

const (
	// CloseNormalClosure indicates normal closure (1000).
	CloseNormalClosure CloseCode = 1000

	// CloseGoingAway indicates the endpoint is going away (1001).
	CloseGoingAway CloseCode = 1001

	// CloseProtocolError indicates a protocol error (1002).
	CloseProtocolError CloseCode = 1002

	// CloseUnsupportedData indicates an unacceptable data type (1003).
	CloseUnsupportedData CloseCode = 1003

	// 1004 is reserved and MUST NOT be used.

	// CloseNoStatusReceived (1005) is a reserved value reported to the
	// application when a close frame carried no status code. Never sent
	// on the wire.
	CloseNoStatusReceived CloseCode = 1005

	// CloseAbnormalClosure (1006) is a reserved value reported when the
	// connection dropped without a close frame. Never sent on the wire.
	CloseAbnormalClosure CloseCode = 1006

	// CloseInvalidFramePayloadData indicates inconsistent payload data
	// such as invalid UTF-8 in a text frame (1007).
	CloseInvalidFramePayloadData CloseCode = 1007

	// ClosePolicyViolation indicates a generic policy violation (1008).
	ClosePolicyViolation CloseCode = 1008

	// CloseMessageTooBig indicates a message too big to process (1009).
	CloseMessageTooBig CloseCode = 1009

	// CloseMandatoryExtension indicates a missing required extension (1010).
	CloseMandatoryExtension CloseCode = 1010

	// CloseInternalServerErr indicates an unexpected server condition (1011).
	CloseInternalServerErr CloseCode = 1011
)

// String returns a human-readable close code name.
func (cc CloseCode) String() string {
	switch cc {
	case CloseNormalClosure:
		return "Normal Closure"
	case CloseGoingAway:
		return "Going Away"
	case CloseProtocolError:
		return "Protocol Error"
	case CloseUnsupportedData:
		return "Unsupported Data"
	case CloseNoStatusReceived:
		return "No Status Received"
	case CloseAbnormalClosure:
		return "Abnormal Closure"
	case CloseInvalidFramePayloadData:
		return "Invalid Frame Payload Data"
	case ClosePolicyViolation:
		return "Policy Violation"
	case CloseMessageTooBig:
		return "Message Too Big"
	case CloseMandatoryExtension:
		return "Mandatory Extension"
	case CloseInternalServerErr:
		return "Internal Server Error"
	default:
		return "Unknown"
	}
}

// ClosePayload builds a close frame payload: 2-byte big-endian status code
// followed by the UTF-8 reason bytes.
func ClosePayload(code CloseCode, reason string) []byte {
	payload := make([]byte, 2, 2+len(reason))
	binary.BigEndian.PutUint16(payload, uint16(code))
	return append(payload, reason...)
}

// ParseClosePayload extracts the status code and reason out of a close
// frame payload.
//
// An empty payload yields CloseNoStatusReceived with an empty reason
// (RFC 6455 Section 7.1.5). A one-byte payload is a protocol error.
func ParseClosePayload(payload []byte) (CloseCode, string, error) {
	switch {
	case len(payload) == 0:
		return CloseNoStatusReceived, "", nil
	case len(payload) == 1:
		return 0, "", ErrProtocolError
	default:
		code := CloseCode(binary.BigEndian.Uint16(payload[:2]))
		return code, string(payload[2:]), nil
	}
}
