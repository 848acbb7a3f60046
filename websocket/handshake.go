package websocket

import (
	"crypto/sha1" // #nosec G505 - SHA-1 required by RFC 6455 Section 1.3
	"encoding/base64"
)

// Magic GUID from RFC 6455 Section 1.3.
// Used for computing the Sec-WebSocket-Accept header value.
const websocketGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

// AcceptKey computes the Sec-WebSocket-Accept value for a client's
// Sec-WebSocket-Key.
//
// RFC 6455 Section 1.3:
//
//	Sec-WebSocket-Accept = base64(SHA-1(key + GUID))
//
// Pure and deterministic; any string input is valid. The surrounding HTTP
// upgrade exchange is the caller's responsibility.
//
// Example:
//
//	AcceptKey("dGhlIHNhbXBsZSBub25jZQ==")
//	// "s3pPLMBiTxaQ9kYGzzhZRbK+xOo="
func AcceptKey(clientKey string) string {
	// #nosec G401 - SHA-1 required by RFC 6455 Section 1.3 (not used for security)
	h := sha1.New()
	h.Write([]byte(clientKey))
	h.Write([]byte(websocketGUID))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
