package websocket

import (
	"io"
	"sync"
)

// defaultChunkSize is how much FrameReader requests from the transport per
// read when it needs more bytes.
const defaultChunkSize = 4096

// ReaderOptions configures a FrameReader. All fields are optional; zero
// values use the defaults.
type ReaderOptions struct {
	// Strict makes the reader decode with DecodeStrict, rejecting frames
	// that violate RFC 6455 instead of passing them through.
	Strict bool

	// ChunkSize sets the transport read size (default: 4096).
	ChunkSize int
}

// FrameReader turns a stream of bytes into a stream of frames.
//
// It is the packaged form of the read loop the codec is designed for: it
// owns buffer accumulation, calls Decode until a complete frame is
// available, and retains the remainder for the next call. Frames are
// returned individually; continuation reassembly is up to the caller.
//
// Not safe for concurrent use; one goroutine reads a connection.
type FrameReader struct {
	r      io.Reader
	buf    []byte
	chunk  []byte
	strict bool
}

// NewFrameReader wraps r. opts may be nil for defaults.
func NewFrameReader(r io.Reader, opts *ReaderOptions) *FrameReader {
	if opts == nil {
		opts = &ReaderOptions{}
	}
	size := opts.ChunkSize
	if size <= 0 {
		size = defaultChunkSize
	}
	return &FrameReader{
		r:      r,
		chunk:  make([]byte, size),
		strict: opts.Strict,
	}
}

// ReadFrame returns the next frame from the stream, reading from the
// transport as needed.
//
// io.EOF is returned on a clean end of stream between frames;
// io.ErrUnexpectedEOF when the stream ends in the middle of a frame.
// Decode errors (strict mode, or an unrepresentable length) are fatal:
// the frame boundary is lost and the caller should close the connection.
func (fr *FrameReader) ReadFrame() (*Frame, error) {
	for {
		var (
			f   *Frame
			n   int
			err error
		)
		if fr.strict {
			f, n, err = DecodeStrict(fr.buf)
		} else {
			f, n, err = Decode(fr.buf)
		}
		if err != nil {
			return nil, err
		}
		if f != nil {
			fr.buf = fr.buf[:copy(fr.buf, fr.buf[n:])]
			return f, nil
		}

		n, err = fr.r.Read(fr.chunk)
		if n > 0 {
			fr.buf = append(fr.buf, fr.chunk[:n]...)
			continue
		}
		if err == nil {
			continue
		}
		if err == io.EOF && len(fr.buf) > 0 {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
}

// FrameWriter serializes frames onto a transport.
//
// Writes are serialized with a mutex so control frames can be injected
// from another goroutine between data frames.
type FrameWriter struct {
	mu   sync.Mutex
	w    io.Writer
	mask bool
}

// NewFrameWriter wraps w, writing unmasked frames (the server side of a
// connection, RFC 6455 Section 5.1).
func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{w: w}
}

// NewMaskedFrameWriter wraps w, masking every frame with a fresh random
// key (the client side of a connection).
func NewMaskedFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{w: w, mask: true}
}

// WriteFrame encodes f and writes it out in a single call to the
// underlying writer. The frame is masked when the writer is masked or
// f.Masked is set.
func (fw *FrameWriter) WriteFrame(f *Frame) error {
	var buf []byte
	if fw.mask || f.Masked {
		buf = encode(f, true, newMaskKey())
	} else {
		buf = encode(f, false, [4]byte{})
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()
	_, err := fw.w.Write(buf)
	return err
}

// WriteText writes a final text frame.
func (fw *FrameWriter) WriteText(text string) error {
	return fw.WriteFrame(NewText(text))
}

// WriteBinary writes a final binary frame.
func (fw *FrameWriter) WriteBinary(data []byte) error {
	return fw.WriteFrame(NewBinary(data))
}

// WriteClose writes a close frame with the given code and reason.
func (fw *FrameWriter) WriteClose(code CloseCode, reason string) error {
	return fw.WriteFrame(NewClose(code, reason))
}
