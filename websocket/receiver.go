package websocket

// Receiver is a per-consumer cursor over one channel's message log.
//
// A Receiver refers to its channel by name only; it holds no server-side
// registration and does not keep the channel alive. Recv is a non-blocking
// poll: it returns whatever accumulated since the last call, or nothing.
// Callers needing push semantics poll externally or layer their own
// notification.
//
// A Receiver is owned by a single consumer and is not safe for concurrent
// use; the Hub it reads from is.
type Receiver struct {
	channelID  string
	generation uint64
	seq        uint64 // next unread record
	pos        uint64 // byte offset into the channel's accumulated stream
}

// NewReceiver returns a fresh cursor over the named channel, positioned at
// the beginning.
func NewReceiver(channelID string) *Receiver {
	return &Receiver{channelID: channelID}
}

// Channel returns the channel id this receiver reads.
func (r *Receiver) Channel() string {
	return r.channelID
}

// Recv returns the unread portion of the channel as one byte slice and
// advances the cursor past it. Returns (nil, nil) when nothing new has
// arrived, and ErrChannelNotFound when the channel is unregistered or has
// been removed.
//
// If the channel was cleared or replaced since the last call, the stale
// cursor is detected through the channel's generation and reset, so the
// receiver starts over from the beginning rather than splicing at a bogus
// offset.
func (r *Receiver) Recv(h *Hub) ([]byte, error) {
	records, size, err := r.take(h)
	if err != nil || records == nil {
		return nil, err
	}

	out := make([]byte, 0, size)
	for _, data := range records {
		out = append(out, data...)
	}
	return out, nil
}

// RecvMessages is Recv with message boundaries preserved: each broadcast
// that has not been read yet comes back as its own slice, oldest first.
// Returns (nil, nil) when nothing new has arrived.
func (r *Receiver) RecvMessages(h *Hub) ([][]byte, error) {
	records, _, err := r.take(h)
	return records, err
}

// take collects the unread records and advances the cursor. The returned
// slices alias the channel's records, which are immutable once appended.
func (r *Receiver) take(h *Hub) ([][]byte, int, error) {
	ch, err := h.channelByID(r.channelID)
	if err != nil {
		return nil, 0, err
	}

	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if r.generation != ch.generation {
		// The channel was cleared or replaced out from under us.
		r.generation = ch.generation
		r.seq = 0
		r.pos = 0
	}

	start := r.seq
	if start < ch.firstSeq {
		// Records between our cursor and firstSeq were evicted by the
		// capacity bound; resynchronize to the oldest retained one.
		start = ch.firstSeq
	}
	if start >= ch.nextSeq {
		return nil, 0, nil
	}

	var (
		out  [][]byte
		size int
	)
	for i := int(start - ch.firstSeq); i < ch.records.Length(); i++ {
		rec := ch.records.Get(i).(*record)
		out = append(out, rec.data)
		size += len(rec.data)
		r.seq = rec.seq + 1
		r.pos = rec.end
	}
	return out, size, nil
}

// Position returns the byte offset the cursor has consumed up to, within
// the channel's accumulated stream since its last clear.
func (r *Receiver) Position() uint64 {
	return r.pos
}

// Reset rewinds the cursor to the beginning of the channel. The next Recv
// returns the channel's full retained content again.
func (r *Receiver) Reset() {
	r.seq = 0
	r.pos = 0
}
