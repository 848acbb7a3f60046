package websocket

import (
	"encoding/json"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"
	metrics "github.com/rcrowley/go-metrics"
	"go.uber.org/zap"
)

// record is one broadcast payload held by a channel, tagged with its
// sequence number and the cumulative byte offset at which it ends.
type record struct {
	seq  uint64
	end  uint64
	data []byte
}

// channel is a named message log. Broadcasts append records; receivers
// read them through their own cursors. Each channel has its own lock so
// traffic on one channel never serializes against another; the hub lock
// only guards the registry's key set.
type channel struct {
	mu         sync.RWMutex
	records    *queue.Queue // of *record
	firstSeq   uint64       // seq of the oldest retained record
	nextSeq    uint64
	total      uint64 // bytes accumulated since the last clear, evicted included
	retained   int    // bytes currently held
	generation uint64 // changes on clear and on replacement; receivers resync on mismatch
}

// Hub owns a registry of named channels shared across concurrent callers.
//
// A Hub is constructed explicitly and passed to whoever needs it; there is
// no package-level instance. All operations are synchronous and
// non-blocking, safe from any number of goroutines.
//
// Channels accumulate every broadcast as a discrete message record. Any
// number of Receivers drain a channel independently at their own pace; the
// hub itself never pushes. By default channels grow without bound; see
// WithChannelCapacity for a bounded drop-oldest policy.
//
// Example Usage:
//
//	hub := websocket.NewHub()
//	hub.CreateChannel("room1")
//	hub.Broadcast("room1", []byte("hello"))
//
//	r := websocket.NewReceiver("room1")
//	data, err := r.Recv(hub) // []byte("hello")
type Hub struct {
	mu       sync.RWMutex
	channels map[string]*channel
	closed   bool

	generations atomic.Uint64

	capacity int // max records per channel; 0 = unbounded
	logger   *zap.Logger
	registry metrics.Registry
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithLogger sets the hub's logger. The default discards everything.
func WithLogger(l *zap.Logger) HubOption {
	return func(h *Hub) { h.logger = l }
}

// WithMetricsRegistry sets the registry receiving the hub's counters
// (broadcasts, drops, evictions, channels). The default is a private
// registry; pass metrics.DefaultRegistry to publish alongside the
// process-wide set.
func WithMetricsRegistry(r metrics.Registry) HubOption {
	return func(h *Hub) { h.registry = r }
}

// WithChannelCapacity bounds every channel to at most n retained records.
// When a broadcast would exceed the bound, the oldest record is dropped.
// Receivers that have fallen behind a drop resynchronize to the oldest
// retained record. n <= 0 means unbounded.
func WithChannelCapacity(n int) HubOption {
	return func(h *Hub) { h.capacity = n }
}

// NewHub creates an empty channel registry.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		channels: make(map[string]*channel),
		logger:   zap.NewNop(),
		registry: metrics.NewRegistry(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// CreateChannel registers an empty channel under id.
//
// An existing channel with the same id is silently replaced. The
// replacement carries a fresh generation, so receivers still pointed at
// the old channel detect the swap and restart from the beginning instead
// of computing offsets against data that no longer exists.
func (h *Hub) CreateChannel(id string) {
	ch := &channel{
		records:    queue.New(),
		generation: h.generations.Add(1),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	_, replaced := h.channels[id]
	h.channels[id] = ch
	h.mu.Unlock()

	if !replaced {
		h.count("channels", 1)
	}
	h.logger.Debug("channel created",
		zap.String("channel", id),
		zap.Bool("replaced", replaced))
}

// channelByID looks up a channel under the registry read lock.
func (h *Hub) channelByID(id string) (*channel, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return nil, ErrHubClosed
	}
	ch, ok := h.channels[id]
	if !ok {
		return nil, ErrChannelNotFound
	}
	return ch, nil
}

// Broadcast appends data to the channel as one discrete message and
// returns the channel's new total byte length (bytes accumulated since the
// last clear). ErrChannelNotFound if id is unregistered.
//
// The payload is copied; the caller may reuse data immediately.
func (h *Hub) Broadcast(id string, data []byte) (int, error) {
	ch, err := h.channelByID(id)
	if err != nil {
		h.count("drops", 1)
		return 0, err
	}

	payload := make([]byte, len(data))
	copy(payload, data)

	ch.mu.Lock()
	ch.total += uint64(len(payload))
	ch.records.Add(&record{seq: ch.nextSeq, end: ch.total, data: payload})
	ch.nextSeq++
	ch.retained += len(payload)

	var evicted int
	if h.capacity > 0 {
		for ch.records.Length() > h.capacity {
			old := ch.records.Remove().(*record)
			ch.firstSeq = old.seq + 1
			ch.retained -= len(old.data)
			evicted++
		}
	}
	total := int(ch.total)
	ch.mu.Unlock()

	h.count("broadcasts", 1)
	if evicted > 0 {
		h.count("evictions", int64(evicted))
	}
	return total, nil
}

// BroadcastText appends a string payload. Convenience wrapper around
// Broadcast.
func (h *Hub) BroadcastText(id, text string) (int, error) {
	return h.Broadcast(id, []byte(text))
}

// BroadcastJSON marshals v and appends the result as one message.
func (h *Hub) BroadcastJSON(id string, v any) (int, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	return h.Broadcast(id, data)
}

// GetMessage returns a snapshot of the channel's entire retained content,
// every record since the last clear (minus any capacity evictions)
// concatenated, not just unread data. ErrChannelNotFound if id is
// unregistered.
func (h *Hub) GetMessage(id string) ([]byte, error) {
	ch, err := h.channelByID(id)
	if err != nil {
		return nil, err
	}

	ch.mu.RLock()
	defer ch.mu.RUnlock()
	out := make([]byte, 0, ch.retained)
	for i := 0; i < ch.records.Length(); i++ {
		out = append(out, ch.records.Get(i).(*record).data...)
	}
	return out, nil
}

// RemoveChannel deletes the channel entirely. Subsequent operations
// against id fail with ErrChannelNotFound. Removing an unknown id is a
// no-op.
func (h *Hub) RemoveChannel(id string) {
	h.mu.Lock()
	_, ok := h.channels[id]
	delete(h.channels, id)
	h.mu.Unlock()

	if ok {
		h.count("channels", -1)
		h.logger.Debug("channel removed", zap.String("channel", id))
	}
}

// ClearChannel truncates the channel to empty while keeping it
// registered. The channel's generation changes, so outstanding receivers
// reset to the beginning instead of holding cursors past the end of the
// emptied log. ErrChannelNotFound if id is unregistered.
func (h *Hub) ClearChannel(id string) error {
	ch, err := h.channelByID(id)
	if err != nil {
		return err
	}

	ch.mu.Lock()
	ch.records = queue.New()
	ch.firstSeq = 0
	ch.nextSeq = 0
	ch.total = 0
	ch.retained = 0
	ch.generation = h.generations.Add(1)
	ch.mu.Unlock()

	h.logger.Debug("channel cleared", zap.String("channel", id))
	return nil
}

// ListChannels returns the registered channel ids, sorted, as a snapshot
// at call time.
func (h *Hub) ListChannels() []string {
	h.mu.RLock()
	ids := make([]string, 0, len(h.channels))
	for id := range h.channels {
		ids = append(ids, id)
	}
	h.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

// ChannelCount returns the number of registered channels.
func (h *Hub) ChannelCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels)
}

// Close tears the registry down. Subsequent channel operations fail with
// ErrHubClosed. Safe to call multiple times.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	h.channels = make(map[string]*channel)
	return nil
}

// count bumps a counter in the hub's metrics registry, registering it on
// first use.
func (h *Hub) count(name string, n int64) {
	metrics.GetOrRegisterCounter("hub."+name, h.registry).Inc(n)
}
