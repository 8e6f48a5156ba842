// Package history keeps a bounded, newest-first set of the messages seen
// while a tailer runs.
package history

import (
	"container/heap"
	"slices"
	"sync"

	"github.com/five82/feed/internal/message"
)

// DefaultCapacity bounds the set when no capacity is given.
const DefaultCapacity = 1000

// Ranked holds at most capacity distinct messages, evicting the oldest.
type Ranked struct {
	mu       sync.Mutex
	capacity int
	heap     oldestFirst
	seen     map[key]struct{}
	revision uint64
}

type key struct {
	unixNano int64
	status   message.Status
	text     string
}

func keyOf(m message.Message) key {
	return key{unixNano: m.Timestamp.UnixNano(), status: m.Status, text: m.Text}
}

// New returns an empty set bounded by capacity.
func New(capacity int) *Ranked {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ranked{capacity: capacity, seen: make(map[key]struct{})}
}

// Push inserts m and reports whether the set changed. Duplicates and
// messages older than everything retained in a full set are ignored.
func (r *Ranked) Push(m message.Message) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := keyOf(m)
	if _, ok := r.seen[k]; ok {
		return false
	}
	if len(r.heap) >= r.capacity {
		// root is the oldest retained entry
		if message.Compare(m, r.heap[0]) >= 0 {
			return false
		}
		evicted := heap.Pop(&r.heap).(message.Message)
		delete(r.seen, keyOf(evicted))
	}
	heap.Push(&r.heap, m)
	r.seen[k] = struct{}{}
	r.revision++
	return true
}

// Revision counts the pushes that changed the set. It keeps moving once the
// set is full and Len no longer does.
func (r *Ranked) Revision() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.revision
}

// Len returns the number of retained messages.
func (r *Ranked) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.heap)
}

// Capacity returns the bound.
func (r *Ranked) Capacity() int {
	return r.capacity
}

// Newest returns up to k messages, most recent first. k <= 0 returns all.
func (r *Ranked) Newest(k int) []message.Message {
	r.mu.Lock()
	out := slices.Clone([]message.Message(r.heap))
	r.mu.Unlock()

	slices.SortStableFunc(out, message.Compare)
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

// oldestFirst is a heap whose root is the least recent message: the
// newest-first order of message.Compare, negated.
type oldestFirst []message.Message

func (h oldestFirst) Len() int           { return len(h) }
func (h oldestFirst) Less(i, j int) bool { return message.Compare(h[i], h[j]) > 0 }
func (h oldestFirst) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *oldestFirst) Push(x any) { *h = append(*h, x.(message.Message)) }

func (h *oldestFirst) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
