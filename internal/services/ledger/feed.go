package ledger

import "sync"

// Feed is an in-process change-notification hub. Every ledger mutation
// publishes a signal with no payload; subscribers are expected to re-fetch
// the full snapshot and recompute rather than apply a delta.
type Feed struct {
	mu   sync.Mutex
	subs map[int]chan struct{}
	next int
}

// NewFeed creates an empty notification hub.
func NewFeed() *Feed {
	return &Feed{subs: make(map[int]chan struct{})}
}

// Subscribe returns a notification channel and a cancel func that releases
// the subscription. The channel has a buffer of one; signals coalesce when
// the subscriber lags, which is sound because every signal means the same
// thing: recompute now.
func (f *Feed) Subscribe() (<-chan struct{}, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.next
	f.next++
	ch := make(chan struct{}, 1)
	f.subs[id] = ch

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Publish signals all subscribers without blocking on slow ones.
func (f *Feed) Publish() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ch := range f.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
