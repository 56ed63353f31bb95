// Package feed provides a replay-latest broadcast channel for collection
// snapshots. Each entity service owns one feed per collection: the service's
// load path is the sole publisher, and subscribers receive the latest
// snapshot on subscribe plus every subsequent publish.
package feed

import "sync"

// Feed multicasts values to subscribers with a replay buffer of one.
// Publishing never blocks: a subscriber that has not drained its channel has
// its pending value replaced, so slow consumers observe the newest snapshot
// rather than a backlog.
type Feed[T any] struct {
	mu      sync.Mutex
	current T
	primed  bool
	subs    map[int]chan T
	nextID  int
}

// New creates an empty feed. Subscribers attached before the first publish
// receive nothing until a value is published.
func New[T any]() *Feed[T] {
	return &Feed[T]{subs: make(map[int]chan T)}
}

// Publish stores v as the current value and delivers it to every subscriber.
func (f *Feed[T]) Publish(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.current = v
	f.primed = true
	for _, ch := range f.subs {
		send(ch, v)
	}
}

// Subscribe registers a new subscriber and returns its channel along with a
// cancel function. If a value has been published, the channel already holds
// the latest snapshot.
func (f *Feed[T]) Subscribe() (<-chan T, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	ch := make(chan T, 1)
	f.subs[id] = ch
	if f.primed {
		send(ch, f.current)
	}

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

// Latest returns the current value and whether anything has been published.
func (f *Feed[T]) Latest() (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current, f.primed
}

// send replaces any undelivered value with v.
func send[T any](ch chan T, v T) {
	select {
	case <-ch:
	default:
	}
	ch <- v
}
