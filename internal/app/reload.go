package app

import "sync"

// ReloadBus fans configuration changes out to subscribed engines. It replaces
// the original design's window-global event bus with an explicit
// subscribe/unsubscribe lifecycle: a subscriber that goes away cancels, and
// nothing else ever sees it again.
type ReloadBus struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Options)
}

// NewReloadBus returns an empty bus.
func NewReloadBus() *ReloadBus {
	return &ReloadBus{subs: make(map[int]func(Options))}
}

// Subscribe registers fn for future option sets and returns a cancel func.
// Cancel is idempotent.
func (b *ReloadBus) Subscribe(fn func(Options)) (cancel func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers opts to every current subscriber. Delivery happens outside
// the bus lock so subscribers may re-enter the bus.
func (b *ReloadBus) Publish(opts Options) {
	b.mu.Lock()
	fns := make([]func(Options), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn(opts)
	}
}
