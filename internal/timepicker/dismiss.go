package timepicker

import (
	"sort"
	"sync"
)

// PointerEvent is a pointer press in screen cells.
type PointerEvent struct {
	X, Y int
}

// Rect is a screen region in cells. The zero Rect contains nothing.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// PointerBus fans pointer presses out to every subscribed widget. A host
// publishes each press it receives before routing it to the widget under it.
type PointerBus struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func(PointerEvent)
}

func NewPointerBus() *PointerBus {
	return &PointerBus{listeners: map[int]func(PointerEvent){}}
}

// Subscribe registers fn and returns the func that removes it.
// The returned func is safe to call more than once.
func (b *PointerBus) Subscribe(fn func(PointerEvent)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.listeners == nil {
		b.listeners = map[int]func(PointerEvent){}
	}
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, id)
			b.mu.Unlock()
		})
	}
}

// Publish delivers ev to every listener, in subscription order.
func (b *PointerBus) Publish(ev PointerEvent) {
	b.mu.Lock()
	ids := make([]int, 0, len(b.listeners))
	for id := range b.listeners {
		ids = append(ids, id)
	}
	b.mu.Unlock()
	sort.Ints(ids)

	for _, id := range ids {
		b.mu.Lock()
		fn := b.listeners[id]
		b.mu.Unlock()
		// A listener may have unsubscribed another one.
		if fn != nil {
			fn(ev)
		}
	}
}

// Len reports the number of subscribed listeners.
func (b *PointerBus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

// dismissWatcher closes a panel when a press lands outside its widget.
// It holds at most one subscription at a time.
type dismissWatcher struct {
	bounds      func() Rect
	dismiss     func()
	unsubscribe func()
}

func (w *dismissWatcher) attach(bus *PointerBus) {
	if w.unsubscribe != nil || bus == nil {
		return
	}
	w.unsubscribe = bus.Subscribe(func(ev PointerEvent) {
		if !w.bounds().Contains(ev.X, ev.Y) {
			w.dismiss()
		}
	})
}

func (w *dismissWatcher) detach() {
	if w.unsubscribe == nil {
		return
	}
	w.unsubscribe()
	w.unsubscribe = nil
}

func (w *dismissWatcher) attached() bool { return w.unsubscribe != nil }
