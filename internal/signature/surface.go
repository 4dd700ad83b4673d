package signature

import (
	"math"
	"sync"
)

type Handler func(Event)

type subscription struct {
	id int
	fn Handler
}

// Dispatcher fans events out to the handlers subscribed to their kind.
// It is not safe for concurrent use.
type Dispatcher struct {
	subs map[EventKind][]subscription
	next int
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{subs: make(map[EventKind][]subscription)}
}

// Subscribe registers h for kind. The returned release func removes it
// and may be called more than once.
func (d *Dispatcher) Subscribe(kind EventKind, h Handler) (release func()) {
	d.next++
	id := d.next
	d.subs[kind] = append(d.subs[kind], subscription{id: id, fn: h})

	var once sync.Once
	return func() {
		once.Do(func() {
			list := d.subs[kind]
			for i, s := range list {
				if s.id == id {
					d.subs[kind] = append(list[:i:i], list[i+1:]...)
					break
				}
			}
			if len(d.subs[kind]) == 0 {
				delete(d.subs, kind)
			}
		})
	}
}

// Dispatch delivers ev in subscription order. It reports false when
// nobody listens for the kind, in which case the event is dropped.
func (d *Dispatcher) Dispatch(ev Event) bool {
	list := d.subs[ev.Kind]
	if len(list) == 0 {
		return false
	}
	for _, s := range append([]subscription(nil), list...) {
		s.fn(ev)
	}
	return true
}

func (d *Dispatcher) Subscribers(kind EventKind) int {
	return len(d.subs[kind])
}

// Mount attaches the pad to d. The returned unmount func releases every
// subscription and closes the pad; it is safe to call more than once.
func (p *Pad) Mount(d *Dispatcher) (unmount func()) {
	start := func(ev Event) {
		if pt, ok := Locate(ev); ok {
			p.Begin(pt)
		}
	}
	move := func(ev Event) {
		if !p.IsDrawing() {
			return
		}
		if pt, ok := Locate(ev); ok {
			p.Extend(pt)
		}
	}
	stop := func(Event) { p.End() }
	resize := func(ev Event) {
		p.Resize(int(math.Round(ev.Rect.Width)), int(math.Round(ev.Rect.Height)))
	}

	releases := []func(){
		d.Subscribe(EventMouseDown, start),
		d.Subscribe(EventMouseMove, move),
		d.Subscribe(EventMouseUp, stop),
		d.Subscribe(EventMouseLeave, stop),
		d.Subscribe(EventTouchStart, start),
		d.Subscribe(EventTouchMove, move),
		d.Subscribe(EventTouchEnd, stop),
		d.Subscribe(EventResize, resize),
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for _, release := range releases {
				release()
			}
			_ = p.Close()
		})
	}
}
