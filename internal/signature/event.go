package signature

// EventKind mirrors the browser event names forwarded by the page.
type EventKind string

const (
	EventMouseDown  EventKind = "mousedown"
	EventMouseMove  EventKind = "mousemove"
	EventMouseUp    EventKind = "mouseup"
	EventMouseLeave EventKind = "mouseleave"
	EventTouchStart EventKind = "touchstart"
	EventTouchMove  EventKind = "touchmove"
	EventTouchEnd   EventKind = "touchend"
	EventResize     EventKind = "resize"
)

// AllKinds lists every kind a mounted surface listens to.
var AllKinds = []EventKind{
	EventMouseDown, EventMouseMove, EventMouseUp, EventMouseLeave,
	EventTouchStart, EventTouchMove, EventTouchEnd,
	EventResize,
}

func (k EventKind) Valid() bool {
	for _, v := range AllKinds {
		if v == k {
			return true
		}
	}
	return false
}

func (k EventKind) isTouch() bool {
	return k == EventTouchStart || k == EventTouchMove || k == EventTouchEnd
}

// Point is a position in pixels. Client points are page coordinates,
// local points are relative to the surface's top-left corner.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is the surface's on-screen box at the time of the event.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Event is one pointer, touch or resize notification.
type Event struct {
	Kind    EventKind `json:"type" binding:"required"`
	ClientX float64   `json:"client_x"`
	ClientY float64   `json:"client_y"`
	Touches []Point   `json:"touches,omitempty"`
	Rect    Rect      `json:"rect"`
}

// Locate translates the event's client position into surface-local
// coordinates. Touch events use the first active touch only; a touch
// event without touches has no position.
func Locate(ev Event) (Point, bool) {
	client := Point{X: ev.ClientX, Y: ev.ClientY}
	if ev.Kind.isTouch() {
		if len(ev.Touches) == 0 {
			return Point{}, false
		}
		client = ev.Touches[0]
	}
	return Point{X: client.X - ev.Rect.Left, Y: client.Y - ev.Rect.Top}, true
}
