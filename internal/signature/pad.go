// Package signature turns pointer and touch motion into a raster
// signature image.
//
// A Pad is a fixed-style ink surface backed by a gg drawing context. It
// tracks two flags: whether anything has been drawn since the last clear
// (IsEmpty) and whether a stroke is in progress (IsDrawing). Only a
// non-empty pad exports an image.
//
// Input reaches a Pad through a Dispatcher: Mount subscribes the pad to
// every event kind and returns the function that releases those
// subscriptions again.
package signature

import (
	"bytes"
	"fmt"
	"image"

	"github.com/gogpu/gg"
)

const (
	DefaultWidth  = 400
	DefaultHeight = 200
)

// Capture is the capability a form needs from a signature surface.
type Capture interface {
	Begin(p Point)
	Extend(p Point)
	End()
	Clear()
	ExportImage() []byte
	IsEmpty() bool
}

var _ Capture = (*Pad)(nil)

// Style is the fixed ink applied to every segment.
type Style struct {
	Ink   string  `yaml:"ink"`
	Width float64 `yaml:"line_width"`
}

func DefaultStyle() Style {
	return Style{Ink: "#FFFFFF", Width: 2}
}

// Pad is not safe for concurrent use; callers serialize access.
type Pad struct {
	dc      *gg.Context
	style   Style
	last    Point
	drawing bool
	empty   bool

	stroke func() error
	err    error // first failed segment since the last clear
}

func NewPad(width, height int, style Style) *Pad {
	if width <= 0 || height <= 0 {
		width, height = DefaultWidth, DefaultHeight
	}
	if style.Ink == "" {
		style.Ink = DefaultStyle().Ink
	}
	if style.Width <= 0 {
		style.Width = DefaultStyle().Width
	}
	p := &Pad{dc: gg.NewContext(width, height), style: style, empty: true}
	p.stroke = p.dc.Stroke
	p.applyStyle()
	return p
}

func (p *Pad) ready() bool { return p != nil && p.dc != nil }

func (p *Pad) applyStyle() {
	p.dc.SetHexColor(p.style.Ink)
	p.dc.SetLineWidth(p.style.Width)
	p.dc.SetLineCap(gg.LineCapRound)
	p.dc.SetLineJoin(gg.LineJoinRound)
}

// Begin starts a stroke at p. The pad counts as non-empty from here on,
// even if the stroke never gets a second point.
func (p *Pad) Begin(pt Point) {
	if !p.ready() {
		return
	}
	p.dc.ClearPath()
	p.last = pt
	p.drawing = true
	p.empty = false
}

// Extend draws a straight segment from the previous point to pt. A
// segment that fails to render is reported by Err.
func (p *Pad) Extend(pt Point) {
	if !p.ready() || !p.drawing {
		return
	}
	p.dc.MoveTo(p.last.X, p.last.Y)
	p.dc.LineTo(pt.X, pt.Y)
	if err := p.stroke(); err != nil && p.err == nil {
		p.err = fmt.Errorf("stroke segment: %w", err)
	}
	p.last = pt
}

// Err returns the first render failure since the last Clear or Resize.
func (p *Pad) Err() error {
	if !p.ready() {
		return nil
	}
	return p.err
}

func (p *Pad) End() {
	if !p.ready() {
		return
	}
	p.dc.ClearPath()
	p.drawing = false
}

// Clear erases the raster. A stroke in progress stays in progress.
func (p *Pad) Clear() {
	if !p.ready() {
		return
	}
	p.dc.ClearPath()
	p.dc.Clear()
	p.empty = true
	p.err = nil
}

// ExportImage returns the PNG encoding of the surface, or nil when
// nothing has been drawn.
func (p *Pad) ExportImage() []byte {
	if !p.ready() || p.empty {
		return nil
	}
	var buf bytes.Buffer
	if err := p.dc.EncodePNG(&buf); err != nil {
		return nil
	}
	return buf.Bytes()
}

func (p *Pad) Image() image.Image {
	if !p.ready() {
		return nil
	}
	return p.dc.Image()
}

func (p *Pad) IsEmpty() bool {
	if !p.ready() {
		return true
	}
	return p.empty
}

func (p *Pad) IsDrawing() bool {
	return p.ready() && p.drawing
}

func (p *Pad) Size() (width, height int) {
	if !p.ready() {
		return 0, 0
	}
	return p.dc.Width(), p.dc.Height()
}

func (p *Pad) Style() Style { return p.style }

// Resize reallocates the raster to width x height. Everything drawn so
// far is lost; the ink style is applied again. The empty flag is left
// alone, so a pad resized after drawing still reports content.
func (p *Pad) Resize(width, height int) {
	if !p.ready() || width <= 0 || height <= 0 {
		return
	}
	if w, h := p.Size(); w == width && h == height {
		return
	}
	if err := p.dc.Resize(width, height); err != nil {
		return
	}
	p.err = nil
	p.applyStyle()
}

// Close releases the drawing context. A closed pad ignores every call.
func (p *Pad) Close() error {
	if !p.ready() {
		return nil
	}
	err := p.dc.Close()
	p.dc = nil
	p.drawing = false
	return err
}
