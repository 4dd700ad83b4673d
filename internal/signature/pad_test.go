package signature

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alphaAt(t *testing.T, data []byte, x, y int) uint32 {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	_, _, _, a := img.At(x, y).RGBA()
	return a
}

func TestNewPad_Defaults(t *testing.T) {
	p := NewPad(0, -1, Style{})
	defer p.Close()

	w, h := p.Size()
	assert.Equal(t, DefaultWidth, w)
	assert.Equal(t, DefaultHeight, h)
	assert.Equal(t, DefaultStyle(), p.Style())
	assert.True(t, p.IsEmpty())
	assert.False(t, p.IsDrawing())
	assert.Nil(t, p.ExportImage())
}

func TestPad_BeginMarksNonEmpty(t *testing.T) {
	p := NewPad(100, 100, DefaultStyle())
	defer p.Close()

	p.Begin(Point{X: 10, Y: 10})
	assert.False(t, p.IsEmpty(), "a single dot counts as content")
	assert.True(t, p.IsDrawing())

	img := p.ExportImage()
	require.NotEmpty(t, img)
	assert.Equal(t, []byte("\x89PNG"), img[:4])
}

func TestPad_StrokeSequencesStayNonEmptyUntilClear(t *testing.T) {
	strokes := [][]Point{
		{{X: 5, Y: 5}},
		{{X: 5, Y: 5}, {X: 50, Y: 50}},
		{{X: 1, Y: 90}, {X: 30, Y: 10}, {X: 60, Y: 90}, {X: 90, Y: 10}},
	}
	for _, s := range strokes {
		p := NewPad(100, 100, DefaultStyle())
		p.Begin(s[0])
		for _, pt := range s[1:] {
			p.Extend(pt)
			assert.False(t, p.IsEmpty())
		}
		p.End()
		assert.False(t, p.IsEmpty())
		assert.False(t, p.IsDrawing())

		p.Clear()
		assert.True(t, p.IsEmpty())
		assert.Nil(t, p.ExportImage())
		_ = p.Close()
	}
}

func TestPad_ExtendRendersInk(t *testing.T) {
	p := NewPad(120, 100, Style{Ink: "#000000", Width: 2})
	defer p.Close()

	p.Begin(Point{X: 10, Y: 50})
	p.Extend(Point{X: 100, Y: 50})
	p.End()

	img := p.ExportImage()
	require.NotNil(t, img)
	assert.NotZero(t, alphaAt(t, img, 50, 50))
	assert.Zero(t, alphaAt(t, img, 50, 5))
}

func TestPad_ExtendWithoutBeginIsNoop(t *testing.T) {
	p := NewPad(100, 100, DefaultStyle())
	defer p.Close()

	p.Extend(Point{X: 10, Y: 10})
	p.Extend(Point{X: 90, Y: 90})
	assert.True(t, p.IsEmpty())
	assert.False(t, p.IsDrawing())
	assert.Nil(t, p.ExportImage())
}

func TestPad_EndIsIdempotent(t *testing.T) {
	p := NewPad(100, 100, DefaultStyle())
	defer p.Close()

	p.End()
	p.End()
	assert.False(t, p.IsDrawing())
	assert.True(t, p.IsEmpty())
}

func TestPad_ClearKeepsDrawingState(t *testing.T) {
	p := NewPad(100, 100, DefaultStyle())
	defer p.Close()

	p.Begin(Point{X: 10, Y: 10})
	p.Clear()
	assert.True(t, p.IsDrawing())
	assert.True(t, p.IsEmpty())

	p.Extend(Point{X: 20, Y: 20})
	assert.True(t, p.IsEmpty(), "only Begin flips the empty flag")
}

func TestPad_ClearErasesInk(t *testing.T) {
	p := NewPad(120, 100, Style{Ink: "#000000", Width: 4})
	defer p.Close()

	p.Begin(Point{X: 10, Y: 50})
	p.Extend(Point{X: 100, Y: 50})
	p.End()
	p.Clear()

	p.Begin(Point{X: 0, Y: 0})
	img := p.ExportImage()
	require.NotNil(t, img)
	assert.Zero(t, alphaAt(t, img, 50, 50))
}

func TestPad_ExportIsDeterministic(t *testing.T) {
	draw := func() []byte {
		p := NewPad(80, 40, DefaultStyle())
		defer p.Close()
		p.Begin(Point{X: 5, Y: 5})
		p.Extend(Point{X: 70, Y: 30})
		p.End()
		return p.ExportImage()
	}
	assert.Equal(t, draw(), draw())
}

func TestPad_ResizeDropsContent(t *testing.T) {
	p := NewPad(120, 100, Style{Ink: "#000000", Width: 4})
	defer p.Close()

	p.Begin(Point{X: 10, Y: 50})
	p.Extend(Point{X: 100, Y: 50})
	p.End()

	p.Resize(200, 80)
	w, h := p.Size()
	assert.Equal(t, 200, w)
	assert.Equal(t, 80, h)
	assert.False(t, p.IsEmpty())

	img := p.ExportImage()
	require.NotNil(t, img)
	assert.Zero(t, alphaAt(t, img, 50, 50))

	// style survives reallocation
	p.Begin(Point{X: 10, Y: 40})
	p.Extend(Point{X: 190, Y: 40})
	assert.NotZero(t, alphaAt(t, p.ExportImage(), 100, 40))
}

func TestPad_ResizeIgnoresInvalidAndSameSize(t *testing.T) {
	p := NewPad(120, 100, Style{Ink: "#000000", Width: 4})
	defer p.Close()

	p.Begin(Point{X: 10, Y: 50})
	p.Extend(Point{X: 100, Y: 50})

	p.Resize(0, 50)
	p.Resize(120, 100)
	w, h := p.Size()
	assert.Equal(t, 120, w)
	assert.Equal(t, 100, h)
	assert.NotZero(t, alphaAt(t, p.ExportImage(), 50, 50))
}

func TestPad_ClosedPadIsSilent(t *testing.T) {
	p := NewPad(100, 100, DefaultStyle())
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	p.Begin(Point{X: 1, Y: 1})
	p.Extend(Point{X: 5, Y: 5})
	p.End()
	p.Clear()
	p.Resize(10, 10)

	assert.True(t, p.IsEmpty())
	assert.False(t, p.IsDrawing())
	assert.Nil(t, p.ExportImage())
	assert.Nil(t, p.Image())

	var nilPad *Pad
	nilPad.Begin(Point{})
	assert.True(t, nilPad.IsEmpty())
	assert.Nil(t, nilPad.ExportImage())
}

func TestPad_StrokeFailureIsReported(t *testing.T) {
	p := NewPad(120, 100, Style{Ink: "#000000", Width: 2})
	defer p.Close()
	assert.NoError(t, p.Err())

	boom := errors.New("rasterizer failed")
	calls := 0
	p.stroke = func() error {
		calls++
		if calls == 1 {
			return boom
		}
		return nil
	}

	p.Begin(Point{X: 10, Y: 50})
	p.Extend(Point{X: 60, Y: 50})
	p.Extend(Point{X: 100, Y: 50})
	p.End()

	require.Error(t, p.Err())
	assert.ErrorIs(t, p.Err(), boom)

	p.Clear()
	assert.NoError(t, p.Err())
}
