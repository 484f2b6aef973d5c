package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Canvas is an offscreen drawing surface whose backing image is scaled by a
// device pixel ratio. Callers draw in logical units.
type Canvas struct {
	img *ebiten.Image

	width, height float64
	dpr           float64
	backW, backH  int
}

func New() *Canvas {
	return &Canvas{dpr: 1}
}

// BackingSize is the pixel size of the backing buffer for a logical size.
func BackingSize(width, height, dpr float64) (int, int) {
	w := int(math.Ceil(width * dpr))
	h := int(math.Ceil(height * dpr))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Resize records the new logical size. The backing image is reallocated on
// the next draw.
func (c *Canvas) Resize(width, height, dpr float64) {
	c.width, c.height, c.dpr = width, height, dpr
	c.backW, c.backH = BackingSize(width, height, dpr)
}

func (c *Canvas) Size() (width, height float64) { return c.width, c.height }

func (c *Canvas) BackingSize() (int, int) { return c.backW, c.backH }

func (c *Canvas) ensure() *ebiten.Image {
	if c.backW == 0 || c.backH == 0 {
		c.Resize(1, 1, 1)
	}
	if c.img != nil {
		b := c.img.Bounds()
		if b.Dx() == c.backW && b.Dy() == c.backH {
			return c.img
		}
		c.img.Deallocate()
	}
	c.img = ebiten.NewImage(c.backW, c.backH)
	return c.img
}

func (c *Canvas) Clear() {
	c.ensure().Clear()
}

func (c *Canvas) scale(v float64) float32 { return float32(v * c.dpr) }

func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	vector.StrokeLine(c.ensure(), c.scale(x0), c.scale(y0), c.scale(x1), c.scale(y1), c.scale(width), clr, true)
}

func (c *Canvas) FillCircle(cx, cy, r float64, clr color.Color) {
	vector.DrawFilledCircle(c.ensure(), c.scale(cx), c.scale(cy), c.scale(r), clr, true)
}

func (c *Canvas) StrokeCircle(cx, cy, r, width float64, clr color.Color) {
	vector.StrokeCircle(c.ensure(), c.scale(cx), c.scale(cy), c.scale(r), c.scale(width), clr, true)
}

// DrawTo composites the canvas onto dst with its top-left corner at x, y in
// logical units.
func (c *Canvas) DrawTo(dst *ebiten.Image, x, y float64) {
	if c.img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(1/c.dpr, 1/c.dpr)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(c.img, op)
}

// Snapshot copies the backing pixels. It must run inside the game loop.
func (c *Canvas) Snapshot() *image.RGBA {
	img := c.ensure()
	out := image.NewRGBA(image.Rect(0, 0, c.backW, c.backH))
	img.ReadPixels(out.Pix)
	return out
}
