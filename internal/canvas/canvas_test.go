package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iburimskiy/constellation/internal/field"
)

var _ field.Surface = (*Canvas)(nil)

func TestBackingSizeFollowsDPR(t *testing.T) {
	cases := []struct {
		name          string
		width, height float64
		dpr           float64
		wantW, wantH  int
	}{
		{"unit", 800, 600, 1, 800, 600},
		{"retina", 800, 600, 2, 1600, 1200},
		{"shrunk", 400, 300, 2, 800, 600},
		{"fractional", 333.5, 200.25, 1.5, 501, 301},
		{"empty", 0, 0, 2, 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, h := BackingSize(tc.width, tc.height, tc.dpr)
			assert.Equal(t, tc.wantW, w)
			assert.Equal(t, tc.wantH, h)
		})
	}
}

func TestResizeRecordsSizes(t *testing.T) {
	c := New()
	c.Resize(800, 600, 2)
	w, h := c.BackingSize()
	assert.Equal(t, 1600, w)
	assert.Equal(t, 1200, h)

	c.Resize(400, 300, 2)
	w, h = c.BackingSize()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	lw, lh := c.Size()
	assert.Equal(t, 400.0, lw)
	assert.Equal(t, 300.0, lh)
}

func TestFieldResizeCapsBackingBuffer(t *testing.T) {
	c := New()
	f := field.New(c, field.DefaultConfig(), nil)
	f.Resize(400, 300, 3)
	w, h := c.BackingSize()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}
