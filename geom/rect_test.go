package geom

import (
	"testing"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"
)

func TestRect(t *testing.T) {
	r := XYWH(10, 20, 30, 40)
	assert.Equal(t, float32(30), r.Dx())
	assert.Equal(t, float32(40), r.Dy())
	assert.Equal(t, f32.Pt(25, 40), r.Center())
	assert.Equal(t, XYWH(12, 21, 26, 38), r.Inset(2, 1))
	assert.Equal(t, XYWH(11, 22, 30, 40), r.Add(f32.Pt(1, 2)))
}

func TestRectOverlaps(t *testing.T) {
	a := XYWH(0, 0, 10, 10)
	assert.True(t, a.Overlaps(XYWH(5, 5, 10, 10)))
	assert.False(t, a.Overlaps(XYWH(10, 0, 10, 10)), "touching edges do not overlap")
	assert.False(t, a.Overlaps(XYWH(5, 5, 0, 10)), "empty rectangles never overlap")

	assert.True(t, a.OverlapsX(XYWH(10, 50, 0, 0)), "closed x spans include edges")
	assert.False(t, a.OverlapsX(XYWH(11, 0, 5, 5)))
}
