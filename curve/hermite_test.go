package curve

import (
	"testing"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-4

func cross(o, a, b f32.Point) float32 {
	u, v := a.Sub(o), b.Sub(o)
	return u.X*v.Y - u.Y*v.X
}

func TestHermiteDegenerate(t *testing.T) {
	assert.Empty(t, Hermite(nil))
	assert.Empty(t, Hermite([]f32.Point{f32.Pt(1, 1)}))
}

func TestHermiteTwoPoints(t *testing.T) {
	p0, p1 := f32.Pt(0, 0), f32.Pt(30, 60)
	c := Hermite([]f32.Point{p0, p1})
	require.Len(t, c, 1)
	// Both endpoints use the halved one-sided tangent (15, 30).
	assert.InDelta(t, 5, c[0].C1.X, epsilon)
	assert.InDelta(t, 10, c[0].C1.Y, epsilon)
	assert.InDelta(t, 25, c[0].C2.X, epsilon)
	assert.InDelta(t, 50, c[0].C2.Y, epsilon)
}

func TestHermiteCollinear(t *testing.T) {
	var points []f32.Point
	for i := 0; i < 8; i++ {
		points = append(points, f32.Pt(float32(i)*10, 5+float32(i)*3))
	}
	controls := Hermite(points)
	require.Len(t, controls, len(points)-1)
	for i, c := range controls {
		a, b := points[i], points[i+1]
		assert.InDelta(t, 0, cross(a, b, c.C1), epsilon, "segment %d C1", i)
		assert.InDelta(t, 0, cross(a, b, c.C2), epsilon, "segment %d C2", i)
		// Control points stay between the endpoints of their segment.
		assert.True(t, c.C1.X >= a.X && c.C1.X <= b.X, "segment %d C1 x=%v", i, c.C1.X)
		assert.True(t, c.C2.X >= a.X && c.C2.X <= b.X, "segment %d C2 x=%v", i, c.C2.X)
	}
}

func TestHermiteInteriorTangent(t *testing.T) {
	points := []f32.Point{f32.Pt(0, 0), f32.Pt(10, 10), f32.Pt(20, 0)}
	c := Hermite(points)
	require.Len(t, c, 2)
	// The peak's tangent averages (10,10) and (10,-10): flat.
	assert.InDelta(t, 10-10.0/3, c[0].C2.X, epsilon)
	assert.InDelta(t, 10, c[0].C2.Y, epsilon)
	assert.InDelta(t, 10+10.0/3, c[1].C1.X, epsilon)
	assert.InDelta(t, 10, c[1].C1.Y, epsilon)
}

func TestAppendHermiteReusesBuffer(t *testing.T) {
	buf := make([]Control, 0, 4)
	out := AppendHermite(buf, []f32.Point{f32.Pt(0, 0), f32.Pt(1, 1), f32.Pt(2, 0)})
	assert.Len(t, out, 2)
	assert.Equal(t, 4, cap(out))
}
