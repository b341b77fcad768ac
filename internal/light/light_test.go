package light

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

type node struct{ m mgl32.Mat4 }

func (n node) LocalToWorld() mgl32.Mat4 { return n.m }

func TestConfigureLightTypeAsymmetry(t *testing.T) {
	cases := []struct {
		name   string
		record map[string]any
		want   Type
	}{
		{"directional", map[string]any{"lightType": "directional"}, Directional},
		{"point", map[string]any{"lightType": "point"}, Point},
		{"spot", map[string]any{"lightType": "spot"}, Spot},
		{"typo falls to spot", map[string]any{"lightType": "pointt"}, Spot},
		{"wrong case falls to spot", map[string]any{"lightType": "Directional"}, Spot},
		{"empty string falls to spot", map[string]any{"lightType": ""}, Spot},
		{"number falls to spot", map[string]any{"lightType": 2}, Spot},
		{"null falls to spot", map[string]any{"lightType": nil}, Spot},
		{"absent is directional", map[string]any{}, Directional},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := New()
			l.Type = Point
			l.Configure(tc.record)
			assert.Equal(t, tc.want, l.Type)
		})
	}
}

func TestConfigureNonObjectLeavesDefaults(t *testing.T) {
	for _, data := range []any{nil, "point", 3.0, []any{"lightType", "point"}} {
		l := New()
		l.Configure(data)
		assert.Equal(t, New(), l)
	}
}

func TestConfigureDefaultsAndOverrides(t *testing.T) {
	l := New()
	l.Configure(map[string]any{
		"lightType": "point",
		"diffuse":   []any{1.0, 0.5, 0.0},
	})
	assert.Equal(t, mgl32.Vec3{1, 0.5, 0}, l.Diffuse)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, l.Specular)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, l.Ambient)
	assert.Equal(t, mgl32.Vec3{0.1, 0, 0}, l.Attenuation)
	assert.InDelta(t, 0.6981, l.Cone[0], 1e-4)
	assert.InDelta(t, 0.3491, l.Cone[1], 1e-4)
}

func TestConeConvertedOnceAtLoad(t *testing.T) {
	l := New()
	l.Configure(map[string]any{"lightType": "spot", "cone": []any{40.0, 20.0}})
	assert.InDelta(t, 0.6981, l.Cone[0], 1e-4)
	assert.InDelta(t, 0.3491, l.Cone[1], 1e-4)

	// reading the field again must not convert a second time
	assert.InDelta(t, 0.6981, l.Cone[0], 1e-4)

	l.Configure(map[string]any{"cone": []any{90.0, 45.0}})
	assert.InDelta(t, mgl32.DegToRad(90), l.Cone[0], 1e-6)
	assert.InDelta(t, mgl32.DegToRad(45), l.Cone[1], 1e-6)
}

func TestWorldDirection(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, WorldDirection(mgl32.Ident4()))
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, WorldDirection(mgl32.Translate3D(5, 5, 5)))

	rot := mgl32.HomogRotate3DZ(mgl32.DegToRad(90))
	dir := WorldDirection(mgl32.Translate3D(5, 5, 5).Mul4(rot))
	assert.InDelta(t, 1, dir[0], 1e-6)
	assert.InDelta(t, 0, dir[1], 1e-6)

	scaled := WorldDirection(mgl32.Scale3D(2, 2, 2))
	assert.Equal(t, mgl32.Vec3{0, -2, 0}, scaled)
}

func TestWorldPosition(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, WorldPosition(mgl32.Ident4()))

	m := mgl32.Translate3D(5, 5, 5).
		Mul4(mgl32.HomogRotate3D(1.234, mgl32.Vec3{1, 2, 3}.Normalize())).
		Mul4(mgl32.Scale3D(3, 1, 2))
	assert.Equal(t, mgl32.Vec3{5, 5, 5}, WorldPosition(m))
}

func TestPositionAndDirectionFollowOwner(t *testing.T) {
	l := New()
	n := &node{m: mgl32.Translate3D(1, 2, 3)}
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, l.Position(n))

	// nothing is cached between calls
	n.m = mgl32.Translate3D(4, 5, 6).Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(180)))
	assert.Equal(t, mgl32.Vec3{4, 5, 6}, l.Position(n))
	dir := l.Direction(n)
	assert.InDelta(t, 1, dir[1], 1e-6)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "directional", Directional.String())
	assert.Equal(t, "point", Point.String())
	assert.Equal(t, "spot", Spot.String())
	assert.Equal(t, "unknown", Type(9).String())
}
