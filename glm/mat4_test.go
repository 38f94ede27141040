package glm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetRotation2DKeepsOtherCells(t *testing.T) {
	m := ScaleMat4[float32](3, 4, 5, 6)
	m[2], m[7], m[13] = 7, 8, 9

	m.SetRotation2D(Rad(0.5))

	expected := Mat4f{
		float32(math.Cos(0.5)), float32(-math.Sin(0.5)), 7, 0,
		float32(math.Sin(0.5)), float32(math.Cos(0.5)), 0, 8,
		0, 0, 5, 0,
		0, 9, 0, 6,
	}

	assert.Equal(t, expected, m)
}

func TestSetRotation2DRoundsOnce(t *testing.T) {
	for _, angle := range []float64{0, 0.5, 1, math.Pi / 3, 7, 123.456} {
		var m Mat4f
		m.SetRotation2D(Rad(angle))

		assert.Equal(t, float32(math.Cos(angle)), m[0], "angle %f", angle)
		assert.Equal(t, float32(-math.Sin(angle)), m[1], "angle %f", angle)
		assert.Equal(t, float32(math.Sin(angle)), m[4], "angle %f", angle)
		assert.Equal(t, float32(math.Cos(angle)), m[5], "angle %f", angle)
	}
}

func TestRotationRotatesCounterClockwise(t *testing.T) {
	m := ScaleMat4[float32](1, 1, 1, 1)
	m.SetRotation2D(math.Pi / 2)

	v := m.Transform(Vec4f{1, 0, 0, 1})
	assert.InDeltaSlice(t, []float32{0, 1, 0, 1}, v[:], 1e-6)
}

func TestToWGPUKeepsMemoryOrder(t *testing.T) {
	m := ScaleMat4[float32](1, 2, 3, 4)
	m.SetRotation2D(1)

	values := m.ToWGPU()
	assert.Equal(t, [16]float32(m), values)
}
