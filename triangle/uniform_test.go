package triangle_test

import (
	"math"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/triangle/glm"
	"github.com/oliverbestmann/triangle/pulse"
	"github.com/oliverbestmann/triangle/pulse/pulsetest"
	"github.com/oliverbestmann/triangle/triangle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformResources(t *testing.T) {
	dev := pulsetest.NewDevice()

	res, err := triangle.BuildUniformResources(dev)
	require.NoError(t, err)

	assert.Equal(t, []string{"CreateBindGroupLayout", "CreateBufferInit", "CreateBindGroup"}, dev.Ops())

	layout := dev.BindGroupLayouts[res.BindGroupLayout]
	require.NotNil(t, layout)
	require.Len(t, layout.Entries, 1)

	entry := layout.Entries[0]
	assert.EqualValues(t, 0, entry.Binding)
	assert.Equal(t, wgpu.ShaderStageVertex, entry.Visibility)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, entry.Buffer.Type)
	assert.EqualValues(t, 64, entry.Buffer.MinBindingSize)

	buffer := dev.Buffers[res.Buffer]
	require.NotNil(t, buffer)
	assert.Equal(t, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst, buffer.Usage)
	assert.Len(t, buffer.Contents, 64)

	initial := triangle.InitialTransform.ToWGPU()
	assert.Equal(t, initial[:], floatsOf(buffer.Contents))

	group := dev.BindGroups[res.BindGroup]
	require.NotNil(t, group)
	assert.Same(t, res.BindGroupLayout, group.Layout)
	require.Len(t, group.Entries, 1)
	assert.Same(t, res.Buffer, group.Entries[0].Buffer)
	assert.EqualValues(t, 0, group.Entries[0].Offset)
	assert.EqualValues(t, 64, group.Entries[0].Size)
}

func TestUniformRejectedByDevice(t *testing.T) {
	dev := pulsetest.NewDevice()
	dev.FailOn = []string{"CreateBindGroupLayout"}

	_, err := triangle.BuildUniformResources(dev)
	assert.ErrorIs(t, err, pulse.ErrResourceCreation)
	assert.Equal(t, []string{"CreateBindGroupLayout"}, dev.Ops())
}

func TestInitialTransformHalvesSize(t *testing.T) {
	expected := glm.Mat4f{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 2,
	}

	assert.Equal(t, expected, triangle.InitialTransform)
}

func TestRotationAtZeroIsIdentityBlock(t *testing.T) {
	state := triangle.NewFrameState(nil, triangle.DefaultClearColor)

	state.Rotate(triangle.RotationAngle(0))
	assert.Equal(t, triangle.InitialTransform, state.Transform)
}

func TestRotationAfterOneSecond(t *testing.T) {
	state := triangle.NewFrameState(nil, triangle.DefaultClearColor)

	data := state.Rotate(triangle.RotationAngle(1000))
	require.Len(t, data, 64)

	m := state.Transform
	assert.InDelta(t, 0.5403023, m[0], 1e-6)
	assert.InDelta(t, -0.8414710, m[1], 1e-6)
	assert.InDelta(t, 0.8414710, m[4], 1e-6)
	assert.InDelta(t, 0.5403023, m[5], 1e-6)

	// the bytes are the staged matrix in memory order
	assert.Equal(t, m[:], floatsOf(data))
}

func TestRotationKeepsOtherCells(t *testing.T) {
	state := triangle.NewFrameState(nil, triangle.DefaultClearColor)

	for _, timestamp := range []float64{0, 16.6, 1000, 1570.8, 3141.6, 123456} {
		state.Rotate(triangle.RotationAngle(timestamp))

		theta := 0.001 * timestamp

		for idx, value := range state.Transform {
			switch idx {
			case 0, 5:
				assert.InDelta(t, cos, value, 1e-6, "cell %d at t=%f", idx, timestamp)
			case 1:
				assert.InDelta(t, -sin, value, 1e-6, "cell %d at t=%f", idx, timestamp)
			case 4:
				assert.InDelta(t, sin, value, 1e-6, "cell %d at t=%f", idx, timestamp)
			default:
				assert.Equal(t, triangle.InitialTransform[idx], value, "cell %d at t=%f", idx, timestamp)
			}
		}
	}
}

func TestRotatingTriangleStaysInViewport(t *testing.T) {
	state := triangle.NewFrameState(nil, triangle.DefaultClearColor)

	for timestamp := 0.0; timestamp < 7000; timestamp += 250 {
		state.Rotate(triangle.RotationAngle(timestamp))

		for _, vertex := range triangle.TriangleVertices {
			clip := state.Transform.Transform(vertex.Position)

			x, y, w := clip[0], clip[1], clip[3]
			require.EqualValues(t, 2, w)

			// distance to the center is at most sqrt(2) / 2
			assert.LessOrEqual(t, math.Hypot(float64(x/w), float64(y/w)), math.Sqrt2/2+1e-6)
		}
	}
}
