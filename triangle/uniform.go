package triangle

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/triangle/glm"
	"github.com/oliverbestmann/triangle/pulse"
)

// AngularVelocity of the rotating triangle in radians per millisecond
const AngularVelocity = 0.001

// UniformSize is the size of the transform matrix in bytes
const UniformSize = 64

// InitialTransform is the identity with w scaled by two. After the
// perspective divide the triangle is drawn at half its size, so it
// stays inside the viewport while rotating.
var InitialTransform = glm.ScaleMat4[float32](1, 1, 1, 2)

// RotationAngle returns the rotation angle for the given frame timestamp in milliseconds
func RotationAngle(timestamp float64) glm.Rad {
	return glm.Rad(AngularVelocity * timestamp)
}

// UniformResources hold the transform matrix and bind it to slot 0
type UniformResources struct {
	BindGroupLayout *wgpu.BindGroupLayout
	Buffer          *wgpu.Buffer
	BindGroup       *wgpu.BindGroup
}

func BuildUniformResources(dev pulse.Device) (*UniformResources, error) {
	layout, err := dev.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Transform",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: UniformSize,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group layout: %w: %w", pulse.ErrResourceCreation, err)
	}

	layoutGuard := pulse.NewReleaseGuard(layout)
	defer layoutGuard.Release()

	initial := InitialTransform.ToWGPU()

	buffer, err := dev.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Transform",
		Contents: pulse.AsByteSlice(&initial),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create uniform buffer: %w: %w", pulse.ErrResourceCreation, err)
	}

	bufferGuard := pulse.NewReleaseGuard(buffer)
	defer bufferGuard.Release()

	bindGroup, err := dev.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Transform",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  buffer,
				Offset:  0,
				Size:    UniformSize,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group: %w: %w", pulse.ErrResourceCreation, err)
	}

	layoutGuard.Keep()
	bufferGuard.Keep()

	return &UniformResources{
		BindGroupLayout: layout,
		Buffer:          buffer,
		BindGroup:       bindGroup,
	}, nil
}

func (u *UniformResources) Release() {
	if u.BindGroup != nil {
		u.BindGroup.Release()
		u.BindGroup = nil
	}

	if u.Buffer != nil {
		u.Buffer.Release()
		u.Buffer = nil
	}

	if u.BindGroupLayout != nil {
		u.BindGroupLayout.Release()
		u.BindGroupLayout = nil
	}
}
