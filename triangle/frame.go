package triangle

import (
	"context"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/triangle/glm"
	"github.com/oliverbestmann/triangle/pulse"
)

// Ticker blocks until the host wants the next frame and returns
// its timestamp in milliseconds.
type Ticker interface {
	Next(ctx context.Context) (float64, error)
}

// FrameState is updated in place every frame
type FrameState struct {
	// Transform is the staging copy of the uniform buffer
	Transform glm.Mat4f

	uniform [16]float32

	colorAttachments [1]wgpu.RenderPassColorAttachment
	depthAttachment  wgpu.RenderPassDepthStencilAttachment
	renderPass       wgpu.RenderPassDescriptor
}

func NewFrameState(depthView *wgpu.TextureView, clearColor wgpu.Color) *FrameState {
	state := &FrameState{Transform: InitialTransform}

	state.colorAttachments[0] = wgpu.RenderPassColorAttachment{
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: clearColor,
	}

	state.depthAttachment = wgpu.RenderPassDepthStencilAttachment{
		View:              depthView,
		DepthLoadOp:       wgpu.LoadOpClear,
		DepthStoreOp:      wgpu.StoreOpStore,
		DepthClearValue:   1.0,
		StencilLoadOp:     wgpu.LoadOpClear,
		StencilStoreOp:    wgpu.StoreOpStore,
		StencilClearValue: 0,
	}

	state.renderPass = wgpu.RenderPassDescriptor{
		Label:                  "Triangle",
		ColorAttachments:       state.colorAttachments[:],
		DepthStencilAttachment: &state.depthAttachment,
	}

	return state
}

// Rotate writes the rotation for the given angle into the transform.
// Only the upper left 2x2 block changes.
func (s *FrameState) Rotate(angle glm.Rad) []byte {
	s.Transform.SetRotation2D(angle)
	s.uniform = s.Transform.ToWGPU()
	return pulse.AsByteSlice(&s.uniform)
}

// RenderPass returns the render pass descriptor drawing into the given view
func (s *FrameState) RenderPass(view *wgpu.TextureView) *wgpu.RenderPassDescriptor {
	s.colorAttachments[0].View = view
	return &s.renderPass
}

// RenderFrame updates the transform, records a single render pass drawing
// the triangle, submits it and presents the surface image. A failure
// drops the frame.
func (r *Renderer) RenderFrame(timestamp float64) error {
	if r.uniforms != nil {
		data := r.state.Rotate(glm.Rad(r.velocity * timestamp))

		// queue writes are ordered before the submit below
		if err := r.device.WriteBuffer(r.uniforms.Buffer, 0, data); err != nil {
			return fmt.Errorf("write transform: %w: %w", pulse.ErrResourceCreation, err)
		}
	}

	image, err := r.surface.AcquireImage()
	if err != nil {
		return fmt.Errorf("acquire image: %w", err)
	}

	if err := r.encode(image); err != nil {
		image.Release()
		return err
	}

	r.surface.Present(image)

	r.frames++

	return nil
}

func (r *Renderer) encode(image *pulse.SurfaceImage) error {
	encoder, err := r.device.CreateCommandEncoder("Triangle")
	if err != nil {
		return fmt.Errorf("create command encoder: %w: %w", pulse.ErrResourceCreation, err)
	}

	defer encoder.Release()

	pass := encoder.BeginRenderPass(r.state.RenderPass(image.View))

	pass.SetPipeline(r.static.Pipeline)
	pass.SetVertexBuffer(0, r.static.VertexBuffer, 0, wgpu.WholeSize)

	if r.uniforms != nil {
		pass.SetBindGroup(0, r.uniforms.BindGroup, nil)
	}

	pass.Draw(uint32(len(TriangleVertices)), 1, 0, 0)

	err = pass.End()

	// must release
	pass.Release()

	if err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	if err := encoder.Submit("Triangle"); err != nil {
		return fmt.Errorf("submit frame: %w", err)
	}

	return nil
}

// Run renders one frame per tick until the context is cancelled, the
// ticker fails or a frame could not be rendered. The frame loop never
// retries a failed frame.
func (r *Renderer) Run(ctx context.Context, ticker Ticker) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		timestamp, err := ticker.Next(ctx)
		if err != nil {
			return err
		}

		if err := r.RenderFrame(timestamp); err != nil {
			return err
		}
	}
}
