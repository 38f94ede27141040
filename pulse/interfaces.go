package pulse

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Device is the subset of the webgpu device and queue used to build resources
// and to record and submit frames. It is implemented by *Context.
type Device interface {
	// CreateBufferInit creates a buffer that is mapped at creation, fills it with
	// desc.Contents and unmaps it again before returning.
	CreateBufferInit(desc *wgpu.BufferInitDescriptor) (*wgpu.Buffer, error)
	CreateTexture(desc *wgpu.TextureDescriptor) (*Texture, error)
	CreateShaderModule(desc *wgpu.ShaderModuleDescriptor) (*wgpu.ShaderModule, error)
	CreateBindGroupLayout(desc *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error)
	CreateBindGroup(desc *wgpu.BindGroupDescriptor) (*wgpu.BindGroup, error)
	CreatePipelineLayout(desc *wgpu.PipelineLayoutDescriptor) (*wgpu.PipelineLayout, error)
	CreateRenderPipeline(desc *wgpu.RenderPipelineDescriptor) (*wgpu.RenderPipeline, error)
	CreateCommandEncoder(label string) (CommandEncoder, error)

	// WriteBuffer enqueues a write on the queue. It is ordered before any
	// command buffer submitted afterward.
	WriteBuffer(buffer *wgpu.Buffer, offset uint64, data []byte) error
}

type CommandEncoder interface {
	BeginRenderPass(desc *wgpu.RenderPassDescriptor) RenderPass

	// Submit finishes recording and submits the resulting command buffer
	// to the queue. The encoder must not be used afterward.
	Submit(label string) error

	Release()
}

// RenderPass is implemented by *wgpu.RenderPassEncoder
type RenderPass interface {
	SetPipeline(pipeline *wgpu.RenderPipeline)
	SetVertexBuffer(slot uint32, buffer *wgpu.Buffer, offset uint64, size uint64)
	SetBindGroup(groupIndex uint32, group *wgpu.BindGroup, dynamicOffsets []uint32)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
	End() error
	Release()
}

// Surface hands out the image to present next.
type Surface interface {
	AcquireImage() (*SurfaceImage, error)
	Present(image *SurfaceImage)
}

var _ Device = (*Context)(nil)
var _ Surface = (*View)(nil)
var _ RenderPass = (*wgpu.RenderPassEncoder)(nil)

type commandEncoder struct {
	enc   *wgpu.CommandEncoder
	queue *wgpu.Queue
}

func (c commandEncoder) BeginRenderPass(desc *wgpu.RenderPassDescriptor) RenderPass {
	return c.enc.BeginRenderPass(desc)
}

func (c commandEncoder) Submit(label string) error {
	buf, err := c.enc.Finish(&wgpu.CommandBufferDescriptor{Label: label})
	if err != nil {
		return err
	}

	defer buf.Release()

	c.queue.Submit(buf)

	return nil
}

func (c commandEncoder) Release() {
	c.enc.Release()
}

// SurfaceImage is the texture view of the current swap surface image.
type SurfaceImage struct {
	View *wgpu.TextureView

	release func()
}

// NewSurfaceImage wraps a view. release is called once by Release and may be nil.
func NewSurfaceImage(view *wgpu.TextureView, release func()) *SurfaceImage {
	return &SurfaceImage{View: view, release: release}
}

func (s *SurfaceImage) Release() {
	if s.release != nil {
		s.release()
		s.release = nil
	}
}
