package pulse

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Texture wraps a wgpu.Texture and an identity wgpu.TextureView.
type Texture struct {
	texture     *wgpu.Texture
	textureView *wgpu.TextureView

	// equal to texture.GetFormat()
	format wgpu.TextureFormat

	width  uint32
	height uint32

	// equal to texture.GetSampleCount()
	sampleCount uint32
}

// NewTextureFromDesc gives you full control and creates a texture directly from
// a texture descriptor
func NewTextureFromDesc(ctx *Context, desc *wgpu.TextureDescriptor) (*Texture, error) {
	if err := validateTextureDesc(desc); err != nil {
		return nil, err
	}

	texture, err := ctx.Device.CreateTexture(desc)
	if err != nil {
		return nil, fmt.Errorf("create texture %q: %w: %w", desc.Label, ErrResourceCreation, err)
	}

	// now create a default texture view
	textureView, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()

		return nil, fmt.Errorf("create view of %q: %w: %w", desc.Label, ErrResourceCreation, err)
	}

	return WrapTexture(texture, textureView, desc), nil
}

// WrapTexture creates a texture from an existing wgpu.Texture and wgpu.TextureView. The
// metadata is taken from the descriptor the texture was created with.
func WrapTexture(texture *wgpu.Texture, textureView *wgpu.TextureView, desc *wgpu.TextureDescriptor) *Texture {
	return &Texture{
		texture:     texture,
		textureView: textureView,
		format:      desc.Format,
		width:       desc.Size.Width,
		height:      desc.Size.Height,
		sampleCount: max(1, desc.SampleCount),
	}
}

func validateTextureDesc(desc *wgpu.TextureDescriptor) error {
	if desc.Size.Width == 0 || desc.Size.Height == 0 {
		return fmt.Errorf(
			"texture %q has invalid size %dx%d: %w",
			desc.Label, desc.Size.Width, desc.Size.Height, ErrResourceCreation,
		)
	}

	if desc.Size.DepthOrArrayLayers == 0 || desc.MipLevelCount == 0 {
		return fmt.Errorf("texture %q needs at least one layer and one mip level: %w", desc.Label, ErrResourceCreation)
	}

	return nil
}

func (t *Texture) Width() uint32 {
	return t.width
}

func (t *Texture) Height() uint32 {
	return t.height
}

func (t *Texture) Format() wgpu.TextureFormat {
	return t.format
}

func (t *Texture) SampleCount() uint32 {
	return t.sampleCount
}

func (t *Texture) ToWGPUTexture() *wgpu.Texture {
	return t.texture
}

func (t *Texture) ToWGPUTextureView() *wgpu.TextureView {
	return t.textureView
}

// Release releases the texture view and the texture.
// You must be sure to not use the texture after calling release.
func (t *Texture) Release() {
	if t.textureView != nil {
		t.textureView.Release()
		t.textureView = nil
	}

	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}
