package pulse

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
)

// SurfaceFormat is the pixel format every surface is configured with.
// Pipelines rendering to the surface must declare the same format.
const SurfaceFormat = wgpu.TextureFormatBGRA8Unorm

// View holds the presentation state of the surface of a Context.
type View struct {
	*Context

	surfaceConfig *wgpu.SurfaceConfiguration

	// true once Configure succeeded
	configured bool
}

func NewView(dev *Context) *View {
	st := &View{Context: dev}

	st.surfaceConfig = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      SurfaceFormat,
		PresentMode: wgpu.PresentModeFifo,
	}

	return st
}

// Format returns the texture format of the images handed out by AcquireImage
func (vs *View) Format() wgpu.TextureFormat {
	return vs.surfaceConfig.Format
}

func (vs *View) Size() (width, height uint32) {
	return vs.surfaceConfig.Width, vs.surfaceConfig.Height
}

// Configure configures the surface for presentation with the given size.
func (vs *View) Configure(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("configure surface with size %dx%d: %w", width, height, ErrResourceCreation)
	}

	// headless contexts have nothing to present to
	if vs.Surface == nil {
		return fmt.Errorf("configure surface: no surface: %w", ErrCapabilityAbsent)
	}

	caps := vs.Surface.GetCapabilities(vs.Adapter)
	slog.Info("Available surface formats", slog.Any("formats", caps.Formats))

	if !slices.Contains(caps.Formats, vs.surfaceConfig.Format) {
		return fmt.Errorf("surface does not support format %v: %w", vs.surfaceConfig.Format, ErrResourceCreation)
	}

	if len(caps.AlphaModes) > 0 {
		vs.surfaceConfig.AlphaMode = caps.AlphaModes[0]
	}

	vs.surfaceConfig.Width = width
	vs.surfaceConfig.Height = height
	vs.Surface.Configure(vs.Adapter, vs.Device, vs.surfaceConfig)

	vs.configured = true

	return nil
}

// AcquireImage returns a view of the surface texture to render the next frame to.
func (vs *View) AcquireImage() (*SurfaceImage, error) {
	if !vs.configured {
		return nil, fmt.Errorf("surface is not configured: %w", ErrFrameAcquisition)
	}

	// get the surface texture (the actual screen)
	surface, err := vs.Surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("get current texture: %w: %w", ErrFrameAcquisition, err)
	}

	surfaceView, err := surface.CreateView(nil)
	if err != nil {
		surface.Release()
		return nil, fmt.Errorf("create surface view: %w: %w", ErrFrameAcquisition, err)
	}

	release := func() {
		surfaceView.Release()
		surface.Release()
	}

	return NewSurfaceImage(surfaceView, release), nil
}

// Present presents the image. The image must not be used afterward.
func (vs *View) Present(image *SurfaceImage) {
	vs.Surface.Present()

	// we do not need to release the screen if present was successful
	image.View.Release()
	image.release = nil
}
