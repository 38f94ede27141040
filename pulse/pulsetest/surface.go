package pulsetest

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/triangle/pulse"
)

// Surface hands out placeholder images. If Configured is false, it
// behaves like a surface that was never configured.
type Surface struct {
	Configured bool

	Acquired  int
	Presented int
	Released  int

	// the image handed out by the last successful AcquireImage
	Last *pulse.SurfaceImage
}

var _ pulse.Surface = (*Surface)(nil)

func NewSurface() *Surface {
	return &Surface{Configured: true}
}

func (s *Surface) AcquireImage() (*pulse.SurfaceImage, error) {
	if !s.Configured {
		return nil, fmt.Errorf("surface is not configured: %w", pulse.ErrFrameAcquisition)
	}

	s.Acquired++

	s.Last = pulse.NewSurfaceImage(&wgpu.TextureView{}, func() { s.Released++ })

	return s.Last, nil
}

func (s *Surface) Present(image *pulse.SurfaceImage) {
	s.Presented++
}
