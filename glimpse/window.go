package glimpse

import (
	"errors"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrClosed is returned by Ticker.Next once the window was closed
var ErrClosed = errors.New("window closed")

type Window interface {
	GetSize() (uint32, uint32)
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Ticker returns the refresh signal of this window
	Ticker() *Ticker

	Terminate()
}
