package pulse

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

var forceFallbackAdapter = os.Getenv("WGPU_FORCE_FALLBACK_ADAPTER") == "1"

func init() {
	runtime.LockOSThread()

	switch strings.ToUpper(os.Getenv("WGPU_LOG_LEVEL")) {
	case "OFF":
		wgpu.SetLogLevel(wgpu.LogLevelOff)
	case "ERROR":
		wgpu.SetLogLevel(wgpu.LogLevelError)
	case "WARN":
		wgpu.SetLogLevel(wgpu.LogLevelWarn)
	case "INFO":
		wgpu.SetLogLevel(wgpu.LogLevelInfo)
	case "DEBUG":
		wgpu.SetLogLevel(wgpu.LogLevelDebug)
	case "TRACE":
		wgpu.SetLogLevel(wgpu.LogLevelTrace)
	}
}

// Context encapsulates the low level state of the webgpu context,
// this includes the Device, Queue, Surface and active Adapter.
// Context implements Device.
type Context struct {
	Device  *wgpu.Device
	Queue   *wgpu.Queue
	Surface *wgpu.Surface
	Adapter *wgpu.Adapter
}

// New acquires a device that is able to render to the surface described by sd.
// There is no fallback path: if this fails, nothing can be rendered.
func New(sd *wgpu.SurfaceDescriptor) (*Context, error) {
	if sd == nil {
		return nil, fmt.Errorf("no surface descriptor: %w", ErrCapabilityAbsent)
	}

	return newContext(sd)
}

// NewHeadless acquires a device without a surface. It can create resources and
// submit work, but has nothing to present to.
func NewHeadless() (*Context, error) {
	return newContext(nil)
}

func newContext(sd *wgpu.SurfaceDescriptor) (st *Context, err error) {
	defer func() {
		if err != nil && st != nil {
			st.Release()
			st = nil
		}
	}()

	st = &Context{}

	// create the webgpu instance
	instance := wgpu.CreateInstance(nil)
	if instance == nil {
		return st, fmt.Errorf("create instance: %w", ErrCapabilityAbsent)
	}

	defer instance.Release()

	opts := &wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
	}

	if sd != nil {
		// create a Surface based on the window
		st.Surface = instance.CreateSurface(sd)
		if st.Surface == nil {
			return st, fmt.Errorf("create surface: %w", ErrCapabilityAbsent)
		}

		opts.CompatibleSurface = st.Surface
	}

	// create an adapter that can render to the Surface
	st.Adapter, err = instance.RequestAdapter(opts)
	if err != nil {
		return st, fmt.Errorf("request adapter: %w: %w", ErrNegotiation, err)
	}

	// get a Device with the default settings
	st.Device, err = st.Adapter.RequestDevice(nil)
	if err != nil {
		return st, fmt.Errorf("request device: %w: %w", ErrNegotiation, err)
	}

	st.Queue = st.Device.GetQueue()

	return st, nil
}

func (d *Context) CreateBufferInit(desc *wgpu.BufferInitDescriptor) (*wgpu.Buffer, error) {
	return d.Device.CreateBufferInit(desc)
}

func (d *Context) CreateTexture(desc *wgpu.TextureDescriptor) (*Texture, error) {
	return NewTextureFromDesc(d, desc)
}

func (d *Context) CreateShaderModule(desc *wgpu.ShaderModuleDescriptor) (*wgpu.ShaderModule, error) {
	return d.Device.CreateShaderModule(desc)
}

func (d *Context) CreateBindGroupLayout(desc *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	return d.Device.CreateBindGroupLayout(desc)
}

func (d *Context) CreateBindGroup(desc *wgpu.BindGroupDescriptor) (*wgpu.BindGroup, error) {
	return d.Device.CreateBindGroup(desc)
}

func (d *Context) CreatePipelineLayout(desc *wgpu.PipelineLayoutDescriptor) (*wgpu.PipelineLayout, error) {
	return d.Device.CreatePipelineLayout(desc)
}

func (d *Context) CreateRenderPipeline(desc *wgpu.RenderPipelineDescriptor) (*wgpu.RenderPipeline, error) {
	return d.Device.CreateRenderPipeline(desc)
}

func (d *Context) CreateCommandEncoder(label string) (CommandEncoder, error) {
	enc, err := d.Device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, err
	}

	return commandEncoder{enc: enc, queue: d.Queue}, nil
}

func (d *Context) WriteBuffer(buffer *wgpu.Buffer, offset uint64, data []byte) error {
	return d.Queue.WriteBuffer(buffer, offset, data)
}

func (d *Context) Release() {
	if d.Queue != nil {
		d.Queue.Release()
		d.Queue = nil
	}

	if d.Device != nil {
		d.Device.Release()
		d.Device = nil
	}

	if d.Adapter != nil {
		d.Adapter.Release()
		d.Adapter = nil
	}

	if d.Surface != nil {
		d.Surface.Release()
		d.Surface = nil
	}
}
