package triangle

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/triangle/pulse"
)

const (
	ShaderBasicVert  = "basic.vert"
	ShaderBasicFrag  = "basic.frag"
	ShaderRotateVert = "rotate.vert"
)

type Variant uint8

const (
	// VariantStatic draws the triangle without any uniforms
	VariantStatic Variant = iota

	// VariantRotating rotates the triangle around the z axis
	VariantRotating
)

func ParseVariant(value string) (Variant, error) {
	switch value {
	case "static":
		return VariantStatic, nil
	case "rotating":
		return VariantRotating, nil
	default:
		return 0, fmt.Errorf("unknown variant %q", value)
	}
}

func (v Variant) String() string {
	switch v {
	case VariantStatic:
		return "static"
	case VariantRotating:
		return "rotating"
	default:
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
}

func (v Variant) shaderNames() (vertex, fragment string) {
	if v == VariantRotating {
		return ShaderRotateVert, ShaderBasicFrag
	}

	return ShaderBasicVert, ShaderBasicFrag
}

// DefaultClearColor is the color the surface is cleared to every frame
var DefaultClearColor = wgpu.Color{R: 0.3, G: 0.6, B: 0.9, A: 1.0}

type Options struct {
	Variant Variant

	// format of the surface images
	ColorFormat wgpu.TextureFormat

	// size of the surface
	Width, Height uint32

	Shaders ShaderSource

	// defaults to DefaultClearColor
	ClearColor *wgpu.Color

	// radians per millisecond, defaults to AngularVelocity
	AngularVelocity float64
}

// Renderer owns every resource needed to draw the triangle and
// renders one frame per tick. It is not safe for concurrent use.
type Renderer struct {
	device  pulse.Device
	surface pulse.Surface

	static   *StaticResources
	uniforms *UniformResources

	state    *FrameState
	velocity float64
	frames   uint64
}

func NewRenderer(dev pulse.Device, surface pulse.Surface, opts Options) (*Renderer, error) {
	if opts.Shaders == nil {
		return nil, errors.New("no shader source configured")
	}

	vertexName, fragmentName := opts.Variant.shaderNames()

	vertexShader, err := opts.Shaders.Binary(vertexName)
	if err != nil {
		return nil, fmt.Errorf("lookup vertex shader: %w", err)
	}

	fragmentShader, err := opts.Shaders.Binary(fragmentName)
	if err != nil {
		return nil, fmt.Errorf("lookup fragment shader: %w", err)
	}

	staticOpts := StaticOptions{
		ColorFormat:    opts.ColorFormat,
		Width:          opts.Width,
		Height:         opts.Height,
		VertexShader:   vertexShader,
		FragmentShader: fragmentShader,
	}

	// fail before anything was created
	if err := staticOpts.validate(); err != nil {
		return nil, err
	}

	slog.Info(
		"Create renderer",
		slog.String("variant", opts.Variant.String()),
		slog.Any("format", opts.ColorFormat),
		slog.Int("width", int(opts.Width)),
		slog.Int("height", int(opts.Height)),
	)

	var uniforms *UniformResources

	if opts.Variant == VariantRotating {
		uniforms, err = BuildUniformResources(dev)
		if err != nil {
			return nil, err
		}

		staticOpts.BindGroupLayout = uniforms.BindGroupLayout
	}

	static, err := BuildStaticResources(dev, staticOpts)
	if err != nil {
		if uniforms != nil {
			uniforms.Release()
		}

		return nil, err
	}

	clearColor := DefaultClearColor
	if opts.ClearColor != nil {
		clearColor = *opts.ClearColor
	}

	velocity := opts.AngularVelocity
	if velocity == 0 {
		velocity = AngularVelocity
	}

	return &Renderer{
		device:   dev,
		surface:  surface,
		static:   static,
		uniforms: uniforms,
		state:    NewFrameState(static.DepthTexture.ToWGPUTextureView(), clearColor),
		velocity: velocity,
	}, nil
}

// Static returns the static resources of the renderer
func (r *Renderer) Static() *StaticResources {
	return r.static
}

// Uniforms returns the uniform resources, or nil for the static variant
func (r *Renderer) Uniforms() *UniformResources {
	return r.uniforms
}

// State returns the per frame state that is updated by RenderFrame
func (r *Renderer) State() *FrameState {
	return r.state
}

// Frames returns the number of frames presented so far
func (r *Renderer) Frames() uint64 {
	return r.frames
}

// Release releases all resources in reverse order of creation.
// The renderer must not be used afterward.
func (r *Renderer) Release() {
	if r.static != nil {
		r.static.Release()
		r.static = nil
	}

	if r.uniforms != nil {
		r.uniforms.Release()
		r.uniforms = nil
	}
}
