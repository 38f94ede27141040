package triangle

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/hashicorp/golang-lru/v2"
	"github.com/oliverbestmann/triangle/pulse"
)

// DepthFormat is the format of the depth texture and the depth state of the pipeline
const DepthFormat = wgpu.TextureFormatDepth24PlusStencil8

type StaticOptions struct {
	// format of the surface the pipeline renders into
	ColorFormat wgpu.TextureFormat

	// size of the canvas, used for the depth texture
	Width, Height uint32

	VertexShader   ShaderBinary
	FragmentShader ShaderBinary

	// BindGroupLayout is added to the pipeline layout at slot 0.
	// It is nil if the shaders do not read any uniforms.
	BindGroupLayout *wgpu.BindGroupLayout
}

// validate checks the options before any resource is created
func (opts StaticOptions) validate() error {
	if opts.Width == 0 || opts.Height == 0 {
		return fmt.Errorf("depth texture of size %dx%d: %w", opts.Width, opts.Height, pulse.ErrResourceCreation)
	}

	shaders := []struct {
		binary ShaderBinary
		stage  ShaderStage
	}{
		{opts.VertexShader, StageVertex},
		{opts.FragmentShader, StageFragment},
	}

	for _, shader := range shaders {
		if shader.binary.Stage != shader.stage {
			return fmt.Errorf(
				"shader %q is a %s shader, expected %s: %w",
				shader.binary.Name, shader.binary.Stage, shader.stage, pulse.ErrResourceCreation,
			)
		}

		if len(shader.binary.Words) == 0 {
			return fmt.Errorf("shader %q has no code: %w", shader.binary.Name, pulse.ErrResourceCreation)
		}
	}

	return nil
}

// StaticResources are created once and never change while rendering.
// The shader modules and the pipeline belong to the StaticBuilder.
type StaticResources struct {
	VertexBuffer *wgpu.Buffer
	DepthTexture *pulse.Texture
	Pipeline     *wgpu.RenderPipeline
	Description  PipelineDescription

	owned *StaticBuilder
}

// Release releases the vertex buffer and the depth texture. If the resources
// were created using BuildStaticResources, the builder is released too.
func (s *StaticResources) Release() {
	if s.DepthTexture != nil {
		s.DepthTexture.Release()
		s.DepthTexture = nil
	}

	if s.VertexBuffer != nil {
		s.VertexBuffer.Release()
		s.VertexBuffer = nil
	}

	if s.owned != nil {
		s.owned.Release()
		s.owned = nil
	}
}

// BuildStaticResources builds the static resources using a new StaticBuilder
// that is owned by the returned resources.
func BuildStaticResources(dev pulse.Device, opts StaticOptions) (*StaticResources, error) {
	builder := NewStaticBuilder(dev)

	resources, err := builder.Build(opts)
	if err != nil {
		builder.Release()
		return nil, err
	}

	resources.owned = builder

	return resources, nil
}

// StaticBuilder creates static resources. Shader modules, pipeline layouts
// and pipelines are cached, building twice with the same options
// reuses them. Shader binaries are identified by their name and stage.
type StaticBuilder struct {
	device pulse.Device

	shaders         *lru.Cache[shaderKey, *wgpu.ShaderModule]
	pipelineLayouts map[*wgpu.BindGroupLayout]*wgpu.PipelineLayout
	pipelines       *pulse.PipelineCache[trianglePipeline]
}

func NewStaticBuilder(dev pulse.Device) *StaticBuilder {
	shaders, _ := lru.NewWithEvict[shaderKey, *wgpu.ShaderModule](16, func(_ shaderKey, module *wgpu.ShaderModule) {
		module.Release()
	})

	return &StaticBuilder{
		device:          dev,
		shaders:         shaders,
		pipelineLayouts: map[*wgpu.BindGroupLayout]*wgpu.PipelineLayout{},
		pipelines:       pulse.NewPipelineCache[trianglePipeline](dev),
	}
}

func (b *StaticBuilder) Build(opts StaticOptions) (*StaticResources, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	vertexBuffer, err := b.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Triangle Vertices",
		Contents: vertexBytes(),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w: %w", pulse.ErrResourceCreation, err)
	}

	vertexBufferGuard := pulse.NewReleaseGuard(vertexBuffer)
	defer vertexBufferGuard.Release()

	depthTexture, err := b.device.CreateTexture(DepthTextureDescriptor(opts.Width, opts.Height))
	if err != nil {
		return nil, fmt.Errorf("create depth texture: %w: %w", pulse.ErrResourceCreation, err)
	}

	depthTextureGuard := pulse.NewReleaseGuard(depthTexture)
	defer depthTextureGuard.Release()

	vertexShader, err := b.shaderModule(opts.VertexShader, StageVertex)
	if err != nil {
		return nil, err
	}

	fragmentShader, err := b.shaderModule(opts.FragmentShader, StageFragment)
	if err != nil {
		return nil, err
	}

	layout, err := b.pipelineLayout(opts.BindGroupLayout)
	if err != nil {
		return nil, err
	}

	conf := trianglePipeline{
		VertexShader:   vertexShader,
		FragmentShader: fragmentShader,
		Layout:         layout,
		Description:    DescribePipeline(opts),
	}

	pipeline, err := b.pipelines.Get(conf)
	if err != nil {
		return nil, err
	}

	vertexBufferGuard.Keep()
	depthTextureGuard.Keep()

	return &StaticResources{
		VertexBuffer: vertexBuffer,
		DepthTexture: depthTexture,
		Pipeline:     pipeline,
		Description:  conf.Description,
	}, nil
}

func (b *StaticBuilder) shaderModule(binary ShaderBinary, stage ShaderStage) (*wgpu.ShaderModule, error) {
	key := newShaderKey(binary)

	if module, ok := b.shaders.Get(key); ok {
		return module, nil
	}

	module, err := createShaderModule(b.device, binary, stage)
	if err != nil {
		return nil, err
	}

	b.shaders.Add(key, module)

	return module, nil
}

func (b *StaticBuilder) pipelineLayout(bindGroupLayout *wgpu.BindGroupLayout) (*wgpu.PipelineLayout, error) {
	if layout, ok := b.pipelineLayouts[bindGroupLayout]; ok {
		return layout, nil
	}

	var bindGroupLayouts []*wgpu.BindGroupLayout
	if bindGroupLayout != nil {
		bindGroupLayouts = append(bindGroupLayouts, bindGroupLayout)
	}

	layout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Triangle",
		BindGroupLayouts: bindGroupLayouts,
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline layout: %w: %w", pulse.ErrResourceCreation, err)
	}

	b.pipelineLayouts[bindGroupLayout] = layout

	return layout, nil
}

// Release releases all cached shader modules, pipeline layouts and pipelines.
func (b *StaticBuilder) Release() {
	b.pipelines.Purge()

	for key, layout := range b.pipelineLayouts {
		layout.Release()
		delete(b.pipelineLayouts, key)
	}

	b.shaders.Purge()
}

// DepthTextureDescriptor describes the depth texture for a canvas of the given size
func DepthTextureDescriptor(width, height uint32) *wgpu.TextureDescriptor {
	return &wgpu.TextureDescriptor{
		Label: "Depth",
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	}
}

type VertexAttribute struct {
	Format         wgpu.VertexFormat
	Offset         uint64
	ShaderLocation uint32
}

// PipelineDescription holds everything the pipeline declares apart from
// the objects it references. Two equal descriptions produce
// structurally equal pipeline descriptors.
type PipelineDescription struct {
	ArrayStride uint64
	StepMode    wgpu.VertexStepMode
	Attributes  [2]VertexAttribute
	Topology    wgpu.PrimitiveTopology

	ColorFormat wgpu.TextureFormat

	DepthFormat       wgpu.TextureFormat
	DepthWriteEnabled bool
	DepthCompare      wgpu.CompareFunction

	SampleCount      uint32
	BindGroupLayouts int
}

func DescribePipeline(opts StaticOptions) PipelineDescription {
	var attributes [2]VertexAttribute
	for idx, attr := range VertexBufferLayout.Attributes {
		attributes[idx] = VertexAttribute{
			Format:         attr.Format,
			Offset:         attr.Offset,
			ShaderLocation: attr.ShaderLocation,
		}
	}

	var bindGroupLayouts int
	if opts.BindGroupLayout != nil {
		bindGroupLayouts = 1
	}

	return PipelineDescription{
		ArrayStride:       VertexBufferLayout.ArrayStride,
		StepMode:          VertexBufferLayout.StepMode,
		Attributes:        attributes,
		Topology:          wgpu.PrimitiveTopologyTriangleList,
		ColorFormat:       opts.ColorFormat,
		DepthFormat:       DepthFormat,
		DepthWriteEnabled: true,
		DepthCompare:      wgpu.CompareFunctionLess,
		SampleCount:       1,
		BindGroupLayouts:  bindGroupLayouts,
	}
}

// Descriptor builds the render pipeline descriptor for the given shaders and layout.
func (d PipelineDescription) Descriptor(vertex, fragment *wgpu.ShaderModule, layout *wgpu.PipelineLayout) *wgpu.RenderPipelineDescriptor {
	attributes := make([]wgpu.VertexAttribute, 0, len(d.Attributes))
	for _, attr := range d.Attributes {
		attributes = append(attributes, wgpu.VertexAttribute{
			Format:         attr.Format,
			Offset:         attr.Offset,
			ShaderLocation: attr.ShaderLocation,
		})
	}

	stencil := wgpu.StencilFaceState{
		Compare:     wgpu.CompareFunctionAlways,
		FailOp:      wgpu.StencilOperationKeep,
		DepthFailOp: wgpu.StencilOperationKeep,
		PassOp:      wgpu.StencilOperationKeep,
	}

	return &wgpu.RenderPipelineDescriptor{
		Label:  "Triangle",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     vertex,
			EntryPoint: EntryPoint,
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: d.ArrayStride,
					StepMode:    d.StepMode,
					Attributes:  attributes,
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     fragment,
			EntryPoint: EntryPoint,
			Targets: []wgpu.ColorTargetState{
				{
					Format: d.ColorFormat,
					// opaque, a blend state would go here
					Blend:     nil,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  d.Topology,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            d.DepthFormat,
			DepthWriteEnabled: d.DepthWriteEnabled,
			DepthCompare:      d.DepthCompare,
			StencilFront:      stencil,
			StencilBack:       stencil,
			StencilReadMask:   0xFFFFFFFF,
			StencilWriteMask:  0xFFFFFFFF,
		},
		Multisample: wgpu.MultisampleState{
			Count:                  d.SampleCount,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	}
}

type trianglePipeline struct {
	VertexShader   *wgpu.ShaderModule
	FragmentShader *wgpu.ShaderModule
	Layout         *wgpu.PipelineLayout
	Description    PipelineDescription
}

func (conf trianglePipeline) Specialize(dev pulse.Device) (*wgpu.RenderPipeline, error) {
	slog.Info(
		"Create RenderPipeline",
		slog.Any("format", conf.Description.ColorFormat),
		slog.Any("depthFormat", conf.Description.DepthFormat),
		slog.Int("bindGroupLayouts", conf.Description.BindGroupLayouts),
	)

	pipeline, err := dev.CreateRenderPipeline(conf.Description.Descriptor(conf.VertexShader, conf.FragmentShader, conf.Layout))
	if err != nil {
		return nil, fmt.Errorf("create render pipeline: %w: %w", pulse.ErrResourceCreation, err)
	}

	return pipeline, nil
}
