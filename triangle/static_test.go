package triangle_test

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/triangle/pulse"
	"github.com/oliverbestmann/triangle/pulse/pulsetest"
	"github.com/oliverbestmann/triangle/triangle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticVertexBufferContents(t *testing.T) {
	dev := pulsetest.NewDevice()

	res, err := triangle.BuildStaticResources(dev, staticOptions())
	require.NoError(t, err)

	desc := dev.Buffers[res.VertexBuffer]
	require.NotNil(t, desc)

	assert.Equal(t, wgpu.BufferUsageVertex, desc.Usage)
	assert.Len(t, desc.Contents, 96)
	assert.Equal(t, pulse.SliceAsBytes(triangle.VertexData()), desc.Contents)
	assert.Equal(t, triangle.VertexData(), floatsOf(desc.Contents))
}

func TestStaticDepthTexture(t *testing.T) {
	dev := pulsetest.NewDevice()

	res, err := triangle.BuildStaticResources(dev, staticOptions())
	require.NoError(t, err)

	require.Len(t, dev.Textures, 1)
	desc := dev.Textures[0]

	assert.Equal(t, wgpu.TextureFormatDepth24PlusStencil8, desc.Format)
	assert.Equal(t, wgpu.TextureUsageRenderAttachment, desc.Usage)
	assert.Equal(t, wgpu.TextureDimension2D, desc.Dimension)
	assert.EqualValues(t, 1000, desc.Size.Width)
	assert.EqualValues(t, 600, desc.Size.Height)
	assert.EqualValues(t, 1, desc.Size.DepthOrArrayLayers)
	assert.EqualValues(t, 1, desc.MipLevelCount)

	assert.EqualValues(t, 1000, res.DepthTexture.Width())
	assert.Equal(t, triangle.DepthFormat, res.DepthTexture.Format())
}

func TestStaticRejectsEmptyCanvas(t *testing.T) {
	for _, size := range [][2]uint32{{0, 600}, {1000, 0}, {0, 0}} {
		dev := pulsetest.NewDevice()

		opts := staticOptions()
		opts.Width, opts.Height = size[0], size[1]

		_, err := triangle.BuildStaticResources(dev, opts)
		assert.ErrorIs(t, err, pulse.ErrResourceCreation)
		assert.Empty(t, dev.Calls, "no device call expected for size %v", size)
	}
}

func TestStaticRejectsInvalidShaders(t *testing.T) {
	dev := pulsetest.NewDevice()

	// vertex shader in the fragment slot
	opts := staticOptions()
	opts.FragmentShader = rotateVert

	_, err := triangle.BuildStaticResources(dev, opts)
	assert.ErrorIs(t, err, pulse.ErrResourceCreation)

	opts = staticOptions()
	opts.VertexShader.Words = nil

	_, err = triangle.BuildStaticResources(dev, opts)
	assert.ErrorIs(t, err, pulse.ErrResourceCreation)

	assert.Empty(t, dev.Calls)
}

func TestStaticRejectedByDevice(t *testing.T) {
	dev := pulsetest.NewDevice()
	dev.FailOn = []string{"CreateBufferInit"}

	_, err := triangle.BuildStaticResources(dev, staticOptions())
	assert.ErrorIs(t, err, pulse.ErrResourceCreation)
	assert.ErrorIs(t, err, pulsetest.ErrInjected)
	assert.Equal(t, "resource-creation", pulse.Kind(err))

	// not retried
	assert.Len(t, dev.CallsOf("CreateBufferInit"), 1)
}

func TestStaticPipelineDescriptor(t *testing.T) {
	dev := pulsetest.NewDevice()

	res, err := triangle.BuildStaticResources(dev, staticOptions())
	require.NoError(t, err)

	desc := dev.Pipelines[res.Pipeline]
	require.NotNil(t, desc)

	assert.Equal(t, "main", desc.Vertex.EntryPoint)
	require.Len(t, desc.Vertex.Buffers, 1)
	assert.EqualValues(t, 32, desc.Vertex.Buffers[0].ArrayStride)
	require.Len(t, desc.Vertex.Buffers[0].Attributes, 2)
	assert.Equal(t, wgpu.VertexFormatFloat32x4, desc.Vertex.Buffers[0].Attributes[0].Format)
	assert.EqualValues(t, 16, desc.Vertex.Buffers[0].Attributes[1].Offset)
	assert.EqualValues(t, 1, desc.Vertex.Buffers[0].Attributes[1].ShaderLocation)

	require.NotNil(t, desc.Fragment)
	assert.Equal(t, "main", desc.Fragment.EntryPoint)
	require.Len(t, desc.Fragment.Targets, 1)
	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, desc.Fragment.Targets[0].Format)
	assert.Nil(t, desc.Fragment.Targets[0].Blend)

	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, desc.Primitive.Topology)

	require.NotNil(t, desc.DepthStencil)
	assert.Equal(t, wgpu.TextureFormatDepth24PlusStencil8, desc.DepthStencil.Format)
	assert.True(t, desc.DepthStencil.DepthWriteEnabled)
	assert.Equal(t, wgpu.CompareFunctionLess, desc.DepthStencil.DepthCompare)

	assert.EqualValues(t, 1, desc.Multisample.Count)
	assert.EqualValues(t, 0xFFFFFFFF, desc.Multisample.Mask)

	// the shader modules hold the words as they are
	vertexModule := dev.ShaderModules[desc.Vertex.Module]
	require.NotNil(t, vertexModule)
	require.NotNil(t, vertexModule.SPIRVDescriptor)
	assert.Equal(t, pulse.SliceAsBytes(basicVert.Words), vertexModule.SPIRVDescriptor.Code)

	layout := dev.PipelineLayouts[desc.Layout]
	require.NotNil(t, layout)
	assert.Empty(t, layout.BindGroupLayouts)
	assert.Equal(t, 0, res.Description.BindGroupLayouts)
}

func TestStaticBuildIsIdempotent(t *testing.T) {
	dev := pulsetest.NewDevice()
	builder := triangle.NewStaticBuilder(dev)

	first, err := builder.Build(staticOptions())
	require.NoError(t, err)

	second, err := builder.Build(staticOptions())
	require.NoError(t, err)

	assert.Equal(t, first.Description, second.Description)
	assert.Same(t, first.Pipeline, second.Pipeline)

	assert.Len(t, dev.CallsOf("CreateShaderModule"), 2)
	assert.Len(t, dev.CallsOf("CreatePipelineLayout"), 1)
	assert.Len(t, dev.CallsOf("CreateRenderPipeline"), 1)
}

func TestStaticBuildKeysShadersByCode(t *testing.T) {
	dev := pulsetest.NewDevice()
	builder := triangle.NewStaticBuilder(dev)

	first, err := builder.Build(staticOptions())
	require.NoError(t, err)

	// same name, different binary
	opts := staticOptions()
	opts.VertexShader.Words = []uint32{0x07230203, 1, 4}

	second, err := builder.Build(opts)
	require.NoError(t, err)

	assert.Len(t, dev.CallsOf("CreateShaderModule"), 3)
	assert.Len(t, dev.CallsOf("CreateRenderPipeline"), 2)
	assert.NotSame(t, first.Pipeline, second.Pipeline)

	vertexModule := dev.ShaderModules[dev.Pipelines[second.Pipeline].Vertex.Module]
	require.NotNil(t, vertexModule)
	assert.Equal(t, pulse.SliceAsBytes(opts.VertexShader.Words), vertexModule.SPIRVDescriptor.Code)
}

func TestStaticPipelineUsesVertexBufferLayout(t *testing.T) {
	dev := pulsetest.NewDevice()

	res, err := triangle.BuildStaticResources(dev, staticOptions())
	require.NoError(t, err)

	desc := dev.Pipelines[res.Pipeline]
	require.NotNil(t, desc)
	require.Len(t, desc.Vertex.Buffers, 1)

	assert.Equal(t, triangle.VertexBufferLayout, desc.Vertex.Buffers[0])
	assert.Equal(t, triangle.VertexBufferLayout.ArrayStride, res.Description.ArrayStride)
}

func TestStaticBuildsOnDifferentDevicesAreEqual(t *testing.T) {
	devA := pulsetest.NewDevice()
	devB := pulsetest.NewDevice()

	resA, err := triangle.BuildStaticResources(devA, staticOptions())
	require.NoError(t, err)

	resB, err := triangle.BuildStaticResources(devB, staticOptions())
	require.NoError(t, err)

	assert.Equal(t, resA.Description, resB.Description)
	assert.Equal(t, devA.Pipelines[resA.Pipeline], devB.Pipelines[resB.Pipeline])
	assert.Equal(t, devA.Ops(), devB.Ops())
}

func TestDescribePipelineCountsBindGroupLayouts(t *testing.T) {
	opts := staticOptions()
	assert.Equal(t, 0, triangle.DescribePipeline(opts).BindGroupLayouts)

	opts.BindGroupLayout = &wgpu.BindGroupLayout{}
	assert.Equal(t, 1, triangle.DescribePipeline(opts).BindGroupLayouts)
}
