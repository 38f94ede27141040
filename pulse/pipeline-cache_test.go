package pulse_test

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/triangle/pulse"
	"github.com/oliverbestmann/triangle/pulse/pulsetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPipeline struct {
	Format wgpu.TextureFormat
}

func (conf testPipeline) Specialize(dev pulse.Device) (*wgpu.RenderPipeline, error) {
	return dev.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "TestPipeline",
		Fragment: &wgpu.FragmentState{
			Targets: []wgpu.ColorTargetState{{Format: conf.Format}},
		},
	})
}

func TestPipelineCacheBuildsEachConfigOnce(t *testing.T) {
	dev := pulsetest.NewDevice()
	cache := pulse.NewPipelineCache[testPipeline](dev)

	first, err := cache.Get(testPipeline{Format: wgpu.TextureFormatBGRA8Unorm})
	require.NoError(t, err)

	second, err := cache.Get(testPipeline{Format: wgpu.TextureFormatBGRA8Unorm})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Len(t, dev.Pipelines, 1)

	other, err := cache.Get(testPipeline{Format: wgpu.TextureFormatRGBA8Unorm})
	require.NoError(t, err)

	assert.NotSame(t, first, other)
	assert.Equal(t, 2, cache.Len())
}

func TestPipelineCacheDoesNotCacheFailures(t *testing.T) {
	dev := pulsetest.NewDevice()
	dev.FailOn = []string{"CreateRenderPipeline"}

	cache := pulse.NewPipelineCache[testPipeline](dev)

	_, err := cache.Get(testPipeline{Format: wgpu.TextureFormatBGRA8Unorm})
	assert.ErrorIs(t, err, pulsetest.ErrInjected)
	assert.Equal(t, 0, cache.Len())

	dev.FailOn = nil

	_, err = cache.Get(testPipeline{Format: wgpu.TextureFormatBGRA8Unorm})
	assert.NoError(t, err)
	assert.Equal(t, 1, cache.Len())
}
