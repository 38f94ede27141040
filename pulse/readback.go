package pulse

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ReadBuffer copies size bytes from the start of src into a mappable staging
// buffer and blocks until the data is available on the host. src must have
// been created with wgpu.BufferUsageCopySrc.
func ReadBuffer(ctx *Context, src *wgpu.Buffer, size uint64) ([]byte, error) {
	staging, err := ctx.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Readback",
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w: %w", ErrResourceCreation, err)
	}

	defer staging.Release()

	enc, err := ctx.Device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "Readback"})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}

	defer enc.Release()

	if err := enc.CopyBufferToBuffer(src, 0, staging, 0, size); err != nil {
		return nil, fmt.Errorf("copy buffer: %w", err)
	}

	buf, err := enc.Finish(nil)
	if err != nil {
		return nil, fmt.Errorf("finish encoder: %w", err)
	}

	defer buf.Release()

	ctx.Queue.Submit(buf)

	var status wgpu.BufferMapAsyncStatus
	err = staging.MapAsync(wgpu.MapModeRead, 0, size, func(s wgpu.BufferMapAsyncStatus) {
		status = s
	})

	if err != nil {
		return nil, fmt.Errorf("map staging buffer: %w", err)
	}

	// wait for the copy and the mapping to complete
	ctx.Device.Poll(true, nil)

	if status != wgpu.BufferMapAsyncStatusSuccess {
		return nil, fmt.Errorf("map staging buffer: status %v", status)
	}

	defer staging.Unmap()

	mapped := staging.GetMappedRange(0, uint(size))

	result := make([]byte, len(mapped))
	copy(result, mapped)

	return result, nil
}
