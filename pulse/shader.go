package pulse

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

// NewShaderModuleSPIRV creates a shader module from precompiled SPIR-V words.
// The words are handed to the device as raw bytes in host order.
func NewShaderModuleSPIRV(dev Device, label string, words []uint32) (*wgpu.ShaderModule, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("shader %q has no code: %w", label, ErrResourceCreation)
	}

	slog.Debug("Create shader module",
		slog.String("label", label),
		slog.Int("words", len(words)),
	)

	module, err := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:           label,
		SPIRVDescriptor: &wgpu.ShaderModuleSPIRVDescriptor{Code: SliceAsBytes(words)},
	})

	if err != nil {
		return nil, fmt.Errorf("create shader module %q: %w: %w", label, ErrResourceCreation, err)
	}

	return module, nil
}
