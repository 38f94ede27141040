package triangle

import (
	"fmt"
	"hash/fnv"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/triangle/pulse"
)

// EntryPoint is the name of the entry function of every shader stage.
const EntryPoint = "main"

type ShaderStage uint8

const (
	StageVertex ShaderStage = iota + 1
	StageFragment
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderStage(%d)", uint8(s))
	}
}

// ShaderBinary is a precompiled SPIR-V module. The words are opaque
// and handed to the device as they are.
type ShaderBinary struct {
	Name  string
	Stage ShaderStage
	Words []uint32
}

// ShaderSource looks up shader binaries by name
type ShaderSource interface {
	Binary(name string) (ShaderBinary, error)
}

// shaderKey identifies a shader module by its code, the name alone
// may be reused for a different binary.
type shaderKey struct {
	Name  string
	Stage ShaderStage
	Words int
	Hash  uint64
}

func newShaderKey(binary ShaderBinary) shaderKey {
	h := fnv.New64a()
	_, _ = h.Write(pulse.SliceAsBytes(binary.Words))

	return shaderKey{
		Name:  binary.Name,
		Stage: binary.Stage,
		Words: len(binary.Words),
		Hash:  h.Sum64(),
	}
}

func createShaderModule(dev pulse.Device, binary ShaderBinary, stage ShaderStage) (*wgpu.ShaderModule, error) {
	if binary.Stage != stage {
		return nil, fmt.Errorf(
			"shader %q is a %s shader, expected %s: %w",
			binary.Name, binary.Stage, stage, pulse.ErrResourceCreation,
		)
	}

	return pulse.NewShaderModuleSPIRV(dev, binary.Name, binary.Words)
}
