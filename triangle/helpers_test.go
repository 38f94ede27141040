package triangle_test

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/triangle/triangle"
)

type testShaders map[string]triangle.ShaderBinary

func (s testShaders) Binary(name string) (triangle.ShaderBinary, error) {
	shader, ok := s[name]
	if !ok {
		return triangle.ShaderBinary{}, fmt.Errorf("no shader named %q", name)
	}

	return shader, nil
}

// arbitrary words, the device never parses them
var (
	basicVert  = triangle.ShaderBinary{Name: triangle.ShaderBasicVert, Stage: triangle.StageVertex, Words: []uint32{0x07230203, 1}}
	basicFrag  = triangle.ShaderBinary{Name: triangle.ShaderBasicFrag, Stage: triangle.StageFragment, Words: []uint32{0x07230203, 2}}
	rotateVert = triangle.ShaderBinary{Name: triangle.ShaderRotateVert, Stage: triangle.StageVertex, Words: []uint32{0x07230203, 3}}
)

func allShaders() testShaders {
	return testShaders{
		basicVert.Name:  basicVert,
		basicFrag.Name:  basicFrag,
		rotateVert.Name: rotateVert,
	}
}

func staticOptions() triangle.StaticOptions {
	return triangle.StaticOptions{
		ColorFormat:    wgpu.TextureFormatBGRA8Unorm,
		Width:          1000,
		Height:         600,
		VertexShader:   basicVert,
		FragmentShader: basicFrag,
	}
}

func floatsOf(data []byte) []float32 {
	values := make([]float32, 0, len(data)/4)
	for idx := 0; idx+4 <= len(data); idx += 4 {
		values = append(values, math.Float32frombits(binary.LittleEndian.Uint32(data[idx:])))
	}

	return values
}
