package triangle

import (
	"structs"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/triangle/glm"
	"github.com/oliverbestmann/triangle/pulse"
)

// Vertex is a clip space position with an rgba color
type Vertex struct {
	_ structs.HostLayout

	Position glm.Vec4f
	Color    glm.Vec4f
}

// VertexStride is the size of one Vertex in the vertex buffer
const VertexStride = uint64(unsafe.Sizeof(Vertex{}))

// TriangleVertices are the three corners of the triangle.
var TriangleVertices = [3]Vertex{
	{
		Position: glm.Vec4f{1, -1, 0, 1},
		Color:    glm.Vec4f{1, 0, 0, 1},
	},
	{
		Position: glm.Vec4f{-1, -1, 0, 1},
		Color:    glm.Vec4f{0, 1, 0, 1},
	},
	{
		Position: glm.Vec4f{0, 1, 0, 1},
		Color:    glm.Vec4f{0, 0, 1, 1},
	},
}

// VertexData returns the vertex table flattened to 24 float32 values,
// position before color, vertex after vertex.
func VertexData() []float32 {
	data := make([]float32, 0, len(TriangleVertices)*8)

	for _, vertex := range TriangleVertices {
		data = append(data, vertex.Position[:]...)
		data = append(data, vertex.Color[:]...)
	}

	return data
}

// VertexBufferLayout describes how the shader reads a Vertex from slot 0
var VertexBufferLayout = wgpu.VertexBufferLayout{
	ArrayStride: VertexStride,
	StepMode:    wgpu.VertexStepModeVertex,
	Attributes:  vertexAttributes[:],
}

var vertexAttributes = [2]wgpu.VertexAttribute{
	{
		Format:         wgpu.VertexFormatFloat32x4,
		Offset:         uint64(unsafe.Offsetof(Vertex{}.Position)),
		ShaderLocation: 0,
	},
	{
		Format:         wgpu.VertexFormatFloat32x4,
		Offset:         uint64(unsafe.Offsetof(Vertex{}.Color)),
		ShaderLocation: 1,
	},
}

func vertexBytes() []byte {
	return pulse.SliceAsBytes(VertexData())
}
