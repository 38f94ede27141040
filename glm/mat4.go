package glm

// Mat4 is a 4x4 matrix stored row-major, the way it is written down:
// element (row, col) lives at index row*4+col. A WGSL mat4x4 reads the
// same 16 values column-major, so shaders consuming a Mat4 must multiply
// from the left side (v * m) to apply the matrix as authored.
type Mat4[T numeric] [16]T

func ScaleMat4[T numeric](x, y, z, w T) Mat4[T] {
	return Mat4[T]{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, w,
	}
}

// SetRotation2D overwrites the upper left 2x2 block with a counter
// clockwise rotation by angle. All other cells stay untouched.
// The rotation is computed in float64 and rounded once.
func (lhs *Mat4[T]) SetRotation2D(angle Rad) {
	s, c := Sincos(angle)

	lhs[0], lhs[1] = T(c), T(-s)
	lhs[4], lhs[5] = T(s), T(c)
}

// Transform computes m * v with v as a column vector.
func (lhs Mat4[T]) Transform(rhs Vec4[T]) Vec4[T] {
	return Vec4[T]{
		lhs[0]*rhs[0] + lhs[1]*rhs[1] + lhs[2]*rhs[2] + lhs[3]*rhs[3],
		lhs[4]*rhs[0] + lhs[5]*rhs[1] + lhs[6]*rhs[2] + lhs[7]*rhs[3],
		lhs[8]*rhs[0] + lhs[9]*rhs[1] + lhs[10]*rhs[2] + lhs[11]*rhs[3],
		lhs[12]*rhs[0] + lhs[13]*rhs[1] + lhs[14]*rhs[2] + lhs[15]*rhs[3],
	}
}

// ToWGPU returns the cells in memory order, ready to be written into
// a uniform buffer.
func (lhs Mat4[T]) ToWGPU() [16]float32 {
	var result [16]float32
	for idx, value := range lhs {
		result[idx] = float32(value)
	}

	return result
}
