package glm

import "math"

// Rad is an angle in radians.
type Rad float64

// Sincos returns the sine and cosine of the given angle.
func Sincos(r Rad) (sin, cos float64) {
	return math.Sincos(float64(r))
}
