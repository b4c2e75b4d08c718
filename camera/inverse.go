package camera

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

type scalar interface {
	~float32 | ~float64
}

// inverseProjection returns the closed-form inverse of a projection matrix
// produced by the builder, exploiting its known sparsity instead of running
// a general 4x4 inversion. The branch keys off element (3,2) (column-major
// index 11): nonzero means perspective, zero means orthographic. The
// far-at-infinity rendering form keeps the perspective sparsity, so the
// same closed form holds for it.
func inverseProjection[T scalar](p [16]T) [16]T {
	var r [16]T
	a := 1 / p[0] // 1 / (0,0)
	b := 1 / p[5] // 1 / (1,1)
	if p[11] != 0 {
		// perspective
		// a 0 tx 0
		// 0 b ty 0
		// 0 0 tz c
		// 0 0 -1 0
		cc := 1 / p[14]
		r[0] = a
		r[5] = b
		r[10] = 0
		r[11] = cc
		r[12] = p[8] * a // off-center terms, zero when symmetric
		r[13] = p[9] * b
		r[14] = -1
		r[15] = p[10] * cc
	} else {
		// orthographic
		// a 0 0 tx
		// 0 b 0 ty
		// 0 0 c tz
		// 0 0 0 1
		cc := 1 / p[10]
		r[0] = a
		r[5] = b
		r[10] = cc
		r[15] = 1
		r[12] = -p[12] * a
		r[13] = -p[13] * b
		r[14] = -p[14] * cc
	}
	return r
}

// InverseProjection returns the exact inverse of a builder-produced
// projection matrix.
func InverseProjection(p mgl64.Mat4) mgl64.Mat4 {
	return mgl64.Mat4(inverseProjection([16]float64(p)))
}

// InverseProjection32 is InverseProjection for single-precision matrices.
func InverseProjection32(p mgl32.Mat4) mgl32.Mat4 {
	return mgl32.Mat4(inverseProjection([16]float32(p)))
}
