package camera

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Plane is a half-space ax + by + cz + d >= 0. Frustum planes store their
// normals pointing inward.
type Plane struct {
	Normal mgl64.Vec3
	D      float64
}

// SignedDistance returns the signed distance from the plane to p. Positive
// means p is on the normal's side.
func (p Plane) SignedDistance(point mgl64.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

func (p Plane) normalized() Plane {
	l := p.Normal.Len()
	if l == 0 {
		return p
	}
	return Plane{Normal: p.Normal.Mul(1 / l), D: p.D / l}
}

// Frustum is the camera's visibility volume as six inward-facing planes,
// ordered left, right, bottom, top, near, far.
type Frustum struct {
	Planes [6]Plane
}

// Frustum plane indices.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustum extracts the six planes from a composed projection*view
// matrix using the Gribb-Hartmann method. m must be in the GL clip
// convention; the [0,1]-depth rendering projection does not work here,
// which is why culling keeps its own matrix.
func NewFrustum(m mgl64.Mat4) Frustum {
	// For column-major m, row i element j is m[i + j*4].
	row := func(i int) mgl64.Vec4 {
		return mgl64.Vec4{m[i], m[i+4], m[i+8], m[i+12]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	plane := func(v mgl64.Vec4) Plane {
		return Plane{Normal: v.Vec3(), D: v.W()}.normalized()
	}

	var f Frustum
	f.Planes[FrustumLeft] = plane(r3.Add(r0))
	f.Planes[FrustumRight] = plane(r3.Sub(r0))
	f.Planes[FrustumBottom] = plane(r3.Add(r1))
	f.Planes[FrustumTop] = plane(r3.Sub(r1))
	f.Planes[FrustumNear] = plane(r3.Add(r2))
	f.Planes[FrustumFar] = plane(r3.Sub(r2))
	return f
}

// ContainsPoint reports whether p lies inside the frustum.
func (f Frustum) ContainsPoint(p mgl64.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].SignedDistance(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether a sphere touches the frustum.
func (f Frustum) IntersectsSphere(center mgl64.Vec3, radius float64) bool {
	for i := range f.Planes {
		if f.Planes[i].SignedDistance(center) < -radius {
			return false
		}
	}
	return true
}

// IntersectsBox reports whether an axis-aligned box touches the frustum.
// Each plane tests only the box corner furthest along its normal; if that
// corner is outside, the whole box is.
func (f Frustum) IntersectsBox(min, max mgl64.Vec3) bool {
	for i := range f.Planes {
		n := f.Planes[i].Normal
		v := mgl64.Vec3{
			pick(n.X() >= 0, max.X(), min.X()),
			pick(n.Y() >= 0, max.Y(), min.Y()),
			pick(n.Z() >= 0, max.Z(), min.Z()),
		}
		if f.Planes[i].SignedDistance(v) < 0 {
			return false
		}
	}
	return true
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
