package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/overdraw/exposure"
)

// CameraInfo is an immutable capture of everything the renderer needs from
// a camera for one frame. It is built once per frame after the camera's
// mutate phase and may then be read from any goroutine.
type CameraInfo struct {
	// Projection is the rendering projection, clip-space adjusted and in
	// the engine's [0,1] depth convention.
	Projection mgl32.Mat4
	// CullingProjection is the visibility-test projection with the true
	// far plane, clip-space adjusted, still in the GL convention.
	CullingProjection mgl32.Mat4
	Model             mgl32.Mat4
	View              mgl32.Mat4
	Near              float32
	// CullingFar is the true far distance; the rendering projection's
	// effective far plane is infinity.
	CullingFar float32
	// EV100 is the exposure value at ISO 100 for the camera's settings.
	EV100 float32
	// FocalLength in meters.
	FocalLength float32
	// ApertureDiameter is focal length over f-number, in meters.
	ApertureDiameter float32
	// FocusDistance is max(Near, camera focus distance).
	FocusDistance float32
	// WorldOffset and WorldOrigin are set only by NewCameraInfoAt, for
	// rendering with a shifted world origin.
	WorldOffset mgl32.Vec3
	WorldOrigin mgl32.Mat4
}

// NewCameraInfo captures the camera's per-frame state. It does not mutate
// the camera; calling it twice with no intervening mutation yields
// identical snapshots.
func NewCameraInfo(c *Camera) CameraInfo {
	f := float32(c.FocalLength())
	return CameraInfo{
		Projection:        toMat32(c.ProjectionMatrix()),
		CullingProjection: toMat32(c.CullingProjectionMatrix()),
		Model:             toMat32(c.ModelMatrix()),
		View:              toMat32(c.ViewMatrix()),
		Near:              c.Near(),
		CullingFar:        c.CullingFar(),
		EV100:             exposure.FromSettings(c),
		FocalLength:       f,
		ApertureDiameter:  f / c.Aperture(),
		FocusDistance:     maxf32(c.Near(), c.FocusDistance()),
		WorldOrigin:       mgl32.Ident4(),
	}
}

// NewCameraInfoAt captures the camera's per-frame state relative to a
// shifted world origin: worldOrigin is premultiplied into the model matrix
// before the view matrix is derived, which keeps camera-relative math in a
// small coordinate range far from the true origin. The camera's world
// position and the origin transform are recorded alongside.
func NewCameraInfoAt(c *Camera, worldOrigin mgl64.Mat4) CameraInfo {
	model := worldOrigin.Mul4(c.ModelMatrix())
	f := float32(c.FocalLength())
	pos := c.Position()
	return CameraInfo{
		Projection:        toMat32(c.ProjectionMatrix()),
		CullingProjection: toMat32(c.CullingProjectionMatrix()),
		Model:             toMat32(model),
		View:              toMat32(model.Inv()),
		Near:              c.Near(),
		CullingFar:        c.CullingFar(),
		EV100:             exposure.FromSettings(c),
		FocalLength:       f,
		ApertureDiameter:  f / c.Aperture(),
		FocusDistance:     maxf32(c.Near(), c.FocusDistance()),
		WorldOffset:       mgl32.Vec3{float32(pos.X()), float32(pos.Y()), float32(pos.Z())},
		WorldOrigin:       toMat32(worldOrigin),
	}
}

func toMat32(m mgl64.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for i := range m {
		out[i] = float32(m[i])
	}
	return out
}

func maxf32(a, b float32) float32 {
	return float32(math.Max(float64(a), float64(b)))
}
