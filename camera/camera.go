// Package camera computes and maintains the projection and view transforms
// for a renderer camera, models its photographic exposure settings, and
// produces the per-frame CameraInfo snapshot the rest of the renderer
// consumes.
//
// All matrices are mgl64.Mat4 values in column-major storage: element
// (row r, column c) lives at index c*4+r. Projection matrices follow the
// GL convention; ProjectionMatrix remaps them into the engine's inverted
// [0,1] depth convention at read time.
package camera

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/overdraw/ecs"
)

// Projection selects how SetProjection interprets the frustum planes.
type Projection int

const (
	Perspective Projection = iota
	Ortho
)

// Fov says which screen axis a field-of-view angle applies to.
type Fov int

const (
	Vertical Fov = iota
	Horizontal
)

// SensorSize is the height of the reference 35 mm film frame (36x24 mm) in
// meters. Lens focal lengths and focus breathing are computed against it.
const SensorSize = 0.024

const (
	minAperture     = 0.5
	maxAperture     = 64.0
	minShutterSpeed = 1.0 / 25000.0
	maxShutterSpeed = 60.0
	minSensitivity  = 10.0
	maxSensitivity  = 204800.0
)

// Camera owns the projection state for one camera entity. Its position and
// orientation live in the world's transform system; the camera never caches
// them.
//
// Mutating methods are not safe against concurrent readers. Per-frame
// ownership is expected to be a single goroutine; snapshots taken with
// NewCameraInfo after the mutate phase are safe to hand elsewhere.
type Camera struct {
	transforms *ecs.TransformSystem
	entity     ecs.Entity

	// projection has its far plane pushed to infinity for perspective
	// projections. projectionForCulling keeps the caller's far plane and is
	// used only for visibility tests.
	projection           mgl64.Mat4
	projectionForCulling mgl64.Mat4

	scaling mgl64.Vec2
	shiftCS mgl64.Vec2

	near float32
	far  float32 // culling far distance; the rendering far is infinite

	aperture      float32 // f-stops
	shutterSpeed  float32 // seconds
	sensitivity   float32 // ISO
	focusDistance float32 // world units
}

// New attaches a camera to e. A transform record is created for e if the
// transform system has none yet.
func New(transforms *ecs.TransformSystem, e ecs.Entity) *Camera {
	if transforms.Instance(e) == 0 {
		transforms.Create(e, 0, mgl64.Ident4())
	}
	return &Camera{
		transforms:           transforms,
		entity:               e,
		projection:           mgl64.Ident4(),
		projectionForCulling: mgl64.Ident4(),
		scaling:              mgl64.Vec2{1, 1},
		aperture:             16,
		shutterSpeed:         1.0 / 125.0,
		sensitivity:          100,
	}
}

// Entity returns the entity this camera is attached to.
func (c *Camera) Entity() ecs.Entity {
	return c.entity
}

// SetProjection sets the rendering and culling projections from explicit
// frustum planes. Degenerate parameters (left == right, bottom == top, a
// non-positive near or far <= near for perspective, near == far for ortho)
// are replaced by a default frustum so the renderer never sees a broken
// matrix; the substitution is logged and execution continues.
func (c *Camera) SetProjection(projection Projection, left, right, bottom, top, near, far float64) {
	if left == right || bottom == top ||
		(projection == Perspective && (near <= 0 || far <= near)) ||
		(projection == Ortho && near == far) {
		log.Printf("camera: projection preconditions not met (l=%g r=%g b=%g t=%g n=%g f=%g), using default frustum",
			left, right, bottom, top, near, far)
		left, right = -0.1, 0.1
		bottom, top = -0.1, 0.1
		near, far = 0.1, 100.0
	}

	switch projection {
	case Perspective:
		p := mgl64.Frustum(left, right, bottom, top, near, far)
		c.projectionForCulling = p

		// Push the rendering far plane to infinity. These are the exact
		// limits of the frustum matrix as far goes to infinity; the culling
		// copy above keeps the caller's far plane.
		p[10] = -1          // (2,2)
		p[14] = -2.0 * near // (2,3)
		c.projection = p

	case Ortho:
		p := mgl64.Ortho(left, right, bottom, top, near, far)
		c.projectionForCulling = p
		c.projection = p
	}

	c.near = float32(near)
	c.far = float32(far)
}

// SetProjectionFov sets a symmetric perspective projection from a field of
// view in degrees. direction says whether fovInDegrees spans the vertical
// or horizontal axis; the other axis follows from aspect (width/height).
func (c *Camera) SetProjectionFov(fovInDegrees, aspect, near, far float64, direction Fov) {
	s := math.Tan(mgl64.DegToRad(fovInDegrees)/2.0) * near
	var w, h float64
	if direction == Vertical {
		w = s * aspect
		h = s
	} else {
		w = s
		h = s / aspect
	}
	c.SetProjection(Perspective, -w, w, -h, h, near, far)
}

// SetLensProjection sets a perspective projection from a physical lens
// focal length in millimeters, measured against the 35 mm reference frame.
func (c *Camera) SetLensProjection(focalLengthInMillimeters, aspect, near, far float64) {
	h := (0.5 * near) * ((SensorSize * 1000.0) / focalLengthInMillimeters)
	w := h * aspect
	c.SetProjection(Perspective, -w, w, -h, h, near, far)
}

// SetCustomProjection installs p as both the rendering and culling
// projection. No validation is done; callers of the escape hatch own the
// consistency of what they pass in.
func (c *Camera) SetCustomProjection(p mgl64.Mat4, near, far float64) {
	c.SetCustomProjections(p, p, near, far)
}

// SetCustomProjections installs separate rendering and culling projections.
// No validation is done.
func (c *Camera) SetCustomProjections(p, culling mgl64.Mat4, near, far float64) {
	c.projection = p
	c.projectionForCulling = culling
	c.near = float32(near)
	c.far = float32(far)
}

// ProjectionMatrix returns the rendering projection with scaling and
// clip-space shift applied, remapped from the GL [-1,1] depth convention to
// the engine's inverted [0,1] convention. The remap zeroes the matrix's
// (2,2) term, which is where the depth buffer gets its precision back.
func (c *Camera) ProjectionMatrix() mgl64.Mat4 {
	m := mgl64.Mat4FromRows(
		mgl64.Vec4{c.scaling[0], 0, 0, c.shiftCS[0]},
		mgl64.Vec4{0, c.scaling[1], 0, c.shiftCS[1]},
		mgl64.Vec4{0, 0, -0.5, 0.5},
		mgl64.Vec4{0, 0, 0, 1},
	)
	return m.Mul4(c.projection)
}

// CullingProjectionMatrix returns the culling projection with scaling and
// shift applied. It stays in the GL convention; frustum plane extraction
// depends on that.
func (c *Camera) CullingProjectionMatrix() mgl64.Mat4 {
	m := mgl64.Mat4FromRows(
		mgl64.Vec4{c.scaling[0], 0, 0, c.shiftCS[0]},
		mgl64.Vec4{0, c.scaling[1], 0, c.shiftCS[1]},
		mgl64.Vec4{0, 0, 1, 0},
		mgl64.Vec4{0, 0, 0, 1},
	)
	return m.Mul4(c.projectionForCulling)
}

// SetScaling sets the per-axis clip-space scale, used for dynamic
// resolution and sub-frame rendering.
func (c *Camera) SetScaling(scaling mgl64.Vec2) {
	c.scaling = scaling
}

// Scaling returns the clip-space scale.
func (c *Camera) Scaling() mgl64.Vec2 {
	return c.scaling
}

// SetShift sets the per-axis clip-space offset, used for lens shift.
func (c *Camera) SetShift(shift mgl64.Vec2) {
	c.shiftCS = shift
}

// Shift returns the clip-space offset.
func (c *Camera) Shift() mgl64.Vec2 {
	return c.shiftCS
}

// Near returns the near plane distance.
func (c *Camera) Near() float32 {
	return c.near
}

// CullingFar returns the far plane distance used for visibility tests. For
// perspective projections the rendering matrix's effective far plane is
// infinity; this scalar is always the caller's true far distance.
func (c *Camera) CullingFar() float32 {
	return c.far
}

// SetModelMatrix writes the camera's world transform into the transform
// system.
func (c *Camera) SetModelMatrix(model mgl64.Mat4) {
	c.transforms.SetTransform(c.transforms.Instance(c.entity), model)
}

// SetModelMatrix32 is SetModelMatrix for single-precision input.
func (c *Camera) SetModelMatrix32(model mgl32.Mat4) {
	c.transforms.SetTransform32(c.transforms.Instance(c.entity), model)
}

// LookAt positions the camera at eye, aimed at center.
func (c *Camera) LookAt(eye, center, up mgl64.Vec3) {
	c.SetModelMatrix(LookAtMatrix(eye, center, up))
}

// LookAtPoint is LookAt with a world-space +Y up vector.
func (c *Camera) LookAtPoint(eye, center mgl64.Vec3) {
	c.LookAt(eye, center, mgl64.Vec3{0, 1, 0})
}

// LookAtMatrix builds the camera-to-world (model) matrix for a camera at
// eye aimed at center. The camera looks down its local -Z axis.
func LookAtMatrix(eye, center, up mgl64.Vec3) mgl64.Mat4 {
	back := eye.Sub(center).Normalize()
	right := up.Cross(back).Normalize()
	trueUp := back.Cross(right)
	return mgl64.Mat4FromCols(
		right.Vec4(0),
		trueUp.Vec4(0),
		back.Vec4(0),
		eye.Vec4(1),
	)
}

// ModelMatrix reads back the camera's world transform, composed in double
// precision by the transform system.
func (c *Camera) ModelMatrix() mgl64.Mat4 {
	return c.transforms.WorldTransformAccurate(c.transforms.Instance(c.entity))
}

// ViewMatrix returns the inverse of the model matrix.
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	return c.ModelMatrix().Inv()
}

// Position returns the camera's world-space position.
func (c *Camera) Position() mgl64.Vec3 {
	return c.ModelMatrix().Col(3).Vec3()
}

// LeftVector returns the camera's world-space left direction.
func (c *Camera) LeftVector() mgl64.Vec3 {
	return c.ModelMatrix().Col(0).Vec3().Normalize().Mul(-1)
}

// UpVector returns the camera's world-space up direction.
func (c *Camera) UpVector() mgl64.Vec3 {
	return c.ModelMatrix().Col(1).Vec3().Normalize()
}

// ForwardVector returns the camera's world-space viewing direction.
func (c *Camera) ForwardVector() mgl64.Vec3 {
	return c.ModelMatrix().Col(2).Vec3().Normalize().Mul(-1)
}

// FieldOfViewInDegrees derives the field of view along the given axis from
// the stored projection. Only meaningful after a perspective projection has
// been set.
func (c *Camera) FieldOfViewInDegrees(direction Fov) float64 {
	var fov float64
	if direction == Vertical {
		fov = 2.0 * math.Atan(1.0/c.projection[5])
	} else {
		fov = 2.0 * math.Atan(1.0/c.projection[0])
	}
	return mgl64.RadToDeg(fov)
}

// CullingFrustum returns the view frustum for visibility tests. The far
// plane sits at the true far distance, not the rendering infinity.
func (c *Camera) CullingFrustum() Frustum {
	return NewFrustum(c.CullingProjectionMatrix().Mul4(c.ViewMatrix()))
}

// SetExposure sets the photographic exposure parameters. Out-of-range
// values are clamped to their physical bounds (f/0.5 to f/64, 1/25000 s to
// 60 s, ISO 10 to 204800), never rejected.
func (c *Camera) SetExposure(aperture, shutterSpeed, sensitivity float32) {
	c.aperture = clamp(aperture, minAperture, maxAperture)
	c.shutterSpeed = clamp(shutterSpeed, minShutterSpeed, maxShutterSpeed)
	c.sensitivity = clamp(sensitivity, minSensitivity, maxSensitivity)
}

// Aperture returns the lens aperture in f-stops.
func (c *Camera) Aperture() float32 {
	return c.aperture
}

// ShutterSpeed returns the shutter speed in seconds.
func (c *Camera) ShutterSpeed() float32 {
	return c.shutterSpeed
}

// Sensitivity returns the sensor sensitivity in ISO.
func (c *Camera) Sensitivity() float32 {
	return c.sensitivity
}

// SetFocusDistance sets the focus distance in world units.
func (c *Camera) SetFocusDistance(distance float32) {
	c.focusDistance = distance
}

// FocusDistance returns the focus distance.
func (c *Camera) FocusDistance() float32 {
	return c.focusDistance
}

// FocalLength derives the lens focal length in meters from the stored
// projection's vertical scale. Only meaningful after a perspective
// projection has been set.
func (c *Camera) FocalLength() float64 {
	return (SensorSize * c.projection[5]) * 0.5
}

// ComputeEffectiveFocalLength applies the thin-lens formula to get the
// focal length of a lens focused at focusDistance. The distance is clamped
// to at least focalLength, where the formula degenerates.
func ComputeEffectiveFocalLength(focalLength, focusDistance float64) float64 {
	focusDistance = math.Max(focalLength, focusDistance)
	return (focusDistance * focalLength) / (focusDistance - focalLength)
}

// ComputeEffectiveFov returns the field of view of a lens focused at
// focusDistance, accounting for focus breathing.
func ComputeEffectiveFov(fovInDegrees, focusDistance float64) float64 {
	f := 0.5 * SensorSize / math.Tan(mgl64.DegToRad(fovInDegrees)*0.5)
	focusDistance = math.Max(f, focusDistance)
	fov := 2.0 * math.Atan(SensorSize*(focusDistance-f)/(2.0*focusDistance*f))
	return mgl64.RadToDeg(fov)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
