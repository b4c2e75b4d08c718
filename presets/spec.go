// Package presets loads camera configurations from YAML files, watches them
// for edits, and runs tengo rig scripts that drive a camera over time.
package presets

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/overdraw/camera"
)

// CameraSpec is one camera preset on disk.
type CameraSpec struct {
	Name          string         `yaml:"name"`
	Projection    ProjectionSpec `yaml:"projection"`
	Exposure      ExposureSpec   `yaml:"exposure"`
	FocusDistance float64        `yaml:"focus_distance"`
	Scaling       *Vec2Spec      `yaml:"scaling"`
	Shift         *Vec2Spec      `yaml:"shift"`
	// Rig names a tengo script (relative to the presets dir) that animates
	// the camera. Empty means a static camera.
	Rig string `yaml:"rig"`
}

// ProjectionSpec selects one of the camera's projection setters.
type ProjectionSpec struct {
	// Type is perspective, lens, ortho or frustum.
	Type string `yaml:"type"`

	// Perspective.
	Fov          float64 `yaml:"fov"`
	FovDirection string  `yaml:"fov_direction"`

	// Lens, in millimeters.
	FocalLength float64 `yaml:"focal_length"`

	Aspect float64 `yaml:"aspect"`
	Near   float64 `yaml:"near"`
	Far    float64 `yaml:"far"`

	// Ortho and frustum planes.
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Top    float64 `yaml:"top"`
}

type ExposureSpec struct {
	Aperture     float32 `yaml:"aperture"`
	ShutterSpeed float32 `yaml:"shutter_speed"`
	Sensitivity  float32 `yaml:"sensitivity"`
}

type Vec2Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// LoadSpec reads and unmarshals a preset file into T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("presets: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("presets: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// LoadCameraSpec loads a camera preset by filename.
func LoadCameraSpec(filename string) (CameraSpec, error) {
	return LoadSpec[CameraSpec](filename)
}

// Apply configures cam from spec. Unknown enum strings are errors; the
// camera is left partially configured if a later field fails, matching the
// setter-by-setter semantics of configuring it by hand.
func Apply(spec CameraSpec, cam *camera.Camera) error {
	if err := applyProjection(spec.Projection, cam); err != nil {
		return err
	}
	if spec.Exposure != (ExposureSpec{}) {
		cam.SetExposure(spec.Exposure.Aperture, spec.Exposure.ShutterSpeed, spec.Exposure.Sensitivity)
	}
	if spec.FocusDistance > 0 {
		cam.SetFocusDistance(float32(spec.FocusDistance))
	}
	if spec.Scaling != nil {
		cam.SetScaling(mgl64.Vec2{spec.Scaling.X, spec.Scaling.Y})
	}
	if spec.Shift != nil {
		cam.SetShift(mgl64.Vec2{spec.Shift.X, spec.Shift.Y})
	}
	return nil
}

func applyProjection(p ProjectionSpec, cam *camera.Camera) error {
	aspect := p.Aspect
	if aspect == 0 {
		aspect = 16.0 / 9.0
	}

	switch p.Type {
	case "perspective":
		dir, err := fovDirection(p.FovDirection)
		if err != nil {
			return err
		}
		cam.SetProjectionFov(p.Fov, aspect, p.Near, p.Far, dir)
	case "lens":
		cam.SetLensProjection(p.FocalLength, aspect, p.Near, p.Far)
	case "ortho":
		cam.SetProjection(camera.Ortho, p.Left, p.Right, p.Bottom, p.Top, p.Near, p.Far)
	case "frustum":
		cam.SetProjection(camera.Perspective, p.Left, p.Right, p.Bottom, p.Top, p.Near, p.Far)
	default:
		return fmt.Errorf("presets: unknown projection type %q", p.Type)
	}
	return nil
}

func fovDirection(s string) (camera.Fov, error) {
	switch s {
	case "", "vertical":
		return camera.Vertical, nil
	case "horizontal":
		return camera.Horizontal, nil
	default:
		return 0, fmt.Errorf("presets: unknown fov direction %q", s)
	}
}
