package presets

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/overdraw/camera"
	"github.com/milk9111/overdraw/ecs"
)

func newTestCamera() *camera.Camera {
	w := ecs.NewWorld()
	return camera.New(w.Transforms(), w.CreateEntity())
}

func TestLoadEmbeddedCameraSpecs(t *testing.T) {
	cases := []struct {
		file     string
		wantName string
		wantType string
	}{
		{"default.yaml", "default", "perspective"},
		{"portrait.yaml", "portrait", "lens"},
	}

	for _, c := range cases {
		t.Run(c.file, func(t *testing.T) {
			spec, err := LoadCameraSpec(c.file)
			if err != nil {
				t.Fatalf("LoadCameraSpec: %v", err)
			}
			if spec.Name != c.wantName {
				t.Fatalf("name: got %q want %q", spec.Name, c.wantName)
			}
			if spec.Projection.Type != c.wantType {
				t.Fatalf("projection type: got %q want %q", spec.Projection.Type, c.wantType)
			}
		})
	}
}

func TestApplyConfiguresCamera(t *testing.T) {
	t.Run("perspective", func(t *testing.T) {
		cam := newTestCamera()
		spec := CameraSpec{
			Projection: ProjectionSpec{
				Type: "perspective", Fov: 60, Aspect: 2, Near: 0.5, Far: 200,
			},
			Exposure:      ExposureSpec{Aperture: 2.8, ShutterSpeed: 1.0 / 500.0, Sensitivity: 400},
			FocusDistance: 3,
			Scaling:       &Vec2Spec{X: 0.5, Y: 0.5},
		}
		if err := Apply(spec, cam); err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if got := cam.FieldOfViewInDegrees(camera.Vertical); math.Abs(got-60) > 1e-9 {
			t.Fatalf("fov: got %v", got)
		}
		if cam.Near() != 0.5 || cam.CullingFar() != 200 {
			t.Fatalf("near/far: got %v/%v", cam.Near(), cam.CullingFar())
		}
		if cam.Aperture() != 2.8 || cam.Sensitivity() != 400 {
			t.Fatalf("exposure not applied")
		}
		if cam.FocusDistance() != 3 {
			t.Fatalf("focus distance not applied")
		}
		if cam.Scaling() != (mgl64.Vec2{0.5, 0.5}) {
			t.Fatalf("scaling not applied")
		}
	})

	t.Run("lens", func(t *testing.T) {
		cam := newTestCamera()
		spec := CameraSpec{Projection: ProjectionSpec{Type: "lens", FocalLength: 85, Aspect: 1.5, Near: 0.1, Far: 50}}
		if err := Apply(spec, cam); err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if got := cam.FocalLength(); math.Abs(got-0.085) > 1e-12 {
			t.Fatalf("focal length: got %v", got)
		}
	})

	t.Run("ortho", func(t *testing.T) {
		cam := newTestCamera()
		spec := CameraSpec{Projection: ProjectionSpec{
			Type: "ortho", Left: -4, Right: 4, Bottom: -2, Top: 2, Near: -10, Far: 10,
		}}
		if err := Apply(spec, cam); err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if cam.Near() != -10 || cam.CullingFar() != 10 {
			t.Fatalf("near/far: got %v/%v", cam.Near(), cam.CullingFar())
		}
	})

	t.Run("unknown_type", func(t *testing.T) {
		err := Apply(CameraSpec{Projection: ProjectionSpec{Type: "fisheye"}}, newTestCamera())
		if err == nil || !strings.Contains(err.Error(), "fisheye") {
			t.Fatalf("expected unknown-type error, got %v", err)
		}
	})

	t.Run("unknown_fov_direction", func(t *testing.T) {
		err := Apply(CameraSpec{Projection: ProjectionSpec{Type: "perspective", FovDirection: "diagonal"}}, newTestCamera())
		if err == nil || !strings.Contains(err.Error(), "diagonal") {
			t.Fatalf("expected fov-direction error, got %v", err)
		}
	})
}
