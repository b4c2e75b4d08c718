package presets

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const staticRig = `
update := func(t) {
    return {
        eye: [0, 2, 6],
        center: [0, 0, 0]
    }
}
`

const animatedRig = `
math := import("math")

update := func(t) {
    return {
        eye: [math.cos(t), 1, math.sin(t)],
        center: [0, 0, 0],
        up: [0, 0, 1],
        fov: 30 + t
    }
}
`

func TestRigStaticPose(t *testing.T) {
	rig, err := NewRig([]byte(staticRig))
	if err != nil {
		t.Fatalf("NewRig: %v", err)
	}

	pose, err := rig.At(0)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if pose.Eye != (mgl64.Vec3{0, 2, 6}) || pose.Center != (mgl64.Vec3{0, 0, 0}) {
		t.Fatalf("pose mismatch: %+v", pose)
	}
	if pose.Up != (mgl64.Vec3{0, 1, 0}) {
		t.Fatalf("default up should be +Y, got %v", pose.Up)
	}
	if pose.Fov != 0 {
		t.Fatalf("fov should be unset, got %v", pose.Fov)
	}
}

func TestRigAnimatedPose(t *testing.T) {
	rig, err := NewRig([]byte(animatedRig))
	if err != nil {
		t.Fatalf("NewRig: %v", err)
	}

	for _, tt := range []float64{0, 0.5, 2} {
		pose, err := rig.At(tt)
		if err != nil {
			t.Fatalf("At(%v): %v", tt, err)
		}
		if math.Abs(pose.Eye[0]-math.Cos(tt)) > 1e-12 || math.Abs(pose.Eye[2]-math.Sin(tt)) > 1e-12 {
			t.Fatalf("eye at t=%v: %v", tt, pose.Eye)
		}
		if pose.Up != (mgl64.Vec3{0, 0, 1}) {
			t.Fatalf("script up override lost: %v", pose.Up)
		}
		if math.Abs(pose.Fov-(30+tt)) > 1e-12 {
			t.Fatalf("fov at t=%v: %v", tt, pose.Fov)
		}
	}
}

func TestRigErrors(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		compile bool // error expected at compile time
		wantSub string
	}{
		{"syntax_error", `update := func(t) {`, true, "compile"},
		{"missing_eye", `update := func(t) { return { center: [0, 0, 0] } }`, false, `missing "eye"`},
		{"bad_vector", `update := func(t) { return { eye: [1, 2], center: [0, 0, 0] } }`, false, "3-element"},
		{"bad_fov", `update := func(t) { return { eye: [0,0,1], center: [0,0,0], fov: "wide" } }`, false, "not a number"},
		{"no_map", `update := func(t) { return 7 }`, false, "pose"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rig, err := NewRig([]byte(c.src))
			if c.compile {
				if err == nil {
					t.Fatalf("expected compile error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewRig: %v", err)
			}
			if _, err := rig.At(1); err == nil || !strings.Contains(err.Error(), c.wantSub) {
				t.Fatalf("expected error containing %q, got %v", c.wantSub, err)
			}
		})
	}
}

func TestLoadEmbeddedOrbitRig(t *testing.T) {
	rig, err := LoadRig("orbit.tengo")
	if err != nil {
		t.Fatalf("LoadRig: %v", err)
	}

	a, err := rig.At(0)
	if err != nil {
		t.Fatalf("At(0): %v", err)
	}
	b, err := rig.At(1)
	if err != nil {
		t.Fatalf("At(1): %v", err)
	}
	if a.Eye == b.Eye {
		t.Fatalf("orbit rig should move the eye over time")
	}
	if a.Fov <= 0 || b.Fov <= 0 {
		t.Fatalf("orbit rig should drive the fov")
	}
}
