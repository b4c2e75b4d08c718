package presets

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
)

// rigDispatchSource calls the script's update function with the current
// time and publishes the result where the host can read it back.
const rigDispatchSource = "\n__pose := update(__t)\n"

// Pose is one rig sample: where the camera sits and what it looks at.
type Pose struct {
	Eye    mgl64.Vec3
	Center mgl64.Vec3
	Up     mgl64.Vec3
	// Fov in degrees. Zero means the script left the projection alone.
	Fov float64
}

// Rig runs a tengo script that animates a camera over time. The script
// must define update(t) returning a map with eye and center arrays and
// optionally up and fov:
//
//	update := func(t) {
//	    return { eye: [0, 2, 6], center: [0, 0, 0], fov: 45 }
//	}
//
// The script is compiled once and re-run per sample.
type Rig struct {
	compiled *tengo.Compiled
}

func NewRig(src []byte) (*Rig, error) {
	full := make([]byte, 0, len(src)+len(rigDispatchSource))
	full = append(full, src...)
	full = append(full, rigDispatchSource...)

	script := tengo.NewScript(full)
	script.SetImports(stdlib.GetModuleMap("math"))
	if err := script.Add("__t", 0.0); err != nil {
		return nil, fmt.Errorf("presets: rig script: %w", err)
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("presets: compile rig script: %w", err)
	}
	return &Rig{compiled: compiled}, nil
}

// LoadRig loads and compiles a rig script by name.
func LoadRig(name string) (*Rig, error) {
	src, err := LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("presets: load rig %s: %w", name, err)
	}
	return NewRig(src)
}

// At samples the rig at time t in seconds.
func (r *Rig) At(t float64) (Pose, error) {
	if err := r.compiled.Set("__t", t); err != nil {
		return Pose{}, fmt.Errorf("presets: rig: %w", err)
	}
	if err := r.compiled.Run(); err != nil {
		return Pose{}, fmt.Errorf("presets: rig update: %w", err)
	}

	out := r.compiled.Get("__pose").Map()
	if out == nil {
		return Pose{}, fmt.Errorf("presets: rig update returned no pose map")
	}

	pose := Pose{Up: mgl64.Vec3{0, 1, 0}}
	var err error
	if pose.Eye, err = vec3Field(out, "eye"); err != nil {
		return Pose{}, err
	}
	if pose.Center, err = vec3Field(out, "center"); err != nil {
		return Pose{}, err
	}
	if raw, ok := out["up"]; ok {
		if pose.Up, err = vec3Value("up", raw); err != nil {
			return Pose{}, err
		}
	}
	if raw, ok := out["fov"]; ok {
		f, ok := numValue(raw)
		if !ok {
			return Pose{}, fmt.Errorf("presets: rig pose fov is not a number")
		}
		pose.Fov = f
	}
	return pose, nil
}

func vec3Field(m map[string]interface{}, key string) (mgl64.Vec3, error) {
	raw, ok := m[key]
	if !ok {
		return mgl64.Vec3{}, fmt.Errorf("presets: rig pose missing %q", key)
	}
	return vec3Value(key, raw)
}

func vec3Value(key string, raw interface{}) (mgl64.Vec3, error) {
	arr, ok := raw.([]interface{})
	if !ok || len(arr) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("presets: rig pose %q is not a 3-element array", key)
	}
	var v mgl64.Vec3
	for i, el := range arr {
		f, ok := numValue(el)
		if !ok {
			return mgl64.Vec3{}, fmt.Errorf("presets: rig pose %q[%d] is not a number", key, i)
		}
		v[i] = f
	}
	return v, nil
}

func numValue(raw interface{}) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
