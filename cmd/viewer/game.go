package main

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/overdraw/camera"
	"github.com/milk9111/overdraw/ecs"
	"github.com/milk9111/overdraw/presets"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

var cubeCorners = [8]mgl64.Vec3{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

var cubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// probe spheres scattered around the cube; the far ones leave the frustum
// as the rig orbits.
var probes = []struct {
	center mgl64.Vec3
	radius float64
}{
	{mgl64.Vec3{0, 0.5, 0}, 0.5},
	{mgl64.Vec3{3, 0.5, 3}, 0.5},
	{mgl64.Vec3{-3, 0.5, -3}, 0.5},
	{mgl64.Vec3{8, 0.5, 0}, 0.5},
	{mgl64.Vec3{0, 0.5, -12}, 0.5},
	{mgl64.Vec3{-20, 4, 6}, 1.0},
}

type Game struct {
	world *ecs.World
	cam   *camera.Camera

	presetName string
	spec       presets.CameraSpec
	rig        *presets.Rig
	watcher    *presets.Watcher

	t float64
}

func NewGame(presetName string, watch bool) (*Game, error) {
	world := ecs.NewWorld()
	cam := camera.New(world.Transforms(), world.CreateEntity())

	g := &Game{
		world:      world,
		cam:        cam,
		presetName: presetName,
	}
	if err := g.loadPreset(); err != nil {
		return nil, err
	}

	if watch {
		w, err := presets.NewWatcher("presets", "presets/scripts")
		if err != nil {
			log.Printf("viewer: preset watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) loadPreset() error {
	spec, err := presets.LoadCameraSpec(g.presetName)
	if err != nil {
		return err
	}
	if err := presets.Apply(spec, g.cam); err != nil {
		return err
	}

	var rig *presets.Rig
	if spec.Rig != "" {
		rig, err = presets.LoadRig(spec.Rig)
		if err != nil {
			return err
		}
	}

	g.spec = spec
	g.rig = rig
	if rig == nil {
		g.cam.LookAt(mgl64.Vec3{4, 3, 6}, mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{0, 1, 0})
	}
	return nil
}

func (g *Game) Update() error {
	g.t += 1.0 / 60.0

	if g.watcher != nil {
		g.drainWatcher()
	}

	if g.rig != nil {
		pose, err := g.rig.At(g.t)
		if err != nil {
			log.Printf("viewer: rig: %v", err)
			g.rig = nil
			return nil
		}
		g.cam.LookAt(pose.Eye, pose.Center, pose.Up)
		if pose.Fov > 0 {
			p := g.spec.Projection
			aspect := p.Aspect
			if aspect == 0 {
				aspect = 16.0 / 9.0
			}
			g.cam.SetProjectionFov(pose.Fov, aspect, p.Near, p.Far, camera.Vertical)
		}
	}
	return nil
}

func (g *Game) drainWatcher() {
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if mt, ok := presets.ModTime(g.presetName); ok {
				log.Printf("viewer: reloading preset after change to %s (modified %s)", name, mt.Format(time.TimeOnly))
			} else {
				log.Printf("viewer: reloading preset after change to %s", name)
			}
			if err := g.loadPreset(); err != nil {
				log.Printf("viewer: reload failed: %v", err)
			}
		case err := <-g.watcher.Errors:
			log.Printf("viewer: watch error: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	info := camera.NewCameraInfo(g.cam)
	viewProj := info.Projection.Mul4(info.View)
	frustum := g.cam.CullingFrustum()

	for _, e := range cubeEdges {
		a, aok := project(viewProj, cubeCorners[e[0]])
		b, bok := project(viewProj, cubeCorners[e[1]])
		if !aok || !bok {
			continue
		}
		vector.StrokeLine(screen, a[0], a[1], b[0], b[1], 1, colornames.White, true)
	}

	for _, p := range probes {
		clr := color.Color(colornames.Limegreen)
		if !frustum.IntersectsSphere(p.center, p.radius) {
			clr = colornames.Crimson
		}
		if c, ok := project(viewProj, p.center); ok {
			vector.StrokeCircle(screen, c[0], c[1], 8, 2, clr, true)
		}
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f  preset: %s\nEV100: %.2f  focal: %.1fmm  fov: %.1f°  near/far: %.2f/%.1f",
		ebiten.ActualFPS(), g.spec.Name,
		info.EV100, float64(info.FocalLength)*1000,
		g.cam.FieldOfViewInDegrees(camera.Vertical),
		info.Near, info.CullingFar,
	))
}

// project maps a world point through the camera to screen pixels. Points on
// or behind the eye plane are rejected.
func project(viewProj mgl32.Mat4, p mgl64.Vec3) ([2]float32, bool) {
	clip := viewProj.Mul4x1(mgl32.Vec4{float32(p.X()), float32(p.Y()), float32(p.Z()), 1})
	if clip.W() <= 0 {
		return [2]float32{}, false
	}
	x := clip.X() / clip.W()
	y := clip.Y() / clip.W()
	return [2]float32{
		(x*0.5 + 0.5) * baseWidth,
		(1 - (y*0.5 + 0.5)) * baseHeight,
	}, true
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
