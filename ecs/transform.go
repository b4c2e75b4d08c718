package ecs

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// TransformInstance indexes a transform record inside a TransformSystem.
// The zero value is invalid and always resolves to the identity transform.
type TransformInstance int

type transformNode struct {
	entity Entity
	parent TransformInstance
	local  mgl64.Mat4
}

// TransformSystem is the single source of truth for entity position and
// orientation. Local transforms are stored in double precision; world
// transforms are composed on demand by walking the parent chain, so deep
// hierarchies far from the origin do not accumulate float32 error.
//
// A transform is owned by exactly one writer per frame. The system does no
// locking of its own; concurrent reads are safe only once the writer for
// the frame is done.
type TransformSystem struct {
	nodes  []transformNode
	lookup SparseSet[TransformInstance]
}

func NewTransformSystem() *TransformSystem {
	// nodes[0] is a sentinel so the zero instance reads as identity.
	return &TransformSystem{
		nodes: []transformNode{{local: mgl64.Ident4()}},
	}
}

// Create allocates a transform record for e with the given parent and local
// transform. Creating twice for the same entity replaces the previous
// record's contents.
func (ts *TransformSystem) Create(e Entity, parent TransformInstance, local mgl64.Mat4) TransformInstance {
	if !e.Valid() {
		return 0
	}
	if i := ts.Instance(e); i != 0 {
		ts.nodes[i].local = local
		ts.SetParent(i, parent)
		return i
	}
	ts.nodes = append(ts.nodes, transformNode{entity: e, parent: parent, local: local})
	i := TransformInstance(len(ts.nodes) - 1)
	ts.lookup.Set(e.id(), i)
	return i
}

// Instance returns the transform record for e, or 0 if none exists.
func (ts *TransformSystem) Instance(e Entity) TransformInstance {
	i, ok := ts.lookup.Get(e.id())
	if !ok {
		return 0
	}
	return i
}

// Destroy drops the transform record for e. Children of the destroyed
// record are reparented to the root.
func (ts *TransformSystem) Destroy(e Entity) {
	i := ts.Instance(e)
	if i == 0 {
		return
	}
	// Only live records can point at i; cleared slots already parent to
	// the root.
	for _, n := range ts.lookup.Values() {
		if ts.nodes[n].parent == i {
			ts.nodes[n].parent = 0
		}
	}
	// Record slots are stable; clearing the node keeps instances held by
	// other records valid.
	ts.nodes[i] = transformNode{local: mgl64.Ident4()}
	ts.lookup.Remove(e.id())
}

// SetTransform stores the local transform for instance i.
func (ts *TransformSystem) SetTransform(i TransformInstance, local mgl64.Mat4) {
	if !ts.valid(i) {
		return
	}
	ts.nodes[i].local = local
}

// SetTransform32 stores a single-precision local transform for instance i.
func (ts *TransformSystem) SetTransform32(i TransformInstance, local mgl32.Mat4) {
	ts.SetTransform(i, mat32to64(local))
}

// SetParent re-parents instance i. Passing 0 detaches it to the root. A
// parent whose own chain already runs through i is refused; the hierarchy
// stays acyclic so parent-chain walks always terminate.
func (ts *TransformSystem) SetParent(i, parent TransformInstance) {
	if !ts.valid(i) {
		return
	}
	if parent != 0 && (!ts.valid(parent) || ts.isAncestor(i, parent)) {
		return
	}
	ts.nodes[i].parent = parent
}

// isAncestor reports whether i appears in the parent chain starting at p,
// p itself included.
func (ts *TransformSystem) isAncestor(i, p TransformInstance) bool {
	for ; p != 0; p = ts.nodes[p].parent {
		if p == i {
			return true
		}
	}
	return false
}

// Transform returns the local transform of instance i.
func (ts *TransformSystem) Transform(i TransformInstance) mgl64.Mat4 {
	if !ts.valid(i) {
		return mgl64.Ident4()
	}
	return ts.nodes[i].local
}

// WorldTransformAccurate composes the world transform of instance i in
// double precision.
func (ts *TransformSystem) WorldTransformAccurate(i TransformInstance) mgl64.Mat4 {
	if !ts.valid(i) {
		return mgl64.Ident4()
	}
	world := ts.nodes[i].local
	for p := ts.nodes[i].parent; p != 0; p = ts.nodes[p].parent {
		world = ts.nodes[p].local.Mul4(world)
	}
	return world
}

// WorldTransform is the single-precision world transform of instance i.
func (ts *TransformSystem) WorldTransform(i TransformInstance) mgl32.Mat4 {
	return mat64to32(ts.WorldTransformAccurate(i))
}

func (ts *TransformSystem) valid(i TransformInstance) bool {
	return i > 0 && int(i) < len(ts.nodes) && ts.nodes[i].entity.Valid()
}

func mat32to64(m mgl32.Mat4) mgl64.Mat4 {
	var out mgl64.Mat4
	for i := range m {
		out[i] = float64(m[i])
	}
	return out
}

func mat64to32(m mgl64.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for i := range m {
		out[i] = float32(m[i])
	}
	return out
}
