package ecs

// World owns entities and the transform system that stores their spatial
// data.
type World struct {
	entities   entityStore
	transforms *TransformSystem
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{transforms: NewTransformSystem()}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity kills an entity and drops its transform record.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	w.transforms.Destroy(e)
	return true
}

// IsAlive reports whether an entity handle is still valid.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Transforms returns the world's transform system.
func (w *World) Transforms() *TransformSystem {
	return w.transforms
}
