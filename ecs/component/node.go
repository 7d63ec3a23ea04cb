package component

// Node places an entity in the scene hierarchy. Parent is an ecs.Entity
// (uint64); zero means the node hangs off the scene root.
type Node struct {
	Name   string
	Parent uint64
}

var NodeComponent = NewComponent[Node]()
