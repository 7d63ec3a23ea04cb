package entity

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/orrery/ecs"
	"github.com/milk9111/orrery/ecs/component"
	"github.com/milk9111/orrery/prefabs"
)

// Scene indexes the entities built from a SceneSpec.
type Scene struct {
	Name    string
	Camera  ecs.Entity
	Nodes   map[string]ecs.Entity
	Targets []Target
}

// Target is one user-selectable follow target.
type Target struct {
	Name     string
	NodeName string
	Node     ecs.Entity
	Distance float64
	Key      string
}

// Node returns the entity built for a named node.
func (s *Scene) Node(name string) (ecs.Entity, bool) {
	e, ok := s.Nodes[name]
	return e, ok
}

// BuildScene creates every node, light and the camera described by spec.
func BuildScene(w *ecs.World, spec *prefabs.SceneSpec) (*Scene, error) {
	if spec == nil {
		return nil, fmt.Errorf("scene: nil spec")
	}
	scene := &Scene{Name: spec.Name, Nodes: make(map[string]ecs.Entity)}

	var build func(nodes []prefabs.NodeSpec, parent ecs.Entity) error
	build = func(nodes []prefabs.NodeSpec, parent ecs.Entity) error {
		for i := range nodes {
			e, err := NewBody(w, &nodes[i], parent)
			if err != nil {
				return err
			}
			scene.Nodes[nodes[i].Name] = e
			if err := build(nodes[i].Children, e); err != nil {
				return err
			}
		}
		return nil
	}
	if err := build(spec.Nodes, 0); err != nil {
		return nil, err
	}

	for _, ls := range spec.Lights {
		if _, err := NewLight(w, ls, scene.Nodes[ls.Parent]); err != nil {
			return nil, err
		}
	}
	if spec.Starfield != nil {
		if _, err := NewStarfield(w, *spec.Starfield); err != nil {
			return nil, err
		}
	}

	target, ok := scene.Nodes[spec.Follow.Target]
	if !ok {
		return nil, fmt.Errorf("scene: unknown follow target %q", spec.Follow.Target)
	}
	camera, err := NewCamera(w, spec.Camera, spec.Follow, target)
	if err != nil {
		return nil, err
	}
	scene.Camera = camera

	for _, ts := range spec.Targets {
		node, ok := ecs.FindByName(w, ts.Node)
		if !ok {
			return nil, fmt.Errorf("scene: target %q: unknown node %q", ts.Name, ts.Node)
		}
		scene.Targets = append(scene.Targets, Target{
			Name:     ts.Name,
			NodeName: ts.Node,
			Node:     node,
			Distance: ts.Distance,
			Key:      ts.Key,
		})
	}
	return scene, nil
}

// NewBody creates one scene node with its optional rotator, sphere and
// material.
func NewBody(w *ecs.World, spec *prefabs.NodeSpec, parent ecs.Entity) (ecs.Entity, error) {
	e, err := ecs.NewNode(w, spec.Name, parent, transformFromSpec(spec.Transform))
	if err != nil {
		return 0, fmt.Errorf("body %q: %w", spec.Name, err)
	}

	if spec.Rotator != nil {
		axis := mgl64.Vec3{0, 1, 0}
		if spec.Rotator.Axis != nil && vec3(*spec.Rotator.Axis).Len() > 0 {
			axis = vec3(*spec.Rotator.Axis).Normalize()
		}
		if err := ecs.Add(w, e, component.RotatorComponent.Kind(), &component.Rotator{
			Axis:      axis,
			Increment: spec.Rotator.Increment,
		}); err != nil {
			return 0, fmt.Errorf("body %q: add rotator: %w", spec.Name, err)
		}
	}

	if spec.Sphere != nil {
		if err := ecs.Add(w, e, component.SphereComponent.Kind(), &component.Sphere{
			Radius:  spec.Sphere.Radius,
			Markers: spec.Sphere.Markers,
		}); err != nil {
			return 0, fmt.Errorf("body %q: add sphere: %w", spec.Name, err)
		}
		mat := MaterialFromSpec(spec.Material)
		if err := ecs.Add(w, e, component.MaterialComponent.Kind(), &mat); err != nil {
			return 0, fmt.Errorf("body %q: add material: %w", spec.Name, err)
		}
	}
	return e, nil
}

// NewLight creates a light; point lights become nodes under parent so they
// travel with it.
func NewLight(w *ecs.World, spec prefabs.LightSpec, parent ecs.Entity) (ecs.Entity, error) {
	light := &component.Light{Color: spec.Color.Color, Intensity: spec.Intensity}
	if light.Color.A == 0 {
		light.Color.R, light.Color.G, light.Color.B, light.Color.A = 0xff, 0xff, 0xff, 0xff
	}

	var e ecs.Entity
	switch strings.ToLower(spec.Kind) {
	case "point":
		light.Kind = component.LightPoint
		t := component.NewTransform()
		t.Position = vec3(spec.Position)
		node, err := ecs.NewNode(w, spec.Name, parent, t)
		if err != nil {
			return 0, fmt.Errorf("light %q: %w", spec.Name, err)
		}
		e = node
	case "ambient":
		light.Kind = component.LightAmbient
		e = ecs.CreateEntity(w)
	default:
		return 0, fmt.Errorf("light %q: unknown kind %q", spec.Name, spec.Kind)
	}

	if err := ecs.Add(w, e, component.LightComponent.Kind(), light); err != nil {
		return 0, fmt.Errorf("light %q: add light: %w", spec.Name, err)
	}
	return e, nil
}

// NewStarfield creates the background star shell.
func NewStarfield(w *ecs.World, spec prefabs.StarfieldSpec) (ecs.Entity, error) {
	field := &component.Starfield{Radius: spec.Radius, Count: spec.Count, Seed: spec.Seed}
	if field.Radius <= 0 {
		field.Radius = 90
	}
	if field.Count <= 0 {
		field.Count = 500
	}
	mat := component.DefaultMaterial()
	if spec.Color != nil {
		mat.Color = spec.Color.Color
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.StarfieldComponent.Kind(), field); err != nil {
		return 0, fmt.Errorf("starfield: add starfield: %w", err)
	}
	if err := ecs.Add(w, e, component.MaterialComponent.Kind(), &mat); err != nil {
		return 0, fmt.Errorf("starfield: add material: %w", err)
	}
	return e, nil
}

// MaterialFromSpec applies the spec's overrides on top of the defaults.
func MaterialFromSpec(spec *prefabs.MaterialSpec) component.Material {
	mat := component.DefaultMaterial()
	if spec == nil {
		return mat
	}
	if spec.Color != nil {
		mat.Color = spec.Color.Color
	}
	if spec.Emissive != nil {
		mat.Emissive = spec.Emissive.Color
	}
	if spec.EmissiveIntensity != nil {
		mat.EmissiveIntensity = *spec.EmissiveIntensity
	}
	if spec.Specular != nil {
		mat.Specular = spec.Specular.Color
	}
	if spec.Shininess != nil {
		mat.Shininess = *spec.Shininess
	}
	if spec.Reflectivity != nil {
		mat.Reflectivity = *spec.Reflectivity
	}
	if spec.Opacity != nil {
		mat.Opacity = *spec.Opacity
	}
	mat.Transparent = spec.Transparent
	mat.FlatShading = spec.FlatShading
	mat.Texture = spec.Texture
	return mat
}

func transformFromSpec(spec prefabs.TransformSpec) component.Transform {
	t := component.NewTransform()
	t.Position = vec3(spec.Position)
	if r := spec.Rotation; r != (prefabs.Vec3Spec{}) {
		t.Rotation = mgl64.AnglesToQuat(mgl64.DegToRad(r[0]), mgl64.DegToRad(r[1]), mgl64.DegToRad(r[2]), mgl64.XYZ)
	}
	if spec.Scale != nil {
		t.Scale = vec3(*spec.Scale)
	}
	return t
}
