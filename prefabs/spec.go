package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/milk9111/orrery/common"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScene = errors.New("prefabs: invalid scene")

// SceneSpec describes a whole scene: its node tree, lights, camera framing
// and the follow targets offered to the user.
type SceneSpec struct {
	Name      string         `yaml:"name"`
	Camera    CameraSpec     `yaml:"camera"`
	Follow    FollowSpec     `yaml:"follow"`
	Lights    []LightSpec    `yaml:"lights"`
	Starfield *StarfieldSpec `yaml:"starfield"`
	Nodes     []NodeSpec     `yaml:"nodes"`
	Targets   []TargetSpec   `yaml:"targets"`
}

type CameraSpec struct {
	Position *Vec3Spec `yaml:"position"`
	Up       *Vec3Spec `yaml:"up"`
	LookAt   *Vec3Spec `yaml:"look_at"`
	Fov      float64   `yaml:"fov"`
	Aspect   float64   `yaml:"aspect"`
	Near     float64   `yaml:"near"`
	Far      float64   `yaml:"far"`
}

type FollowSpec struct {
	Target       string    `yaml:"target"`
	Distance     float64   `yaml:"distance"`
	Mode         string    `yaml:"mode"`
	FallbackAxis *Vec3Spec `yaml:"fallback_axis"`
}

type TargetSpec struct {
	Name     string  `yaml:"name"`
	Node     string  `yaml:"node"`
	Distance float64 `yaml:"distance"`
	// Key is an ebiten key name such as "Digit1".
	Key string `yaml:"key"`
}

type NodeSpec struct {
	Name      string        `yaml:"name"`
	Transform TransformSpec `yaml:"transform"`
	Rotator   *RotatorSpec  `yaml:"rotator"`
	Sphere    *SphereSpec   `yaml:"sphere"`
	Material  *MaterialSpec `yaml:"material"`
	Children  []NodeSpec    `yaml:"children"`
}

type TransformSpec struct {
	Position Vec3Spec `yaml:"position"`
	// Rotation is XYZ Euler angles in degrees.
	Rotation Vec3Spec  `yaml:"rotation"`
	Scale    *Vec3Spec `yaml:"scale"`
}

type RotatorSpec struct {
	Axis      *Vec3Spec `yaml:"axis"`
	Increment float64   `yaml:"increment"`
}

type SphereSpec struct {
	Radius  float64 `yaml:"radius"`
	Markers int     `yaml:"markers"`
}

// MaterialSpec mirrors component.Material; nil fields keep the default.
type MaterialSpec struct {
	Color             *YAMLColor `yaml:"color"`
	Emissive          *YAMLColor `yaml:"emissive"`
	EmissiveIntensity *float64   `yaml:"emissive_intensity"`
	Specular          *YAMLColor `yaml:"specular"`
	Shininess         *float64   `yaml:"shininess"`
	Reflectivity      *float64   `yaml:"reflectivity"`
	Opacity           *float64   `yaml:"opacity"`
	Transparent       bool       `yaml:"transparent"`
	FlatShading       bool       `yaml:"flat_shading"`
	Texture           string     `yaml:"texture"`
}

type LightSpec struct {
	Name      string    `yaml:"name"`
	Kind      string    `yaml:"kind"`
	Color     YAMLColor `yaml:"color"`
	Intensity float64   `yaml:"intensity"`
	Parent    string    `yaml:"parent"`
	Position  Vec3Spec  `yaml:"position"`
}

type StarfieldSpec struct {
	Radius float64    `yaml:"radius"`
	Count  int        `yaml:"count"`
	Seed   uint64     `yaml:"seed"`
	Color  *YAMLColor `yaml:"color"`
}

// Vec3Spec decodes from a three-element YAML sequence, or from a single
// scalar which is repeated on every axis.
type Vec3Spec [3]float64

func (v *Vec3Spec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s float64
		if err := value.Decode(&s); err != nil {
			return fmt.Errorf("vector: %w", err)
		}
		*v = Vec3Spec{s, s, s}
		return nil
	case yaml.SequenceNode:
		var xs []float64
		if err := value.Decode(&xs); err != nil {
			return fmt.Errorf("vector: %w", err)
		}
		if len(xs) != 3 {
			return fmt.Errorf("vector: line %d: expected 3 components, got %d", value.Line, len(xs))
		}
		*v = Vec3Spec{xs[0], xs[1], xs[2]}
		return nil
	default:
		return fmt.Errorf("vector: line %d: expected a sequence or scalar", value.Line)
	}
}

// YAMLColor accepts hex ("#ffc31f", "0xffffff") or CSS names ("grey").
type YAMLColor struct {
	Color color.NRGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := common.ParseColor(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	c.Color = parsed
	return nil
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadSceneSpec loads and validates a scene prefab.
func LoadSceneSpec(filename string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

// ParseSceneSpec decodes and validates a scene prefab from memory.
func ParseSceneSpec(data []byte) (*SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal scene: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Walk visits every node depth-first with its parent's name ("" for roots).
func (s *SceneSpec) Walk(fn func(node *NodeSpec, parent string)) {
	var visit func(nodes []NodeSpec, parent string)
	visit = func(nodes []NodeSpec, parent string) {
		for i := range nodes {
			fn(&nodes[i], parent)
			visit(nodes[i].Children, nodes[i].Name)
		}
	}
	visit(s.Nodes, "")
}

// Validate reports every problem at once, wrapped in ErrInvalidScene.
func (s *SceneSpec) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	names := make(map[string]bool)
	if len(s.Nodes) == 0 {
		add("no nodes")
	}
	s.Walk(func(n *NodeSpec, _ string) {
		switch {
		case n.Name == "":
			add("node without a name")
		case names[n.Name]:
			add("duplicate node %q", n.Name)
		}
		names[n.Name] = true
		if n.Sphere != nil && n.Sphere.Radius <= 0 {
			add("node %q: sphere radius must be positive", n.Name)
		}
		if n.Material != nil && n.Material.Opacity != nil && (*n.Material.Opacity < 0 || *n.Material.Opacity > 1) {
			add("node %q: opacity must be within [0,1]", n.Name)
		}
	})

	if s.Follow.Target == "" {
		add("follow: no target")
	} else if !names[s.Follow.Target] {
		add("follow: unknown target %q", s.Follow.Target)
	}
	if !common.PositiveFinite(s.Follow.Distance) {
		add("follow: distance must be positive")
	}
	switch strings.ToLower(s.Follow.Mode) {
	case "", "camera", "offset":
	default:
		add("follow: unknown mode %q", s.Follow.Mode)
	}

	targets := make(map[string]bool)
	for _, t := range s.Targets {
		if t.Name == "" {
			add("target without a name")
		} else if targets[t.Name] {
			add("duplicate target %q", t.Name)
		}
		targets[t.Name] = true
		if !names[t.Node] {
			add("target %q: unknown node %q", t.Name, t.Node)
		}
		if !common.PositiveFinite(t.Distance) {
			add("target %q: distance must be positive", t.Name)
		}
	}

	for _, l := range s.Lights {
		switch strings.ToLower(l.Kind) {
		case "point", "ambient":
		default:
			add("light %q: unknown kind %q", l.Name, l.Kind)
		}
		if l.Parent != "" && !names[l.Parent] {
			add("light %q: unknown parent %q", l.Name, l.Parent)
		}
		if l.Intensity < 0 {
			add("light %q: negative intensity", l.Name)
		}
	}

	c := s.Camera
	if c.Fov < 0 || c.Fov >= 180 {
		add("camera: fov %v out of range", c.Fov)
	}
	if c.Near < 0 || (c.Far != 0 && c.Far <= c.Near) {
		add("camera: near %v / far %v out of order", c.Near, c.Far)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidScene, strings.Join(problems, "; "))
	}
	return nil
}
